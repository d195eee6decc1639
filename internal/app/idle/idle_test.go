package idle_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrivero/notemail/internal/app/idle"
	"github.com/mrivero/notemail/internal/domain"
)

type noticeGateway struct {
	mu    sync.Mutex
	texts []string
}

func (g *noticeGateway) SendText(_ context.Context, _ domain.UserID, text string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.texts = append(g.texts, text)
	return nil
}

func (g *noticeGateway) SendMenu(context.Context, domain.UserID, string, []domain.MenuOption) error {
	return nil
}

func (g *noticeGateway) EditLastMessage(context.Context, string, []domain.MenuOption) error {
	return nil
}

func TestExpiryNotifiesThenStops(t *testing.T) {
	gw := &noticeGateway{}
	stopped := make(chan struct{})

	sup := idle.New(10*time.Millisecond, 42, gw, "https://wake.example.com", func() {
		close(stopped)
	})

	go sup.Run(context.Background())

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor never stopped")
	}

	gw.mu.Lock()
	defer gw.mu.Unlock()
	require.Len(t, gw.texts, 1)
	assert.Contains(t, gw.texts[0], "shutting down")
	assert.Contains(t, gw.texts[0], "https://wake.example.com")
}

func TestCancelBeforeExpiryStaysQuiet(t *testing.T) {
	gw := &noticeGateway{}
	stopCalled := false

	sup := idle.New(time.Hour, 42, gw, "", func() { stopCalled = true })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("supervisor did not return on cancel")
	}

	assert.False(t, stopCalled)
	assert.Empty(t, gw.texts)
}

func TestZeroWindowDisablesSupervisor(t *testing.T) {
	gw := &noticeGateway{}
	sup := idle.New(0, 42, gw, "", func() { t.Fatal("stop must not be called") })

	done := make(chan struct{})
	go func() {
		sup.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled supervisor should return immediately")
	}
}
