package assemble_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrivero/notemail/internal/app/assemble"
	"github.com/mrivero/notemail/internal/domain"
)

var at = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func TestSubjectLineFormat(t *testing.T) {
	msg := assemble.Build(domain.CategoryTask, "Buy milk", []string{"get 2% milk"}, nil, at)

	assert.Equal(t, "[TASK] Buy milk - 2026-03-14 09:26", msg.SubjectLine)
}

func TestSubjectFallsBackToNote(t *testing.T) {
	msg := assemble.Build(domain.CategoryIdea, "", nil, nil, at)

	assert.Equal(t, "[IDEA] Note - 2026-03-14 09:26", msg.SubjectLine)
}

func TestLinesJoinedWithBreaks(t *testing.T) {
	msg := assemble.Build(domain.CategoryRandom, "s", []string{"one", "two", "three"}, nil, at)

	assert.Equal(t, "<p>one<br>two<br>three</p>", msg.BodyHTML)
}

func TestEmptyCompositionYieldsWellFormedBody(t *testing.T) {
	msg := assemble.Build(domain.CategoryUncategorized, "", nil, nil, at)

	assert.Equal(t, "<p></p>", msg.BodyHTML)
	assert.Empty(t, msg.Inline)
}

func TestContentIDsMatchBodyReferencesInOrder(t *testing.T) {
	images := []domain.InlineImage{
		{Filename: "a.jpg", Data: []byte{1}},
		{Filename: "b.jpg", Data: []byte{2}},
		{Filename: "c.jpg", Data: []byte{3}},
	}

	msg := assemble.Build(domain.CategoryEvent, "pics", []string{"hi"}, images, at)

	require.Len(t, msg.Inline, len(images))
	prev := -1
	for k, att := range msg.Inline {
		cid := fmt.Sprintf("image%d", k)
		assert.Equal(t, cid, att.ContentID)
		assert.Equal(t, images[k].Filename, att.Filename)
		assert.Equal(t, images[k].Data, att.Data)

		pos := strings.Index(msg.BodyHTML, fmt.Sprintf(`<img src="cid:%s">`, cid))
		require.GreaterOrEqual(t, pos, 0, "body lacks reference to %s", cid)
		assert.Greater(t, pos, prev, "%s referenced out of order", cid)
		prev = pos
	}
}
