package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrivero/notemail/internal/app/render"
	"github.com/mrivero/notemail/internal/domain"
)

var allPhases = []domain.Phase{
	domain.PhaseIdle,
	domain.PhaseAwaitingCategory,
	domain.PhaseAwaitingSubject,
	domain.PhaseComposing,
	domain.PhaseAwaitingConfirm,
}

func TestEveryPhaseHasAView(t *testing.T) {
	for _, p := range allPhases {
		v := render.ForPhase(p)
		assert.NotEmpty(t, v.Prompt, "phase %s has no prompt", p)
	}
}

func TestEveryPhaseHasARejectionNotice(t *testing.T) {
	for _, p := range allPhases {
		assert.NotEmpty(t, render.Rejection(p), "phase %s has no rejection notice", p)
	}
}

func TestIdleOffersTheBeginButton(t *testing.T) {
	v := render.ForPhase(domain.PhaseIdle)

	require.Len(t, v.Options, 1)
	assert.Equal(t, domain.OptionBeginComposition, v.Options[0].ID)
	assert.Equal(t, domain.BeginTriggerText, v.Options[0].Label)
	assert.False(t, v.ExpectsText)
}

func TestCategoryMenuCoversTheFixedSet(t *testing.T) {
	v := render.ForPhase(domain.PhaseAwaitingCategory)

	cats := domain.Categories()
	require.Len(t, v.Options, len(cats))
	for i, c := range cats {
		assert.Equal(t, domain.OptionSelectCategory(c), v.Options[i].ID)

		got, ok := domain.CategoryFromOption(v.Options[i].ID)
		require.True(t, ok)
		assert.Equal(t, c, got)
	}
}

func TestSubjectPhaseExpectsFreeText(t *testing.T) {
	v := render.ForPhase(domain.PhaseAwaitingSubject)

	assert.True(t, v.ExpectsText)
	assert.Empty(t, v.Options)
}

func TestConfirmMenuOffersSendAndCancel(t *testing.T) {
	v := render.ForPhase(domain.PhaseAwaitingConfirm)

	require.Len(t, v.Options, 2)
	assert.Equal(t, domain.OptionConfirmSend, v.Options[0].ID)
	assert.Equal(t, domain.OptionConfirmCancel, v.Options[1].ID)
	assert.False(t, v.ExpectsText)
}

func TestComposingAcknowledgementsKeepTheStopButton(t *testing.T) {
	for _, v := range []render.View{render.LineAdded(), render.ImageAdded(), render.SubjectSet()} {
		require.Len(t, v.Options, 1)
		assert.Equal(t, domain.OptionStopComposition, v.Options[0].ID)
		assert.True(t, v.ExpectsText)
	}
}
