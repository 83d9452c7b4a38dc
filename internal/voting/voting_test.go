package voting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/stackit/backend/internal/models"
)

func TestApplyVote(t *testing.T) {
	tests := []struct {
		name      string
		current   models.Choice
		requested models.Choice
		want      Transition
	}{
		{"none to up", models.ChoiceNone, models.ChoiceUp, Transition{models.ChoiceUp, 1}},
		{"none to down", models.ChoiceNone, models.ChoiceDown, Transition{models.ChoiceDown, -1}},
		{"up toggles off", models.ChoiceUp, models.ChoiceUp, Transition{models.ChoiceNone, -1}},
		{"down toggles off", models.ChoiceDown, models.ChoiceDown, Transition{models.ChoiceNone, 1}},
		{"up to down", models.ChoiceUp, models.ChoiceDown, Transition{models.ChoiceDown, -2}},
		{"down to up", models.ChoiceDown, models.ChoiceUp, Transition{models.ChoiceUp, 2}},
		{"empty treated as none", "", models.ChoiceUp, Transition{models.ChoiceUp, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyVote(tt.current, tt.requested)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyVoteRejectsNone(t *testing.T) {
	_, err := ApplyVote(models.ChoiceUp, models.ChoiceNone)
	assert.ErrorIs(t, err, ErrInvalidChoice)

	_, err = ApplyVote(models.ChoiceUp, "sideways")
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

// Votable{10, none}: up -> {11, up}; up -> {10, none}; down -> {9, down}
func TestApplyVoteClickSequence(t *testing.T) {
	count, choice := 10, models.ChoiceNone

	steps := []struct {
		click     models.Choice
		wantCount int
		want      models.Choice
	}{
		{models.ChoiceUp, 11, models.ChoiceUp},
		{models.ChoiceUp, 10, models.ChoiceNone},
		{models.ChoiceDown, 9, models.ChoiceDown},
	}

	for _, s := range steps {
		tr, err := ApplyVote(choice, s.click)
		require.NoError(t, err)
		count += tr.Delta
		choice = tr.Choice
		assert.Equal(t, s.wantCount, count)
		assert.Equal(t, s.want, choice)
	}
}

func TestApplyVoteNetMatchesFinalChoice(t *testing.T) {
	sequences := [][]models.Choice{
		{models.ChoiceUp, models.ChoiceUp, models.ChoiceDown},
		{models.ChoiceDown, models.ChoiceUp, models.ChoiceUp, models.ChoiceDown},
		{models.ChoiceUp, models.ChoiceDown, models.ChoiceDown, models.ChoiceDown},
	}

	for _, seq := range sequences {
		baseline := 42
		count, choice := baseline, models.ChoiceNone
		for _, click := range seq {
			tr, err := ApplyVote(choice, click)
			require.NoError(t, err)
			count += tr.Delta
			choice = tr.Choice
		}
		assert.Equal(t, baseline+choice.Unit(), count, "sequence %v", seq)
	}
}

func TestAcceptAnswer(t *testing.T) {
	answers := []AcceptState{{ID: 1}, {ID: 2}, {ID: 3}}

	afterA, err := AcceptAnswer(answers, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, Accepted(afterA))

	afterB, err := AcceptAnswer(afterA, 2)
	require.NoError(t, err)
	assert.False(t, afterB[0].Accepted)
	assert.True(t, afterB[1].Accepted)
	assert.False(t, afterB[2].Accepted)

	cleared, err := AcceptAnswer(afterB, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, Accepted(cleared))

	// input untouched
	assert.False(t, answers[0].Accepted)
}

func TestAcceptAnswerRepairsMultipleAccepted(t *testing.T) {
	answers := []AcceptState{{ID: 1, Accepted: true}, {ID: 2, Accepted: true}, {ID: 3}}

	out, err := AcceptAnswer(answers, 3)
	require.NoError(t, err)

	accepted := 0
	for _, a := range out {
		if a.Accepted {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted)
	assert.Equal(t, 3, Accepted(out))
}

func TestAcceptAnswerUnknown(t *testing.T) {
	_, err := AcceptAnswer([]AcceptState{{ID: 1}}, 9)
	assert.ErrorIs(t, err, ErrAnswerNotFound)
}
