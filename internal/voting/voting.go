// Package voting holds the pure state transitions behind the vote and
// accept buttons. Nothing here touches storage; callers apply the result.
package voting

import (
	"errors"

	"github.com/emilythestrangee/stackit/backend/internal/models"
)

var (
	ErrInvalidChoice  = errors.New("vote direction must be up or down")
	ErrAnswerNotFound = errors.New("answer not found")
)

// Transition is the outcome of a click on a vote button
type Transition struct {
	Choice models.Choice
	Delta  int
}

// ApplyVote computes the viewer's new choice and the change to the aggregate
// count. Clicking the current choice again clears it.
func ApplyVote(current, requested models.Choice) (Transition, error) {
	if requested != models.ChoiceUp && requested != models.ChoiceDown {
		return Transition{}, ErrInvalidChoice
	}
	if !current.Valid() {
		current = models.ChoiceNone
	}

	if requested == current {
		return Transition{Choice: models.ChoiceNone, Delta: -current.Unit()}, nil
	}
	return Transition{Choice: requested, Delta: requested.Unit() - current.Unit()}, nil
}

// AcceptState is the slice of an answer that acceptance cares about
type AcceptState struct {
	ID       int
	Accepted bool
}

// AcceptAnswer toggles acceptance of targetID. Every other answer ends up
// unaccepted, so at most one answer is accepted afterwards. The input slice
// is not modified.
func AcceptAnswer(answers []AcceptState, targetID int) ([]AcceptState, error) {
	found := false
	for _, a := range answers {
		if a.ID == targetID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrAnswerNotFound
	}

	out := make([]AcceptState, len(answers))
	for i, a := range answers {
		out[i] = AcceptState{ID: a.ID}
		if a.ID == targetID {
			out[i].Accepted = !a.Accepted
		}
	}
	return out, nil
}

// Accepted returns the id of the accepted answer, or 0 when none is.
func Accepted(answers []AcceptState) int {
	for _, a := range answers {
		if a.Accepted {
			return a.ID
		}
	}
	return 0
}
