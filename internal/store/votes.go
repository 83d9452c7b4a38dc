package store

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/emilythestrangee/stackit/backend/internal/models"
	"github.com/emilythestrangee/stackit/backend/internal/voting"
)

type Target struct {
	Type models.TargetType
	ID   int
}

type VoteResult struct {
	Target Target
	Votes  int
	Choice models.Choice
	Delta  int
	// Shared is set when the result came from an identical click that was
	// already in flight
	Shared bool
}

// Vote applies one vote button click by viewer. Identical clicks that
// arrive while one is being applied share its result instead of toggling
// again; other clicks on the same item are serialized by the transaction.
func (s *Store) Vote(ctx context.Context, target Target, viewer string, requested models.Choice) (VoteResult, error) {
	if target.Type != models.TargetQuestion && target.Type != models.TargetAnswer {
		return VoteResult{}, ErrInvalidTarget
	}
	if requested != models.ChoiceUp && requested != models.ChoiceDown {
		return VoteResult{}, voting.ErrInvalidChoice
	}

	// detached so a cancelled first caller cannot fail the clicks waiting on it
	detached := context.WithoutCancel(ctx)
	key := fmt.Sprintf("%s:%d:%s:%s", target.Type, target.ID, viewer, requested)
	v, err, coalesced := s.inflight.Do(key, func() (any, error) {
		return s.applyVote(detached, target, viewer, requested)
	})
	if err != nil {
		return VoteResult{}, err
	}

	res := v.(VoteResult)
	res.Shared = coalesced
	return res, nil
}

func (s *Store) applyVote(ctx context.Context, target Target, viewer string, requested models.Choice) (VoteResult, error) {
	var res VoteResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model, errNotFound := votable(target.Type)

		var current models.ViewerVote
		found := true
		err := tx.Where("viewer = ? AND target_type = ? AND target_id = ?", viewer, target.Type, target.ID).
			First(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			found = false
			current.Choice = models.ChoiceNone
		} else if err != nil {
			return err
		}

		tr, err := voting.ApplyVote(current.Choice, requested)
		if err != nil {
			return err
		}

		upd := tx.Model(model).Where("id = ?", target.ID).UpdateColumn("votes", gorm.Expr("votes + ?", tr.Delta))
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return errNotFound
		}

		switch {
		case tr.Choice == models.ChoiceNone && found:
			err = tx.Delete(&current).Error
		case found:
			err = tx.Model(&current).UpdateColumn("choice", tr.Choice).Error
		default:
			err = tx.Create(&models.ViewerVote{
				Viewer:     viewer,
				TargetType: target.Type,
				TargetID:   target.ID,
				Choice:     tr.Choice,
			}).Error
		}
		if err != nil {
			return err
		}

		var votes []int
		if err := tx.Model(model).Where("id = ?", target.ID).Pluck("votes", &votes).Error; err != nil {
			return err
		}
		if len(votes) == 0 {
			return errNotFound
		}

		res = VoteResult{Target: target, Votes: votes[0], Choice: tr.Choice, Delta: tr.Delta}
		return nil
	})
	if err != nil {
		return VoteResult{}, err
	}

	s.metrics.Vote(string(target.Type), string(res.Choice))
	s.logger.InfoContext(ctx, "vote applied",
		"event", "vote_applied",
		"target_type", string(target.Type),
		"target_id", target.ID,
		"viewer", viewer,
		"requested", string(requested),
		"choice", string(res.Choice),
		"delta", res.Delta,
		"votes", res.Votes,
	)
	return res, nil
}

// votable returns the gorm model for t and the error used when the row is
// missing.
func votable(t models.TargetType) (model any, errNotFound error) {
	if t == models.TargetAnswer {
		return &models.Answer{}, ErrAnswerNotFound
	}
	return &models.Question{}, ErrQuestionNotFound
}

func viewerChoice(tx *gorm.DB, viewer string, t models.TargetType, id int) (models.Choice, error) {
	choices, err := viewerChoices(tx, viewer, t, []int{id})
	if err != nil {
		return models.ChoiceNone, err
	}
	if c, ok := choices[id]; ok {
		return c, nil
	}
	return models.ChoiceNone, nil
}

func viewerChoices(tx *gorm.DB, viewer string, t models.TargetType, ids []int) (map[int]models.Choice, error) {
	out := make(map[int]models.Choice, len(ids))
	if viewer == "" || len(ids) == 0 {
		return out, nil
	}
	var rows []models.ViewerVote
	if err := tx.Where("viewer = ? AND target_type = ? AND target_id IN ?", viewer, t, ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.TargetID] = r.Choice
	}
	return out, nil
}
