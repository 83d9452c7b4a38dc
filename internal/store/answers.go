package store

import (
	"cmp"
	"context"
	"slices"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/emilythestrangee/stackit/backend/internal/models"
	"github.com/emilythestrangee/stackit/backend/internal/voting"
)

// ListAnswers returns a question's answers in display order with the
// viewer's choices.
func (s *Store) ListAnswers(ctx context.Context, questionID int, viewer string) ([]AnswerView, error) {
	var out []AnswerView
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := questionExists(tx, questionID); err != nil {
			return err
		}
		var err error
		out, err = loadAnswers(tx, questionID, viewer)
		return err
	})
	return out, err
}

// CreateAnswer appends an answer. New answers start unaccepted with no votes.
func (s *Store) CreateAnswer(ctx context.Context, questionID int, author, content string) (models.Answer, error) {
	a := models.Answer{
		QuestionID: questionID,
		Content:    content,
		Author:     author,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := questionExists(tx, questionID); err != nil {
			return err
		}
		return tx.Create(&a).Error
	})
	if err != nil {
		if errors.Is(err, ErrQuestionNotFound) {
			return models.Answer{}, err
		}
		return models.Answer{}, errors.Wrap(err, "create answer")
	}

	s.logger.InfoContext(ctx, "answer created",
		"event", "answer_created",
		"question_id", questionID,
		"answer_id", a.ID,
		"author", author,
	)
	return a, nil
}

type AcceptResult struct {
	QuestionID int
	AnswerID   int
	// Accepted is the target answer's state after the toggle
	Accepted bool
	Answers  []voting.AcceptState
}

// AcceptAnswer toggles acceptance of answerID on behalf of actor, who must
// be the question's author. All sibling answers are cleared in the same
// transaction.
func (s *Store) AcceptAnswer(ctx context.Context, answerID int, actor string) (AcceptResult, error) {
	var result AcceptResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target models.Answer
		if err := tx.First(&target, answerID).Error; err != nil {
			return notFound(err, ErrAnswerNotFound)
		}
		var q models.Question
		if err := tx.Select("id", "author").First(&q, target.QuestionID).Error; err != nil {
			return notFound(err, ErrQuestionNotFound)
		}
		if q.Author != actor {
			return ErrNotAuthor
		}

		var siblings []models.Answer
		if err := tx.Select("id", "accepted").Where("question_id = ?", q.ID).Order("id").Find(&siblings).Error; err != nil {
			return err
		}
		before := make([]voting.AcceptState, len(siblings))
		for i, a := range siblings {
			before[i] = voting.AcceptState{ID: a.ID, Accepted: a.Accepted}
		}

		after, err := voting.AcceptAnswer(before, answerID)
		if err != nil {
			return ErrAnswerNotFound
		}
		for i := range after {
			if after[i].Accepted == before[i].Accepted {
				continue
			}
			if err := tx.Model(&models.Answer{}).Where("id = ?", after[i].ID).
				UpdateColumn("accepted", after[i].Accepted).Error; err != nil {
				return err
			}
		}

		result = AcceptResult{
			QuestionID: q.ID,
			AnswerID:   answerID,
			Accepted:   voting.Accepted(after) == answerID,
			Answers:    after,
		}
		return nil
	})
	if err != nil {
		return AcceptResult{}, err
	}

	s.metrics.Accept(result.Accepted)
	s.logger.InfoContext(ctx, "answer acceptance toggled",
		"event", "answer_accept_toggled",
		"question_id", result.QuestionID,
		"answer_id", answerID,
		"accepted", result.Accepted,
		"actor", actor,
	)
	return result, nil
}

// QuestionExists returns ErrQuestionNotFound for an unknown id.
func (s *Store) QuestionExists(ctx context.Context, id int) error {
	return questionExists(s.db.WithContext(ctx), id)
}

func questionExists(tx *gorm.DB, id int) error {
	var n int64
	if err := tx.Model(&models.Question{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

// loadAnswers orders accepted first, then by votes, then oldest first.
func loadAnswers(tx *gorm.DB, questionID int, viewer string) ([]AnswerView, error) {
	var answers []models.Answer
	if err := tx.Where("question_id = ?", questionID).Find(&answers).Error; err != nil {
		return nil, err
	}
	slices.SortStableFunc(answers, func(a, b models.Answer) int {
		if a.Accepted != b.Accepted {
			if a.Accepted {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(b.Votes, a.Votes); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	ids := make([]int, len(answers))
	for i, a := range answers {
		ids[i] = a.ID
	}
	choices, err := viewerChoices(tx, viewer, models.TargetAnswer, ids)
	if err != nil {
		return nil, err
	}

	out := make([]AnswerView, len(answers))
	for i, a := range answers {
		choice, ok := choices[a.ID]
		if !ok {
			choice = models.ChoiceNone
		}
		out[i] = AnswerView{Answer: a, Choice: choice}
	}
	return out, nil
}
