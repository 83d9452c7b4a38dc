package store

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/emilythestrangee/stackit/backend/internal/models"
	"github.com/emilythestrangee/stackit/backend/internal/richtext"
	"github.com/emilythestrangee/stackit/backend/internal/tags"
)

type Sort string

const (
	SortNewest  Sort = "newest"
	SortVotes   Sort = "votes"
	SortAnswers Sort = "answers"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParseSort accepts the listing tab names. Empty means newest.
func ParseSort(s string) (Sort, error) {
	switch Sort(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortNewest:
		return SortNewest, nil
	case SortVotes:
		return SortVotes, nil
	case SortAnswers:
		return SortAnswers, nil
	default:
		return "", ErrInvalidSort
	}
}

type ListOptions struct {
	Sort   Sort
	Query  string
	Tag    string
	Limit  int
	Offset int
}

type ListResult struct {
	Questions []models.QuestionSummary
	Total     int
}

type answerStat struct {
	QuestionID int
	Answers    int
	Accepted   int
}

// ListQuestions returns one page of question summaries. Query matches the
// title or the description's visible text, case-insensitively.
func (s *Store) ListQuestions(ctx context.Context, opts ListOptions) (ListResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	limit = min(limit, MaxPageSize)
	offset := max(opts.Offset, 0)

	db := s.db.WithContext(ctx)
	q := db.Model(&models.Question{}).Preload("Tags").Order("created_at desc").Order("id desc")

	if tag := tags.Clean(opts.Tag); tag != "" {
		q = q.Where("id IN (?)", db.Table("question_tags").
			Select("question_tags.question_id").
			Joins("JOIN tags ON tags.id = question_tags.tag_id").
			Where("tags.name = ?", tag))
	}

	needle := strings.ToLower(strings.TrimSpace(opts.Query))
	if needle != "" {
		pattern := "%" + escapeLike(needle) + "%"
		q = q.Where("LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\'", pattern, pattern)
	}

	var questions []models.Question
	if err := q.Find(&questions).Error; err != nil {
		return ListResult{}, errors.Wrap(err, "list questions")
	}

	var stats []answerStat
	if err := db.Model(&models.Answer{}).
		Select("question_id, COUNT(*) AS answers, SUM(CASE WHEN accepted THEN 1 ELSE 0 END) AS accepted").
		Group("question_id").
		Scan(&stats).Error; err != nil {
		return ListResult{}, errors.Wrap(err, "count answers")
	}
	byQuestion := make(map[int]answerStat, len(stats))
	for _, st := range stats {
		byQuestion[st.QuestionID] = st
	}

	summaries := make([]models.QuestionSummary, 0, len(questions))
	for _, question := range questions {
		// the LIKE prefilter also hits markup, so confirm on visible text
		if needle != "" && !matches(question, needle) {
			continue
		}
		st := byQuestion[question.ID]
		summaries = append(summaries, models.QuestionSummary{
			Question:    question,
			AnswerCount: st.Answers,
			IsAnswered:  st.Accepted > 0,
		})
	}

	switch opts.Sort {
	case SortVotes:
		slices.SortStableFunc(summaries, func(a, b models.QuestionSummary) int {
			return cmp.Compare(b.Votes, a.Votes)
		})
	case SortAnswers:
		slices.SortStableFunc(summaries, func(a, b models.QuestionSummary) int {
			return cmp.Compare(b.AnswerCount, a.AnswerCount)
		})
	}

	total := len(summaries)
	start := min(offset, total)
	end := min(start+limit, total)
	return ListResult{Questions: summaries[start:end], Total: total}, nil
}

func matches(q models.Question, needle string) bool {
	return strings.Contains(strings.ToLower(q.Title), needle) ||
		strings.Contains(strings.ToLower(richtext.PlainText(q.Description)), needle)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// QuestionDetail is a question as seen by one viewer
type QuestionDetail struct {
	Question models.Question
	Choice   models.Choice
	Answers  []AnswerView
}

type AnswerView struct {
	models.Answer
	Choice models.Choice
}

// GetQuestion loads a question with its answers and the viewer's choices.
// When countView is set the view counter is bumped first.
func (s *Store) GetQuestion(ctx context.Context, id int, viewer string, countView bool) (QuestionDetail, error) {
	var detail QuestionDetail
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if countView {
			res := tx.Model(&models.Question{}).Where("id = ?", id).
				UpdateColumn("views", gorm.Expr("views + 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrQuestionNotFound
			}
		}

		var q models.Question
		if err := tx.Preload("Tags").First(&q, id).Error; err != nil {
			return notFound(err, ErrQuestionNotFound)
		}

		answers, err := loadAnswers(tx, id, viewer)
		if err != nil {
			return err
		}
		choice, err := viewerChoice(tx, viewer, models.TargetQuestion, id)
		if err != nil {
			return err
		}

		detail = QuestionDetail{Question: q, Choice: choice, Answers: answers}
		return nil
	})
	if err != nil {
		return QuestionDetail{}, err
	}
	return detail, nil
}

// CreateQuestion appends a question. Inputs are expected to be validated;
// tags are created on first use.
func (s *Store) CreateQuestion(ctx context.Context, author, title, description string, tagNames []string) (models.Question, error) {
	q := models.Question{
		Title:       title,
		Description: description,
		Author:      author,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range tagNames {
			var tag models.Tag
			if err := tx.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
				return errors.Wrapf(err, "create tag %q", name)
			}
			q.Tags = append(q.Tags, tag)
		}
		return tx.Create(&q).Error
	})
	if err != nil {
		return models.Question{}, errors.Wrap(err, "create question")
	}

	s.logger.InfoContext(ctx, "question created",
		"event", "question_created",
		"question_id", q.ID,
		"author", author,
		"tags", tagNames,
	)
	return q, nil
}

// ListTags returns every tag with its question count, most used first.
func (s *Store) ListTags(ctx context.Context) ([]models.TagCount, error) {
	var out []models.TagCount
	err := s.db.WithContext(ctx).Table("tags").
		Select("tags.name AS name, COUNT(question_tags.question_id) AS questions").
		Joins("LEFT JOIN question_tags ON question_tags.tag_id = tags.id").
		Group("tags.id, tags.name").
		Order("questions desc").Order("tags.name asc").
		Scan(&out).Error
	if err != nil {
		return nil, errors.Wrap(err, "list tags")
	}
	return out, nil
}
