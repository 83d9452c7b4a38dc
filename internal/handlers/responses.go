package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/stackit/backend/internal/models"
	"github.com/emilythestrangee/stackit/backend/internal/richtext"
	"github.com/emilythestrangee/stackit/backend/internal/store"
	"github.com/emilythestrangee/stackit/backend/internal/timeago"
)

const excerptLength = 200

// Responses are built by hand so the payload stays independent of the
// gorm models.

func questionCard(q models.QuestionSummary, now time.Time) gin.H {
	return gin.H{
		"id":          q.ID,
		"title":       q.Title,
		"excerpt":     richtext.Excerpt(q.Description, excerptLength),
		"tags":        q.TagNames(),
		"author":      q.Author,
		"votes":       q.Votes,
		"answers":     q.AnswerCount,
		"views":       q.Views,
		"is_answered": q.IsAnswered,
		"created_at":  q.CreatedAt,
		"time_ago":    timeago.Since(q.CreatedAt, now),
	}
}

func questionDetail(d store.QuestionDetail, now time.Time) gin.H {
	q := d.Question
	answers := make([]gin.H, 0, len(d.Answers))
	answered := false
	for _, a := range d.Answers {
		answers = append(answers, answerBody(a, now))
		answered = answered || a.Accepted
	}

	return gin.H{
		"id":           q.ID,
		"title":        q.Title,
		"description":  q.Description,
		"tags":         q.TagNames(),
		"author":       q.Author,
		"votes":        q.Votes,
		"views":        q.Views,
		"user_vote":    d.Choice,
		"answer_count": len(answers),
		"is_answered":  answered,
		"answers":      answers,
		"created_at":   q.CreatedAt,
		"time_ago":     timeago.Since(q.CreatedAt, now),
	}
}

func answerBody(a store.AnswerView, now time.Time) gin.H {
	return gin.H{
		"id":          a.ID,
		"question_id": a.QuestionID,
		"content":     a.Content,
		"author":      a.Author,
		"votes":       a.Votes,
		"accepted":    a.Accepted,
		"user_vote":   a.Choice,
		"created_at":  a.CreatedAt,
		"time_ago":    timeago.Since(a.CreatedAt, now),
	}
}

func voteBody(r store.VoteResult) gin.H {
	return gin.H{
		"id":        r.Target.ID,
		"target":    r.Target.Type,
		"votes":     r.Votes,
		"user_vote": r.Choice,
		"delta":     r.Delta,
	}
}
