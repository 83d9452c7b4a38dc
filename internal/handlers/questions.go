package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/stackit/backend/internal/drafts"
	"github.com/emilythestrangee/stackit/backend/internal/middleware"
	"github.com/emilythestrangee/stackit/backend/internal/models"
	"github.com/emilythestrangee/stackit/backend/internal/richtext"
	"github.com/emilythestrangee/stackit/backend/internal/store"
	"github.com/emilythestrangee/stackit/backend/internal/submission"
)

type QuestionHandler struct {
	store       *store.Store
	drafts      *drafts.Store
	submissions *submission.Coordinator
	now         func() time.Time
}

// GetQuestions lists questions. Supports sort, q, tag, limit and offset.
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	sortBy, err := store.ParseSort(c.Query("sort"))
	if err != nil {
		respondError(c, err)
		return
	}

	limit, offset := store.DefaultPageSize, 0
	if raw := c.Query("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil || limit <= 0 {
			badRequest(c, "limit must be a positive integer")
			return
		}
	}
	limit = min(limit, store.MaxPageSize)
	if raw := c.Query("offset"); raw != "" {
		if offset, err = strconv.Atoi(raw); err != nil || offset < 0 {
			badRequest(c, "offset must be a non-negative integer")
			return
		}
	}

	res, err := h.store.ListQuestions(c.Request.Context(), store.ListOptions{
		Sort:   sortBy,
		Query:  c.Query("q"),
		Tag:    c.Query("tag"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	now := h.now()
	cards := make([]gin.H, 0, len(res.Questions))
	for _, q := range res.Questions {
		cards = append(cards, questionCard(q, now))
	}

	c.JSON(http.StatusOK, gin.H{
		"questions": cards,
		"total":     res.Total,
		"sort":      sortBy,
		"limit":     limit,
		"offset":    offset,
		"has_more":  offset+len(cards) < res.Total,
	})
}

// GetQuestion returns a single question with its answers and counts a view
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		badRequest(c, "Invalid question ID")
		return
	}

	detail, err := h.store.GetQuestion(c.Request.Context(), id, middleware.ViewerFrom(c), true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questionDetail(detail, h.now()))
}

// CreateQuestion submits the ask-question form
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	viewer := middleware.ViewerFrom(c)
	key := submission.Key{Viewer: viewer, Kind: submission.KindQuestion}

	var cleanedTags []string
	var created models.Question
	err := h.submissions.Submit(c.Request.Context(), key,
		func() error {
			var err error
			cleanedTags, err = submission.ValidateQuestion(submission.QuestionInput{
				Title:       req.Title,
				Description: req.Description,
				Tags:        req.Tags,
			})
			return err
		},
		func(ctx context.Context) error {
			var err error
			created, err = h.store.CreateQuestion(ctx, viewer,
				strings.TrimSpace(req.Title), richtext.Sanitize(req.Description), cleanedTags)
			return err
		},
	)
	if err != nil {
		respondError(c, err)
		return
	}
	h.drafts.Discard(viewer, key.Form())

	now := h.now()
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Question posted!",
		"question": questionCard(models.QuestionSummary{Question: created}, now),
	})
}

// VoteQuestion applies an up or down click on a question
func (h *QuestionHandler) VoteQuestion(c *gin.Context) {
	castVote(c, h.store, models.TargetQuestion, "id")
}

func castVote(c *gin.Context, s *store.Store, t models.TargetType, param string) {
	id, ok := paramID(c, param)
	if !ok {
		badRequest(c, "Invalid "+string(t)+" ID")
		return
	}

	var req models.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "direction must be up or down")
		return
	}

	res, err := s.Vote(c.Request.Context(), store.Target{Type: t, ID: id}, middleware.ViewerFrom(c), req.Direction)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, voteBody(res))
}
