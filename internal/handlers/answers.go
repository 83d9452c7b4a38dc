package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/stackit/backend/internal/drafts"
	"github.com/emilythestrangee/stackit/backend/internal/middleware"
	"github.com/emilythestrangee/stackit/backend/internal/models"
	"github.com/emilythestrangee/stackit/backend/internal/richtext"
	"github.com/emilythestrangee/stackit/backend/internal/store"
	"github.com/emilythestrangee/stackit/backend/internal/submission"
)

type AnswerHandler struct {
	store       *store.Store
	drafts      *drafts.Store
	submissions *submission.Coordinator
	now         func() time.Time
}

// GetAnswers returns the answers for a question, accepted first
func (h *AnswerHandler) GetAnswers(c *gin.Context) {
	questionID, ok := paramID(c, "id")
	if !ok {
		badRequest(c, "Invalid question ID")
		return
	}

	views, err := h.store.ListAnswers(c.Request.Context(), questionID, middleware.ViewerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	now := h.now()
	responses := make([]gin.H, 0, len(views))
	for _, a := range views {
		responses = append(responses, answerBody(a, now))
	}
	c.JSON(http.StatusOK, responses)
}

// CreateAnswer submits the answer form of a question
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	questionID, ok := paramID(c, "id")
	if !ok {
		badRequest(c, "Invalid question ID")
		return
	}

	var req models.CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.store.QuestionExists(c.Request.Context(), questionID); err != nil {
		respondError(c, err)
		return
	}

	viewer := middleware.ViewerFrom(c)
	key := submission.Key{Viewer: viewer, Kind: submission.KindAnswer, QuestionID: questionID}

	var created models.Answer
	err := h.submissions.Submit(c.Request.Context(), key,
		func() error { return submission.ValidateAnswer(req.Content) },
		func(ctx context.Context) error {
			var err error
			created, err = h.store.CreateAnswer(ctx, questionID, viewer, richtext.Sanitize(req.Content))
			return err
		},
	)
	if err != nil {
		respondError(c, err)
		return
	}
	h.drafts.Discard(viewer, key.Form())

	c.JSON(http.StatusCreated, gin.H{
		"message": "Answer posted!",
		"answer":  answerBody(store.AnswerView{Answer: created, Choice: models.ChoiceNone}, h.now()),
	})
}

// VoteAnswer applies an up or down click on an answer
func (h *AnswerHandler) VoteAnswer(c *gin.Context) {
	castVote(c, h.store, models.TargetAnswer, "answerId")
}

// AcceptAnswer toggles the accepted mark. Only the question's author may call it.
func (h *AnswerHandler) AcceptAnswer(c *gin.Context) {
	answerID, ok := paramID(c, "answerId")
	if !ok {
		badRequest(c, "Invalid answer ID")
		return
	}

	res, err := h.store.AcceptAnswer(c.Request.Context(), answerID, middleware.ViewerFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Answer unaccepted"
	if res.Accepted {
		message = "Answer accepted"
	}
	states := make([]gin.H, 0, len(res.Answers))
	for _, a := range res.Answers {
		states = append(states, gin.H{"id": a.ID, "accepted": a.Accepted})
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     message,
		"question_id": res.QuestionID,
		"answer_id":   res.AnswerID,
		"accepted":    res.Accepted,
		"answers":     states,
	})
}
