package handlers

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/emilythestrangee/stackit/backend/internal/drafts"
	"github.com/emilythestrangee/stackit/backend/internal/models"
	"github.com/emilythestrangee/stackit/backend/internal/store"
	"github.com/emilythestrangee/stackit/backend/internal/submission"
	"github.com/emilythestrangee/stackit/backend/internal/tags"
)

// Handler combines all handler types
type Handler struct {
	Question *QuestionHandler
	Answer   *AnswerHandler
	Tag      *TagHandler
	Draft    *DraftHandler
}

type Options struct {
	Store       *store.Store
	Drafts      *drafts.Store
	Submissions *submission.Coordinator
	// Now is used for relative times; defaults to time.Now
	Now func() time.Time
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(opts Options) (*Handler, error) {
	if err := registerValidations(); err != nil {
		return nil, err
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Handler{
		Question: &QuestionHandler{store: opts.Store, drafts: opts.Drafts, submissions: opts.Submissions, now: opts.Now},
		Answer:   &AnswerHandler{store: opts.Store, drafts: opts.Drafts, submissions: opts.Submissions, now: opts.Now},
		Tag:      &TagHandler{store: opts.Store},
		Draft:    &DraftHandler{drafts: opts.Drafts},
	}, nil
}

var (
	validationsOnce sync.Once
	validationsErr  error
)

// registerValidations adds the custom binding tags used by the request
// structs in models to gin's validator.
func registerValidations() error {
	validationsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validationsErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		if err := v.RegisterValidation("vote_direction", validateVoteDirection); err != nil {
			validationsErr = errors.Wrap(err, "register vote_direction")
			return
		}
		if err := v.RegisterValidation("tagname", validateTag); err != nil {
			validationsErr = errors.Wrap(err, "register tagname")
		}
	})
	return validationsErr
}

func validateVoteDirection(fl validator.FieldLevel) bool {
	c := models.Choice(fl.Field().String())
	return c == models.ChoiceUp || c == models.ChoiceDown
}

func validateTag(fl validator.FieldLevel) bool {
	return len([]rune(tags.Clean(fl.Field().String()))) <= tags.MaxLength
}

func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
