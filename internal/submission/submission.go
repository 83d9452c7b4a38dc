// Package submission runs the ask-question and answer forms: synchronous
// validation, one in-flight submit per form, a simulated round trip and a
// guaranteed return to idle.
package submission

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/emilythestrangee/stackit/backend/internal/richtext"
	"github.com/emilythestrangee/stackit/backend/internal/tags"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrSubmitFailed   = errors.New("submission failed")
	ErrSubmitInFlight = errors.New("a submission for this form is already in progress")
	ErrInvalidForm    = errors.New("form must be question or answer-<question id>")
)

type Kind string

const (
	KindQuestion Kind = "question"
	KindAnswer   Kind = "answer"
)

// Key identifies one form instance. QuestionID is only set for answers.
type Key struct {
	Viewer     string
	Kind       Kind
	QuestionID int
}

// Form is the form name used in draft URLs.
func (k Key) Form() string {
	if k.Kind == KindAnswer {
		return fmt.Sprintf("%s-%d", KindAnswer, k.QuestionID)
	}
	return string(KindQuestion)
}

func (k Key) String() string {
	return k.Viewer + "/" + k.Form()
}

// ParseForm is the inverse of Key.Form.
func ParseForm(viewer, form string) (Key, error) {
	form = strings.ToLower(strings.TrimSpace(form))
	if form == string(KindQuestion) {
		return Key{Viewer: viewer, Kind: KindQuestion}, nil
	}
	raw, ok := strings.CutPrefix(form, string(KindAnswer)+"-")
	if !ok {
		return Key{}, ErrInvalidForm
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return Key{}, ErrInvalidForm
	}
	return Key{Viewer: viewer, Kind: KindAnswer, QuestionID: id}, nil
}

type State int

const (
	Idle State = iota
	Submitting
)

func (s State) String() string {
	if s == Submitting {
		return "submitting"
	}
	return "idle"
}

// ValidationError is the message shown when a form is rejected before it
// leaves Idle.
type ValidationError struct {
	Title       string
	Description string
}

func (e *ValidationError) Error() string { return e.Title }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// FailureError is the message shown when the round trip fails. The draft
// is left untouched so the user can retry.
type FailureError struct {
	Kind  Kind
	Cause error
}

func (e *FailureError) Error() string {
	return fmt.Sprintf("error posting %s: %v", e.Kind, e.Cause)
}

func (e *FailureError) Title() string {
	return "Error posting " + string(e.Kind)
}

func (e *FailureError) Description() string {
	return fmt.Sprintf("There was an error posting your %s. Please try again.", e.Kind)
}

func (e *FailureError) Is(target error) bool { return target == ErrSubmitFailed }

func (e *FailureError) Unwrap() error { return e.Cause }

type QuestionInput struct {
	Title       string
	Description string
	Tags        []string
}

// ValidateQuestion checks the fields in form order and reports the first
// problem. It returns the cleaned tag list on success.
func ValidateQuestion(in QuestionInput) ([]string, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, &ValidationError{
			Title:       "Title required",
			Description: "Please provide a clear, descriptive title for your question.",
		}
	}
	if richtext.IsBlank(in.Description) {
		return nil, &ValidationError{
			Title:       "Description required",
			Description: "Please describe your question in detail.",
		}
	}
	cleaned, err := tags.Normalize(in.Tags)
	switch {
	case errors.Is(err, tags.ErrNoTags):
		return nil, &ValidationError{
			Title:       "Tags required",
			Description: "Please add at least one relevant tag to help others find your question.",
		}
	case err != nil:
		return nil, &ValidationError{Title: "Invalid tags", Description: err.Error()}
	}
	return cleaned, nil
}

func ValidateAnswer(content string) error {
	if richtext.IsBlank(content) {
		return &ValidationError{
			Title:       "Answer required",
			Description: "Please provide an answer before submitting.",
		}
	}
	return nil
}
