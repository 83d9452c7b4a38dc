package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/stackit/backend/internal/drafts"
	"github.com/emilythestrangee/stackit/backend/internal/middleware"
	"github.com/emilythestrangee/stackit/backend/internal/models"
	"github.com/emilythestrangee/stackit/backend/internal/richtext"
	"github.com/emilythestrangee/stackit/backend/internal/submission"
	"github.com/emilythestrangee/stackit/backend/internal/tags"
)

type DraftHandler struct {
	drafts *drafts.Store
}

func (h *DraftHandler) formKey(c *gin.Context) (submission.Key, bool) {
	key, err := submission.ParseForm(middleware.ViewerFrom(c), c.Param("form"))
	if err != nil {
		respondError(c, err)
		return submission.Key{}, false
	}
	return key, true
}

func (h *DraftHandler) GetDraft(c *gin.Context) {
	key, ok := h.formKey(c)
	if !ok {
		return
	}
	d, found := h.drafts.Get(key.Viewer, key.Form())
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft not found"})
		return
	}
	c.JSON(http.StatusOK, d)
}

// SaveDraft stores the form's current input. Drafts skip validation; they
// are only sanitized.
func (h *DraftHandler) SaveDraft(c *gin.Context) {
	key, ok := h.formKey(c)
	if !ok {
		return
	}

	var req models.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	d := drafts.Draft{}
	if key.Kind == submission.KindQuestion {
		d.Title = req.Title
		d.Description = richtext.Sanitize(req.Description)
		for _, t := range req.Tags {
			if t = tags.Clean(t); t != "" {
				d.Tags = append(d.Tags, t)
			}
		}
	} else {
		d.Content = richtext.Sanitize(req.Content)
	}

	saved := h.drafts.Save(key.Viewer, key.Form(), d)
	c.JSON(http.StatusOK, gin.H{
		"message": "Draft saved",
		"draft":   saved,
	})
}

func (h *DraftHandler) DeleteDraft(c *gin.Context) {
	key, ok := h.formKey(c)
	if !ok {
		return
	}
	h.drafts.Discard(key.Viewer, key.Form())
	c.Status(http.StatusNoContent)
}
