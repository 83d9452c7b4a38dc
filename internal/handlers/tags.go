package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/stackit/backend/internal/models"
	"github.com/emilythestrangee/stackit/backend/internal/store"
)

type TagHandler struct {
	store *store.Store
}

// GetTags lists tags with their question counts, most used first
func (h *TagHandler) GetTags(c *gin.Context) {
	counts, err := h.store.ListTags(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if counts == nil {
		counts = []models.TagCount{}
	}
	c.JSON(http.StatusOK, counts)
}
