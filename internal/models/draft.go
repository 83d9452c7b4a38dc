package models

// SaveDraftRequest carries whatever the form holds. Question forms use
// title, description and tags; answer forms use content.
type SaveDraftRequest struct {
	Title       string   `json:"title" binding:"max=200"`
	Description string   `json:"description"`
	Tags        []string `json:"tags" binding:"max=5,dive,tagname"`
	Content     string   `json:"content"`
}
