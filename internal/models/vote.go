package models

import "time"

// Choice is a viewer's current vote on a question or answer
type Choice string

const (
	ChoiceNone Choice = "none"
	ChoiceUp   Choice = "up"
	ChoiceDown Choice = "down"
)

// Unit returns the contribution of the choice to an aggregate vote count.
func (c Choice) Unit() int {
	switch c {
	case ChoiceUp:
		return 1
	case ChoiceDown:
		return -1
	default:
		return 0
	}
}

// Valid reports whether c is one of the three known choices.
func (c Choice) Valid() bool {
	return c == ChoiceNone || c == ChoiceUp || c == ChoiceDown
}

// TargetType names what a ViewerVote points at
type TargetType string

const (
	TargetQuestion TargetType = "question"
	TargetAnswer   TargetType = "answer"
)

// ViewerVote tracks one viewer's choice on one votable item.
// A missing row means ChoiceNone.
type ViewerVote struct {
	ID         int        `gorm:"primaryKey" json:"id"`
	Viewer     string     `gorm:"not null;uniqueIndex:idx_viewer_target" json:"viewer"`
	TargetType TargetType `gorm:"not null;uniqueIndex:idx_viewer_target" json:"target_type"`
	TargetID   int        `gorm:"not null;uniqueIndex:idx_viewer_target" json:"target_id"`
	Choice     Choice     `gorm:"not null" json:"choice"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// VoteRequest is the body of a vote button click.
type VoteRequest struct {
	Direction Choice `json:"direction" binding:"required,vote_direction"`
}
