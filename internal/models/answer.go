package models

import "time"

type Answer struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	QuestionID int       `gorm:"index;not null" json:"question_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Author     string    `gorm:"not null" json:"author"`
	Votes      int       `gorm:"default:0" json:"votes"`
	Accepted   bool      `gorm:"default:false" json:"accepted"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateAnswerRequest struct {
	Content string `json:"content"`
}
