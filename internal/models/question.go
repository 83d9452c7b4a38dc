package models

import "time"

// MaxTitleLength mirrors the ask form's title limit
const MaxTitleLength = 200

type Question struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Author      string    `gorm:"index;not null" json:"author"`
	Votes       int       `gorm:"default:0" json:"votes"`
	Views       int       `gorm:"default:0" json:"views"`
	Tags        []Tag     `gorm:"many2many:question_tags" json:"tags"`
	Answers     []Answer  `gorm:"foreignKey:QuestionID" json:"answers,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TagNames flattens the question's tags in stored order.
func (q Question) TagNames() []string {
	names := make([]string, 0, len(q.Tags))
	for _, t := range q.Tags {
		names = append(names, t.Name)
	}
	return names
}

// QuestionSummary is a listing row: the question plus aggregates computed by the store
type QuestionSummary struct {
	Question
	AnswerCount int  `json:"answer_count"`
	IsAnswered  bool `json:"is_answered"`
}

type CreateQuestionRequest struct {
	Title       string   `json:"title" binding:"max=200"`
	Description string   `json:"description"`
	Tags        []string `json:"tags" binding:"dive,tagname"`
}
