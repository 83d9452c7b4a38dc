package models

type Tag struct {
	ID   int    `gorm:"primaryKey" json:"-"`
	Name string `gorm:"uniqueIndex;size:35;not null" json:"name"`
}

// TagCount is a tag with the number of questions carrying it
type TagCount struct {
	Name      string `json:"name"`
	Questions int    `json:"questions"`
}
