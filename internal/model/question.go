package model

import (
	"time"
)

// Answer option keys. Correct is one of these or empty when the community has
// not yet filled the answer in.
const (
	OptionA = "a"
	OptionB = "b"
	OptionC = "c"
)

// Question is the shared source of truth for quiz content. Rows are created
// by bulk import from the quiz_data JSON files and mutated only through the
// collaborative edit workflow or a re-import.
type Question struct {
	BaseModel
	Subject     string     `gorm:"size:50;not null;uniqueIndex:idx_subject_qid;index:idx_subject_block" json:"subject"`
	QID         uint       `gorm:"column:qid;not null;uniqueIndex:idx_subject_qid" json:"qid"`
	BlockNumber uint       `gorm:"not null;index:idx_subject_block" json:"blockNumber"`
	Text        string     `gorm:"type:text;not null" json:"text"`
	OptionA     string     `gorm:"type:text;not null" json:"optionA"`
	OptionB     string     `gorm:"type:text;not null" json:"optionB"`
	OptionC     string     `gorm:"type:text;not null" json:"optionC"`
	Correct     string     `gorm:"size:1;default:''" json:"correct"`
	Explanation string     `gorm:"type:text" json:"explanation"`
	ImageBase   string     `gorm:"size:255;default:''" json:"imageBase"`
	EditedByID  *uint      `gorm:"index" json:"editedById"`
	EditedAt    *time.Time `json:"editedAt"`
}

func (Question) TableName() string {
	return "questions"
}

// Gradable reports whether the question counts toward a block score.
func (q *Question) Gradable() bool {
	return q.Correct != ""
}

// Complete questions are locked for non-privileged editors.
func (q *Question) Complete() bool {
	return q.Correct != "" && q.Explanation != ""
}

// ValidCorrect reports whether v is an acceptable value for the Correct
// field: one of the option keys, or empty to clear it.
func ValidCorrect(v string) bool {
	return v == "" || v == OptionA || v == OptionB || v == OptionC
}
