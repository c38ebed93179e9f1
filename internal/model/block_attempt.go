package model

import (
	"time"
)

// BlockAttempt stores one graded quiz submission. Rows are append-only:
// retakes create new attempts, nothing is merged or updated.
type BlockAttempt struct {
	BaseModel
	UserID      uint      `gorm:"not null;index:idx_attempt_lookup" json:"userId"`
	Subject     string    `gorm:"size:50;not null;index:idx_attempt_lookup" json:"subject"`
	BlockNumber uint      `gorm:"not null;index:idx_attempt_lookup" json:"blockNumber"`
	Score       uint      `gorm:"not null" json:"score"`
	Total       uint      `gorm:"not null" json:"total"`
	Percentage  float64   `gorm:"not null" json:"percentage"`
	TakenAt     time.Time `gorm:"not null" json:"takenAt"`
}

func (BlockAttempt) TableName() string {
	return "block_attempts"
}
