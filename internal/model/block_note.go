package model

// BlockNote is a per-user free-text annotation on a block, visible only to
// its owner. One row per (user, subject, block).
type BlockNote struct {
	BaseModel
	UserID      uint   `gorm:"not null;uniqueIndex:idx_note_owner" json:"userId"`
	Subject     string `gorm:"size:50;not null;uniqueIndex:idx_note_owner" json:"subject"`
	BlockNumber uint   `gorm:"not null;uniqueIndex:idx_note_owner" json:"blockNumber"`
	Note        string `gorm:"type:text" json:"note"`
}

func (BlockNote) TableName() string {
	return "block_notes"
}
