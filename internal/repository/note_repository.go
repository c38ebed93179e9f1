package repository

import (
	"anre_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type NoteRepository struct {
	DB *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{DB: db}
}

// GetOrCreate returns the owner's note for a block, creating an empty one on
// first access.
func (r *NoteRepository) GetOrCreate(userID uint, subjectID string, blockNumber uint) (*model.BlockNote, error) {
	note := model.BlockNote{
		UserID:      userID,
		Subject:     subjectID,
		BlockNumber: blockNumber,
	}
	err := r.DB.Where("user_id = ? AND subject = ? AND block_number = ?", userID, subjectID, blockNumber).
		FirstOrCreate(&note).Error
	return &note, err
}

func (r *NoteRepository) Save(note *model.BlockNote) error {
	return r.DB.Save(note).Error
}

func (r *NoteRepository) ListForUser(userID uint) ([]model.BlockNote, error) {
	var notes []model.BlockNote
	err := r.DB.Where("user_id = ?", userID).
		Order("subject asc, block_number asc").
		Find(&notes).Error
	return notes, err
}
