package repository

import (
	"anre_quiz_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.BlockAttempt) error {
	return r.DB.Create(attempt).Error
}

// LastForBlock returns the newest attempt of a user on a block, or nil when
// the block was never attempted.
func (r *AttemptRepository) LastForBlock(userID uint, subjectID string, blockNumber uint) (*model.BlockAttempt, error) {
	var attempt model.BlockAttempt
	err := r.DB.Where("user_id = ? AND subject = ? AND block_number = ?", userID, subjectID, blockNumber).
		Order("taken_at desc").
		First(&attempt).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// ListForBlock returns a user's attempt history for a block, newest first.
func (r *AttemptRepository) ListForBlock(userID uint, subjectID string, blockNumber uint) ([]model.BlockAttempt, error) {
	var attempts []model.BlockAttempt
	err := r.DB.Where("user_id = ? AND subject = ? AND block_number = ?", userID, subjectID, blockNumber).
		Order("taken_at desc").
		Find(&attempts).Error
	return attempts, err
}

// ListRecent returns the newest attempts across all users, paged.
func (r *AttemptRepository) ListRecent(page, limit int) ([]model.BlockAttempt, int64, error) {
	var attempts []model.BlockAttempt
	var total int64
	query := r.DB.Model(&model.BlockAttempt{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("taken_at desc").Offset(offset).Limit(limit).Find(&attempts).Error
	return attempts, total, err
}

func (r *AttemptRepository) ListForUser(userID uint, page, limit int) ([]model.BlockAttempt, int64, error) {
	var attempts []model.BlockAttempt
	var total int64
	query := r.DB.Model(&model.BlockAttempt{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("taken_at desc").Offset(offset).Limit(limit).Find(&attempts).Error
	return attempts, total, err
}
