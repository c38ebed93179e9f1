package repository

import (
	"anre_quiz_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

// SubjectBlock identifies one block of one subject.
type SubjectBlock struct {
	Subject     string
	BlockNumber uint
}

type QuestionRepository struct {
	DB *gorm.DB

	// afterCommit callbacks run after a question write has committed.
	// The content service registers the JSON auto-export here.
	afterCommit []func(subject string)
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// OnCommit registers a callback invoked with the affected subject after every
// successfully committed question write.
func (r *QuestionRepository) OnCommit(fn func(subject string)) {
	r.afterCommit = append(r.afterCommit, fn)
}

func (r *QuestionRepository) fireCommit(subject string) {
	for _, fn := range r.afterCommit {
		fn(subject)
	}
}

// Save persists the question inside a transaction and fires the post-commit
// callbacks once the transaction has committed.
func (r *QuestionRepository) Save(q *model.Question) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Save(q).Error
	})
	if err != nil {
		return err
	}
	r.fireCommit(q.Subject)
	return nil
}

// SaveQuietly persists without firing post-commit callbacks. Used by bulk
// import so one import does not trigger hundreds of exports.
func (r *QuestionRepository) SaveQuietly(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) FindBySubjectAndQID(subjectID string, qid uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Where("subject = ? AND qid = ?", subjectID, qid).First(&q).Error
	return &q, err
}

// FirstOrCreate fetches the (subject, qid) row or inserts q as-is. It reports
// whether a new row was created.
func (r *QuestionRepository) FirstOrCreate(q *model.Question) (bool, error) {
	existing, err := r.FindBySubjectAndQID(q.Subject, q.QID)
	if err == nil {
		*q = *existing
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}
	if err := r.DB.Create(q).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (r *QuestionRepository) ListByBlock(subjectID string, blockNumber uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("subject = ? AND block_number = ?", subjectID, blockNumber).
		Order("qid asc").
		Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) ListBySubject(subjectID string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("subject = ?", subjectID).Order("qid asc").Find(&qs).Error
	return qs, err
}

// Blocks returns the sorted distinct block numbers of a subject.
func (r *QuestionRepository) Blocks(subjectID string) ([]uint, error) {
	var blocks []uint
	err := r.DB.Model(&model.Question{}).
		Where("subject = ?", subjectID).
		Distinct("block_number").
		Order("block_number asc").
		Pluck("block_number", &blocks).Error
	return blocks, err
}

// AllBlocks returns every (subject, block) pair present in the store.
func (r *QuestionRepository) AllBlocks() ([]SubjectBlock, error) {
	var blocks []SubjectBlock
	err := r.DB.Model(&model.Question{}).
		Distinct("subject", "block_number").
		Order("subject asc, block_number asc").
		Find(&blocks).Error
	return blocks, err
}

func (r *QuestionRepository) CountBySubject(subjectID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("subject = ?", subjectID).Count(&count).Error
	return count, err
}

func (r *QuestionRepository) CountByBlock(subjectID string, blockNumber uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).
		Where("subject = ? AND block_number = ?", subjectID, blockNumber).
		Count(&count).Error
	return count, err
}

// ListComplete returns all questions that have both a correct answer and an
// explanation, across subjects. Feeds the question sitemap.
func (r *QuestionRepository) ListComplete() ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("correct <> '' AND explanation <> ''").
		Order("subject asc, qid asc").
		Find(&qs).Error
	return qs, err
}

// LatestEditedAt returns the newest edited_at for a subject, optionally
// narrowed to one block (blockNumber > 0). Nil when nothing was ever edited.
func (r *QuestionRepository) LatestEditedAt(subjectID string, blockNumber uint) (*time.Time, error) {
	query := r.DB.Model(&model.Question{}).
		Where("subject = ? AND edited_at IS NOT NULL", subjectID)
	if blockNumber > 0 {
		query = query.Where("block_number = ?", blockNumber)
	}
	var q model.Question
	err := query.Order("edited_at desc").First(&q).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return q.EditedAt, nil
}
