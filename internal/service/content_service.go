package service

import (
	"anre_quiz_backend/internal/config"
	"anre_quiz_backend/internal/model"
	"anre_quiz_backend/internal/repository"
	"anre_quiz_backend/internal/subject"
	"anre_quiz_backend/internal/util"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// DefaultBlockSize is how many questions go into one block when the source
// file carries no explicit block assignments.
const DefaultBlockSize = 20

// SubjectFile is the persisted interchange format: one JSON document per
// subject. Import and export must round-trip through it.
type SubjectFile struct {
	Title         string            `json:"title"`
	Subject       string            `json:"subject"`
	BlockSize     int               `json:"blockSize"`
	QuestionCount int               `json:"questionCount"`
	Questions     []QuestionPayload `json:"questions"`
}

type OptionSet struct {
	A string `json:"a"`
	B string `json:"b"`
	C string `json:"c"`
}

// QuestionPayload is one question in the interchange format. Correct and
// ImageBase are nullable in the files.
type QuestionPayload struct {
	ID          uint      `json:"id"`
	Question    string    `json:"question"`
	Options     OptionSet `json:"options"`
	Correct     *string   `json:"correct"`
	Explanation string    `json:"explanation"`
	Block       uint      `json:"block"`
	ImageBase   *string   `json:"image_base"`
}

type ImportOptions struct {
	// SkipExport suppresses the auto-export that normally follows an import,
	// replacing the original's ambient skip flag with an explicit parameter.
	SkipExport bool
}

type ImportStats struct {
	Imported int `json:"imported"`
	Updated  int `json:"updated"`
}

// ContentService owns the quiz_data JSON files: bulk import into the store,
// export back out, and a read-through cache over the raw files.
type ContentService struct {
	Questions *repository.QuestionRepository
	Cfg       *config.Config
	Log       *zap.Logger

	mu    sync.Mutex
	cache map[string]*SubjectFile
}

func NewContentService(questions *repository.QuestionRepository, cfg *config.Config, log *zap.Logger) *ContentService {
	return &ContentService{
		Questions: questions,
		Cfg:       cfg,
		Log:       log,
		cache:     make(map[string]*SubjectFile),
	}
}

func (s *ContentService) subjectFilePath(subjectID string) string {
	return filepath.Join(s.Cfg.QuizData.Dir, subjectID+".json")
}

// LoadSubjectFile reads a subject's JSON file through the in-memory cache,
// assigning sequential blocks when the file carries none.
func (s *ContentService) LoadSubjectFile(subjectID string) (*SubjectFile, error) {
	if !subject.IsValid(subjectID) {
		return nil, util.ErrSubjectNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.cache[subjectID]; ok {
		return cached, nil
	}

	raw, err := os.ReadFile(s.subjectFilePath(subjectID))
	if err != nil {
		return nil, err
	}

	var file SubjectFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.subjectFilePath(subjectID), err)
	}

	assignBlocks(file.Questions, DefaultBlockSize)

	s.cache[subjectID] = &file
	return &file, nil
}

func (s *ContentService) invalidate(subjectID string) {
	s.mu.Lock()
	delete(s.cache, subjectID)
	s.mu.Unlock()
}

// assignBlocks fills in sequential block numbers (blockSize questions per
// block) when no question in the file has one.
func assignBlocks(questions []QuestionPayload, blockSize int) {
	for _, q := range questions {
		if q.Block != 0 {
			return
		}
	}
	for i := range questions {
		questions[i].Block = uint(i/blockSize) + 1
	}
}

// mergeQuestion folds a payload into an existing question row. Text, options
// and block number always follow the file; correct and explanation are only
// filled when currently empty so collaborative edits survive re-imports.
// It reports whether anything changed.
func mergeQuestion(q *model.Question, payload QuestionPayload) bool {
	changed := false

	if q.Correct == "" && payload.Correct != nil && *payload.Correct != "" {
		q.Correct = *payload.Correct
		changed = true
	}
	if q.Explanation == "" && payload.Explanation != "" {
		q.Explanation = payload.Explanation
		changed = true
	}
	if q.Text != payload.Question {
		q.Text = payload.Question
		changed = true
	}
	if q.OptionA != payload.Options.A {
		q.OptionA = payload.Options.A
		changed = true
	}
	if q.OptionB != payload.Options.B {
		q.OptionB = payload.Options.B
		changed = true
	}
	if q.OptionC != payload.Options.C {
		q.OptionC = payload.Options.C
		changed = true
	}
	if q.BlockNumber != payload.Block {
		q.BlockNumber = payload.Block
		changed = true
	}
	return changed
}

// payloadFromModel converts a stored question back into the interchange
// shape. Inverse of mergeQuestion for round-tripping.
func payloadFromModel(q *model.Question) QuestionPayload {
	payload := QuestionPayload{
		ID:          q.QID,
		Question:    q.Text,
		Options:     OptionSet{A: q.OptionA, B: q.OptionB, C: q.OptionC},
		Explanation: q.Explanation,
		Block:       q.BlockNumber,
	}
	if q.Correct != "" {
		correct := q.Correct
		payload.Correct = &correct
	}
	if q.ImageBase != "" {
		base := q.ImageBase
		payload.ImageBase = &base
	}
	return payload
}

// ImportSubject loads a subject file into the store. New questions are
// created outright; existing ones are merged per mergeQuestion.
func (s *ContentService) ImportSubject(subjectID string, opts ImportOptions) (*ImportStats, error) {
	file, err := s.LoadSubjectFile(subjectID)
	if err != nil {
		return nil, err
	}

	stats := &ImportStats{}
	for _, payload := range file.Questions {
		if payload.ID == 0 {
			continue
		}

		q := &model.Question{
			Subject:     subjectID,
			QID:         payload.ID,
			BlockNumber: payload.Block,
			Text:        payload.Question,
			OptionA:     payload.Options.A,
			OptionB:     payload.Options.B,
			OptionC:     payload.Options.C,
		}
		created, err := s.Questions.FirstOrCreate(q)
		if err != nil {
			return nil, err
		}

		changed := mergeQuestion(q, payload)
		if created {
			stats.Imported++
		}
		if changed {
			if err := s.Questions.SaveQuietly(q); err != nil {
				return nil, err
			}
			if !created {
				stats.Updated++
			}
		}
	}

	if !opts.SkipExport && s.Cfg.QuizData.AutoExport {
		if err := s.ExportSubject(subjectID); err != nil {
			s.Log.Error("post-import export failed",
				zap.String("subject", subjectID), zap.Error(err))
		}
	}

	return stats, nil
}

// ImportAll imports every configured subject. Missing files are skipped with
// a warning, matching the original bulk importer.
func (s *ContentService) ImportAll(opts ImportOptions) (*ImportStats, error) {
	total := &ImportStats{}
	for _, subj := range subject.All() {
		stats, err := s.ImportSubject(subj.ID, opts)
		if os.IsNotExist(err) {
			s.Log.Warn("quiz data file missing", zap.String("subject", subj.ID))
			continue
		}
		if err != nil {
			return nil, err
		}
		total.Imported += stats.Imported
		total.Updated += stats.Updated
	}
	return total, nil
}

// ExportSubject regenerates a subject's JSON file from the store, preserving
// the file-level title and blockSize metadata when the file already exists.
func (s *ContentService) ExportSubject(subjectID string) error {
	subj, ok := subject.ByID(subjectID)
	if !ok {
		return util.ErrSubjectNotFound
	}

	title := subj.Title
	blockSize := DefaultBlockSize
	if raw, err := os.ReadFile(s.subjectFilePath(subjectID)); err == nil {
		var prev SubjectFile
		if err := json.Unmarshal(raw, &prev); err == nil {
			if prev.Title != "" {
				title = prev.Title
			}
			if prev.BlockSize > 0 {
				blockSize = prev.BlockSize
			}
		}
	}

	questions, err := s.Questions.ListBySubject(subjectID)
	if err != nil {
		return err
	}

	payloads := make([]QuestionPayload, len(questions))
	for i := range questions {
		payloads[i] = payloadFromModel(&questions[i])
	}

	file := SubjectFile{
		Title:         title,
		Subject:       subjectID,
		BlockSize:     blockSize,
		QuestionCount: len(payloads),
		Questions:     payloads,
	}

	data, err := json.MarshalIndent(&file, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Cfg.QuizData.Dir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(s.subjectFilePath(subjectID), append(data, '\n'), 0644); err != nil {
		return err
	}

	s.invalidate(subjectID)
	return nil
}

// AutoExport is the post-commit hook target for question writes. Export
// failures are logged and swallowed; they must never fail the write that
// triggered them.
func (s *ContentService) AutoExport(subjectID string) {
	if !s.Cfg.QuizData.AutoExport {
		return
	}
	if err := s.ExportSubject(subjectID); err != nil {
		s.Log.Error("auto-export failed", zap.String("subject", subjectID), zap.Error(err))
	}
}
