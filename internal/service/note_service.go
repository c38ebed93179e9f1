package service

import (
	"anre_quiz_backend/internal/model"
	"anre_quiz_backend/internal/repository"
	"anre_quiz_backend/internal/subject"
	"anre_quiz_backend/internal/util"
)

// NoteService manages the per-user block notes. Notes are private: every
// operation is scoped to the owner.
type NoteService struct {
	Notes *repository.NoteRepository
}

func NewNoteService(notes *repository.NoteRepository) *NoteService {
	return &NoteService{Notes: notes}
}

func (s *NoteService) GetNote(userID uint, subjectID string, blockNumber uint) (*model.BlockNote, error) {
	if !subject.IsValid(subjectID) {
		return nil, util.ErrSubjectNotFound
	}
	return s.Notes.GetOrCreate(userID, subjectID, blockNumber)
}

func (s *NoteService) SaveNote(userID uint, subjectID string, blockNumber uint, text string) (*model.BlockNote, error) {
	note, err := s.GetNote(userID, subjectID, blockNumber)
	if err != nil {
		return nil, err
	}
	note.Note = text
	if err := s.Notes.Save(note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) ListNotes(userID uint) ([]model.BlockNote, error) {
	return s.Notes.ListForUser(userID)
}
