package service

import (
	"anre_quiz_backend/internal/model"
	"anre_quiz_backend/internal/repository"
	"anre_quiz_backend/internal/subject"
	"anre_quiz_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type EditorService struct {
	Questions *repository.QuestionRepository
}

func NewEditorService(questions *repository.QuestionRepository) *EditorService {
	return &EditorService{Questions: questions}
}

// EditRequest carries the fields a collaborator wants to change. Nil pointers
// mean "leave as is". Version is the question's last-known edit stamp as the
// client saw it, empty when the question was never edited.
type EditRequest struct {
	Correct     *string `json:"correct"`
	Explanation *string `json:"explanation"`
	ImageBase   *string `json:"imageBase"`
	Version     string  `json:"version"`
}

// FormatVersion serializes an edit timestamp into the optimistic-lock token
// exchanged with clients.
func FormatVersion(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

// ApplyEdit mutates q in place according to the collaborative edit rules:
//
//   - non-privileged editors may touch a question only while it is incomplete
//     (missing correct answer or explanation), and each of those fields is
//     write-once for them;
//   - the version token must match the question's current edit stamp, unless
//     the editor is privileged (last writer wins for privileged edits);
//   - image_base is a privileged-only field and is ignored otherwise.
//
// On rejection q is left untouched. On any accepted change the editor and
// timestamp are stamped.
func ApplyEdit(q *model.Question, editorID uint, privileged bool, req EditRequest, now time.Time) error {
	if !privileged && q.Complete() {
		return util.ErrQuestionLocked
	}

	if req.Version != "" && req.Version != FormatVersion(q.EditedAt) && !privileged {
		return util.ErrStaleEdit
	}

	if req.Correct != nil && !model.ValidCorrect(*req.Correct) {
		return util.ErrInvalidCorrectValue
	}

	changed := false

	if req.Correct != nil {
		if privileged || q.Correct == "" {
			if q.Correct != *req.Correct {
				q.Correct = *req.Correct
				changed = true
			}
		}
	}

	if req.Explanation != nil {
		if privileged || q.Explanation == "" {
			if q.Explanation != *req.Explanation {
				q.Explanation = *req.Explanation
				changed = true
			}
		}
	}

	if req.ImageBase != nil && privileged {
		if q.ImageBase != *req.ImageBase {
			q.ImageBase = *req.ImageBase
			changed = true
		}
	}

	if changed {
		q.EditedByID = &editorID
		edited := now
		q.EditedAt = &edited
	}
	return nil
}

// EditQuestion loads a question, applies the edit rules and persists the
// result. The repository's post-commit hook takes care of the JSON export.
func (s *EditorService) EditQuestion(subjectID string, qid uint, editorID uint, privileged bool, req EditRequest) (*model.Question, error) {
	if !subject.IsValid(subjectID) {
		return nil, util.ErrSubjectNotFound
	}

	q, err := s.Questions.FindBySubjectAndQID(subjectID, qid)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := ApplyEdit(q, editorID, privileged, req, time.Now()); err != nil {
		return nil, err
	}

	if err := s.Questions.Save(q); err != nil {
		return nil, err
	}
	return q, nil
}

// GetQuestion returns a question together with its current version token.
func (s *EditorService) GetQuestion(subjectID string, qid uint) (*model.Question, string, error) {
	if !subject.IsValid(subjectID) {
		return nil, "", util.ErrSubjectNotFound
	}
	q, err := s.Questions.FindBySubjectAndQID(subjectID, qid)
	if err == gorm.ErrRecordNotFound {
		return nil, "", util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, "", err
	}
	return q, FormatVersion(q.EditedAt), nil
}
