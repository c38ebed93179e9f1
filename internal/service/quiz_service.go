package service

import (
	"anre_quiz_backend/internal/model"
	"anre_quiz_backend/internal/repository"
	"anre_quiz_backend/internal/subject"
	"anre_quiz_backend/internal/util"
	"sort"
	"time"
)

type QuizService struct {
	Questions *repository.QuestionRepository
	Attempts  *repository.AttemptRepository
}

func NewQuizService(questions *repository.QuestionRepository, attempts *repository.AttemptRepository) *QuizService {
	return &QuizService{Questions: questions, Attempts: attempts}
}

// QuestionResult is the per-question grading verdict. IsCorrect is nil for
// ungradable questions (no correct answer on record yet).
type QuestionResult struct {
	QID         uint   `json:"qid"`
	Text        string `json:"text"`
	OptionA     string `json:"optionA"`
	OptionB     string `json:"optionB"`
	OptionC     string `json:"optionC"`
	UserAnswer  string `json:"userAnswer"`
	Correct     string `json:"correct"`
	IsCorrect   *bool  `json:"isCorrect"`
	Explanation string `json:"explanation"`
}

type GradingOutcome struct {
	Score      uint             `json:"score"`
	Total      uint             `json:"total"`
	Percentage float64          `json:"percentage"`
	Results    []QuestionResult `json:"results"`
}

// GradeBlock scores a submission against a block's questions. Questions
// without a recorded correct answer are reported but excluded from the total.
// Answers are keyed by qid; a missing key means the question was left blank.
func GradeBlock(questions []model.Question, answers map[uint]string) GradingOutcome {
	sorted := make([]model.Question, len(questions))
	copy(sorted, questions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].QID < sorted[j].QID })

	outcome := GradingOutcome{Results: make([]QuestionResult, 0, len(sorted))}

	for _, q := range sorted {
		result := QuestionResult{
			QID:         q.QID,
			Text:        q.Text,
			OptionA:     q.OptionA,
			OptionB:     q.OptionB,
			OptionC:     q.OptionC,
			UserAnswer:  answers[q.QID],
			Correct:     q.Correct,
			Explanation: q.Explanation,
		}

		if q.Gradable() {
			outcome.Total++
			correct := result.UserAnswer == q.Correct
			result.IsCorrect = &correct
			if correct {
				outcome.Score++
			}
		}

		outcome.Results = append(outcome.Results, result)
	}

	if outcome.Total > 0 {
		outcome.Percentage = float64(outcome.Score) / float64(outcome.Total) * 100
	}
	return outcome
}

// SubmitBlock grades a submission and appends a BlockAttempt. Attempts are
// never merged with prior ones; every submission creates a fresh row.
func (s *QuizService) SubmitBlock(userID uint, subjectID string, blockNumber uint, answers map[uint]string) (*GradingOutcome, *model.BlockAttempt, error) {
	if !subject.IsValid(subjectID) {
		return nil, nil, util.ErrSubjectNotFound
	}

	questions, err := s.Questions.ListByBlock(subjectID, blockNumber)
	if err != nil {
		return nil, nil, err
	}
	if len(questions) == 0 {
		return nil, nil, util.ErrBlockNotFound
	}

	outcome := GradeBlock(questions, answers)

	attempt := &model.BlockAttempt{
		UserID:      userID,
		Subject:     subjectID,
		BlockNumber: blockNumber,
		Score:       outcome.Score,
		Total:       outcome.Total,
		Percentage:  outcome.Percentage,
		TakenAt:     time.Now(),
	}
	if err := s.Attempts.Create(attempt); err != nil {
		return nil, nil, err
	}

	return &outcome, attempt, nil
}

// TakeQuestion is the student-facing view of a question: no correct answer,
// no explanation.
type TakeQuestion struct {
	QID       uint   `json:"qid"`
	Text      string `json:"text"`
	OptionA   string `json:"optionA"`
	OptionB   string `json:"optionB"`
	OptionC   string `json:"optionC"`
	ImageBase string `json:"imageBase,omitempty"`
}

// BlockForTaking returns the questions of a block stripped of answers.
func (s *QuizService) BlockForTaking(subjectID string, blockNumber uint) ([]TakeQuestion, error) {
	if !subject.IsValid(subjectID) {
		return nil, util.ErrSubjectNotFound
	}

	questions, err := s.Questions.ListByBlock(subjectID, blockNumber)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrBlockNotFound
	}

	out := make([]TakeQuestion, len(questions))
	for i, q := range questions {
		out[i] = TakeQuestion{
			QID:       q.QID,
			Text:      q.Text,
			OptionA:   q.OptionA,
			OptionB:   q.OptionB,
			OptionC:   q.OptionC,
			ImageBase: q.ImageBase,
		}
	}
	return out, nil
}

// Dashboard block color classes, from best to untouched.
const (
	BlockGreen  = "block-green"
	BlockYellow = "block-yellow"
	BlockRed    = "block-red"
	BlockWhite  = "block-white"
)

type BlockStatus struct {
	Number      uint                `json:"number"`
	LastAttempt *model.BlockAttempt `json:"lastAttempt"`
	ColorClass  string              `json:"colorClass"`
}

type SubjectDashboard struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Blocks []BlockStatus `json:"blocks"`
}

// blockColor classifies a last attempt: green for a perfect score, yellow
// within two of perfect, red otherwise.
func blockColor(attempt *model.BlockAttempt) string {
	if attempt == nil {
		return BlockWhite
	}
	switch {
	case attempt.Score == attempt.Total:
		return BlockGreen
	case int(attempt.Score) >= int(attempt.Total)-2:
		return BlockYellow
	default:
		return BlockRed
	}
}

// Dashboard assembles every subject's blocks with the user's latest attempt
// on each.
func (s *QuizService) Dashboard(userID uint) ([]SubjectDashboard, error) {
	out := make([]SubjectDashboard, 0, len(subject.All()))

	for _, subj := range subject.All() {
		blocks, err := s.Questions.Blocks(subj.ID)
		if err != nil {
			return nil, err
		}

		statuses := make([]BlockStatus, 0, len(blocks))
		for _, blockNum := range blocks {
			last, err := s.Attempts.LastForBlock(userID, subj.ID, blockNum)
			if err != nil {
				return nil, err
			}
			statuses = append(statuses, BlockStatus{
				Number:      blockNum,
				LastAttempt: last,
				ColorClass:  blockColor(last),
			})
		}

		out = append(out, SubjectDashboard{ID: subj.ID, Title: subj.Title, Blocks: statuses})
	}
	return out, nil
}

// BlockHistory returns a user's attempts on one block, newest first.
func (s *QuizService) BlockHistory(userID uint, subjectID string, blockNumber uint) ([]model.BlockAttempt, error) {
	if !subject.IsValid(subjectID) {
		return nil, util.ErrSubjectNotFound
	}
	return s.Attempts.ListForBlock(userID, subjectID, blockNumber)
}

// RecentAttempts lists the newest attempts across all users.
func (s *QuizService) RecentAttempts(page, limit int) ([]model.BlockAttempt, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Attempts.ListRecent(page, limit)
}
