package service

import (
	"anre_quiz_backend/internal/config"
	"anre_quiz_backend/internal/repository"
	"anre_quiz_backend/internal/subject"
	"anre_quiz_backend/internal/util"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const learnBlockCacheTTL = 5 * time.Minute

// LearnService assembles the public, unauthenticated learn pages: full
// question content with answers and explanations, slugged URLs, breadcrumbs
// and schema.org structured data for search engines.
type LearnService struct {
	Questions *repository.QuestionRepository
	Storage   *StorageService
	Cfg       *config.Config
	Redis     *redis.Client
	Log       *zap.Logger
}

func NewLearnService(questions *repository.QuestionRepository, storage *StorageService, cfg *config.Config, rdb *redis.Client, log *zap.Logger) *LearnService {
	return &LearnService{Questions: questions, Storage: storage, Cfg: cfg, Redis: rdb, Log: log}
}

// absURL builds an absolute HTTPS URL from the configured site domain.
func (s *LearnService) absURL(path string) string {
	return "https://" + s.Cfg.Site.Domain + path
}

type Breadcrumb struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// breadcrumbJSONLD renders a schema.org BreadcrumbList for the given trail.
func (s *LearnService) breadcrumbJSONLD(crumbs []Breadcrumb) string {
	items := make([]map[string]interface{}, len(crumbs))
	for i, c := range crumbs {
		items[i] = map[string]interface{}{
			"@type":    "ListItem",
			"position": i + 1,
			"name":     c.Name,
			"item":     c.URL,
		}
	}
	data, err := json.Marshal(map[string]interface{}{
		"@context":        "https://schema.org",
		"@type":           "BreadcrumbList",
		"itemListElement": items,
	})
	if err != nil {
		return ""
	}
	return string(data)
}

type LearnSubject struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	BlockCount    int    `json:"blockCount"`
	QuestionCount int64  `json:"questionCount"`
}

type LearnSubjectList struct {
	Subjects       []LearnSubject `json:"subjects"`
	Breadcrumbs    []Breadcrumb   `json:"breadcrumbs"`
	StructuredData string         `json:"structuredData"`
}

func (s *LearnService) SubjectList(ctx context.Context) (*LearnSubjectList, error) {
	out := &LearnSubjectList{}

	for _, subj := range subject.All() {
		blocks, err := s.Questions.Blocks(subj.ID)
		if err != nil {
			return nil, err
		}
		count, err := s.Questions.CountBySubject(subj.ID)
		if err != nil {
			return nil, err
		}
		out.Subjects = append(out.Subjects, LearnSubject{
			ID:            subj.ID,
			Title:         subj.Title,
			Slug:          subject.Slug(subj.ID, subj.Title),
			BlockCount:    len(blocks),
			QuestionCount: count,
		})
	}

	out.Breadcrumbs = []Breadcrumb{
		{Name: "Acasă", URL: s.absURL("/")},
		{Name: "Chestionare ANRE Grupa II", URL: s.absURL("/learn/")},
	}
	out.StructuredData = s.breadcrumbJSONLD(out.Breadcrumbs)
	return out, nil
}

type LearnBlock struct {
	Number        uint   `json:"number"`
	Slug          string `json:"slug"`
	QuestionCount int64  `json:"questionCount"`
}

type LearnSubjectDetail struct {
	Subject        LearnSubject `json:"subject"`
	Blocks         []LearnBlock `json:"blocks"`
	Breadcrumbs    []Breadcrumb `json:"breadcrumbs"`
	StructuredData string       `json:"structuredData"`
}

func (s *LearnService) SubjectDetail(ctx context.Context, subjectSlug string) (*LearnSubjectDetail, error) {
	subjectID, ok := subject.ParseSubjectSlug(subjectSlug)
	if !ok {
		return nil, util.ErrSubjectNotFound
	}
	subj, _ := subject.ByID(subjectID)

	blocks, err := s.Questions.Blocks(subjectID)
	if err != nil {
		return nil, err
	}
	count, err := s.Questions.CountBySubject(subjectID)
	if err != nil {
		return nil, err
	}

	detail := &LearnSubjectDetail{
		Subject: LearnSubject{
			ID:            subj.ID,
			Title:         subj.Title,
			Slug:          subjectSlug,
			BlockCount:    len(blocks),
			QuestionCount: count,
		},
	}

	for _, blockNum := range blocks {
		blockCount, err := s.Questions.CountByBlock(subjectID, blockNum)
		if err != nil {
			return nil, err
		}
		detail.Blocks = append(detail.Blocks, LearnBlock{
			Number:        blockNum,
			Slug:          subject.BlockSlug(subjectID, int(blockNum)),
			QuestionCount: blockCount,
		})
	}

	detail.Breadcrumbs = []Breadcrumb{
		{Name: "Acasă", URL: s.absURL("/")},
		{Name: "Învață", URL: s.absURL("/learn/")},
		{Name: subj.Title, URL: s.absURL("/learn/" + subjectSlug + "/")},
	}
	detail.StructuredData = s.breadcrumbJSONLD(detail.Breadcrumbs)
	return detail, nil
}

type LearnQuestion struct {
	QID              uint   `json:"qid"`
	Text             string `json:"text"`
	OptionA          string `json:"optionA"`
	OptionB          string `json:"optionB"`
	OptionC          string `json:"optionC"`
	Correct          string `json:"correct"`
	Explanation      string `json:"explanation"`
	QuestionImageURL string `json:"questionImageUrl,omitempty"`
	OptionAImageURL  string `json:"optionAImageUrl,omitempty"`
	OptionBImageURL  string `json:"optionBImageUrl,omitempty"`
	OptionCImageURL  string `json:"optionCImageUrl,omitempty"`
}

type LearnBlockDetail struct {
	Subject        LearnSubject    `json:"subject"`
	BlockNumber    uint            `json:"blockNumber"`
	BlockSlug      string          `json:"blockSlug"`
	Questions      []LearnQuestion `json:"questions"`
	Breadcrumbs    []Breadcrumb    `json:"breadcrumbs"`
	StructuredData string          `json:"structuredData"`
	ItemListData   string          `json:"itemListData"`
	CanonicalURL   string          `json:"canonicalUrl"`
}

// itemListJSONLD renders a schema.org ItemList of question permalinks for a
// block page. Question names are truncated to 100 runes.
func (s *LearnService) itemListJSONLD(name, subjectSlug, blockSlug string, questions []LearnQuestion) string {
	items := make([]map[string]interface{}, len(questions))
	for i, q := range questions {
		text := []rune(q.Text)
		qName := q.Text
		if len(text) > 100 {
			qName = string(text[:100]) + "..."
		}
		items[i] = map[string]interface{}{
			"@type":    "ListItem",
			"position": i + 1,
			"item": map[string]interface{}{
				"@type": "Question",
				"name":  qName,
				"url":   s.absURL(fmt.Sprintf("/learn/%s/%s/%d/", subjectSlug, blockSlug, q.QID)),
			},
		}
	}
	data, err := json.Marshal(map[string]interface{}{
		"@context":        "https://schema.org",
		"@type":           "ItemList",
		"name":            name,
		"numberOfItems":   len(items),
		"itemListElement": items,
	})
	if err != nil {
		return ""
	}
	return string(data)
}

func (s *LearnService) blockCacheKey(subjectID string, blockNumber uint) string {
	return fmt.Sprintf("learn:block:%s:%d", subjectID, blockNumber)
}

// BlockDetail returns the full public content of one block. The subject slug
// must match the one the block slug decodes to; mismatches are treated as not
// found so stale or hand-edited URLs never serve duplicate content.
func (s *LearnService) BlockDetail(ctx context.Context, subjectSlug, blockSlug string) (*LearnBlockDetail, error) {
	subjectID, blockNumber, ok := subject.ParseBlockSlug(blockSlug)
	if !ok {
		return nil, util.ErrBlockNotFound
	}
	subj, _ := subject.ByID(subjectID)
	if subject.Slug(subj.ID, subj.Title) != subjectSlug {
		return nil, util.ErrBlockNotFound
	}

	cacheKey := s.blockCacheKey(subjectID, uint(blockNumber))
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var detail LearnBlockDetail
			if err := json.Unmarshal([]byte(cached), &detail); err == nil {
				return &detail, nil
			}
		}
	}

	questions, err := s.Questions.ListByBlock(subjectID, uint(blockNumber))
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, util.ErrBlockNotFound
	}

	detail := &LearnBlockDetail{
		Subject: LearnSubject{
			ID:    subj.ID,
			Title: subj.Title,
			Slug:  subjectSlug,
		},
		BlockNumber: uint(blockNumber),
		BlockSlug:   blockSlug,
	}

	for i := range questions {
		q := &questions[i]
		lq := LearnQuestion{
			QID:         q.QID,
			Text:        q.Text,
			OptionA:     q.OptionA,
			OptionB:     q.OptionB,
			OptionC:     q.OptionC,
			Correct:     q.Correct,
			Explanation: q.Explanation,
		}
		if ok, url := s.Storage.QuestionImage(ctx, q); ok {
			lq.QuestionImageURL = url
		}
		if ok, url := s.Storage.OptionImage(ctx, q, 1); ok {
			lq.OptionAImageURL = url
		}
		if ok, url := s.Storage.OptionImage(ctx, q, 2); ok {
			lq.OptionBImageURL = url
		}
		if ok, url := s.Storage.OptionImage(ctx, q, 3); ok {
			lq.OptionCImageURL = url
		}
		detail.Questions = append(detail.Questions, lq)
	}

	detail.Breadcrumbs = []Breadcrumb{
		{Name: "Acasă", URL: s.absURL("/")},
		{Name: "Învață", URL: s.absURL("/learn/")},
		{Name: subj.Title, URL: s.absURL("/learn/" + subjectSlug + "/")},
		{Name: fmt.Sprintf("Bloc %d", blockNumber), URL: s.absURL("/learn/" + subjectSlug + "/" + blockSlug + "/")},
	}
	detail.StructuredData = s.breadcrumbJSONLD(detail.Breadcrumbs)
	detail.ItemListData = s.itemListJSONLD(
		fmt.Sprintf("%s - Bloc %d", subj.Title, blockNumber),
		subjectSlug, blockSlug, detail.Questions,
	)
	detail.CanonicalURL = s.absURL("/learn/" + subjectSlug + "/" + blockSlug + "/")

	if s.Redis != nil {
		if data, err := json.Marshal(detail); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, learnBlockCacheTTL).Err(); err != nil {
				s.Log.Warn("learn block cache write failed", zap.Error(err))
			}
		}
	}

	return detail, nil
}

type LearnQuestionDetail struct {
	Subject        LearnSubject  `json:"subject"`
	BlockNumber    uint          `json:"blockNumber"`
	BlockSlug      string        `json:"blockSlug"`
	Question       LearnQuestion `json:"question"`
	Breadcrumbs    []Breadcrumb  `json:"breadcrumbs"`
	StructuredData string        `json:"structuredData"`
}

func (s *LearnService) QuestionDetail(ctx context.Context, subjectSlug, blockSlug string, qid uint) (*LearnQuestionDetail, error) {
	block, err := s.BlockDetail(ctx, subjectSlug, blockSlug)
	if err != nil {
		return nil, err
	}
	for _, q := range block.Questions {
		if q.QID == qid {
			crumbs := make([]Breadcrumb, len(block.Breadcrumbs), len(block.Breadcrumbs)+1)
			copy(crumbs, block.Breadcrumbs)
			crumbs = append(crumbs, Breadcrumb{
				Name: fmt.Sprintf("Întrebarea %d", qid),
				URL:  s.absURL(fmt.Sprintf("/learn/%s/%s/%d/", subjectSlug, blockSlug, qid)),
			})
			return &LearnQuestionDetail{
				Subject:        block.Subject,
				BlockNumber:    block.BlockNumber,
				BlockSlug:      block.BlockSlug,
				Question:       q,
				Breadcrumbs:    crumbs,
				StructuredData: s.breadcrumbJSONLD(crumbs),
			}, nil
		}
	}
	return nil, util.ErrQuestionNotFound
}

// InvalidateSubject drops the cached learn pages of a subject. Wired to the
// question repository's post-commit hook next to the JSON auto-export.
func (s *LearnService) InvalidateSubject(subjectID string) {
	if s.Redis == nil {
		return
	}
	ctx := context.Background()
	iter := s.Redis.Scan(ctx, 0, fmt.Sprintf("learn:block:%s:*", subjectID), 0).Iterator()
	for iter.Next(ctx) {
		if err := s.Redis.Del(ctx, iter.Val()).Err(); err != nil {
			s.Log.Warn("learn cache invalidation failed", zap.Error(err))
		}
	}
}
