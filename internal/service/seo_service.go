package service

import (
	"anre_quiz_backend/internal/config"
	"anre_quiz_backend/internal/repository"
	"anre_quiz_backend/internal/subject"
	"encoding/xml"
	"fmt"
	"time"
)

// SEOService generates sitemap.xml and robots.txt for the public learn
// surface.
type SEOService struct {
	Questions *repository.QuestionRepository
	Cfg       *config.Config
}

func NewSEOService(questions *repository.QuestionRepository, cfg *config.Config) *SEOService {
	return &SEOService{Questions: questions, Cfg: cfg}
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

func (s *SEOService) absURL(path string) string {
	return "https://" + s.Cfg.Site.Domain + path
}

func formatLastMod(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// Sitemap builds the full sitemap: the learn index, one entry per subject,
// one per block, and one per complete question. Last modification dates come
// from the newest collaborative edit in each scope.
func (s *SEOService) Sitemap() ([]byte, error) {
	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}

	set.URLs = append(set.URLs, sitemapURL{
		Loc:        s.absURL("/learn/"),
		ChangeFreq: "weekly",
		Priority:   "0.9",
	})

	for _, subj := range subject.All() {
		subjectSlug := subject.Slug(subj.ID, subj.Title)

		lastMod, err := s.Questions.LatestEditedAt(subj.ID, 0)
		if err != nil {
			return nil, err
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.absURL("/learn/" + subjectSlug + "/"),
			LastMod:    formatLastMod(lastMod),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}

	blocks, err := s.Questions.AllBlocks()
	if err != nil {
		return nil, err
	}
	for _, b := range blocks {
		subj, ok := subject.ByID(b.Subject)
		if !ok {
			continue
		}
		subjectSlug := subject.Slug(subj.ID, subj.Title)
		blockSlug := subject.BlockSlug(subj.ID, int(b.BlockNumber))

		lastMod, err := s.Questions.LatestEditedAt(subj.ID, b.BlockNumber)
		if err != nil {
			return nil, err
		}
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.absURL("/learn/" + subjectSlug + "/" + blockSlug + "/"),
			LastMod:    formatLastMod(lastMod),
			ChangeFreq: "monthly",
			Priority:   "0.7",
		})
	}

	complete, err := s.Questions.ListComplete()
	if err != nil {
		return nil, err
	}
	for i := range complete {
		q := &complete[i]
		subj, ok := subject.ByID(q.Subject)
		if !ok {
			continue
		}
		subjectSlug := subject.Slug(subj.ID, subj.Title)
		blockSlug := subject.BlockSlug(subj.ID, int(q.BlockNumber))
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.absURL(fmt.Sprintf("/learn/%s/%s/%d/", subjectSlug, blockSlug, q.QID)),
			LastMod:    formatLastMod(q.EditedAt),
			ChangeFreq: "monthly",
			Priority:   "0.6",
		})
	}

	data, err := xml.MarshalIndent(&set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), data...), nil
}

// RobotsTxt allows crawling of the public learn pages and static assets and
// keeps crawlers out of the private routes.
func (s *SEOService) RobotsTxt() string {
	return fmt.Sprintf(`User-agent: *
Allow: /learn/
Allow: /static/
Disallow: /api/
Disallow: /login
Disallow: /register
Disallow: /dashboard

Sitemap: %s
`, s.absURL("/sitemap.xml"))
}
