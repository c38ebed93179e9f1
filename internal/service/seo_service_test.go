package service

import (
	"anre_quiz_backend/internal/config"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func siteConfig() *config.Config {
	return &config.Config{Site: config.SiteConfig{Domain: "gr2quiz.ro"}}
}

func TestRobotsTxt(t *testing.T) {
	s := &SEOService{Cfg: siteConfig()}
	body := s.RobotsTxt()

	assert.Contains(t, body, "Allow: /learn/")
	assert.Contains(t, body, "Disallow: /api/")
	assert.Contains(t, body, "Sitemap: https://gr2quiz.ro/sitemap.xml")
}

func TestFormatLastMod(t *testing.T) {
	assert.Equal(t, "", formatLastMod(nil))

	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	assert.Equal(t, "2025-03-14", formatLastMod(&ts))
}

func TestBreadcrumbJSONLD(t *testing.T) {
	s := &LearnService{Cfg: siteConfig()}
	out := s.breadcrumbJSONLD([]Breadcrumb{
		{Name: "Learn", URL: "https://gr2quiz.ro/learn/"},
		{Name: "Electrotehnică", URL: "https://gr2quiz.ro/learn/electrotehnica"},
	})

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, "BreadcrumbList", parsed["@type"])
	assert.Equal(t, "https://schema.org", parsed["@context"])

	items, ok := parsed["itemListElement"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 2)

	first := items[0].(map[string]interface{})
	assert.Equal(t, "ListItem", first["@type"])
	assert.Equal(t, float64(1), first["position"])
	assert.Equal(t, "Learn", first["name"])

	second := items[1].(map[string]interface{})
	assert.Equal(t, float64(2), second["position"])
	assert.Equal(t, "Electrotehnică", second["name"])
}

func TestItemListJSONLD(t *testing.T) {
	s := &LearnService{Cfg: siteConfig()}
	out := s.itemListJSONLD("Electrotehnică - Bloc 1", "electrotehnica", "bloc-1-electrotehnica", []LearnQuestion{
		{QID: 1, Text: "Ce este curentul electric?"},
		{QID: 2, Text: strings.Repeat("x", 150)},
	})

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, "ItemList", parsed["@type"])
	assert.Equal(t, float64(2), parsed["numberOfItems"])

	items := parsed["itemListElement"].([]interface{})
	first := items[0].(map[string]interface{})["item"].(map[string]interface{})
	assert.Equal(t, "Question", first["@type"])
	assert.Equal(t, "Ce este curentul electric?", first["name"])
	assert.Equal(t, "https://gr2quiz.ro/learn/electrotehnica/bloc-1-electrotehnica/1/", first["url"])

	second := items[1].(map[string]interface{})["item"].(map[string]interface{})
	assert.Equal(t, strings.Repeat("x", 100)+"...", second["name"])
}
