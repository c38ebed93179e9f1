package subject

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const blockSlugPrefix = "bloc-"

var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeTitle lowercases the title, strips diacritics and collapses every
// run of non-alphanumeric characters into a single hyphen.
func normalizeTitle(title string) string {
	folded, _, err := transform.String(foldDiacritics, title)
	if err != nil {
		folded = title
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	lastHyphen := true // suppress a leading hyphen
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Slug builds the URL segment for a subject. When the normalized title already
// equals the ID the ID is used alone, avoiding "electrotehnica-electrotehnica"
// style slugs; otherwise the ID is appended to keep slugs unique.
func Slug(id, title string) string {
	normalized := normalizeTitle(title)
	if normalized == id {
		return id
	}
	return normalized + "-" + id
}

// ParseSubjectSlug inverts Slug by recomputing each subject's expected slug
// and comparing exactly. Heuristic splitting is deliberately avoided: the
// conditional encoding above makes exact recomputation the only safe inverse.
func ParseSubjectSlug(slug string) (string, bool) {
	for _, s := range subjects {
		if Slug(s.ID, s.Title) == slug {
			return s.ID, true
		}
	}
	return "", false
}

// BlockSlug builds the URL segment for a question block, e.g.
// "bloc-3-electrotehnica".
func BlockSlug(id string, blockNumber int) string {
	return blockSlugPrefix + strconv.Itoa(blockNumber) + "-" + id
}

// ParseBlockSlug inverts BlockSlug. The first subject whose ID suffixes the
// slug wins, in canonical order; the suffix-free invariant on the subject set
// keeps this deterministic.
func ParseBlockSlug(slug string) (string, int, bool) {
	rest, ok := strings.CutPrefix(slug, blockSlugPrefix)
	if !ok {
		return "", 0, false
	}
	for _, s := range subjects {
		numPart, found := strings.CutSuffix(rest, "-"+s.ID)
		if !found {
			continue
		}
		n, err := strconv.Atoi(numPart)
		if err != nil || n < 1 {
			return "", 0, false
		}
		return s.ID, n, true
	}
	return "", 0, false
}
