package subject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Electrotehnică", "electrotehnica"},
		{"Legislație GR. 2", "legislatie-gr-2"},
		{"Norme Tehnice GR. 2", "norme-tehnice-gr-2"},
		{"  spaced   out  ", "spaced-out"},
		{"ALL CAPS!!", "all-caps"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeTitle(tt.title), "title %q", tt.title)
	}
}

func TestSlugDropsRedundantID(t *testing.T) {
	// normalized title == id: no suffix appended
	assert.Equal(t, "electrotehnica", Slug("electrotehnica", "Electrotehnică"))
	// otherwise the id is appended
	assert.Equal(t, "basics-electrotehnica", Slug("electrotehnica", "Basics"))
}

func TestSubjectSlugRoundTrip(t *testing.T) {
	for _, s := range All() {
		slug := Slug(s.ID, s.Title)
		id, ok := ParseSubjectSlug(slug)
		require.True(t, ok, "slug %q", slug)
		assert.Equal(t, s.ID, id)
	}
}

func TestParseSubjectSlugUnknown(t *testing.T) {
	for _, slug := range []string{"", "no-such-subject", "electrotehnica-extra"} {
		_, ok := ParseSubjectSlug(slug)
		assert.False(t, ok, "slug %q", slug)
	}
}

func TestBlockSlugRoundTrip(t *testing.T) {
	for _, s := range All() {
		for _, n := range []int{1, 7, 42} {
			slug := BlockSlug(s.ID, n)
			id, block, ok := ParseBlockSlug(slug)
			require.True(t, ok, "slug %q", slug)
			assert.Equal(t, s.ID, id)
			assert.Equal(t, n, block)
		}
	}
}

func TestParseBlockSlugRejects(t *testing.T) {
	tests := []string{
		"",
		"electrotehnica",            // missing prefix
		"bloc-electrotehnica",       // missing number
		"bloc-0-electrotehnica",     // block numbers start at 1
		"bloc--3-electrotehnica",    // negative
		"bloc-3-unknown-subject",    // unknown id
		"block-3-electrotehnica",    // wrong prefix
		"bloc-3x-electrotehnica",    // non-numeric
		"bloc-3-legislatie-gr-2-en", // trailing junk
	}
	for _, slug := range tests {
		_, _, ok := ParseBlockSlug(slug)
		assert.False(t, ok, "slug %q", slug)
	}
}

func TestSubjectIDsAreSuffixFree(t *testing.T) {
	// ParseBlockSlug relies on no subject id being a suffix of another.
	all := All()
	for i, a := range all {
		for j, b := range all {
			if i == j {
				continue
			}
			assert.False(t, len(a.ID) < len(b.ID) && b.ID[len(b.ID)-len(a.ID):] == a.ID,
				"%q is a suffix of %q", a.ID, b.ID)
		}
	}
}

func TestImagePrefix(t *testing.T) {
	assert.Equal(t, "qe", ImagePrefix("electrotehnica"))
	assert.Equal(t, "ql", ImagePrefix("legislatie-gr-2"))
	assert.Equal(t, "qn", ImagePrefix("norme-tehnice-gr-2"))
	assert.Equal(t, "q", ImagePrefix("unknown"))
}
