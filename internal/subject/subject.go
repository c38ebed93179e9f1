// Package subject is the single source of truth for the fixed subject set and
// for the URL slug scheme of the public learn pages.
package subject

// Subject describes one ANRE Grupa II exam subject.
type Subject struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// The set is fixed in code. Invariant relied on by ParseBlockSlug: no subject
// ID is a suffix of another, otherwise block slug decoding would be ambiguous.
var subjects = []Subject{
	{ID: "electrotehnica", Title: "Electrotehnică"},
	{ID: "legislatie-gr-2", Title: "Legislație GR. 2"},
	{ID: "norme-tehnice-gr-2", Title: "Norme Tehnice GR. 2"},
}

var imagePrefixes = map[string]string{
	"electrotehnica":     "qe",
	"legislatie-gr-2":    "ql",
	"norme-tehnice-gr-2": "qn",
}

// All returns the subjects in canonical order.
func All() []Subject {
	out := make([]Subject, len(subjects))
	copy(out, subjects)
	return out
}

// ByID looks a subject up by its stable identifier.
func ByID(id string) (Subject, bool) {
	for _, s := range subjects {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}

// IsValid reports whether id belongs to the fixed subject set.
func IsValid(id string) bool {
	_, ok := ByID(id)
	return ok
}

// ImagePrefix returns the filename prefix used for a subject's question
// images, e.g. "qe" so question 12 resolves to "qe12.png".
func ImagePrefix(id string) string {
	if p, ok := imagePrefixes[id]; ok {
		return p
	}
	return "q"
}
