package sticky

import (
	"github.com/jonathan/cv-profile-engine/internal/types"
)

// ApplyStickyFields returns a copy of the incoming fragment with sticky
// fields corrected against the existing record, so the merge engine can
// apply plain precedence afterwards. The incoming fragment is not mutated.
// A downgrade attempt is not an error: the guard simply does not apply it,
// and reports what it preserved.
func ApplyStickyFields(existing types.ProfileRecord, incoming types.ProfileRecord) (types.ProfileRecord, []Preserved) {
	out := incoming
	var kept []Preserved

	resolved := resolvePhoto(existing.Profil.PhotoURL, incoming.Profil.PhotoURL)
	if resolved != incoming.Profil.PhotoURL {
		out.Profil.PhotoURL = resolved
		kept = append(kept, Preserved{
			Field:  "profil.photo_url",
			Reason: "incoming reference is not durable storage",
		})
	}

	return out, kept
}

// Preserved describes one sticky field the guard kept from the existing
// record instead of the incoming value.
type Preserved struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}
