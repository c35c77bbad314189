package sticky

import (
	"strings"

	"github.com/jonathan/cv-profile-engine/internal/types"
)

// CarryForward applies the regeneration policy: the freshly generated record
// is authoritative wherever it produced content, but sticky fields it left
// empty are carried forward verbatim from the previous record. This is
// replace-or-keep, not the additive union the incremental merge uses.
// rejected_inferred is the exception: the generated record has no access to
// the history of user rejections, so it is always carried forward and only
// ever grows.
func CarryForward(prev, next types.ProfileRecord) (types.ProfileRecord, []Preserved) {
	out := next
	var kept []Preserved

	if len(next.References.Clients) == 0 && len(prev.References.Clients) > 0 {
		out.References.Clients = prev.References.Clients
		kept = append(kept, Preserved{
			Field:  "references.clients",
			Reason: "regenerated record produced no client references",
		})
	}

	switch {
	case strings.TrimSpace(next.Profil.PhotoURL) == "":
		if prev.Profil.PhotoURL != "" {
			out.Profil.PhotoURL = prev.Profil.PhotoURL
			kept = append(kept, Preserved{
				Field:  "profil.photo_url",
				Reason: "regenerated record produced no photo",
			})
		}
	case ParsePhotoRef(prev.Profil.PhotoURL).Durable() && !ParsePhotoRef(next.Profil.PhotoURL).Durable():
		// A transient regenerated value never displaces durable storage.
		out.Profil.PhotoURL = prev.Profil.PhotoURL
		kept = append(kept, Preserved{
			Field:  "profil.photo_url",
			Reason: "regenerated reference is not durable storage",
		})
	}

	out.RejectedInferred = unionRejected(prev.RejectedInferred, next.RejectedInferred)

	return out, kept
}

// unionRejected concatenates with case-insensitive dedup, previous entries
// first. Membership is monotonic across regenerations.
func unionRejected(prev, next []string) []string {
	if len(prev) == 0 {
		return next
	}
	out := make([]string, 0, len(prev)+len(next))
	seen := make(map[string]struct{}, len(prev)+len(next))
	for _, list := range [][]string{prev, next} {
		for _, name := range list {
			trimmed := strings.TrimSpace(name)
			if trimmed == "" {
				continue
			}
			key := strings.ToLower(trimmed)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, trimmed)
		}
	}
	return out
}
