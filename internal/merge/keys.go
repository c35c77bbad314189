// Package merge combines an accumulated profile record with a partial
// extraction, entity by entity, without ever destroying previously captured
// information. All entry points are pure: inputs are never mutated, identical
// inputs always produce identical output.
package merge

import (
	"strings"

	"github.com/jonathan/cv-profile-engine/internal/types"
)

// identityKey derives a fuzzy identity from discriminating parts:
// case-insensitive, trimmed, joined with a separator that cannot occur in
// normalized parts. Two records differing only by casing or whitespace get
// the same key.
func identityKey(parts ...string) string {
	normalized := make([]string, len(parts))
	empty := true
	for i, part := range parts {
		normalized[i] = strings.ToLower(strings.Join(strings.Fields(part), " "))
		if normalized[i] != "" {
			empty = false
		}
	}
	if empty {
		return ""
	}
	return strings.Join(normalized, "\x1f")
}

func experienceKey(e types.Experience) string {
	return identityKey(e.Poste, e.Entreprise, e.DateDebut)
}

func formationKey(f types.Formation) string {
	return identityKey(f.Etablissement, f.Annee)
}

func langueKey(l types.Langue) string {
	return identityKey(l.Langue)
}

func clientKey(c types.Client) string {
	return identityKey(c.Nom)
}

func certificationKey(c types.Certification) string {
	return identityKey(c.Nom)
}

func projetKey(p types.Projet) string {
	return identityKey(p.Nom)
}

func skillKey(s types.InferredSkill) string {
	return identityKey(s.Nom)
}
