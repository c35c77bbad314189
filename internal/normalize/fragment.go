package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/cv-profile-engine/internal/types"
)

// Warning flags a data-quality issue found while decoding a fragment. The
// decode itself never fails; warnings end up in the merge history entry.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// canonicalFields are the top-level keys that belong to the profile record.
// Everything else on an incoming payload is projected away.
var canonicalFields = map[string]struct{}{
	"profil": {}, "experiences": {}, "competences": {},
	"formations": {}, "langues": {}, "references": {},
	"certifications": {}, "projets": {}, "rejected_inferred": {},
}

// DecodeFragment decodes an incoming partial profile payload of unknown or
// legacy shape into the canonical record. Malformed sub-fields become empty
// contributions and unknown top-level keys are dropped; both are reported as
// warnings, never as errors.
func DecodeFragment(raw []byte) (*types.ProfileRecord, []Warning) {
	var warns []Warning
	rec := &types.ProfileRecord{}

	if len(raw) == 0 {
		return rec, warns
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		warns = append(warns, Warning{Field: "", Message: "payload is not a JSON object; treated as empty"})
		return rec, warns
	}

	for key := range top {
		if _, ok := canonicalFields[key]; !ok {
			warns = append(warns, Warning{Field: key, Message: "unknown field dropped"})
		}
	}

	rec.Profil = decodeProfil(top["profil"], &warns)
	rec.Experiences = decodeList[types.Experience](top["experiences"], "experiences", &warns)
	rec.Competences = NormalizeCompetences(top["competences"], &warns)
	rec.Formations = decodeList[types.Formation](top["formations"], "formations", &warns)
	rec.Langues = decodeList[types.Langue](top["langues"], "langues", &warns)
	rec.References = decodeReferences(top["references"], &warns)
	rec.Certifications = decodeList[types.Certification](top["certifications"], "certifications", &warns)
	rec.Projets = decodeList[types.Projet](top["projets"], "projets", &warns)
	rec.RejectedInferred = decodeStringList(top["rejected_inferred"])

	return rec, warns
}

// decodeProfil decodes the singleton block field by field so one mistyped
// value does not discard the rest.
func decodeProfil(raw json.RawMessage, warns *[]Warning) types.Profil {
	var p types.Profil
	obj, ok := asObject(raw)
	if !ok {
		if len(raw) > 0 && string(raw) != "null" {
			*warns = append(*warns, Warning{Field: "profil", Message: "expected object; treated as empty"})
		}
		return p
	}

	p.Nom = decodeString(obj["nom"])
	p.Titre = decodeString(obj["titre"])
	p.Localisation = decodeString(obj["localisation"])
	p.Pitch = decodeString(obj["pitch"])
	p.PhotoURL = decodeString(obj["photo_url"])
	p.Email = decodeString(obj["email"])
	p.Telephone = decodeString(obj["telephone"])
	p.LinkedIn = decodeString(obj["linkedin"])
	return p
}

// decodeReferences accepts either {clients: [...]} or, from older payloads,
// a bare array of clients.
func decodeReferences(raw json.RawMessage, warns *[]Warning) types.References {
	var refs types.References
	if len(raw) == 0 || string(raw) == "null" {
		return refs
	}

	if obj, ok := asObject(raw); ok {
		refs.Clients = decodeList[types.Client](obj["clients"], "references.clients", warns)
		return refs
	}

	refs.Clients = decodeList[types.Client](raw, "references", warns)
	return refs
}

// decodeList decodes a JSON array element by element, skipping entries that
// do not match the target shape. A non-array value yields nil plus a warning.
func decodeList[T any](raw json.RawMessage, field string, warns *[]Warning) []T {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		*warns = append(*warns, Warning{Field: field, Message: "expected array; treated as empty"})
		return nil
	}

	out := make([]T, 0, len(elems))
	for i, elem := range elems {
		var v T
		if err := json.Unmarshal(elem, &v); err != nil {
			*warns = append(*warns, Warning{Field: field, Message: fmt.Sprintf("entry %d has wrong shape; skipped", i)})
			continue
		}
		out = append(out, v)
	}
	return out
}

// decodeString accepts a JSON string, silently yielding "" for anything else.
func decodeString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// decodeStringList accepts an array of strings, keeping only string entries.
// A bare string becomes a single-element list.
func decodeStringList(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err == nil {
		out := make([]string, 0, len(elems))
		for _, elem := range elems {
			var s string
			if err := json.Unmarshal(elem, &s); err == nil {
				out = append(out, s)
			}
		}
		return out
	}

	if s := decodeString(raw); s != "" {
		return []string{s}
	}
	return nil
}

func asObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	return obj, true
}
