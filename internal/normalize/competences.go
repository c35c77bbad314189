package normalize

import (
	"encoding/json"
	"strings"

	"github.com/jonathan/cv-profile-engine/internal/types"
)

// skillNormalizations maps common skill name variants to canonical names.
var skillNormalizations = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
}

// NormalizeCompetences accepts the canonical {explicit, inferred} shape, the
// legacy flat {techniques, soft_skills} shape, or nothing, and always returns
// the canonical shape with empty slices for missing sub-fields. Legacy data
// populates explicit only: it carries no confidence or provenance, so it can
// never masquerade as inferred. Shape problems are appended to warns.
func NormalizeCompetences(raw json.RawMessage, warns *[]Warning) types.Competences {
	out := types.Competences{
		Explicit: types.ExplicitSkills{Techniques: []string{}, SoftSkills: []string{}},
		Inferred: []types.InferredSkill{},
	}

	obj, ok := asObject(raw)
	if !ok {
		if len(raw) > 0 && string(raw) != "null" {
			*warns = append(*warns, Warning{Field: "competences", Message: "expected object; treated as empty"})
		}
		return out
	}

	if explicit, hasNew := asObject(obj["explicit"]); hasNew {
		out.Explicit.Techniques = cleanSkillList(decodeStringList(explicit["techniques"]))
		out.Explicit.SoftSkills = cleanStringList(decodeStringList(explicit["soft_skills"]))
	} else {
		// Legacy flat shape: techniques/soft_skills at the top level.
		out.Explicit.Techniques = cleanSkillList(decodeStringList(obj["techniques"]))
		out.Explicit.SoftSkills = cleanStringList(decodeStringList(obj["soft_skills"]))
	}

	for _, skill := range decodeList[types.InferredSkill](obj["inferred"], "competences.inferred", warns) {
		skill.Nom = strings.TrimSpace(skill.Nom)
		if skill.Nom == "" {
			continue
		}
		out.Inferred = append(out.Inferred, skill)
	}

	return out
}

// NormalizeSkillName maps a skill to its canonical spelling, trimming
// whitespace and resolving known variants case-insensitively.
func NormalizeSkillName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	if canonical, ok := skillNormalizations[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// cleanSkillList trims, canonicalizes, and deduplicates skill names,
// keeping first-seen order.
func cleanSkillList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		normalized := NormalizeSkillName(item)
		if normalized == "" {
			continue
		}
		key := strings.ToLower(normalized)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, normalized)
	}
	return out
}

// cleanStringList trims and deduplicates case-insensitively, keeping
// first-seen order.
func cleanStringList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
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
	return out
}
