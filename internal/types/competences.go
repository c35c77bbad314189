package types

// Inferred skill categories.
const (
	CategorieTechnique = "technique"
	CategorieOutil     = "outil"
	CategorieSoftSkill = "soft_skill"
)

// Competences is the canonical skills shape. Legacy flat payloads
// (top-level techniques/soft_skills arrays) are converted into the
// Explicit half by the normalizer before they reach the merge engine.
type Competences struct {
	Explicit ExplicitSkills  `json:"explicit"`
	Inferred []InferredSkill `json:"inferred"`
}

// ExplicitSkills are directly asserted by the user or the source document.
type ExplicitSkills struct {
	Techniques []string `json:"techniques"`
	SoftSkills []string `json:"soft_skills"`
}

// InferredSkill is an AI-suggested competence with provenance. It only
// appears on the profile once the user accepts it (AddedToProfile).
type InferredSkill struct {
	Nom            string   `json:"nom"`
	Categorie      string   `json:"categorie,omitempty"`
	Confiance      float64  `json:"confiance,omitempty"`
	Raisonnement   string   `json:"raisonnement,omitempty"`
	Sources        []string `json:"sources,omitempty"`
	AddedToProfile bool     `json:"addedToProfile"`
}

// IsEmpty reports whether no skill data is present at all.
func (c Competences) IsEmpty() bool {
	return len(c.Explicit.Techniques) == 0 &&
		len(c.Explicit.SoftSkills) == 0 &&
		len(c.Inferred) == 0
}
