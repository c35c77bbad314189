package merge

import "github.com/jonathan/cv-profile-engine/internal/types"

// cloneRecord deep-copies a profile record so merge output never aliases
// the caller's slices.
func cloneRecord(r types.ProfileRecord) types.ProfileRecord {
	out := r
	out.Experiences = cloneExperiences(r.Experiences)
	out.Competences = cloneCompetences(r.Competences)
	out.Formations = append([]types.Formation(nil), r.Formations...)
	out.Langues = append([]types.Langue(nil), r.Langues...)
	out.References.Clients = append([]types.Client(nil), r.References.Clients...)
	out.Certifications = append([]types.Certification(nil), r.Certifications...)
	out.Projets = cloneProjets(r.Projets)
	out.RejectedInferred = append([]string(nil), r.RejectedInferred...)
	return out
}

func cloneExperiences(in []types.Experience) []types.Experience {
	if in == nil {
		return nil
	}
	out := make([]types.Experience, len(in))
	for i, e := range in {
		out[i] = e
		out[i].Realisations = append([]types.Realisation(nil), e.Realisations...)
		out[i].Technologies = append([]string(nil), e.Technologies...)
	}
	return out
}

func cloneCompetences(in types.Competences) types.Competences {
	out := in
	out.Explicit.Techniques = append([]string(nil), in.Explicit.Techniques...)
	out.Explicit.SoftSkills = append([]string(nil), in.Explicit.SoftSkills...)
	if in.Inferred != nil {
		out.Inferred = make([]types.InferredSkill, len(in.Inferred))
		for i, s := range in.Inferred {
			out.Inferred[i] = s
			out.Inferred[i].Sources = append([]string(nil), s.Sources...)
		}
	}
	return out
}

func cloneProjets(in []types.Projet) []types.Projet {
	if in == nil {
		return nil
	}
	out := make([]types.Projet, len(in))
	for i, p := range in {
		out[i] = p
		out[i].Technologies = append([]string(nil), p.Technologies...)
	}
	return out
}
