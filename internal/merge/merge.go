package merge

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/cv-profile-engine/internal/normalize"
	"github.com/jonathan/cv-profile-engine/internal/types"
)

// Options configures one merge pass.
type Options struct {
	UserID string
	Source string // e.g. source document name, recorded on the history entry
	Now    time.Time
	// Warnings collected while decoding the incoming fragment; logged on the
	// history entry so data-quality issues stay auditable without failing
	// the merge.
	Warnings []normalize.Warning
}

// Result is the outcome of a merge pass: the new record plus the write-once
// audit entry describing every decision taken.
type Result struct {
	Merged  types.ProfileRecord
	History *types.MergeHistoryEntry
}

// Merge combines an existing accumulated record with an incoming partial
// extraction. Neither input is mutated. Every entity present in existing
// survives in the output, as itself or as a superset merge; incoming-only
// entities are added; rejected_inferred only ever grows.
func Merge(existing, incoming types.ProfileRecord, opts Options) Result {
	at := opts.Now
	if at.IsZero() {
		at = time.Now().UTC()
	}
	hist := types.NewMergeHistoryEntry(opts.UserID, opts.Source, at)
	for _, w := range opts.Warnings {
		hist.Add(w.Field, types.ActionWarning, "", w.Message)
	}

	out := cloneRecord(existing)
	inc := cloneRecord(incoming)

	out.Profil = mergeProfil(out.Profil, inc.Profil, hist)
	out.Experiences = mergeKeyed("experiences", out.Experiences, inc.Experiences, experienceKey, combineExperience, hist)
	out.Formations = mergeKeyed("formations", out.Formations, inc.Formations, formationKey, combineFormation, hist)
	out.Langues = mergeKeyed("langues", out.Langues, inc.Langues, langueKey, combineLangue, hist)
	out.References.Clients = mergeKeyed("references.clients", out.References.Clients, inc.References.Clients, clientKey, combineClient, hist)
	out.Certifications = mergeKeyed("certifications", out.Certifications, inc.Certifications, certificationKey, combineCertification, hist)
	out.Projets = mergeKeyed("projets", out.Projets, inc.Projets, projetKey, combineProjet, hist)

	// rejected_inferred is unioned before inferred skills are merged so a
	// suggestion rejected in this same pass cannot resurface either.
	out.RejectedInferred = unionStrings(out.RejectedInferred, inc.RejectedInferred)
	out.Competences = mergeCompetences(out.Competences, inc.Competences, out.RejectedInferred, hist)

	return Result{Merged: out, History: hist}
}

// mergeProfil applies field-wise overwrite-if-present precedence to the
// singleton block. Sticky photo handling happens in the guard before the
// fragment reaches this point.
func mergeProfil(existing, incoming types.Profil, hist *types.MergeHistoryEntry) types.Profil {
	out := existing
	fields := []struct {
		name string
		dst  *string
		inc  string
	}{
		{"nom", &out.Nom, incoming.Nom},
		{"titre", &out.Titre, incoming.Titre},
		{"localisation", &out.Localisation, incoming.Localisation},
		{"pitch", &out.Pitch, incoming.Pitch},
		{"photo_url", &out.PhotoURL, incoming.PhotoURL},
		{"email", &out.Email, incoming.Email},
		{"telephone", &out.Telephone, incoming.Telephone},
		{"linkedin", &out.LinkedIn, incoming.LinkedIn},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.inc) == "" || f.inc == *f.dst {
			continue
		}
		if *f.dst == "" {
			hist.Add("profil", types.ActionAdded, f.name, "")
		} else {
			hist.Add("profil", types.ActionMerged, f.name, "replaced by incoming value")
		}
		*f.dst = f.inc
	}
	return out
}

func combineExperience(old, inc types.Experience) types.Experience {
	out := old
	out.Poste = preferComplete(old.Poste, inc.Poste)
	out.Entreprise = preferComplete(old.Entreprise, inc.Entreprise)
	out.Lieu = preferComplete(old.Lieu, inc.Lieu)
	out.DateDebut = preferComplete(old.DateDebut, inc.DateDebut)
	out.DateFin = preferComplete(old.DateFin, inc.DateFin)
	out.Description = preferComplete(old.Description, inc.Description)
	out.Realisations = unionRealisations(old.Realisations, inc.Realisations)
	out.Technologies = unionStrings(old.Technologies, inc.Technologies)
	out.Importance = preferComplete(old.Importance, inc.Importance)
	return out
}

func combineFormation(old, inc types.Formation) types.Formation {
	out := old
	out.Diplome = preferComplete(old.Diplome, inc.Diplome)
	out.Etablissement = preferComplete(old.Etablissement, inc.Etablissement)
	out.Annee = preferComplete(old.Annee, inc.Annee)
	out.Lieu = preferComplete(old.Lieu, inc.Lieu)
	return out
}

func combineLangue(old, inc types.Langue) types.Langue {
	out := old
	out.Langue = preferComplete(old.Langue, inc.Langue)
	out.Niveau = preferComplete(old.Niveau, inc.Niveau)
	return out
}

func combineClient(old, inc types.Client) types.Client {
	out := old
	out.Nom = preferComplete(old.Nom, inc.Nom)
	out.Secteur = preferComplete(old.Secteur, inc.Secteur)
	out.Contact = preferComplete(old.Contact, inc.Contact)
	out.Temoignage = preferComplete(old.Temoignage, inc.Temoignage)
	return out
}

func combineCertification(old, inc types.Certification) types.Certification {
	out := old
	out.Nom = preferComplete(old.Nom, inc.Nom)
	out.Organisme = preferComplete(old.Organisme, inc.Organisme)
	out.Annee = preferComplete(old.Annee, inc.Annee)
	return out
}

func combineProjet(old, inc types.Projet) types.Projet {
	out := old
	out.Nom = preferComplete(old.Nom, inc.Nom)
	out.Description = preferComplete(old.Description, inc.Description)
	out.Technologies = unionStrings(old.Technologies, inc.Technologies)
	out.Lien = preferComplete(old.Lien, inc.Lien)
	return out
}

// mergeCompetences unions explicit skills and merges inferred suggestions by
// normalized name. A suggestion whose name appears in rejected never enters
// the merged record from the incoming side.
func mergeCompetences(existing, incoming types.Competences, rejected []string, hist *types.MergeHistoryEntry) types.Competences {
	out := existing
	out.Explicit.Techniques = unionStrings(existing.Explicit.Techniques, incoming.Explicit.Techniques)
	out.Explicit.SoftSkills = unionStrings(existing.Explicit.SoftSkills, incoming.Explicit.SoftSkills)

	rejectedKeys := make(map[string]struct{}, len(rejected))
	for _, name := range rejected {
		rejectedKeys[identityKey(name)] = struct{}{}
	}

	filtered := make([]types.InferredSkill, 0, len(incoming.Inferred))
	for _, skill := range incoming.Inferred {
		if _, isRejected := rejectedKeys[skillKey(skill)]; isRejected {
			hist.Add("competences.inferred", types.ActionDropped, skillKey(skill),
				fmt.Sprintf("suggestion %q was rejected by the user", skill.Nom))
			continue
		}
		filtered = append(filtered, skill)
	}

	out.Inferred = mergeKeyed("competences.inferred", existing.Inferred, filtered, skillKey, combineInferredSkill, hist)
	return out
}

func combineInferredSkill(old, inc types.InferredSkill) types.InferredSkill {
	out := old
	out.Nom = preferComplete(old.Nom, inc.Nom)
	out.Categorie = preferComplete(old.Categorie, inc.Categorie)
	if inc.Confiance > out.Confiance {
		out.Confiance = inc.Confiance
	}
	out.Raisonnement = preferComplete(old.Raisonnement, inc.Raisonnement)
	out.Sources = unionStrings(old.Sources, inc.Sources)
	// Acceptance is a user action; it never flips back off through merge.
	out.AddedToProfile = old.AddedToProfile || inc.AddedToProfile
	return out
}
