package merge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-profile-engine/internal/normalize"
	"github.com/jonathan/cv-profile-engine/internal/types"
)

var mergeClock = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func existingRecord() types.ProfileRecord {
	return types.ProfileRecord{
		Profil: types.Profil{
			Nom:      "Jean Dupont",
			Titre:    "Consultant Data",
			PhotoURL: "storage:profile-photos:avatars/user-1/1.jpg",
		},
		Experiences: []types.Experience{
			{
				Poste:        "Consultant Data",
				Entreprise:   "Acme Conseil",
				DateDebut:    "2019-01",
				Realisations: []types.Realisation{{Texte: "Migration du SI vers le cloud"}},
				Technologies: []string{"Python"},
				Importance:   types.WeightImportant,
			},
		},
		Competences: types.Competences{
			Explicit: types.ExplicitSkills{Techniques: []string{"Python"}, SoftSkills: []string{"Rigueur"}},
			Inferred: []types.InferredSkill{
				{Nom: "Airflow", Confiance: 0.6, AddedToProfile: true},
			},
		},
		References: types.References{
			Clients: []types.Client{{Nom: "BNP Paribas"}},
		},
		RejectedInferred: []string{"Scrum"},
	}
}

func TestMerge_EmptyIncomingLosesNothing(t *testing.T) {
	existing := existingRecord()

	res := Merge(existing, types.ProfileRecord{}, Options{Now: mergeClock})

	assert.Equal(t, existing.Profil, res.Merged.Profil)
	assert.Equal(t, existing.Experiences, res.Merged.Experiences)
	assert.Equal(t, existing.References.Clients, res.Merged.References.Clients)
	assert.Equal(t, existing.RejectedInferred, res.Merged.RejectedInferred)
}

func TestMerge_AddsNewEntities(t *testing.T) {
	incoming := types.ProfileRecord{
		Experiences: []types.Experience{
			{Poste: "Lead Data Engineer", Entreprise: "Globex", DateDebut: "2022-06"},
		},
		Formations: []types.Formation{
			{Diplome: "Master Informatique", Etablissement: "Université de Lyon", Annee: "2015"},
		},
	}

	res := Merge(existingRecord(), incoming, Options{Now: mergeClock})

	require.Len(t, res.Merged.Experiences, 2)
	assert.Equal(t, "Globex", res.Merged.Experiences[1].Entreprise)
	require.Len(t, res.Merged.Formations, 1)
	assert.Equal(t, 2, res.History.Count(types.ActionAdded))
}

func TestMerge_SameIdentityDifferentCasingMerges(t *testing.T) {
	incoming := types.ProfileRecord{
		Experiences: []types.Experience{
			{
				Poste:        "  consultant data ",
				Entreprise:   "ACME CONSEIL",
				DateDebut:    "2019-01",
				DateFin:      "2023-12",
				Realisations: []types.Realisation{{Texte: "Mise en place d'un data lake"}},
				Technologies: []string{"Spark", "python"},
			},
		},
	}

	res := Merge(existingRecord(), incoming, Options{Now: mergeClock})

	require.Len(t, res.Merged.Experiences, 1)
	exp := res.Merged.Experiences[0]
	assert.Equal(t, "Consultant Data", exp.Poste) // existing casing kept
	assert.Equal(t, "2023-12", exp.DateFin)       // enriched from incoming
	assert.Equal(t, []string{"Python", "Spark"}, exp.Technologies)
	require.Len(t, exp.Realisations, 2)
	assert.Equal(t, types.WeightImportant, exp.Importance)
	assert.Equal(t, 1, res.History.Count(types.ActionMerged))
}

func TestMerge_ListItemsNeverDropped(t *testing.T) {
	incoming := types.ProfileRecord{
		Experiences: []types.Experience{
			{
				Poste:      "Consultant Data",
				Entreprise: "Acme Conseil",
				DateDebut:  "2019-01",
				// Incoming has no realisations and fewer technologies
			},
		},
	}

	res := Merge(existingRecord(), incoming, Options{Now: mergeClock})

	exp := res.Merged.Experiences[0]
	assert.Equal(t, []string{"Python"}, exp.Technologies)
	require.Len(t, exp.Realisations, 1)
	assert.Equal(t, "Migration du SI vers le cloud", exp.Realisations[0].Texte)
}

func TestMerge_ProfilIncomingNonEmptyWins(t *testing.T) {
	incoming := types.ProfileRecord{
		Profil: types.Profil{Titre: "Head of Data", Pitch: "15 ans d'expérience"},
	}

	res := Merge(existingRecord(), incoming, Options{Now: mergeClock})

	assert.Equal(t, "Head of Data", res.Merged.Profil.Titre)
	assert.Equal(t, "15 ans d'expérience", res.Merged.Profil.Pitch)
	assert.Equal(t, "Jean Dupont", res.Merged.Profil.Nom) // incoming silence keeps existing
}

func TestMerge_RejectedInferredIsMonotonic(t *testing.T) {
	incoming := types.ProfileRecord{RejectedInferred: []string{"Jira", "scrum"}}

	res := Merge(existingRecord(), incoming, Options{Now: mergeClock})

	assert.Equal(t, []string{"Scrum", "Jira"}, res.Merged.RejectedInferred)
}

func TestMerge_RejectedSuggestionDoesNotResurface(t *testing.T) {
	incoming := types.ProfileRecord{
		Competences: types.Competences{
			Inferred: []types.InferredSkill{
				{Nom: "Scrum", Confiance: 0.9},
				{Nom: "Terraform", Confiance: 0.7},
			},
		},
	}

	res := Merge(existingRecord(), incoming, Options{Now: mergeClock})

	names := make([]string, 0, len(res.Merged.Competences.Inferred))
	for _, s := range res.Merged.Competences.Inferred {
		names = append(names, s.Nom)
	}
	assert.NotContains(t, names, "Scrum")
	assert.Contains(t, names, "Terraform")
	assert.Equal(t, 1, res.History.Count(types.ActionDropped))
}

func TestMerge_RejectionInSamePassBlocksSuggestion(t *testing.T) {
	incoming := types.ProfileRecord{
		RejectedInferred: []string{"Terraform"},
		Competences: types.Competences{
			Inferred: []types.InferredSkill{{Nom: "terraform", Confiance: 0.9}},
		},
	}

	res := Merge(existingRecord(), incoming, Options{Now: mergeClock})

	for _, s := range res.Merged.Competences.Inferred {
		assert.NotEqual(t, "terraform", s.Nom)
		assert.NotEqual(t, "Terraform", s.Nom)
	}
}

func TestMerge_InferredAcceptanceNeverFlipsBack(t *testing.T) {
	incoming := types.ProfileRecord{
		Competences: types.Competences{
			Inferred: []types.InferredSkill{
				{Nom: "airflow", Confiance: 0.9, Sources: []string{"mission.pdf"}},
			},
		},
	}

	res := Merge(existingRecord(), incoming, Options{Now: mergeClock})

	require.Len(t, res.Merged.Competences.Inferred, 1)
	merged := res.Merged.Competences.Inferred[0]
	assert.True(t, merged.AddedToProfile)
	assert.Equal(t, 0.9, merged.Confiance) // confidence only goes up
	assert.Equal(t, []string{"mission.pdf"}, merged.Sources)
}

func TestMerge_ExplicitSkillsUnion(t *testing.T) {
	incoming := types.ProfileRecord{
		Competences: types.Competences{
			Explicit: types.ExplicitSkills{Techniques: []string{"python", "Go"}, SoftSkills: []string{"rigueur", "Pédagogie"}},
		},
	}

	res := Merge(existingRecord(), incoming, Options{Now: mergeClock})

	assert.Equal(t, []string{"Python", "Go"}, res.Merged.Competences.Explicit.Techniques)
	assert.Equal(t, []string{"Rigueur", "Pédagogie"}, res.Merged.Competences.Explicit.SoftSkills)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	existing := existingRecord()
	incoming := types.ProfileRecord{
		Experiences: []types.Experience{
			{Poste: "Consultant Data", Entreprise: "Acme Conseil", DateDebut: "2019-01", Technologies: []string{"Spark"}},
		},
	}
	existingBefore := cloneRecord(existing)
	incomingBefore := cloneRecord(incoming)

	Merge(existing, incoming, Options{Now: mergeClock})

	assert.Equal(t, existingBefore, existing)
	assert.Equal(t, incomingBefore, incoming)
}

func TestMerge_Deterministic(t *testing.T) {
	existing := existingRecord()
	incoming := types.ProfileRecord{
		Experiences: []types.Experience{
			{Poste: "Lead Dev", Entreprise: "Globex", DateDebut: "2021-01"},
			{Poste: "Consultant Data", Entreprise: "Acme Conseil", DateDebut: "2019-01"},
		},
		Langues: []types.Langue{{Langue: "Anglais", Niveau: "C1"}, {Langue: "Espagnol"}},
	}

	a := Merge(existing, incoming, Options{Now: mergeClock})
	b := Merge(existing, incoming, Options{Now: mergeClock})

	assert.Equal(t, a.Merged, b.Merged)
	assert.Equal(t, a.History.Lines, b.History.Lines)
}

func TestMerge_WarningsLandInHistory(t *testing.T) {
	warns := []normalize.Warning{{Field: "experiences", Message: "expected array; treated as empty"}}

	res := Merge(existingRecord(), types.ProfileRecord{}, Options{Now: mergeClock, Warnings: warns})

	require.Equal(t, 1, res.History.Count(types.ActionWarning))
	assert.Equal(t, "experiences", res.History.Lines[0].Section)
}

func TestMerge_HistoryMetadata(t *testing.T) {
	res := Merge(types.ProfileRecord{}, types.ProfileRecord{}, Options{
		UserID: "user-42",
		Source: "cv_jean.pdf",
		Now:    mergeClock,
	})

	assert.Equal(t, "user-42", res.History.UserID)
	assert.Equal(t, "cv_jean.pdf", res.History.Source)
	assert.Equal(t, mergeClock, res.History.Timestamp)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", res.History.ID.String())
}

func TestMerge_ExistingDuplicatesCollapse(t *testing.T) {
	existing := types.ProfileRecord{
		Langues: []types.Langue{
			{Langue: "Anglais", Niveau: "B2"},
			{Langue: "anglais ", Niveau: ""},
		},
	}

	res := Merge(existing, types.ProfileRecord{}, Options{Now: mergeClock})

	require.Len(t, res.Merged.Langues, 1)
	assert.Equal(t, "B2", res.Merged.Langues[0].Niveau)
}

func TestMerge_EntityWithoutIdentitySkipped(t *testing.T) {
	incoming := types.ProfileRecord{
		Experiences: []types.Experience{{Description: "aucune identité"}},
	}

	res := Merge(existingRecord(), incoming, Options{Now: mergeClock})

	require.Len(t, res.Merged.Experiences, 1)
	assert.Equal(t, 1, res.History.Count(types.ActionDropped))
}
