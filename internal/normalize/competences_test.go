package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCompetences_NewShapePassesThrough(t *testing.T) {
	raw := json.RawMessage(`{
		"explicit": {"techniques": ["Go", "PostgreSQL"], "soft_skills": ["Rigueur"]},
		"inferred": [{"nom": "Kubernetes", "categorie": "outil", "confiance": 0.8, "raisonnement": "mentions de clusters", "sources": ["cv.pdf"]}]
	}`)

	var warns []Warning
	c := NormalizeCompetences(raw, &warns)

	assert.Equal(t, []string{"Go", "PostgreSQL"}, c.Explicit.Techniques)
	assert.Equal(t, []string{"Rigueur"}, c.Explicit.SoftSkills)
	require.Len(t, c.Inferred, 1)
	assert.Equal(t, "Kubernetes", c.Inferred[0].Nom)
	assert.Equal(t, 0.8, c.Inferred[0].Confiance)
	assert.Equal(t, []string{"cv.pdf"}, c.Inferred[0].Sources)
	assert.False(t, c.Inferred[0].AddedToProfile)
	assert.Empty(t, warns)
}

func TestNormalizeCompetences_LegacyFlatShape(t *testing.T) {
	raw := json.RawMessage(`{"techniques": ["golang", "React.js"], "soft_skills": ["Communication"]}`)

	var warns []Warning
	c := NormalizeCompetences(raw, &warns)

	// Legacy data has no confidence or provenance, so it can only be explicit
	assert.Equal(t, []string{"Go", "React"}, c.Explicit.Techniques)
	assert.Equal(t, []string{"Communication"}, c.Explicit.SoftSkills)
	assert.Empty(t, c.Inferred)
	assert.Empty(t, warns)
}

func TestNormalizeCompetences_MissingInput(t *testing.T) {
	for _, raw := range []json.RawMessage{nil, json.RawMessage(`null`)} {
		var warns []Warning
		c := NormalizeCompetences(raw, &warns)

		assert.NotNil(t, c.Explicit.Techniques)
		assert.NotNil(t, c.Explicit.SoftSkills)
		assert.NotNil(t, c.Inferred)
		assert.True(t, c.IsEmpty())
		assert.Empty(t, warns)
	}
}

func TestNormalizeCompetences_WrongShapeWarns(t *testing.T) {
	for _, raw := range []json.RawMessage{json.RawMessage(`"oops"`), json.RawMessage(`[]`), json.RawMessage(`42`)} {
		var warns []Warning
		c := NormalizeCompetences(raw, &warns)

		assert.True(t, c.IsEmpty())
		require.Len(t, warns, 1, "input %s", raw)
		assert.Equal(t, "competences", warns[0].Field)
	}
}

func TestNormalizeCompetences_MalformedInferredEntryWarns(t *testing.T) {
	raw := json.RawMessage(`{"explicit": {}, "inferred": ["not-an-object", {"nom": "Docker"}]}`)

	var warns []Warning
	c := NormalizeCompetences(raw, &warns)

	require.Len(t, c.Inferred, 1)
	assert.Equal(t, "Docker", c.Inferred[0].Nom)
	require.Len(t, warns, 1)
	assert.Equal(t, "competences.inferred", warns[0].Field)
}

func TestNormalizeCompetences_DeduplicatesVariants(t *testing.T) {
	raw := json.RawMessage(`{"techniques": ["Go", "golang", "k8s", "Kubernetes", "  "], "soft_skills": []}`)

	var warns []Warning
	c := NormalizeCompetences(raw, &warns)

	assert.Equal(t, []string{"Go", "Kubernetes"}, c.Explicit.Techniques)
}

func TestNormalizeCompetences_DropsNamelessInferred(t *testing.T) {
	raw := json.RawMessage(`{"explicit": {}, "inferred": [{"nom": "  "}, {"nom": "Docker"}]}`)

	var warns []Warning
	c := NormalizeCompetences(raw, &warns)

	require.Len(t, c.Inferred, 1)
	assert.Equal(t, "Docker", c.Inferred[0].Nom)
}

func TestNormalizeSkillName_KnownVariants(t *testing.T) {
	assert.Equal(t, "Go", NormalizeSkillName(" golang "))
	assert.Equal(t, "JavaScript", NormalizeSkillName("JS"))
	assert.Equal(t, "Terraform", NormalizeSkillName("Terraform"))
	assert.Equal(t, "", NormalizeSkillName("   "))
}
