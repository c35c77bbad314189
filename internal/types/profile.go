// Package types provides type definitions for the accumulated profile record
// and the partial fragments produced by document extraction.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Inclusion weights for experiences on the rendered CV.
const (
	WeightImportant = "important"
	WeightInclus    = "inclus"
	WeightExclu     = "exclu"
)

// ProfileRecord is the accumulated professional profile for one user.
// It is only ever mutated through the merge engine; fields carry the
// French wire names used by the extraction service and the renderer.
type ProfileRecord struct {
	Profil           Profil          `json:"profil"`
	Experiences      []Experience    `json:"experiences"`
	Competences      Competences     `json:"competences"`
	Formations       []Formation     `json:"formations"`
	Langues          []Langue        `json:"langues"`
	References       References      `json:"references"`
	Certifications   []Certification `json:"certifications"`
	Projets          []Projet        `json:"projets"`
	RejectedInferred []string        `json:"rejected_inferred,omitempty"`
}

// Profil holds the singleton personal fields. Empty string means absent.
type Profil struct {
	Nom          string `json:"nom,omitempty"`
	Titre        string `json:"titre,omitempty"`
	Localisation string `json:"localisation,omitempty"`
	Pitch        string `json:"pitch,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
	Email        string `json:"email,omitempty"`
	Telephone    string `json:"telephone,omitempty"`
	LinkedIn     string `json:"linkedin,omitempty"`
}

// Experience is one work experience entry. Identity for dedup is the
// normalized (Poste, Entreprise, DateDebut) triple.
type Experience struct {
	Poste        string        `json:"poste,omitempty"`
	Entreprise   string        `json:"entreprise,omitempty"`
	Lieu         string        `json:"lieu,omitempty"`
	DateDebut    string        `json:"date_debut,omitempty"`
	DateFin      string        `json:"date_fin,omitempty"`
	Description  string        `json:"description,omitempty"`
	Realisations []Realisation `json:"realisations,omitempty"`
	Technologies []string      `json:"technologies,omitempty"`
	Importance   string        `json:"importance,omitempty"` // important | inclus | exclu
}

// Realisation is an achievement bullet under an experience.
type Realisation struct {
	Texte    string `json:"texte"`
	Metrique string `json:"metrique,omitempty"`
}

// Formation is a degree or training entry, keyed by institution + year.
type Formation struct {
	Diplome       string `json:"diplome,omitempty"`
	Etablissement string `json:"etablissement,omitempty"`
	Annee         string `json:"annee,omitempty"`
	Lieu          string `json:"lieu,omitempty"`
}

// Langue is a spoken language with proficiency level.
type Langue struct {
	Langue string `json:"langue"`
	Niveau string `json:"niveau,omitempty"`
}

// References groups curated reference lists. Clients is a sticky field:
// regeneration never empties it implicitly.
type References struct {
	Clients []Client `json:"clients,omitempty"`
}

// Client is a curated client reference, keyed by normalized name.
type Client struct {
	Nom        string `json:"nom"`
	Secteur    string `json:"secteur,omitempty"`
	Contact    string `json:"contact,omitempty"`
	Temoignage string `json:"temoignage,omitempty"`
}

// Certification is keyed by normalized name.
type Certification struct {
	Nom       string `json:"nom"`
	Organisme string `json:"organisme,omitempty"`
	Annee     string `json:"annee,omitempty"`
}

// Projet is a side or client project, keyed by normalized name.
type Projet struct {
	Nom          string   `json:"nom"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Lien         string   `json:"lien,omitempty"`
}
