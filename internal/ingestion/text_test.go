package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-profile-engine/internal/normalize"
)

func TestCleanText_NormalizesLineEndingsAndWhitespace(t *testing.T) {
	out := CleanText("ligne   une\r\nligne\tdeux\r\r\n\n\n\nligne trois")

	assert.Equal(t, "ligne une\nligne deux\n\nligne trois", out)
}

func TestCleanText_AppliesSanitization(t *testing.T) {
	out := CleanText("a accompagné 12clients etde 3équipes")

	assert.Equal(t, "a accompagné 12 clients et de 3 équipes", out)
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("   \n\n  "))
}

func TestReadDocument_TxtFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.txt")
	require.NoError(t, os.WriteFile(path, []byte("Jean Dupont\nConsultant Data\n"), 0o600))

	doc, err := ReadDocument(path, "")

	require.NoError(t, err)
	assert.Equal(t, normalize.DocTXT, doc.Type)
	assert.Equal(t, "cv.txt", doc.Filename)
	assert.Equal(t, "Jean Dupont\nConsultant Data", doc.Text)
	require.NotNil(t, doc.Meta)
	assert.NotEmpty(t, doc.Meta.Hash)
	assert.Equal(t, len(doc.Text), doc.Meta.Chars)
}

func TestReadDocument_UnsupportedType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.docx")
	require.NoError(t, os.WriteFile(path, []byte("binary"), 0o600))

	_, err := ReadDocument(path, "")

	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, normalize.DocDOCX, unsupported.Type)
}

func TestReadDocument_EmptyTextFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vide.txt")
	require.NoError(t, os.WriteFile(path, []byte("  \n \n"), 0o600))

	_, err := ReadDocument(path, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no extractable text")
}

func TestNewMetadata_HashIsStable(t *testing.T) {
	a := NewMetadata("contenu", "cv.txt", normalize.DocTXT)
	b := NewMetadata("contenu", "cv.txt", normalize.DocTXT)

	assert.Equal(t, a.Hash, b.Hash)
	assert.NotEqual(t, a.Hash, NewMetadata("autre contenu", "cv.txt", normalize.DocTXT).Hash)
}
