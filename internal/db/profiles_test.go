package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-profile-engine/internal/types"
)

func TestDecodeStoredRecord_SeededPlaceholderMeansNoProfile(t *testing.T) {
	// UpdateProfile seeds missing rows with JSON null before locking them,
	// so both forms must read back as "no profile yet".
	for _, content := range [][]byte{nil, []byte("null")} {
		record, err := decodeStoredRecord(content)
		require.NoError(t, err)
		assert.Nil(t, record)
	}
}

func TestDecodeStoredRecord_RealRecordRoundTrips(t *testing.T) {
	record, err := decodeStoredRecord([]byte(`{"profil": {"nom": "Jean Dupont"}}`))
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "Jean Dupont", record.Profil.Nom)
}

func TestDecodeStoredRecord_CorruptJSONFails(t *testing.T) {
	_, err := decodeStoredRecord([]byte(`{not json`))
	require.Error(t, err)
}

func TestHistoryLineCount(t *testing.T) {
	assert.Equal(t, 0, historyLineCount(nil))

	entry := types.NewMergeHistoryEntry("user-1", "cv.pdf", time.Now())
	entry.Add("experiences", types.ActionAdded, "key", "")
	entry.Add("profil", types.ActionMerged, "titre", "")

	assert.Equal(t, 2, historyLineCount(entry))
}
