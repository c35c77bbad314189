package sticky

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-profile-engine/internal/types"
)

func TestParsePhotoRef_Classification(t *testing.T) {
	ref := ParsePhotoRef("storage:profile-photos:avatars/user-1/1.jpg")
	assert.Equal(t, RefDurable, ref.Kind)
	assert.Equal(t, "profile-photos", ref.Bucket)
	assert.Equal(t, "avatars/user-1/1.jpg", ref.Path)

	assert.Equal(t, RefTransient, ParsePhotoRef("https://signed.example.com/photo.jpg?token=abc").Kind)
	assert.Equal(t, RefEmpty, ParsePhotoRef("   ").Kind)
	// Prefix alone is not enough; a durable reference needs bucket and path
	assert.Equal(t, RefTransient, ParsePhotoRef("storage:").Kind)
	assert.Equal(t, RefTransient, ParsePhotoRef("storage:bucket-only").Kind)
}

func TestApplyStickyFields_TransientNeverDisplacesDurable(t *testing.T) {
	existing := types.ProfileRecord{
		Profil: types.Profil{PhotoURL: "storage:profile-photos:avatars/user-1/1.jpg"},
	}
	incoming := types.ProfileRecord{
		Profil: types.Profil{PhotoURL: "https://signed.example.com/photo.jpg?token=abc"},
	}

	out, kept := ApplyStickyFields(existing, incoming)

	assert.Equal(t, "storage:profile-photos:avatars/user-1/1.jpg", out.Profil.PhotoURL)
	require.Len(t, kept, 1)
	assert.Equal(t, "profil.photo_url", kept[0].Field)
}

func TestApplyStickyFields_LastDurableWins(t *testing.T) {
	existing := types.ProfileRecord{
		Profil: types.Profil{PhotoURL: "storage:profile-photos:avatars/user-1/1.jpg"},
	}
	incoming := types.ProfileRecord{
		Profil: types.Profil{PhotoURL: "storage:profile-photos:avatars/user-1/2.jpg"},
	}

	out, kept := ApplyStickyFields(existing, incoming)

	assert.Equal(t, "storage:profile-photos:avatars/user-1/2.jpg", out.Profil.PhotoURL)
	assert.Empty(t, kept)
}

func TestApplyStickyFields_TransientFillsEmptyExisting(t *testing.T) {
	incoming := types.ProfileRecord{
		Profil: types.Profil{PhotoURL: "https://signed.example.com/photo.jpg"},
	}

	out, kept := ApplyStickyFields(types.ProfileRecord{}, incoming)

	assert.Equal(t, "https://signed.example.com/photo.jpg", out.Profil.PhotoURL)
	assert.Empty(t, kept)
}

func TestApplyStickyFields_TransientExistingNotDisplacedByTransient(t *testing.T) {
	existing := types.ProfileRecord{
		Profil: types.Profil{PhotoURL: "https://old.example.com/a.jpg"},
	}
	incoming := types.ProfileRecord{
		Profil: types.Profil{PhotoURL: "https://new.example.com/b.jpg"},
	}

	out, kept := ApplyStickyFields(existing, incoming)

	assert.Equal(t, "https://old.example.com/a.jpg", out.Profil.PhotoURL)
	require.Len(t, kept, 1)
}

func TestApplyStickyFields_DoesNotMutateIncoming(t *testing.T) {
	existing := types.ProfileRecord{
		Profil: types.Profil{PhotoURL: "storage:profile-photos:avatars/user-1/1.jpg"},
	}
	incoming := types.ProfileRecord{
		Profil: types.Profil{PhotoURL: "https://signed.example.com/photo.jpg"},
	}

	ApplyStickyFields(existing, incoming)

	assert.Equal(t, "https://signed.example.com/photo.jpg", incoming.Profil.PhotoURL)
}
