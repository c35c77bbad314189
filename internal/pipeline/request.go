package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/cv-profile-engine/internal/types"
)

// validate is shared; validator.New caches struct metadata across calls.
var validate = validator.New()

// MergeRequest asks the engine to fold one extracted fragment into a user's
// accumulated profile.
type MergeRequest struct {
	UserID   string          `json:"user_id" validate:"required"`
	Source   string          `json:"source" validate:"required"`
	Fragment json.RawMessage `json:"fragment" validate:"required"`
}

// Validate validates the MergeRequest using the validator.
func (r *MergeRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid merge request: %w", err)
	}
	return nil
}

// RegenerateRequest asks the engine to replace a user's record with a freshly
// regenerated one, carrying sticky fields forward from the previous version.
type RegenerateRequest struct {
	UserID string              `json:"user_id" validate:"required"`
	Next   types.ProfileRecord `json:"next"`
}

// Validate validates the RegenerateRequest using the validator.
func (r *RegenerateRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid regenerate request: %w", err)
	}
	return nil
}
