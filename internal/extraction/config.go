// Package extraction wraps the AI producer of partial profile fragments.
// The rest of the system treats it as opaque: it takes cleaned document text
// and returns a canonical partial record plus data-quality warnings.
package extraction

// ModelTier represents the capability level used for an extraction call.
type ModelTier string

const (
	// TierLite is for short documents: single-page CVs, cover letters
	TierLite ModelTier = "lite"
	// TierStandard is for full CVs and mission reports
	TierStandard ModelTier = "standard"
)

// Config holds the model configuration for extraction calls.
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
		},
	}
}

// GetModel returns the model name for a tier, falling back to standard.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	return c.Models[TierStandard]
}
