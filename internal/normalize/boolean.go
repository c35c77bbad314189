package normalize

import "strings"

// Tristate is the result of coercing a heterogeneous truthy token.
// Indeterminate means the token was not recognized; callers must not
// collapse it into False.
type Tristate int

// Tristate values.
const (
	Indeterminate Tristate = iota
	True
	False
)

// truthyTokens and falsyTokens hold the fixed vocabulary produced by
// extraction and legacy form fields.
var truthyTokens = map[string]struct{}{
	"oui": {}, "vrai": {}, "true": {}, "yes": {},
	"present": {}, "présent": {}, "1": {},
}

var falsyTokens = map[string]struct{}{
	"non": {}, "faux": {}, "false": {}, "no": {},
	"absent": {}, "0": {},
}

// CoerceBoolean maps a heterogeneous value to a strict Tristate. Native
// booleans and numbers coerce directly; strings go through the fixed token
// vocabulary, case-insensitively. Anything else is Indeterminate.
func CoerceBoolean(value any) Tristate {
	switch v := value.(type) {
	case bool:
		if v {
			return True
		}
		return False
	case int:
		return coerceNumber(float64(v))
	case int64:
		return coerceNumber(float64(v))
	case float64:
		return coerceNumber(v)
	case string:
		token := strings.ToLower(strings.TrimSpace(v))
		if _, ok := truthyTokens[token]; ok {
			return True
		}
		if _, ok := falsyTokens[token]; ok {
			return False
		}
		return Indeterminate
	default:
		return Indeterminate
	}
}

func coerceNumber(f float64) Tristate {
	switch f {
	case 1:
		return True
	case 0:
		return False
	default:
		return Indeterminate
	}
}

// Bool unwraps a Tristate with a fallback for Indeterminate.
func (t Tristate) Bool(fallback bool) bool {
	switch t {
	case True:
		return true
	case False:
		return false
	default:
		return fallback
	}
}
