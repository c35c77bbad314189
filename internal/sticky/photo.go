// Package sticky protects user-owned fields from being overwritten by weaker
// incoming data. It runs exactly once per merge cycle, on the incoming
// fragment before it reaches the merge engine, and also implements the
// replace-or-keep carry-forward used by regeneration flows.
package sticky

import "strings"

// durablePrefix is the wire convention for content-addressed storage
// references: storage:<bucket>:<path>. Anything else (signed URLs included)
// is transient.
const durablePrefix = "storage:"

// RefKind classifies a photo reference.
type RefKind int

// Reference kinds.
const (
	RefEmpty RefKind = iota
	RefDurable
	RefTransient
)

// PhotoRef is a parsed photo reference. Parsing once at the boundary keeps
// the durable/transient distinction out of the merge logic.
type PhotoRef struct {
	Raw    string
	Kind   RefKind
	Bucket string
	Path   string
}

// ParsePhotoRef classifies a raw photo reference value.
func ParsePhotoRef(raw string) PhotoRef {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return PhotoRef{Kind: RefEmpty}
	}

	if rest, ok := strings.CutPrefix(trimmed, durablePrefix); ok {
		bucket, path, found := strings.Cut(rest, ":")
		if found && bucket != "" && path != "" {
			return PhotoRef{Raw: trimmed, Kind: RefDurable, Bucket: bucket, Path: path}
		}
	}

	return PhotoRef{Raw: trimmed, Kind: RefTransient}
}

// Durable reports whether the reference points at durable storage.
func (r PhotoRef) Durable() bool {
	return r.Kind == RefDurable
}

// resolvePhoto applies the sticky precedence: an incoming durable reference
// always wins (last-durable-wins); any other incoming value never displaces
// an existing non-empty one.
func resolvePhoto(existing, incoming string) string {
	inc := ParsePhotoRef(incoming)
	if inc.Durable() {
		return inc.Raw
	}
	if ParsePhotoRef(existing).Kind != RefEmpty {
		return existing
	}
	return incoming
}
