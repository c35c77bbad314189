package merge

import (
	"strings"

	"github.com/jonathan/cv-profile-engine/internal/types"
)

// mergeKeyed merges two entity collections keyed by derived identity.
// Existing entities keep their order (duplicate identities within existing
// collapse into the first occurrence); incoming-only entities are appended
// in incoming order. Incoming silence is never deletion: an entity present
// only in existing survives untouched. Entities whose identity derives to
// empty are kept from existing but never added from incoming.
func mergeKeyed[T any](
	section string,
	existing, incoming []T,
	keyFn func(T) string,
	combine func(old, inc T) T,
	hist *types.MergeHistoryEntry,
) []T {
	out := make([]T, 0, len(existing)+len(incoming))
	index := make(map[string]int, len(existing))

	for _, entity := range existing {
		key := keyFn(entity)
		if key == "" {
			out = append(out, entity)
			continue
		}
		if at, seen := index[key]; seen {
			out[at] = combine(out[at], entity)
			continue
		}
		index[key] = len(out)
		out = append(out, entity)
	}

	for _, entity := range incoming {
		key := keyFn(entity)
		if key == "" {
			hist.Add(section, types.ActionDropped, "", "entity without identity fields skipped")
			continue
		}
		if at, seen := index[key]; seen {
			out[at] = combine(out[at], entity)
			hist.Add(section, types.ActionMerged, key, "")
			continue
		}
		index[key] = len(out)
		out = append(out, entity)
		hist.Add(section, types.ActionAdded, key, "")
	}

	return out
}

// preferComplete picks the more complete of two entity field values: an
// empty side never wins, and when both are filled the existing value is kept
// unless the incoming one is strictly richer. Incoming emptiness is never a
// deletion, and a re-cased duplicate never churns stored data.
func preferComplete(existing, incoming string) string {
	inc := strings.TrimSpace(incoming)
	if inc == "" {
		return existing
	}
	cur := strings.TrimSpace(existing)
	if cur == "" {
		return incoming
	}
	if len([]rune(inc)) > len([]rune(cur)) {
		return incoming
	}
	return existing
}

// unionStrings unions two lists, deduplicated by trimmed, case-insensitive
// equality, existing order first. No existing item is ever dropped.
func unionStrings(existing, incoming []string) []string {
	out := make([]string, 0, len(existing)+len(incoming))
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	for _, list := range [][]string{existing, incoming} {
		for _, item := range list {
			trimmed := strings.TrimSpace(item)
			if trimmed == "" {
				continue
			}
			key := strings.ToLower(trimmed)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 && existing == nil && incoming == nil {
		return nil
	}
	return out
}

// unionRealisations unions achievement bullets by normalized text.
func unionRealisations(existing, incoming []types.Realisation) []types.Realisation {
	out := make([]types.Realisation, 0, len(existing)+len(incoming))
	seen := make(map[string]int, len(existing)+len(incoming))
	for _, list := range [][]types.Realisation{existing, incoming} {
		for _, r := range list {
			key := identityKey(r.Texte)
			if key == "" {
				continue
			}
			if at, dup := seen[key]; dup {
				out[at].Metrique = preferComplete(out[at].Metrique, r.Metrique)
				continue
			}
			seen[key] = len(out)
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return existing
	}
	return out
}
