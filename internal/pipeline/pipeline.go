// Package pipeline provides the high-level orchestration for profile updates:
// fragment decoding, sticky-field guarding, merging, and persistence.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-profile-engine/internal/draft"
	"github.com/jonathan/cv-profile-engine/internal/merge"
	"github.com/jonathan/cv-profile-engine/internal/normalize"
	"github.com/jonathan/cv-profile-engine/internal/schemas"
	"github.com/jonathan/cv-profile-engine/internal/sticky"
	"github.com/jonathan/cv-profile-engine/internal/types"
)

// Store is the persistence surface the engine needs. *db.Store satisfies it.
type Store interface {
	GetProfile(ctx context.Context, userID string) (*types.ProfileRecord, error)
	UpdateProfile(ctx context.Context, userID string, fn func(existing *types.ProfileRecord) (types.ProfileRecord, *types.MergeHistoryEntry, error)) error
	GetHistory(ctx context.Context, userID string, limit int) ([]types.MergeHistoryEntry, error)
}

// ProgressEvent represents a progress update during an engine operation.
type ProgressEvent struct {
	Step    string `json:"step"`
	UserID  string `json:"user_id,omitempty"`
	Message string `json:"message"`
}

// ProgressCallback is called when engine progress occurs.
type ProgressCallback func(event ProgressEvent)

// Options holds the engine's collaborators and settings.
type Options struct {
	Store      Store
	Logger     *zap.Logger
	SchemaPath string       // optional; advisory fragment validation when set
	Drafts     *draft.Store // optional; autosaves fragments until they merge
	Now        func() time.Time
	OnProgress ProgressCallback
}

// Engine applies profile updates. Safe for concurrent use; concurrent updates
// for the same user serialize in the store.
type Engine struct {
	store      Store
	logger     *zap.Logger
	schemaPath string
	drafts     *draft.Store
	now        func() time.Time
	onProgress ProgressCallback
}

// New creates an Engine. Store is required.
func New(opts Options) (*Engine, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("pipeline: store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Engine{
		store:      opts.Store,
		logger:     logger,
		schemaPath: opts.SchemaPath,
		drafts:     opts.Drafts,
		now:        now,
		onProgress: opts.OnProgress,
	}, nil
}

// Outcome is the result of one engine operation.
type Outcome struct {
	Record  types.ProfileRecord
	History *types.MergeHistoryEntry
}

func (e *Engine) emit(step, userID, message string) {
	if e.onProgress != nil {
		e.onProgress(ProgressEvent{Step: step, UserID: userID, Message: message})
	}
}

// MergeFragment decodes one fragment and folds it into the user's record.
// Unknown keys, shape errors, and schema mismatches downgrade to warnings on
// the history entry; only an invalid request or a store failure is an error.
func (e *Engine) MergeFragment(ctx context.Context, req MergeRequest) (*Outcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Autosave the fragment so a failed merge leaves it recoverable.
	if e.drafts != nil {
		e.drafts.Save(req.UserID, req.Fragment)
	}

	warnings := e.checkSchema(req.Fragment)

	e.emit("decode", req.UserID, fmt.Sprintf("decoding fragment from %s", req.Source))
	incoming, decodeWarnings := normalize.DecodeFragment(req.Fragment)
	warnings = append(warnings, decodeWarnings...)

	var outcome Outcome
	err := e.store.UpdateProfile(ctx, req.UserID, func(existing *types.ProfileRecord) (types.ProfileRecord, *types.MergeHistoryEntry, error) {
		var base types.ProfileRecord
		if existing != nil {
			base = *existing
		}

		guarded, preserved := sticky.ApplyStickyFields(base, *incoming)
		result := merge.Merge(base, guarded, merge.Options{
			UserID:   req.UserID,
			Source:   req.Source,
			Now:      e.now(),
			Warnings: warnings,
		})
		for _, p := range preserved {
			result.History.Add(p.Field, types.ActionPreserved, "", p.Reason)
		}

		outcome = Outcome{Record: result.Merged, History: result.History}
		return result.Merged, result.History, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to merge fragment for %s: %w", req.UserID, err)
	}

	if e.drafts != nil {
		e.drafts.Discard(req.UserID)
	}

	e.logger.Info("fragment merged",
		zap.String("user_id", req.UserID),
		zap.String("source", req.Source),
		zap.Int("added", outcome.History.Count(types.ActionAdded)),
		zap.Int("merged", outcome.History.Count(types.ActionMerged)),
		zap.Int("warnings", outcome.History.Count(types.ActionWarning)),
	)
	e.emit("merge", req.UserID, fmt.Sprintf("%d history lines recorded", len(outcome.History.Lines)))
	return &outcome, nil
}

// Regenerate replaces the user's record with a regenerated one. Client
// references, a durable photo, and the rejected-suggestion ledger carry
// forward from the previous version; everything else comes from next.
func (e *Engine) Regenerate(ctx context.Context, req RegenerateRequest) (*Outcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var outcome Outcome
	err := e.store.UpdateProfile(ctx, req.UserID, func(existing *types.ProfileRecord) (types.ProfileRecord, *types.MergeHistoryEntry, error) {
		var prev types.ProfileRecord
		if existing != nil {
			prev = *existing
		}

		carried, preserved := sticky.CarryForward(prev, req.Next)
		entry := types.NewMergeHistoryEntry(req.UserID, "regeneration", e.now())
		for _, p := range preserved {
			entry.Add(p.Field, types.ActionPreserved, "", p.Reason)
		}

		outcome = Outcome{Record: carried, History: entry}
		return carried, entry, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to regenerate profile for %s: %w", req.UserID, err)
	}

	e.logger.Info("profile regenerated",
		zap.String("user_id", req.UserID),
		zap.Int("preserved", outcome.History.Count(types.ActionPreserved)),
	)
	return &outcome, nil
}

// MergeMany merges a batch of fragments, at most maxConcurrent at a time.
// Requests for the same user are safe to batch together: the store's row lock
// serializes them. The first failure cancels the remaining requests.
func (e *Engine) MergeMany(ctx context.Context, reqs []MergeRequest, maxConcurrent int) ([]*Outcome, error) {
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}

	outcomes := make([]*Outcome, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			out, err := e.MergeFragment(gctx, req)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Profile returns the user's current accumulated record, or nil when the user
// has no profile yet.
func (e *Engine) Profile(ctx context.Context, userID string) (*types.ProfileRecord, error) {
	return e.store.GetProfile(ctx, userID)
}

// History returns the user's most recent merge history entries.
func (e *Engine) History(ctx context.Context, userID string, limit int) ([]types.MergeHistoryEntry, error) {
	return e.store.GetHistory(ctx, userID, limit)
}

// PendingDraft returns the user's autosaved fragment from a merge that has
// not completed, if draft autosave is configured and the draft has not
// expired.
func (e *Engine) PendingDraft(userID string) (draft.Draft, bool) {
	if e.drafts == nil {
		return draft.Draft{}, false
	}
	return e.drafts.Get(userID)
}

// checkSchema runs advisory schema validation when a schema path is
// configured. A broken schema is logged and skipped, never fatal.
func (e *Engine) checkSchema(fragment []byte) []normalize.Warning {
	if e.schemaPath == "" {
		return nil
	}
	warns, err := schemas.CheckFragment(e.schemaPath, fragment)
	if err != nil {
		e.logger.Warn("schema validation skipped", zap.Error(err))
		return nil
	}
	return warns
}
