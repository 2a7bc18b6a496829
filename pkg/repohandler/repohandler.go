// Package repohandler implements RepoHandler (spec §4.10): the façade that
// binds a Repository, a byte-array index, a clock, the compare/diff/merge
// engines, area/content factories, and the ambient observability stack
// into the single object most embedders construct. Every method here is a
// thin pass-through to the stateless engines in pkg/commitengine,
// pkg/compareengine, pkg/diffengine, and pkg/mergeengine; Commit,
// CommitToBranch, and MergeIntoBranchFromAnotherBranch are also
// instrumented. RepoHandler holds no algorithmic logic of its own.
package repohandler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nanovc/nanovc/internal/config"
	"github.com/nanovc/nanovc/internal/observability"
	"github.com/nanovc/nanovc/pkg/byteindex"
	"github.com/nanovc/nanovc/pkg/commit"
	"github.com/nanovc/nanovc/pkg/commitengine"
	"github.com/nanovc/nanovc/pkg/compareengine"
	"github.com/nanovc/nanovc/pkg/content"
	"github.com/nanovc/nanovc/pkg/contentarea"
	"github.com/nanovc/nanovc/pkg/diffengine"
	"github.com/nanovc/nanovc/pkg/mergeengine"
	"github.com/nanovc/nanovc/pkg/repository"
	"github.com/nanovc/nanovc/pkg/searchexpr"
)

// RepoHandler binds one Repository to the index, clock, factories, and
// observability stack that every engine call needs (spec §4.10).
type RepoHandler struct {
	repo            *repository.Repository
	index           byteindex.ByteArrayIndex
	clock           commit.Clock
	contentFactory  content.Factory
	defaultOrdering contentarea.Ordering
	conflictPolicy  mergeengine.ConflictPolicy

	providers observability.Providers
	metrics   *observability.REDMetrics
}

// New builds a RepoHandler from cfg, wiring the ByteArrayIndex
// implementation and default ContentArea ordering it selects, and
// initializing the observability Providers/REDMetrics it names. A nil
// clock defaults to commit.SystemClock{}.
func New(cfg config.RepoHandlerConfig, clock commit.Clock) (*RepoHandler, error) {
	if clock == nil {
		clock = commit.SystemClock{}
	}

	index, err := buildIndex(cfg.Index)
	if err != nil {
		return nil, err
	}

	ordering, err := orderingFromConfig(cfg.Area.DefaultOrdering)
	if err != nil {
		return nil, err
	}

	providers, err := observability.Init(observabilityConfig(cfg.Observability))
	if err != nil {
		return nil, fmt.Errorf("repohandler: initializing observability: %w", err)
	}

	metrics, err := observability.NewREDMetrics(providers.Meter)
	if err != nil {
		return nil, fmt.Errorf("repohandler: building metrics: %w", err)
	}

	return &RepoHandler{
		repo:            repository.New(),
		index:           index,
		clock:           clock,
		contentFactory:  content.DefaultFactory(),
		defaultOrdering: ordering,
		conflictPolicy:  mergeengine.LastWins{Clock: clock},
		providers:       providers,
		metrics:         metrics,
	}, nil
}

func buildIndex(cfg config.IndexConfig) (byteindex.ByteArrayIndex, error) {
	switch cfg.Kind {
	case config.IndexHashWrapper:
		idx := byteindex.NewHashWrapperIndex()
		idx.CompressionThresholdBytes = cfg.CompressionThresholdBytes

		return idx, nil

	case config.IndexValueTree:
		return byteindex.NewValueTreeIndex(), nil

	case config.IndexPassThrough:
		return byteindex.NewPassThroughIndex(), nil

	case config.IndexLRU:
		return byteindex.NewLRUIndex(cfg.LRUMaxBytes), nil

	default:
		return nil, config.ErrInvalidIndexKind
	}
}

func orderingFromConfig(o config.AreaOrdering) (contentarea.Ordering, error) {
	switch o {
	case config.OrderingUnordered:
		return contentarea.Unordered, nil
	case config.OrderingInsertion:
		return contentarea.Insertion, nil
	case config.OrderingSorted:
		return contentarea.Sorted, nil
	default:
		return 0, config.ErrInvalidAreaOrdering
	}
}

func observabilityConfig(cfg config.ObservabilityConfig) observability.Config {
	obsCfg := observability.DefaultConfig()
	obsCfg.LogJSON = cfg.LogJSON
	obsCfg.PrometheusEnabled = cfg.PrometheusEnabled

	var level slog.Level
	if cfg.LogLevel != "" && level.UnmarshalText([]byte(cfg.LogLevel)) == nil {
		obsCfg.LogLevel = level
	}

	return obsCfg
}

// instrument wraps a synchronous operation with the RED metrics/logging
// that Commit, CommitToBranch, and MergeIntoBranchFromAnotherBranch
// record (spec's ambient observability stack): an
// in-flight gauge for the duration of fn, a counter/histogram recorded on
// return, and an error-level log line if fn fails.
func (h *RepoHandler) instrument(ctx context.Context, op string, fn func() error) error {
	done := h.metrics.TrackInflight(ctx, op)
	defer done()

	start := time.Now()
	err := fn()
	status := observability.StatusOK

	if err != nil {
		status = observability.StatusError
		h.providers.Logger.ErrorContext(ctx, "repohandler operation failed", "op", op, "error", err)
	}

	h.metrics.RecordOperation(ctx, op, status, time.Since(start))

	return err
}

// CreateArea builds a new ContentArea using the handler's default ordering.
func (h *RepoHandler) CreateArea() *contentarea.ContentArea {
	return contentarea.New(h.defaultOrdering, h.contentFactory)
}

// Commit snapshots area and records it with the given parents, without
// touching any branch (spec §4.5).
func (h *RepoHandler) Commit(ctx context.Context, area *contentarea.ContentArea, message string, parents commit.Parents) (*commit.Commit, error) {
	var result *commit.Commit

	err := h.instrument(ctx, "commit", func() error {
		result = commitengine.Commit(area, message, h.repo, h.index, h.clock, parents)

		return nil
	})

	return result, err
}

// CommitToBranch snapshots area as the new tip of branchName (spec §4.5).
func (h *RepoHandler) CommitToBranch(ctx context.Context, area *contentarea.ContentArea, message, branchName string, extraParents ...*commit.Commit) (*commit.Commit, error) {
	var result *commit.Commit

	err := h.instrument(ctx, "commit_to_branch", func() error {
		result = commitengine.CommitToBranch(area, message, branchName, h.repo, h.index, h.clock, extraParents...)

		return nil
	})

	return result, err
}

// Checkout reconstructs a ContentArea from c using the handler's default
// ordering and content factory.
func (h *RepoHandler) Checkout(c *commit.Commit) *contentarea.ContentArea {
	return commitengine.Checkout(c, h.CreateArea, h.contentFactory)
}

// CreateBranchAtCommit points branchName at c.
func (h *RepoHandler) CreateBranchAtCommit(branchName string, c *commit.Commit) {
	commitengine.CreateBranchAtCommit(h.repo, branchName, c)
}

// GetLatestCommitForBranch returns branchName's tip, or false if absent.
func (h *RepoHandler) GetLatestCommitForBranch(branchName string) (*commit.Commit, bool) {
	return commitengine.GetLatestCommitForBranch(h.repo, branchName)
}

// TagCommit points tagName at c.
func (h *RepoHandler) TagCommit(tagName string, c *commit.Commit) {
	commitengine.TagCommit(h.repo, tagName, c)
}

// GetCommitForTag returns tagName's commit, or false if absent.
func (h *RepoHandler) GetCommitForTag(tagName string) (*commit.Commit, bool) {
	return commitengine.GetCommitForTag(h.repo, tagName)
}

// RemoveTag deletes tagName.
func (h *RepoHandler) RemoveTag(tagName string) {
	commitengine.RemoveTag(h.repo, tagName)
}

// ComputeComparisonBetween delegates to compareengine.Compute.
func (h *RepoHandler) ComputeComparisonBetween(fromArea, toArea *contentarea.ContentArea) compareengine.Comparison {
	return compareengine.Compute(fromArea, toArea)
}

// ComputeDifferenceBetween delegates to diffengine.Compute.
func (h *RepoHandler) ComputeDifferenceBetween(fromArea, toArea *contentarea.ContentArea) diffengine.Difference {
	return diffengine.Compute(fromArea, toArea)
}

// MergeIntoBranchFromAnotherBranch merges sourceName into destName using
// the handler's conflict policy (spec §4.8).
func (h *RepoHandler) MergeIntoBranchFromAnotherBranch(ctx context.Context, destName, sourceName, message string) (*commit.Commit, error) {
	var result *commit.Commit

	err := h.instrument(ctx, "merge", func() error {
		merged, mergeErr := mergeengine.MergeBranches(h.repo, destName, sourceName, message, h.clock, h.index, h.contentFactory, h.CreateArea, h.conflictPolicy)
		if mergeErr != nil {
			return mergeErr
		}

		result = merged

		return nil
	})

	return result, err
}

// PrepareSearchQuery compiles a YAML query Definition into an evaluable
// BoolExpr (spec §4.10).
func (h *RepoHandler) PrepareSearchQuery(def *searchexpr.Definition) (searchexpr.BoolExpr, error) {
	return def.Build()
}

// Search evaluates expr against the handler's repository and reports
// whether it holds.
func (h *RepoHandler) Search(expr searchexpr.BoolExpr) (bool, error) {
	return expr.EvalBool(&searchexpr.Context{Repo: h.repo})
}

// Repository exposes the bound Repository for callers that need
// lower-level access (branch/tag enumeration, VerifyInvariants).
func (h *RepoHandler) Repository() *repository.Repository { return h.repo }

// MetricsHandler exposes the Prometheus scrape endpoint, or nil if
// PrometheusEnabled was false in configuration.
func (h *RepoHandler) MetricsHandler() http.Handler { return h.providers.MetricsHandler }

// Shutdown flushes pending metrics and releases exporter resources.
func (h *RepoHandler) Shutdown(ctx context.Context) error { return h.providers.Shutdown(ctx) }
