// Package config loads the handful of knobs a
// [github.com/nanovc/nanovc/pkg/repohandler.RepoHandler] needs at
// construction time. It never reads a repo-local file: nanovc keeps no
// on-disk format, so configuration is supplied programmatically or through
// environment variables, the way a host process configures any other
// in-process library.
package config

import "errors"

// ByteArrayIndexKind selects which ByteArrayIndex implementation a
// RepoHandler builds and hands to the commit and merge engines for
// interning.
type ByteArrayIndexKind string

const (
	// IndexHashWrapper selects the structural-hash keyed map index.
	IndexHashWrapper ByteArrayIndexKind = "hash_wrapper"
	// IndexValueTree selects the double-hash bucket + stride-trie index.
	IndexValueTree ByteArrayIndexKind = "value_tree"
	// IndexPassThrough selects the no-op index (every lookup misses).
	IndexPassThrough ByteArrayIndexKind = "pass_through"
	// IndexLRU selects the memory-bounded, size-aware LRU index.
	IndexLRU ByteArrayIndexKind = "lru"
)

// AreaOrdering selects the default ContentArea ordering a RepoHandler
// constructs with createArea when the caller doesn't ask for one explicitly.
type AreaOrdering string

const (
	// OrderingUnordered is the hash-map-backed flavor.
	OrderingUnordered AreaOrdering = "unordered"
	// OrderingInsertion preserves insertion order.
	OrderingInsertion AreaOrdering = "insertion"
	// OrderingSorted keeps paths in ascending order.
	OrderingSorted AreaOrdering = "sorted"
)

// Default configuration values.
const (
	DefaultIndexKind       = IndexValueTree
	DefaultAreaOrdering    = OrderingUnordered
	DefaultCompressionSize = 0 // 0 disables LZ4 compression of interned arrays.
)

// Sentinel validation errors.
var (
	// ErrInvalidIndexKind indicates an unrecognized ByteArrayIndexKind.
	ErrInvalidIndexKind = errors.New("config: invalid byte array index kind")
	// ErrInvalidAreaOrdering indicates an unrecognized AreaOrdering.
	ErrInvalidAreaOrdering = errors.New("config: invalid content area ordering")
	// ErrInvalidCompressionSize indicates a negative compression threshold.
	ErrInvalidCompressionSize = errors.New("config: compression_threshold_bytes must be non-negative")
)

// RepoHandlerConfig holds all configuration a RepoHandler needs to wire its
// ByteArrayIndex, default ContentArea ordering, and observability stack.
type RepoHandlerConfig struct {
	Index         IndexConfig         `mapstructure:"index"`
	Area          AreaConfig          `mapstructure:"area"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// IndexConfig holds ByteArrayIndex selection and tuning knobs.
type IndexConfig struct {
	Kind                      ByteArrayIndexKind `mapstructure:"kind"`
	CompressionThresholdBytes int                `mapstructure:"compression_threshold_bytes"`

	// LRUMaxBytes bounds an IndexLRU index's total interned size. Ignored
	// by other index kinds. Non-positive falls back to
	// byteindex.DefaultLRUMaxBytes.
	LRUMaxBytes int64 `mapstructure:"lru_max_bytes"`
}

// AreaConfig holds default ContentArea construction knobs.
type AreaConfig struct {
	DefaultOrdering AreaOrdering `mapstructure:"default_ordering"`
}

// ObservabilityConfig holds the ambient logging/metrics toggles a
// RepoHandlerConfig exposes; see internal/observability.Config for the
// richer set a host can build directly when embedding programmatically.
type ObservabilityConfig struct {
	LogLevel          string `mapstructure:"log_level"`
	LogJSON           bool   `mapstructure:"log_json"`
	PrometheusEnabled bool   `mapstructure:"prometheus_enabled"`
}

// Validate checks RepoHandlerConfig invariants and returns the first error found.
func (c *RepoHandlerConfig) Validate() error {
	switch c.Index.Kind {
	case IndexHashWrapper, IndexValueTree, IndexPassThrough, IndexLRU:
	default:
		return ErrInvalidIndexKind
	}

	switch c.Area.DefaultOrdering {
	case OrderingUnordered, OrderingInsertion, OrderingSorted:
	default:
		return ErrInvalidAreaOrdering
	}

	if c.Index.CompressionThresholdBytes < 0 {
		return ErrInvalidCompressionSize
	}

	return nil
}
