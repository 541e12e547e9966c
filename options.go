package deepmerge

import (
	"fmt"

	"go.uber.org/zap"
)

// SequenceMode governs how an ordered sequence in a later input combines
// with a sequence already present at the same key.
type SequenceMode int

const (
	// SequenceReplace discards the earlier sequence in favour of a deep
	// copy of the later one. This is the default.
	SequenceReplace SequenceMode = iota

	// SequenceMerge concatenates the earlier sequence's elements with the
	// later one's, preserving order. Duplicates are kept.
	SequenceMerge
)

func (m SequenceMode) String() string {
	switch m {
	case SequenceReplace:
		return "replace"
	case SequenceMerge:
		return "merge"
	default:
		return fmt.Sprintf("SequenceMode(%d)", int(m))
	}
}

// Option overrides a single policy field. Later options win.
type Option func(*config)

type config struct {
	ignoreNull      bool
	ignoreUndefined bool
	sequenceMode    SequenceMode
	mutateTarget    bool
	log             *zap.Logger
}

func resolve(opts []Option) config {
	cfg := config{
		ignoreNull:      true,
		ignoreUndefined: true,
		sequenceMode:    SequenceReplace,
		log:             zap.NewNop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithIgnoreNull controls whether a nil in any input other than the first
// is treated as absent. When true (the default), a later nil neither
// overwrites an earlier value nor introduces a new key. When false, an
// explicit nil wins like any other value.
func WithIgnoreNull(ignore bool) Option {
	return func(c *config) {
		c.ignoreNull = ignore
	}
}

// WithIgnoreUndefined controls whether an Undefined marker in any input
// other than the first is skipped. When false, the marker removes the key
// from the result.
func WithIgnoreUndefined(ignore bool) Option {
	return func(c *config) {
		c.ignoreUndefined = ignore
	}
}

// WithSequenceMode sets the combination mode for ordered sequences.
func WithSequenceMode(mode SequenceMode) Option {
	return func(c *config) {
		c.sequenceMode = mode
	}
}

// WithMutateTarget makes the fold merge into its first value instead of a
// fresh mapping. The first value must be a non-nil mapping; it keeps its
// top-level identity, while nested structures are rebuilt on write.
func WithMutateTarget(mutate bool) Option {
	return func(c *config) {
		c.mutateTarget = mutate
	}
}

// WithLogger sets the logger the engine reports its copy-by-reference
// caveat on. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}
