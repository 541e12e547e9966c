// Package conf integrates the merge engine with koanf configuration
// loading: a merge hook for koanf.Load, a provider that folds config map
// layers, and a layered loader combining defaults, files and environment
// variables.
package conf

import (
	"github.com/lambda-feedback/deepmerge"
)

// MergeFunc adapts the merge engine to koanf's merge hook. Pass the
// result to koanf.WithMergeFunc to replace koanf's built-in merging with
// the engine's policy, e.g. to keep nulls in later layers from erasing
// earlier values, or to concatenate sequences across layers.
func MergeFunc(opts ...deepmerge.Option) func(src, dest map[string]any) error {
	resolved := make([]deepmerge.Option, 0, len(opts)+1)
	resolved = append(resolved, opts...)
	resolved = append(resolved, deepmerge.WithMutateTarget(true))

	merger := deepmerge.New(resolved...)

	return func(src, dest map[string]any) error {
		merger.Fold(dest, src)
		return nil
	}
}
