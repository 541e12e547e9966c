// Package deepmerge combines plain key-value structures: it deep-merges
// mappings (map[string]any), deep-clones arbitrary acyclic values, and
// resolves defaults across layered inputs.
//
// Every mapping and sequence in a result is freshly allocated, so results
// never share mutable state with the inputs. The only exception is
// MergeInto, which deliberately mutates its target. All inputs must be
// acyclic; cyclic structures are a precondition violation and are not
// detected.
package deepmerge

// Extend folds objects left-to-right into a fresh mapping under the given
// policy. None of the inputs are mutated, and the result shares no
// mapping or sequence with any of them.
func Extend(objects []map[string]any, opts ...Option) map[string]any {
	resolved := make([]Option, 0, len(opts)+1)
	resolved = append(resolved, opts...)
	resolved = append(resolved, WithMutateTarget(false))

	m := New(resolved...)

	values := make([]any, len(objects))
	for i, obj := range objects {
		values[i] = obj
	}

	return m.Fold(values...).(map[string]any)
}

// Merge folds values left-to-right with nulls and Undefined markers
// treated as explicit: a nil in a later input overwrites an earlier
// value, and an Undefined marker removes its key. Inputs are never
// mutated.
func Merge(values ...any) any {
	m := New(WithIgnoreNull(false), WithIgnoreUndefined(false))
	return m.Fold(values...)
}

// MergeInto folds objects into target, mutating and returning it. The
// target keeps its identity, so existing references to it observe the
// merge; its nested structures are rebuilt on write. The other inputs are
// never mutated. target must be a non-nil mapping.
func MergeInto(target map[string]any, objects ...any) map[string]any {
	m := New(WithMutateTarget(true))

	values := make([]any, 0, len(objects)+1)
	values = append(values, target)
	values = append(values, objects...)

	return m.Fold(values...).(map[string]any)
}

// Clone returns a structural deep copy of value: every mapping and
// sequence in the copy is freshly allocated, recursively. Opaque values
// without a general copy (funcs, channels, pointers) are carried over by
// reference.
func Clone(value any) any {
	return New().Fold(value)
}

// Defaults resolves actualValues against defaultValues, with the optional
// readOnly mappings winning over both. Explicit nils in later layers
// overwrite earlier values; absent keys and Undefined markers do not.
func Defaults(defaultValues, actualValues map[string]any, readOnly ...map[string]any) map[string]any {
	objects := make([]map[string]any, 0, len(readOnly)+2)
	objects = append(objects, defaultValues, actualValues)
	objects = append(objects, readOnly...)

	return Extend(objects, WithIgnoreNull(false), WithIgnoreUndefined(true))
}
