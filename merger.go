package deepmerge

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Merger folds values left-to-right under a fixed policy. The zero policy
// (see New) ignores nulls and Undefined markers in later inputs and
// replaces sequences wholesale.
//
// A Merger holds no per-call state and may be shared between goroutines,
// as long as mutate-target mode is not pointed at a mapping another
// goroutine is using at the same time.
type Merger struct {
	cfg config
}

// New returns a Merger with the given policy overrides applied on top of
// the defaults: ignore nulls, ignore Undefined, replace sequences, no
// target mutation.
func New(opts ...Option) *Merger {
	return &Merger{cfg: resolve(opts)}
}

// Fold reduces values left-to-right into a single value. In the default
// mode the result shares no mapping or sequence with any input, and no
// input is mutated. In mutate-target mode the first value is merged into
// and returned; it keeps its top-level identity while nested structures
// are rebuilt on write.
//
// Inputs must be acyclic. Cycles are not detected and the fold will not
// terminate on them.
func (m *Merger) Fold(values ...any) any {
	if m.cfg.mutateTarget {
		return m.foldInto(values)
	}

	if len(values) == 0 {
		return map[string]any{}
	}

	// The first input seeds the fold and is exempt from null suppression:
	// the policy only decides whether a later input may clobber an
	// earlier value, never what the first input itself contains.
	acc := m.copyValue(values[0], false)

	for _, v := range values[1:] {
		acc = m.mergeValues(acc, v)
	}

	return acc
}

func (m *Merger) foldInto(values []any) any {
	if len(values) == 0 {
		return map[string]any{}
	}

	target, ok := values[0].(map[string]any)
	if !ok || target == nil {
		// Without a mapping target there is no identity to preserve;
		// fall back to a non-mutating fold.
		cp := *m
		cp.cfg.mutateTarget = false
		return cp.Fold(values...)
	}

	for _, v := range values[1:] {
		src, ok := v.(map[string]any)
		if !ok {
			// A non-mapping input has nothing to merge into the target.
			continue
		}
		m.applyMapping(target, src)
	}

	return target
}

// mergeValues combines a later value into an earlier one, returning the
// combined value. The earlier value is never mutated; any mapping or
// sequence in the return value is freshly allocated.
func (m *Merger) mergeValues(left, right any) any {
	if isUndefined(right) {
		// Absence of a whole input leaves the accumulator untouched.
		// Key-level removal is handled by the mapping walk.
		return left
	}

	if right == nil && m.cfg.ignoreNull {
		return left
	}

	switch KindOf(right) {
	case KindMapping:
		if lm, ok := left.(map[string]any); ok {
			return m.mergeMappings(lm, right.(map[string]any))
		}
		return m.copyValue(right, true)
	case KindSequence:
		if ls, ok := left.([]any); ok && m.cfg.sequenceMode == SequenceMerge {
			return m.concatSequences(ls, right.([]any))
		}
		return m.copyValue(right, true)
	default:
		// Scalar, opaque, or a type mismatch: the later value wins.
		return m.copyValue(right, true)
	}
}

// mergeMappings produces a fresh mapping over the union of both key sets.
// Keys present in both sides merge recursively; the rest are deep-copied.
func (m *Merger) mergeMappings(left, right map[string]any) map[string]any {
	out := make(map[string]any, len(left)+len(right))

	for k, v := range left {
		out[k] = m.copyValue(v, false)
	}

	m.applyMapping(out, right)

	return out
}

// applyMapping merges the entries of src into dst, applying the
// null/undefined policy per key. dst is mutated.
func (m *Merger) applyMapping(dst, src map[string]any) {
	for k, v := range src {
		if isUndefined(v) {
			if !m.cfg.ignoreUndefined {
				delete(dst, k)
			}
			continue
		}

		if v == nil && m.cfg.ignoreNull {
			continue
		}

		if prior, ok := dst[k]; ok {
			dst[k] = m.mergeValues(prior, v)
			continue
		}

		dst[k] = m.copyValue(v, true)
	}
}

func (m *Merger) concatSequences(left, right []any) []any {
	out := make([]any, 0, len(left)+len(right))

	for _, v := range left {
		out = append(out, m.copyValue(v, false))
	}
	for _, v := range right {
		out = append(out, m.copyValue(v, true))
	}

	return out
}

// copyValue returns a deep copy of v: every mapping and sequence in the
// copy is freshly allocated. strip applies the null policy to mapping
// entries, used when wholesale-copying subtrees of inputs after the
// first. Undefined markers never survive a copy.
func (m *Merger) copyValue(v any, strip bool) any {
	switch KindOf(v) {
	case KindMapping:
		return m.copyMapping(v.(map[string]any), strip)
	case KindSequence:
		return m.copySequence(v.([]any), strip)
	case KindScalar:
		return v
	default:
		return m.copyOpaque(v, strip)
	}
}

func (m *Merger) copyMapping(mp map[string]any, strip bool) map[string]any {
	out := make(map[string]any, len(mp))

	for k, v := range mp {
		if isUndefined(v) {
			continue
		}
		if strip && v == nil && m.cfg.ignoreNull {
			continue
		}
		out[k] = m.copyValue(v, strip)
	}

	return out
}

func (m *Merger) copySequence(s []any, strip bool) []any {
	out := make([]any, len(s))

	for i, v := range s {
		if isUndefined(v) {
			// A sequence has no notion of an absent position; the marker
			// degrades to nil so that element order is preserved.
			continue
		}
		out[i] = m.copyValue(v, strip)
	}

	return out
}

// copyOpaque breaks the identity of typed containers by rebuilding them
// element-by-element. Values with no general copy (funcs, channels,
// pointers) are copied by reference, which is reported on the configured
// logger; callers passing such values own that caveat.
func (m *Merger) copyOpaque(v any, strip bool) any {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem := m.copyValue(rv.Index(i).Interface(), strip)
			if elem != nil {
				out.Index(i).Set(reflect.ValueOf(elem))
			}
		}
		return out.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			elem := m.copyValue(iter.Value().Interface(), strip)
			if elem == nil {
				out.SetMapIndex(iter.Key(), reflect.Zero(rv.Type().Elem()))
			} else {
				out.SetMapIndex(iter.Key(), reflect.ValueOf(elem))
			}
		}
		return out.Interface()
	case reflect.Ptr, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		m.cfg.log.Warn("cannot deep-copy opaque value, copying by reference",
			zap.String("type", fmt.Sprintf("%T", v)),
		)
		return v
	default:
		// Structs, arrays and other value kinds are boxed by value and
		// cannot be mutated through the interface; sharing is safe.
		return v
	}
}
