package deepmerge

import "fmt"

// Kind classifies a value within the engine's value model. Only plain
// map[string]any mappings and []any sequences are merged structurally;
// everything else is combined as an atomic unit.
type Kind int

const (
	// KindScalar is an atomic value: nil, strings, booleans and numbers.
	KindScalar Kind = iota

	// KindSequence is an ordered list of values ([]any).
	KindSequence

	// KindMapping is a string-keyed collection of values (map[string]any).
	KindMapping

	// KindOpaque is any value outside the plain value model, e.g. typed
	// containers, structs, funcs or channels. Opaque values are never
	// merged structurally.
	KindOpaque
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	case KindOpaque:
		return "opaque"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindOf classifies v. Typed containers such as []string or map[string]int
// are opaque: they still get identity-breaking copies, but no per-element
// merge policy applies to them.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64, complex64, complex128:
		return KindScalar
	case []any:
		return KindSequence
	case map[string]any:
		return KindMapping
	default:
		return KindOpaque
	}
}

type undefined struct{}

// Undefined marks a mapping entry as explicitly absent. Go has no
// undefined value and absent map keys never take part in a fold, so
// inputs use this sentinel where they need explicit absence: under the
// default policy it is skipped, and with ignore-undefined disabled it
// removes the key from the result. Undefined never appears in a result.
var Undefined = undefined{}

func isUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}
