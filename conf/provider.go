package conf

import (
	"errors"

	"github.com/knadh/koanf/maps"

	"github.com/lambda-feedback/deepmerge"
)

// Layers is a koanf provider that folds multiple config maps into one
// with the merge engine. It is the policy-aware sibling of koanf's
// confmap provider: keys delimited by delim are unflattened into nested
// mappings, and layers merge left-to-right, later layers winning per the
// configured policy.
type Layers struct {
	mp map[string]any
}

// Provider returns a Layers provider over the given config maps with the
// default merge policy.
func Provider(delim string, layers ...map[string]any) *Layers {
	return ProviderWithOptions(delim, nil, layers...)
}

// ProviderWithOptions is Provider with explicit merge policy overrides.
func ProviderWithOptions(delim string, opts []deepmerge.Option, layers ...map[string]any) *Layers {
	unflattened := make([]map[string]any, len(layers))

	for i, layer := range layers {
		if delim != "" {
			layer = maps.Unflatten(layer, delim)
		}
		unflattened[i] = layer
	}

	return &Layers{mp: deepmerge.Extend(unflattened, opts...)}
}

// ReadBytes is not supported by this provider.
func (l *Layers) ReadBytes() ([]byte, error) {
	return nil, errors.New("conf.Layers provider does not support this method")
}

// Read returns the folded configuration map. The map is freshly cloned on
// every call, so callers may mutate it.
func (l *Layers) Read() (map[string]any, error) {
	return deepmerge.Clone(l.mp).(map[string]any), nil
}
