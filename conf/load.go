package conf

import (
	"strings"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/lambda-feedback/deepmerge"
)

type LoadOptions struct {
	// Defaults is a map of default values
	Defaults map[string]any

	// EnvPrefix is the prefix for env vars
	EnvPrefix string

	// FileName is the name of the JSON configuration file to load
	FileName string

	// EnvFileName is the name of an optional dotenv file to load
	EnvFileName string

	// Merge are merge policy overrides applied when combining layers
	Merge []deepmerge.Option

	// Log is the logger to use
	Log *zap.Logger
}

// Load folds configuration layers into C, in increasing precedence:
// defaults, the JSON config file, the dotenv file, environment variables.
// Layers combine through the merge engine, so nested keys merge
// recursively and a null in a later layer does not erase an earlier value
// unless the policy says so.
//
// A missing or malformed config file is logged and skipped, matching the
// behaviour of optional config files.
func Load[C any](opt LoadOptions) (C, error) {

	var log *zap.Logger
	if opt.Log != nil {
		log = opt.Log
	} else {
		log = zap.NewNop()
	}

	merge := koanf.WithMergeFunc(MergeFunc(opt.Merge...))

	k := koanf.New(".")

	if opt.Defaults != nil {
		k.Load(confmap.Provider(opt.Defaults, "."), nil, merge)
	}

	if opt.FileName != "" {
		if err := k.Load(file.Provider(opt.FileName), json.Parser(), merge); err != nil {
			log.Error("error parsing config file",
				zap.Error(err),
				zap.String("file", opt.FileName),
			)
		}
	}

	transformPrefixedEnv := func(s string) string {
		return transformEnv(s, opt.EnvPrefix)
	}

	if opt.EnvFileName != "" {
		parser := dotenv.ParserEnv(opt.EnvPrefix, ".", transformPrefixedEnv)
		if err := k.Load(file.Provider(opt.EnvFileName), parser, merge); err != nil {
			log.Error("error parsing env file",
				zap.Error(err),
				zap.String("file", opt.EnvFileName),
			)
		}
	}

	var config C

	if err := k.Load(env.Provider(opt.EnvPrefix, ".", transformPrefixedEnv), nil, merge); err != nil {
		log.Error("error parsing env vars", zap.Error(err))
		return config, err
	}

	if err := k.UnmarshalWithConf("", &config, koanf.UnmarshalConf{Tag: "conf"}); err != nil {
		log.Error("error unmarshalling config", zap.Error(err))
		return config, err
	}

	return config, nil
}

func transformEnv(s, prefix string) string {
	// allow specifying nested env vars w/ __
	normalized := strings.ReplaceAll(strings.ToLower(s), "__", ".")
	// split normalized env var by separator
	parts := strings.Split(normalized, ".")
	// pop prefix if it is set
	if prefix != "" {
		_, parts = parts[0], parts[1:]
	}
	// create final string
	return strings.Join(parts, ".")
}
