// Package provision builds ordered argument lists for the external
// provisioning tool. It performs token formatting only; no hook
// dispatch, no invariants beyond rendering rules.
package provision

import (
	"fmt"
	"sort"
	"strings"
)

// Canonical option names. Underscores here are translated to hyphens
// when rendered, matching the tool's CLI conventions.
const (
	OptionState         = "state"
	OptionTarget        = "target"
	OptionVar           = "var"
	OptionVarFile       = "var_file"
	OptionParallelism   = "parallelism"
	OptionInput         = "input"
	OptionBackendConfig = "backend_config"
)

// DefaultParallelism limits concurrent operations while the tool walks
// its resource graph.
const DefaultParallelism = 10

// initUnsupportedDefaults are the default options the `init` subcommand
// does not accept; DefaultOptions strips them for that subcommand.
var initUnsupportedDefaults = []string{
	OptionState,
	OptionTarget,
	OptionVar,
	OptionVarFile,
	OptionParallelism,
}

// Builder renders commands for the provisioning tool, carrying a fixed
// default option set that individual calls can override.
type Builder struct {
	StateFilePath     string
	ResourceTargets   []string
	Variables         map[string]string
	Parallelism       int
	VarDefinitionFile string

	// Input disables interactive prompting; all values must come from
	// configuration or the command line.
	Input bool
}

// NewBuilder creates a Builder with the standard defaults.
func NewBuilder() *Builder {
	return &Builder{
		ResourceTargets: []string{},
		Variables:       map[string]string{},
		Parallelism:     DefaultParallelism,
		Input:           false,
	}
}

// CommandList converts a base command string plus an option mapping into
// an ordered token list. Option names have underscores translated to
// hyphens; list values repeat the flag once per element; booleans render
// as literal true/false; a nested mapping under a backend-config key
// renders as repeated `key=value` sub-flags; nil values are skipped.
// Options are emitted in sorted name order so the output is
// deterministic, then any extra positional args are appended.
func (b *Builder) CommandList(command string, options map[string]any, args ...string) []string {
	tokens := strings.Fields(command)

	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := options[name]
		key := strings.ReplaceAll(name, "_", "-")

		switch v := value.(type) {
		case nil:
			// Unset option.
		case []string:
			for _, item := range v {
				tokens = append(tokens, fmt.Sprintf("-%s=%s", key, item))
			}
		case []any:
			for _, item := range v {
				tokens = append(tokens, fmt.Sprintf("-%s=%v", key, item))
			}
		case map[string]string:
			tokens = append(tokens, renderSubFlags(key, toAnyMap(v))...)
		case map[string]any:
			tokens = append(tokens, renderSubFlags(key, v)...)
		case bool:
			tokens = append(tokens, fmt.Sprintf("-%s=%t", key, v))
		default:
			tokens = append(tokens, fmt.Sprintf("-%s=%v", key, v))
		}
	}

	return append(tokens, args...)
}

// renderSubFlags expands a nested mapping. Only backend-config mappings
// have a defined rendering; other nested values are dropped, matching
// the tool's accepted surface.
func renderSubFlags(key string, value map[string]any) []string {
	if !strings.Contains(key, "backend-config") {
		return nil
	}
	subKeys := make([]string, 0, len(value))
	for k := range value {
		subKeys = append(subKeys, k)
	}
	sort.Strings(subKeys)

	var tokens []string
	for _, k := range subKeys {
		tokens = append(tokens, "-backend-config", fmt.Sprintf("%s=%v", k, value[k]))
	}
	return tokens
}

func toAnyMap(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// DefaultOptions merges the builder's standing defaults with
// call-specific overrides. For the init subcommand the defaults it does
// not support are removed before the merge result is returned.
func (b *Builder) DefaultOptions(subcommand string, overrides map[string]any) map[string]any {
	options := map[string]any{
		OptionState:       b.stateOrNil(),
		OptionTarget:      b.ResourceTargets,
		OptionVar:         b.variableFlags(),
		OptionVarFile:     b.varFileOrNil(),
		OptionParallelism: b.Parallelism,
		OptionInput:       b.Input,
	}
	for name, value := range overrides {
		options[name] = value
	}

	if subcommand == "init" {
		for _, name := range initUnsupportedDefaults {
			if _, overridden := overrides[name]; !overridden {
				delete(options, name)
			}
		}
	}
	return options
}

func (b *Builder) stateOrNil() any {
	if b.StateFilePath == "" {
		return nil
	}
	return b.StateFilePath
}

func (b *Builder) varFileOrNil() any {
	if b.VarDefinitionFile == "" {
		return nil
	}
	return b.VarDefinitionFile
}

// variableFlags renders the default variables as repeated -var=k=v
// list entries.
func (b *Builder) variableFlags() []string {
	keys := make([]string, 0, len(b.Variables))
	for k := range b.Variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	flags := make([]string, 0, len(keys))
	for _, k := range keys {
		flags = append(flags, fmt.Sprintf("%s=%s", k, b.Variables[k]))
	}
	return flags
}
