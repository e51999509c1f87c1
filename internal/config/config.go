// Package config loads the strictness and solver-budget knobs a check
// invocation runs under, mirroring the teacher's project-manifest loading
// convention (cmd/surge/project_manifest.go, internal/project/modules.go):
// decode TOML into a typed struct, then validate the decoded fields by hand
// since toml.Decode alone won't catch an empty or out-of-range value.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// CheckOptions configures one check invocation's strictness and solver
// budget (spec.md §2.3, §4.5, §4.7).
type CheckOptions struct {
	// Strict enables strict-mode binder rules, e.g. TS1252's rejection of a
	// function declaration nested directly inside a block.
	Strict bool `toml:"strict"`
	// NoImplicitAny turns an inferred/defaulted Any into a diagnostic
	// (TS7006, TS7053) instead of silently accepting it.
	NoImplicitAny bool `toml:"no_implicit_any"`
	// StrictNullChecks is reserved: null and undefined are always distinct
	// types per spec.md §3.2 regardless of this flag. It only toggles
	// whether they're implicitly included in every other type's domain.
	StrictNullChecks bool `toml:"strict_null_checks"`
	// MaxInferenceIterations is the inference budget a manifest may set;
	// zero falls back to DefaultMaxInferenceIterations. Load validates it,
	// but the checker's inference loop does not read it: that loop runs one
	// round per type parameter.
	MaxInferenceIterations int `toml:"max_inference_iterations"`
	// Target selects module-vs-script strictness, feeding the block-scoped
	// function hoisting policy (spec.md §4.7): "module" or "script".
	Target string `toml:"target"`
	// StrictInternal makes an internal contract violation panic instead of
	// degrading to Any plus a TSInternalError diagnostic.
	StrictInternal bool `toml:"strict_internal"`
}

// DefaultMaxInferenceIterations is the MaxInferenceIterations value used
// when a manifest doesn't set one explicitly.
const DefaultMaxInferenceIterations = 50

// Default returns the permissive baseline: sloppy-script mode, implicit any
// allowed, the default inference budget.
func Default() CheckOptions {
	return CheckOptions{
		Target:                 "script",
		MaxInferenceIterations: DefaultMaxInferenceIterations,
	}
}

// Load decodes CheckOptions from a TOML manifest at path, validating the
// fields a zero value can't distinguish from "absent" (an empty Target, a
// negative iteration cap).
func Load(path string) (CheckOptions, error) {
	opts := Default()
	meta, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return CheckOptions{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if meta.IsDefined("target") && strings.TrimSpace(opts.Target) == "" {
		return CheckOptions{}, fmt.Errorf("%s: [target] must not be empty", path)
	}
	if opts.Target != "module" && opts.Target != "script" {
		return CheckOptions{}, fmt.Errorf("%s: target must be \"module\" or \"script\", got %q", path, opts.Target)
	}
	if opts.MaxInferenceIterations < 0 {
		return CheckOptions{}, fmt.Errorf("%s: max_inference_iterations must not be negative", path)
	}
	if opts.MaxInferenceIterations == 0 {
		opts.MaxInferenceIterations = DefaultMaxInferenceIterations
	}
	return opts, nil
}

// IsModule reports whether opts checks its file in module mode, the
// strict-mode binder rule's own trigger independent of the Strict flag
// (spec.md §4.7: ES module bodies are implicitly strict).
func (o CheckOptions) IsModule() bool {
	return o.Target == "module"
}
