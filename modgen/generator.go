// Package modgen generates Scaleway Ansible collection modules from the
// Scaleway Go SDK. A provider introspects the SDK's API classes into
// descriptors; the ansible renderer emits one module per CRUD-complete
// resource plus the collection manifest.
package modgen

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/scaleway/ansible-modgen/modgen/ansible"
	"github.com/scaleway/ansible-modgen/modgen/ir"
	"github.com/scaleway/ansible-modgen/modgen/provider"
	"github.com/scaleway/ansible-modgen/modgen/sink"
)

// Provider names accepted by Config.Provider.
const (
	ProviderSource     = "source"
	ProviderReflection = "reflection"
)

// Config holds the configuration for one generation run.
type Config struct {
	// OutDir is the collection directory generated files are written into.
	OutDir string `validate:"required"`

	// Provider selects the discovery strategy.
	// "source" (default) analyzes SDK packages with go/packages and can
	// enumerate enum choices; "reflection" introspects registered API values.
	Provider string `validate:"oneof=source reflection"`

	// Packages are the SDK package patterns for the source provider.
	// e.g. []string{"github.com/scaleway/scaleway-sdk-go/api/..."}
	Packages []string

	// APIs are the registered API values for the reflection provider.
	APIs []provider.RegisteredAPI

	// Regions overrides the allowed values for fields named "region".
	Regions []string

	// CollectionPrefix is prepended to resource names to form module names.
	// Default: "scaleway_".
	CollectionPrefix string

	// RequiresAnsible is the manifest's supported Ansible range.
	RequiresAnsible string

	// Logger receives discovery warnings and the run summary.
	// Defaults to a no-op logger.
	Logger *zerolog.Logger

	// Fs overrides the output filesystem. Defaults to the OS filesystem.
	Fs afero.Fs
}

// Result reports what one generation run produced.
type Result struct {
	// Schema is the discovered schema, warnings included.
	Schema *ir.Schema

	// Modules are the emitted module names, in output order.
	Modules []string

	// Files are the paths written under OutDir, manifest included.
	Files []string
}

var validate = validator.New()

// Generate runs discovery with the configured provider and renders the
// collection into OutDir. Per-method and per-resource discovery failures are
// logged and skipped; only configuration, load and write failures abort the
// run.
func Generate(ctx context.Context, cfg Config) (*Result, error) {
	cfg = applyConfigDefaults(cfg)
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var (
		schema *ir.Schema
		err    error
	)
	switch cfg.Provider {
	case ProviderSource:
		schema, err = (&provider.SourceProvider{}).BuildSchema(ctx, provider.SourceInputOptions{
			Packages: cfg.Packages,
			Regions:  cfg.Regions,
		})
	case ProviderReflection:
		schema, err = (&provider.ReflectionProvider{}).BuildSchema(ctx, provider.ReflectionInputOptions{
			APIs:    cfg.APIs,
			Regions: cfg.Regions,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}

	for _, w := range schema.Warnings {
		cfg.Logger.Warn().
			Str("code", w.Code).
			Str("symbol", w.Symbol).
			Msg(w.Message)
	}

	out := sink.NewFilesystemSink(cfg.OutDir)
	out.Fs = cfg.Fs

	emitter := &ansible.Emitter{
		Prefix:          cfg.CollectionPrefix,
		RequiresAnsible: cfg.RequiresAnsible,
	}
	res, err := emitter.Generate(ctx, schema, out)
	if err != nil {
		return nil, fmt.Errorf("failed to render collection: %w", err)
	}

	cfg.Logger.Info().
		Int("modules", len(res.Modules)).
		Str("out_dir", cfg.OutDir).
		Msg("generation complete")

	return &Result{
		Schema:  schema,
		Modules: res.Modules,
		Files:   res.Files,
	}, nil
}

// applyConfigDefaults returns a copy of cfg with defaults filled in.
func applyConfigDefaults(cfg Config) Config {
	if cfg.Provider == "" {
		cfg.Provider = ProviderSource
	}
	if cfg.CollectionPrefix == "" {
		cfg.CollectionPrefix = ansible.DefaultPrefix
	}
	if cfg.RequiresAnsible == "" {
		cfg.RequiresAnsible = ansible.DefaultRequiresAnsible
	}
	if cfg.Logger == nil {
		nop := zerolog.Nop()
		cfg.Logger = &nop
	}
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	return cfg
}
