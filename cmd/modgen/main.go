// Command modgen generates the Scaleway Ansible collection from the
// Scaleway Go SDK.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/scaleway/ansible-modgen/modgen"
	"github.com/scaleway/ansible-modgen/modgen/ir"
	"github.com/scaleway/ansible-modgen/modgen/provider"
)

const defaultSDKPattern = "github.com/scaleway/scaleway-sdk-go/api/..."

type CLI struct {
	Gen     GenCmd     `cmd:"" help:"Generate the collection modules and manifest."`
	Check   CheckCmd   `cmd:"" help:"Run discovery and print resources without writing files."`
	Version VersionCmd `cmd:"" help:"Print version information."`

	Verbose bool `help:"Enable debug logging." short:"v"`
}

type GenCmd struct {
	Out              string   `arg:"" help:"Output directory for the collection."`
	Package          []string `help:"SDK package pattern to analyze." placeholder:"PATTERN" default:"${sdk_pattern}"`
	Provider         string   `help:"Discovery strategy." enum:"source,reflection" default:"source"`
	Region           []string `help:"Override the allowed region values." placeholder:"REGION"`
	CollectionPrefix string   `help:"Module name prefix." default:"scaleway_"`
	RequiresAnsible  string   `help:"Supported Ansible range for the manifest." default:">=2.9.10"`
}

func (c *GenCmd) Run(logger *zerolog.Logger) error {
	if c.Provider == modgen.ProviderReflection {
		return fmt.Errorf("the reflection provider requires registered API values; use the modgen package directly")
	}

	res, err := modgen.Generate(context.Background(), modgen.Config{
		OutDir:           c.Out,
		Provider:         c.Provider,
		Packages:         c.Package,
		Regions:          c.Region,
		CollectionPrefix: c.CollectionPrefix,
		RequiresAnsible:  c.RequiresAnsible,
		Logger:           logger,
	})
	if err != nil {
		return err
	}

	for _, name := range res.Modules {
		fmt.Println(name)
	}
	fmt.Printf("wrote %d files to %s\n", len(res.Files), c.Out)
	return nil
}

type CheckCmd struct {
	Package []string `help:"SDK package pattern to analyze." placeholder:"PATTERN" default:"${sdk_pattern}"`
	Region  []string `help:"Override the allowed region values." placeholder:"REGION"`
}

func (c *CheckCmd) Run(logger *zerolog.Logger) error {
	p := &provider.SourceProvider{}
	schema, err := p.BuildSchema(context.Background(), provider.SourceInputOptions{
		Packages: c.Package,
		Regions:  c.Region,
	})
	if err != nil {
		return err
	}

	for _, api := range schema.APIs {
		fmt.Printf("%s (class %s, import %s)\n", api.Name, api.ClassName, api.ImportPath)
		for _, m := range crudMethods(api) {
			fmt.Printf("  %s\n", m.Name)
		}
	}
	for _, w := range schema.Warnings {
		logger.Warn().Str("code", w.Code).Str("symbol", w.Symbol).Msg(w.Message)
	}
	fmt.Printf("%d resources, %d warnings\n", len(schema.APIs), len(schema.Warnings))
	return nil
}

func crudMethods(api *ir.APIDescriptor) []*ir.MethodDescriptor {
	var methods []*ir.MethodDescriptor
	for _, m := range []*ir.MethodDescriptor{api.Create, api.Get, api.Update, api.Delete, api.List, api.WaitFor} {
		if m != nil {
			methods = append(methods, m)
		}
	}
	return methods
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(Version())
	return nil
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("modgen"),
		kong.Description("Generate Scaleway Ansible modules from the Scaleway Go SDK."),
		kong.UsageOnError(),
		kong.Vars{"sdk_pattern": defaultSDKPattern},
	)

	level := zerolog.InfoLevel
	if cli.Verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	err := ctx.Run(&logger)
	ctx.FatalIfErrorf(err)
}
