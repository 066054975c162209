package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/assetkit"
	"github.com/dmitrymomot/assetkit/pkg/config"
	"github.com/dmitrymomot/assetkit/pkg/logger"
)

// cli holds state shared by subcommands.
type cli struct {
	configFile string
	verbose    bool

	// env replaces the process environment when set.
	env map[string]string
}

func newRootCommand() *cobra.Command {
	return newRootCommandWith(&cli{})
}

func newRootCommandWith(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "assetctl",
		Short:         "Inspect asset types, storage settings and thumbnail styles",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&c.configFile, "config", "c", "", "YAML settings file, overrides the environment")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log debug output to stderr")

	root.AddCommand(
		newClassifyCommand(c),
		newTypesCommand(c),
		newConfigCommand(c),
		newStylesCommand(c),
		newProbeCommand(c),
		newMigrateCommand(c),
		newHealthCommand(c),
	)
	return root
}

// lookup chains the YAML file over the environment.
func (c *cli) lookup() (config.Lookup, error) {
	var (
		envMap config.Map
		err    error
	)
	if c.env != nil {
		envMap, err = config.FromEnvMap(c.env)
	} else {
		envMap, err = config.FromEnv()
	}
	if err != nil {
		return nil, err
	}
	if c.configFile == "" {
		return envMap, nil
	}

	fileMap, err := config.FromYAMLFile(c.configFile)
	if err != nil {
		return nil, err
	}
	return config.Chain(fileMap, envMap), nil
}

func (c *cli) logger(cmd *cobra.Command) *slog.Logger {
	if !c.verbose {
		return logger.NewNope()
	}
	return logger.New(
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithLevel(slog.LevelDebug),
		logger.WithExtractors(logger.AssetIDExtractor),
	)
}

func (c *cli) kit(cmd *cobra.Command) (*assetkit.Kit, error) {
	lookup, err := c.lookup()
	if err != nil {
		return nil, err
	}
	return assetkit.New(lookup, assetkit.WithLogger(c.logger(cmd)))
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return enc.Close()
}
