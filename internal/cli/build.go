package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	mecabext "github.com/fluentnihon/mecab-extension-go"
)

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate and compile the native extension module",
		Long: `Generate and compile the native extension module.

Library flags are discovered from a system-installed mecab-config, or —
with --bundled or BUNDLE_LIBMECAB set — from a nested build of the
vendored libmecab source tree. SWIG then generates the wrapper source,
which is compiled into a loadable extension; the redundant high-level
wrapper module SWIG emits is discarded afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := c.newBuildConfig(opts)
			if err != nil {
				return err
			}
			_, err = c.runBuild(cmd.Context(), config, opts.interfaceFile)
			return err
		},
	}

	opts.register(cmd)
	return cmd
}

// distCommand creates the dist command: build, then stage.
func (c *CLI) distCommand() *cobra.Command {
	opts := &buildOptions{}
	var distDir string

	cmd := &cobra.Command{
		Use:   "dist",
		Short: "Build the extension and stage the distributable package",
		Long: `Build the extension and stage the distributable package.

The staged tree contains the compiled extension, the assembled package
metadata, and — when building against the bundled library — the runtime
configuration template plus any dictionary files resolved from
MECAB_DICDIR, MECAB_DICPATH, MECABRC, or the standard mecabrc locations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := c.newBuildConfig(opts)
			if err != nil {
				return err
			}
			if distDir != "" {
				config.DistDir = distDir
			}

			result, err := c.runBuild(cmd.Context(), config, opts.interfaceFile)
			if err != nil {
				return err
			}

			meta, err := mecabext.AssembleMetadata(cmd.Context(), config.ProjectDir)
			if err != nil {
				return err
			}

			staged, err := mecabext.StageDistribution(cmd.Context(), config, result, meta)
			if err != nil {
				return err
			}

			loggerFromContext(cmd.Context()).Info("staged distribution",
				"name", meta.Name,
				"version", meta.Version,
				"dir", staged)
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&distDir, "output", "o", "", "dist directory, relative to the project root (default \"dist\")")
	return cmd
}

// runBuild routes the interface file through the builder factory and logs
// the outcome.
func (c *CLI) runBuild(ctx context.Context, config *mecabext.BuildConfig, interfaceFile string) (*mecabext.BuildResult, error) {
	logger := loggerFromContext(ctx)
	start := time.Now()

	factory := mecabext.NewBuilderFactory()
	results, err := factory.BuildAllExtensions(ctx, config, []string{interfaceFile})

	for _, result := range results {
		if config.Verbose || !result.Success {
			for _, line := range result.Output {
				logger.Debug(line)
			}
		}
	}
	if err != nil {
		return nil, err
	}

	result := results[0]
	logger.Info("built extension",
		"artifacts", result.Extensions,
		"duration", time.Since(start).Round(time.Millisecond))
	return result, nil
}
