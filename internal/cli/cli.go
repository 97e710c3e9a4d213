// Package cli implements the mecab-ext-build command-line interface.
//
// This package provides commands for compiling the SWIG-generated MeCab
// binding, staging a distributable package, inspecting dictionary
// resolution, and verifying the toolchain. The CLI is built using cobra
// and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - build: Generate and compile the native extension module
//   - dist: Build, then stage the distributable package
//   - dict: Show which dictionary directory would be bundled
//   - describe: Print the assembled package metadata
//   - doctor: Verify that the required build tools are installed
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	mecabext "github.com/fluentnihon/mecab-extension-go"
	"github.com/fluentnihon/mecab-extension-go/pkg/buildinfo"
)

// appName is the application name used for display.
const appName = "mecab-ext-build"

// defaultInterfaceFile is the SWIG interface description, relative to the
// project root.
const defaultInterfaceFile = "swig/mecab.i"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Builds and packages the native MeCab binding",
		Long:         `mecab-ext-build drives the packaging pipeline for the SWIG-generated MeCab binding: library flag discovery (system or bundled), interface generation, extension compilation, and distribution staging.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.distCommand())
	root.AddCommand(c.dictCommand())
	root.AddCommand(c.describeCommand())
	root.AddCommand(c.doctorCommand())

	return root
}

// newBuildConfig assembles a BuildConfig from the shared command flags.
func (c *CLI) newBuildConfig(opts *buildOptions) (*mecabext.BuildConfig, error) {
	projectDir := opts.projectDir
	if projectDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		projectDir = wd
	}

	config := mecabext.NewBuildConfig(projectDir, nil)
	if opts.bundled {
		config.UseBundledLib = true
	}
	config.Verbose = opts.verbose
	config.CleanFirst = opts.clean
	config.Parallel = opts.parallel
	return config, nil
}

// buildOptions are the flags shared by build and dist.
type buildOptions struct {
	projectDir    string
	interfaceFile string
	bundled       bool
	verbose       bool
	clean         bool
	parallel      int
}

// register adds the shared flags to cmd.
func (o *buildOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.projectDir, "project", "C", "", "project root directory (default: current directory)")
	cmd.Flags().StringVarP(&o.interfaceFile, "interface", "i", defaultInterfaceFile, "SWIG interface description, relative to the project root")
	cmd.Flags().BoolVar(&o.bundled, "bundled", false, "build the vendored libmecab instead of querying mecab-config (implied by BUNDLE_LIBMECAB)")
	cmd.Flags().BoolVar(&o.verbose, "build-output", false, "include full tool output in the build log")
	cmd.Flags().BoolVar(&o.clean, "clean-first", false, "remove generated sources before building")
	cmd.Flags().IntVarP(&o.parallel, "jobs", "j", 0, "parallel jobs for the nested library build")
}
