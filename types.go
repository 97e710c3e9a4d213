package mecabext

import "context"

// BuildResult contains the output and status of a build operation.
//
// After a build completes, this structure provides:
//   - Success status indicating if the build completed without errors
//   - Output lines captured from the build process (stdout/stderr)
//   - Extensions list of compiled extension files (.so/.bundle/.dll)
//   - Flags used to configure the interface-generation step, if any
//   - Error information if the build failed
type BuildResult struct {
	Success    bool        // True if build completed successfully
	Output     []string    // Lines of output from the build process
	Extensions []string    // Paths to built extension files
	Flags      *BuildFlags // Library flags the build was configured with
	Error      error       // Error if build failed, nil otherwise
}

// BuildConfig contains configuration for the build process.
//
// Source paths define where files are located:
//   - ProjectDir: Root directory of the binding project
//   - SourceDir: Directory holding the interface description and generated sources,
//     relative to ProjectDir
//   - DistDir: Destination directory for the staged distribution, relative to
//     ProjectDir
//
// Library discovery:
//   - UseBundledLib: Build the vendored libmecab instead of querying mecab-config.
//     Defaults to the BUNDLE_LIBMECAB environment variable when unset by the caller
//     (see NewBuildConfig).
//   - BundleDir: Root of the nested build area for the vendored library source,
//     relative to ProjectDir. The vendored tree itself lives at BundleDir/mecab.
//   - ConfigTool: Name of the configuration-query tool (default "mecab-config")
//
// Build behavior:
//   - Env: Extra environment variables set during subprocess calls
//   - Environ: Ambient environment provider, defaults to the process environment
//   - Verbose: Enable detailed build output
//   - CleanFirst: Remove generated sources before building
//   - Parallel: Number of parallel jobs for the nested make (0 = default)
type BuildConfig struct {
	// Source paths
	ProjectDir string // Root directory of the binding project
	SourceDir  string // Directory containing the interface description
	DistDir    string // Destination for the staged distribution

	// Library discovery
	UseBundledLib bool   // Build vendored libmecab instead of querying the system
	BundleDir     string // Nested build area for the vendored source tree
	ConfigTool    string // Configuration-query tool name

	// Build environment
	Env     map[string]string // Extra environment variables for subprocesses
	Environ Environ           // Ambient environment provider (nil = process env)

	// Build options
	Verbose    bool // Enable verbose output
	CleanFirst bool // Remove generated sources before build
	Parallel   int  // Number of parallel jobs for the nested make
}

// NewBuildConfig returns a config rooted at projectDir with the default
// layout and the discovery mode taken from the BUNDLE_LIBMECAB environment
// variable, matching how the packaging pipeline is normally driven.
func NewBuildConfig(projectDir string, environ Environ) *BuildConfig {
	if environ == nil {
		environ = OSEnviron()
	}
	_, bundled := environ.Lookup("BUNDLE_LIBMECAB")

	return &BuildConfig{
		ProjectDir:    projectDir,
		SourceDir:     "swig",
		DistDir:       "dist",
		UseBundledLib: bundled,
		BundleDir:     "build/libmecab",
		ConfigTool:    defaultConfigTool,
		Environ:       environ,
	}
}

func (c *BuildConfig) environ() Environ {
	if c.Environ == nil {
		return OSEnviron()
	}
	return c.Environ
}

func (c *BuildConfig) configTool() string {
	if c.ConfigTool == "" {
		return defaultConfigTool
	}
	return c.ConfigTool
}

const defaultConfigTool = "mecab-config"

// CommonBuildSteps defines the standard 3-step build pattern.
//
// Building the binding follows the same shape as any native-extension build:
//
//  1. Configure: discover library flags and generate native source
//  2. Build: compile the generated source into the extension
//  3. Find: locate the compiled extension files
//
// This structure lets builders implement the pattern consistently while
// customizing each step's behavior.
type CommonBuildSteps struct {
	// ConfigureFunc prepares the build (flag discovery, interface generation)
	ConfigureFunc func(ctx context.Context, config *BuildConfig, sourceDir string, result *BuildResult) error

	// BuildFunc compiles the extension
	BuildFunc func(ctx context.Context, config *BuildConfig, sourceDir string, result *BuildResult) error

	// FindFunc locates the compiled extension files after build completes
	FindFunc func(sourceDir string) ([]string, error)
}
