package mecabext

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// SwigBuilder handles declarative SWIG interface descriptions (.i files).
//
// This is the one builder the binding needs: it generates the native
// wrapper source from mecab.i, compiles it into a loadable extension
// module, and discards the redundant high-level wrapper SWIG emits as a
// side effect.
//
// Library flags are discovered lazily, only when a build actually runs,
// through the FlagLocator selected by the configuration. If the pipeline
// never reaches the compile step, neither mecab-config nor the nested
// bundled build is ever invoked.
type SwigBuilder struct{}

// Name returns the builder name
func (b *SwigBuilder) Name() string {
	return "SWIG"
}

// RequiredTools returns the tools needed for SWIG builds
func (b *SwigBuilder) RequiredTools() []ToolRequirement {
	return []ToolRequirement{
		{
			Name:    "swig",
			Purpose: "interface-generation tool for the binding source",
		},
		{
			Name:         "g++",
			Alternatives: []string{"clang++", "c++"},
			Purpose:      "C++ compiler for the generated wrapper",
		},
		{
			Name:     "mecab-config",
			Optional: true,
			Purpose:  "library flag discovery (system mode only)",
		},
	}
}

// CheckTools verifies that SWIG and a C++ compiler are available
func (b *SwigBuilder) CheckTools() error {
	return CheckRequiredTools(b.RequiredTools())
}

// CanBuild checks if this builder can handle the source file
func (b *SwigBuilder) CanBuild(interfaceFile string) bool {
	return MatchesPattern(interfaceFile, `\.i$`)
}

// Build compiles the extension using the swig → compile workflow, then
// prunes the generated high-level wrapper.
func (b *SwigBuilder) Build(ctx context.Context, config *BuildConfig, interfaceFile string) (*BuildResult, error) {
	var flags *BuildFlags

	result, err := runCommonBuild(ctx, config, interfaceFile, CommonBuildSteps{
		ConfigureFunc: func(ctx context.Context, config *BuildConfig, sourceDir string, result *BuildResult) error {
			located, err := LocatorFor(config).Locate(ctx, config)
			if err != nil {
				return err
			}
			flags = located
			result.Flags = located

			result.Output = append(result.Output,
				"Extension build configuration adjusted:",
				fmt.Sprintf(" include_dirs = %v", located.IncludeDirs),
				fmt.Sprintf(" library_dirs = %v", located.LibraryDirs),
				fmt.Sprintf(" libraries    = %v", located.Libraries),
				fmt.Sprintf(" swig_opts    = %v", located.GeneratorFlags))

			return b.runSwig(ctx, config, sourceDir, interfaceFile, flags, result)
		},
		BuildFunc: func(ctx context.Context, config *BuildConfig, sourceDir string, result *BuildResult) error {
			return b.compileWrapper(ctx, config, sourceDir, interfaceFile, flags, result)
		},
		FindFunc: b.findBuiltExtensions,
	})

	if err != nil {
		return result, err
	}

	b.pruneWrapper(config, interfaceFile, result)
	return result, nil
}

// Clean removes generated sources and compiled extensions.
func (b *SwigBuilder) Clean(ctx context.Context, config *BuildConfig, interfaceFile string) error {
	sourcePath := filepath.Join(config.ProjectDir, interfaceFile)
	dir := filepath.Dir(sourcePath)
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))

	artifacts := []string{
		filepath.Join(dir, stem+wrapperSourceSuffix),
		filepath.Join(dir, "_"+stem+".so"),
		filepath.Join(dir, "_"+stem+".bundle"),
		filepath.Join(dir, "_"+stem+".dll"),
	}
	for _, artifact := range artifacts {
		if err := os.Remove(artifact); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// wrapperSourceSuffix is appended to the interface basename for the
// generated C++ source (mecab.i → mecab_wrap.cxx).
const wrapperSourceSuffix = "_wrap.cxx"

// runSwig executes the interface-generation tool against the .i description.
func (b *SwigBuilder) runSwig(ctx context.Context, config *BuildConfig, sourceDir, interfaceFile string, flags *BuildFlags, result *BuildResult) error {
	name := filepath.Base(interfaceFile)
	wrapperSource := strings.TrimSuffix(name, filepath.Ext(name)) + wrapperSourceSuffix

	if config.CleanFirst {
		_ = os.Remove(filepath.Join(sourceDir, wrapperSource))
	}

	args := []string{"-python"}
	args = append(args, flags.GeneratorFlags...)
	args = append(args, "-o", wrapperSource, name)

	cmd := exec.CommandContext(ctx, "swig", args...)
	cmd.Dir = sourceDir
	cmd.Env = buildEnv(config)

	output, err := cmd.CombinedOutput()
	result.Output = append(result.Output, strings.Split(string(output), "\n")...)

	if config.Verbose {
		result.Output = append(result.Output,
			fmt.Sprintf("Running: swig %s", strings.Join(args, " ")),
			fmt.Sprintf("Working directory: %s", sourceDir))
	}

	if err != nil {
		return BuildError("SWIG", result.Output, err)
	}

	// Verify the wrapper source was created
	if _, err := os.Stat(filepath.Join(sourceDir, wrapperSource)); os.IsNotExist(err) {
		return BuildError("SWIG", result.Output, fmt.Errorf("wrapper source not generated"))
	}

	return nil
}

// compileWrapper compiles the generated C++ source into a shared extension.
func (b *SwigBuilder) compileWrapper(ctx context.Context, config *BuildConfig, sourceDir, interfaceFile string, flags *BuildFlags, result *BuildResult) error {
	name := filepath.Base(interfaceFile)
	base := strings.TrimSuffix(name, filepath.Ext(name))

	args := []string{"-shared", "-fPIC", "-o", "_" + base + ".so", base + wrapperSourceSuffix}
	args = append(args, flags.ExtraCompileArgs...)
	for _, dir := range flags.IncludeDirs {
		args = append(args, "-I"+dir)
	}
	for _, dir := range flags.LibraryDirs {
		args = append(args, "-L"+dir)
	}
	for _, lib := range flags.Libraries {
		args = append(args, "-l"+lib)
	}

	cmd := exec.CommandContext(ctx, b.compiler(config.environ()), args...)
	cmd.Dir = sourceDir
	cmd.Env = buildEnv(config)

	output, err := cmd.CombinedOutput()
	result.Output = append(result.Output, strings.Split(string(output), "\n")...)

	if config.Verbose {
		result.Output = append(result.Output,
			fmt.Sprintf("Running: %s %s", b.compiler(config.environ()), strings.Join(args, " ")),
			fmt.Sprintf("Working directory: %s", sourceDir))
	}

	if err != nil {
		return BuildError("Compile", result.Output, err)
	}

	return nil
}

// findBuiltExtensions locates the compiled extension files
func (b *SwigBuilder) findBuiltExtensions(sourceDir string) ([]string, error) {
	var extensions []string

	// Common extension file patterns
	patterns := []string{
		"*.so",     // Linux/Unix shared libraries
		"*.bundle", // macOS bundles
		"*.dll",    // Windows dynamic libraries
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(sourceDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to glob pattern %s in %s: %v", pattern, sourceDir, err)
		}

		for _, match := range matches {
			relPath, err := filepath.Rel(sourceDir, match)
			if err == nil {
				extensions = append(extensions, relPath)
			}
		}
	}

	return extensions, nil
}

// pruneWrapper discards the unwanted high-level wrapper module generated
// alongside the extension. Failures are recorded in the result output but
// never fail the build; a wrapper that is missing or unrecognized is left
// alone.
func (b *SwigBuilder) pruneWrapper(config *BuildConfig, interfaceFile string, result *BuildResult) {
	wrapper, pruned, err := PruneGeneratedWrapper(filepath.Join(config.ProjectDir, interfaceFile))
	switch {
	case err != nil:
		result.Output = append(result.Output, fmt.Sprintf("wrapper prune skipped: %v", err))
	case pruned:
		result.Output = append(result.Output, fmt.Sprintf("discarding wrapper module %s for %s", wrapper, interfaceFile))
	}
}

// compiler returns the C++ compiler to use, honoring the CXX variable.
func (b *SwigBuilder) compiler(environ Environ) string {
	if compiler, ok := environ.Lookup("CXX"); ok && compiler != "" {
		return compiler
	}
	return "c++"
}
