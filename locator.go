package mecabext

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// BuildFlags is the build configuration discovered for libmecab.
//
// Immutable once computed; recomputed per build invocation. Produced by a
// FlagLocator and attached to the extension's build parameters by
// SwigBuilder.
type BuildFlags struct {
	IncludeDirs      []string // -I search paths for libmecab headers
	LibraryDirs      []string // -L search paths for libmecab
	Libraries        []string // link-library names, without the -l prefix
	GeneratorFlags   []string // flags for the interface-generation tool
	ExtraCompileArgs []string // extra compiler flags for the generated source
}

// newBuildFlags assembles BuildFlags from the three discovered flag lists.
//
// An empty category means the extension could not possibly link, so the
// build must fail loudly here rather than produce an unusable module.
func newBuildFlags(includeDirs, libraryDirs, libraries []string) (*BuildFlags, error) {
	switch {
	case len(includeDirs) == 0:
		return nil, fmt.Errorf("libmecab discovery produced no include directories")
	case len(libraryDirs) == 0:
		return nil, fmt.Errorf("libmecab discovery produced no library directories")
	case len(libraries) == 0:
		return nil, fmt.Errorf("libmecab discovery produced no link libraries")
	}

	generatorFlags := []string{"-O", "-builtin", "-c++", "-py3"}
	for _, dir := range includeDirs {
		generatorFlags = append(generatorFlags, "-I"+dir)
	}

	return &BuildFlags{
		IncludeDirs:      includeDirs,
		LibraryDirs:      libraryDirs,
		Libraries:        libraries,
		GeneratorFlags:   generatorFlags,
		ExtraCompileArgs: []string{"-Wno-unused-variable"},
	}, nil
}

// FlagLocator discovers libmecab build flags.
//
// Two implementations exist: SystemLocator queries a system-installed
// mecab-config, BundledLocator compiles a vendored copy of the library
// source. The modes are mutually exclusive; LocatorFor selects one from
// the build configuration.
type FlagLocator interface {
	// Name returns the locator name for logs and error messages.
	Name() string

	// Locate computes the build flags. Any failure (missing query tool,
	// failed nested build, empty flag category) is fatal to the build.
	Locate(ctx context.Context, config *BuildConfig) (*BuildFlags, error)
}

// LocatorFor returns the flag locator selected by the build configuration.
func LocatorFor(config *BuildConfig) FlagLocator {
	if config.UseBundledLib {
		return &BundledLocator{}
	}
	return &SystemLocator{}
}

// SystemLocator queries a system-installed mecab-config for build flags.
//
// The tool is invoked three times, once per flag category, under a neutral
// locale so its output tokenizes reliably.
type SystemLocator struct{}

// Name returns the locator name.
func (l *SystemLocator) Name() string {
	return "system"
}

// Locate queries the configuration tool for include directories, library
// directories, and link-library names.
func (l *SystemLocator) Locate(ctx context.Context, config *BuildConfig) (*BuildFlags, error) {
	runner := &CLocaleRunner{Environ: config.environ()}
	tool := config.configTool()

	includeDirs, err := runner.Tokens(ctx, tool, "--inc-dir")
	if err != nil {
		return nil, err
	}
	libraryDirs, err := runner.Tokens(ctx, tool, "--libs-only-L")
	if err != nil {
		return nil, err
	}
	libraries, err := runner.Tokens(ctx, tool, "--libs-only-l")
	if err != nil {
		return nil, err
	}

	return newBuildFlags(includeDirs, libraryDirs, libraries)
}

// BundledLocator builds the vendored libmecab source tree and derives the
// build flags from its output.
//
// The vendored tree is expected at config.BundleDir/mecab (relative to
// ProjectDir). After the nested configure/make build, headers and the
// static library both live in the tree's src directory.
//
// mecab-config --libs-only-l would report the libraries needed to link a
// hypothetical shared libmecab; the nested build produces a static one, so
// the actual link list is "mecab" plus the LIBS substitution variable from
// the generated Makefile.
type BundledLocator struct{}

// Name returns the locator name.
func (l *BundledLocator) Name() string {
	return "bundled"
}

// Locate runs the nested build and computes flags from its output.
func (l *BundledLocator) Locate(ctx context.Context, config *BuildConfig) (*BuildFlags, error) {
	treeDir := filepath.Join(config.ProjectDir, config.BundleDir, "mecab")
	if _, err := os.Stat(treeDir); err != nil {
		return nil, fmt.Errorf("bundled libmecab source not found at %s: %w", treeDir, err)
	}

	if err := l.nestedBuild(ctx, config, treeDir); err != nil {
		return nil, err
	}

	srcDir := filepath.Join(treeDir, "src")
	libraries, err := bundledLibraries(filepath.Join(treeDir, "Makefile"))
	if err != nil {
		return nil, err
	}

	return newBuildFlags([]string{srcDir}, []string{srcDir}, libraries)
}

// nestedBuild configures and compiles the vendored tree in place.
// The configure step is skipped when a Makefile already exists, so repeat
// builds reuse the previous configuration.
func (l *BundledLocator) nestedBuild(ctx context.Context, config *BuildConfig, treeDir string) error {
	if _, err := os.Stat(filepath.Join(treeDir, "Makefile")); os.IsNotExist(err) {
		configure := exec.CommandContext(ctx, "./configure", "--enable-static", "--disable-shared", "--with-charset=utf8")
		configure.Dir = treeDir
		configure.Env = buildEnv(config)
		if out, err := configure.CombinedOutput(); err != nil {
			return BuildError("libmecab configure", strings.Split(string(out), "\n"), err)
		}
	}

	args := []string{}
	if config.Parallel > 0 {
		args = append(args, fmt.Sprintf("-j%d", config.Parallel))
	}

	build := exec.CommandContext(ctx, makeProgram(config.environ()), args...)
	build.Dir = treeDir
	build.Env = buildEnv(config)
	if out, err := build.CombinedOutput(); err != nil {
		return BuildError("libmecab make", strings.Split(string(out), "\n"), err)
	}

	return nil
}

// bundledLibraries derives the link-library list for a static bundled
// libmecab from the generated Makefile.
func bundledLibraries(makefilePath string) ([]string, error) {
	f, err := os.Open(makefilePath)
	if err != nil {
		return nil, fmt.Errorf("bundled build left no Makefile: %w", err)
	}
	defer f.Close()

	return append([]string{"mecab"}, parseMakefileLibs(f)...), nil
}

// parseMakefileLibs scans Makefile text for the first "LIBS =" assignment
// and returns every -l-prefixed token with the prefix stripped.
func parseMakefileLibs(r io.Reader) []string {
	var libs []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "LIBS =") {
			continue
		}
		_, value, _ := strings.Cut(line, "=")
		for _, token := range strings.Fields(value) {
			if strings.HasPrefix(token, "-l") {
				libs = append(libs, token[2:])
			}
		}
		break
	}

	return libs
}

// buildEnv merges config.Env over the ambient environment for subprocess calls.
func buildEnv(config *BuildConfig) []string {
	env := config.environ().Environ()
	for key, value := range config.Env {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}
	return env
}

// makeProgram returns the make binary to use, honoring the MAKE variable.
func makeProgram(environ Environ) string {
	if program, ok := environ.Lookup("MAKE"); ok && program != "" {
		return program
	}
	return "make"
}
