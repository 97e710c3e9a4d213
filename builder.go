package mecabext

import "context"

// Builder defines the interface that extension builders must implement.
//
// Each builder is responsible for one way of producing a loadable extension.
// The base pipeline ships a single builder (SwigBuilder, for declarative .i
// interface descriptions), but the factory accepts additional registrations
// so that a project carrying other extension sources can route them the
// same way.
//
// # Builder Lifecycle
//
//  1. CanBuild() - Factory calls this to find the right builder for a source file
//  2. Build() - Factory calls this to compile the extension
//  3. Clean() - Optional cleanup of build artifacts
//
// # Thread Safety
//
// Builder implementations should be stateless and thread-safe.
type Builder interface {
	// Name returns the human-readable name of this builder,
	// used in error messages and logs.
	Name() string

	// CanBuild checks if this builder can handle the given source file.
	// The parameter is typically just the filename (e.g., "mecab.i") or a
	// relative path (e.g., "swig/mecab.i").
	CanBuild(interfaceFile string) bool

	// Build compiles the extension and returns the result.
	//
	// The interfaceFile path is relative to config.ProjectDir.
	//
	// Returns:
	//   - BuildResult with Success=true and Extensions list on success
	//   - BuildResult with Success=false and Error on failure
	Build(ctx context.Context, config *BuildConfig, interfaceFile string) (*BuildResult, error)

	// Clean removes build artifacts. Returns nil if cleaning is not
	// supported or completes successfully.
	Clean(ctx context.Context, config *BuildConfig, interfaceFile string) error
}
