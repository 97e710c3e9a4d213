package mecabext

import (
	"context"
	"fmt"
	"path/filepath"
)

// BuilderFactory manages the registration and selection of extension builders.
//
// The factory maintains a registry of Builder implementations and provides
// methods to register builders, find the right builder for a source file,
// and build a list of extensions in sequence.
//
// # Builder Selection
//
// When building an extension, the factory:
//  1. Extracts the filename from the source path
//  2. Calls CanBuild() on each registered builder in order
//  3. Uses the first builder that returns true
//  4. Returns an error if no builder can handle the file
//
// # Thread Safety
//
// BuilderFactory is NOT thread-safe for registration. Register all builders
// before concurrent use; read operations are then safe.
type BuilderFactory struct {
	builders []Builder
}

// NewBuilderFactory creates a factory with the standard builder registered.
//
// The base pipeline has exactly one extension, produced from a SWIG
// interface description, so only SwigBuilder is registered. Projects with
// additional extension sources can Register further builders.
func NewBuilderFactory() *BuilderFactory {
	factory := &BuilderFactory{}
	factory.Register(&SwigBuilder{})
	return factory
}

// Register adds a new builder to the factory.
//
// Builders are checked in the order they are registered. Not thread-safe;
// register all builders before concurrent use.
func (f *BuilderFactory) Register(builder Builder) {
	f.builders = append(f.builders, builder)
}

// BuilderFor returns the appropriate builder for the given source file.
//
// Only the base filename is used for matching. Returns the first builder
// whose CanBuild() method returns true, or an error if none can handle
// the file.
func (f *BuilderFactory) BuilderFor(interfaceFile string) (Builder, error) {
	filename := filepath.Base(interfaceFile)

	for _, builder := range f.builders {
		if builder.CanBuild(filename) {
			return builder, nil
		}
	}

	return nil, fmt.Errorf("no builder found for extension source: %s", filename)
}

// ListBuilders returns a copy of all registered builders.
func (f *BuilderFactory) ListBuilders() []Builder {
	return append([]Builder{}, f.builders...)
}

// BuildAllExtensions builds all extensions in sequence.
//
// Each source is routed to its builder and built in order; processing stops
// on the first failure or on context cancellation. The pipeline treats all
// operations as deterministic, so nothing is retried — a failure surfaces
// immediately.
//
// Returns one BuildResult per extension processed and the first error
// encountered (if any). Even when an error is returned, the results slice
// contains partial results up to and including the failure.
func (f *BuilderFactory) BuildAllExtensions(ctx context.Context, config *BuildConfig, extensions []string) ([]*BuildResult, error) {
	if len(extensions) == 0 {
		return nil, nil
	}

	var results []*BuildResult
	var firstError error

	for _, extension := range extensions {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if firstError == nil {
				firstError = ctxErr
			}
			results = append(results, &BuildResult{
				Success: false,
				Error:   ctxErr,
			})
			break
		}

		builder, err := f.BuilderFor(extension)
		if err != nil {
			if firstError == nil {
				firstError = err
			}
			results = append(results, &BuildResult{
				Success: false,
				Error:   err,
			})
			break
		}

		result, err := builder.Build(ctx, config, extension)
		if err != nil {
			if firstError == nil {
				firstError = err
			}
			// Ensure we have a result even if builder didn't return one
			if result == nil {
				result = &BuildResult{
					Success: false,
					Error:   err,
				}
			}
		}

		results = append(results, result)

		if !result.Success {
			break
		}
	}

	return results, firstError
}
