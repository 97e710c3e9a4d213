// Package mecabext builds and packages the SWIG-generated native binding
// for the MeCab morphological analyzer.
//
// The package contains no analysis logic of its own. MeCab (dictionary
// lookup, lattice construction, cost-based path search) is an external
// collaborator reached through its C++ interface; this package only knows
// how to produce a loadable extension module that calls into it, and how
// to stage that extension into a distributable package.
//
// # Pipeline
//
// A build runs as a linear pipeline:
//
//  1. Locate libmecab build flags, either by querying a system-installed
//     mecab-config or by compiling a bundled copy of the library source.
//  2. Run SWIG against the declarative interface description (mecab.i)
//     and compile the generated C++ into a shared extension module.
//  3. Discard the redundant high-level wrapper SWIG emits alongside the
//     extension, after verifying its generator signature.
//  4. Optionally resolve an on-disk MeCab dictionary and stage its files,
//     together with the extension and package metadata, into a dist tree.
//
// # Basic Usage
//
// Create a builder factory and use it to build the binding:
//
//	factory := mecabext.NewBuilderFactory()
//
//	config := &mecabext.BuildConfig{
//	    ProjectDir: "/path/to/project",
//	    SourceDir:  "swig",
//	    DistDir:    "dist",
//	    Verbose:    true,
//	}
//
//	results, err := factory.BuildAllExtensions(ctx, config, []string{"swig/mecab.i"})
//
// # Library Discovery
//
// Two mutually exclusive discovery modes exist, selected by
// BuildConfig.UseBundledLib:
//
//   - System mode queries mecab-config for include directories, library
//     directories, and link libraries. The tool is always invoked under a
//     neutral "C" locale so its output is machine-parseable regardless of
//     the host environment.
//   - Bundled mode runs a nested configure/make build of a vendored
//     libmecab source tree and derives the same flags from its output.
//
// If either mode cannot produce all three flag categories the build fails
// loudly rather than emitting an extension that cannot link.
//
// # Environment
//
// Ambient environment access goes through the Environ interface so tests
// can inject fabricated environments without mutating process state. The
// variables consumed are BUNDLE_LIBMECAB (discovery mode), MECAB_DICDIR,
// MECAB_DICPATH, and MECABRC (dictionary resolution).
//
// # Requirements
//
// Requires Go 1.25 or later, SWIG, a C++ compiler, and either a system
// MeCab installation or a vendored libmecab source tree.
package mecabext
