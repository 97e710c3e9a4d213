package mecabext

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/fluentnihon/mecab-extension-go/pkg/buildinfo"
)

// ManifestName is the project manifest filename at the project root.
const ManifestName = "mecab-ext.toml"

// ErrMalformedReadme reports a documentation file with no section header,
// which makes deriving a package description impossible.
var ErrMalformedReadme = errors.New("no '#' header line found in README")

// Manifest carries the static distribution metadata of the project.
//
// Version is optional: when empty, the assembler derives one from
// version-control state instead.
type Manifest struct {
	Name       string `toml:"name"`
	Version    string `toml:"version"`
	License    string `toml:"license"`
	Maintainer string `toml:"maintainer"`
	Email      string `toml:"email"`
	Homepage   string `toml:"homepage"`
}

// LoadManifest reads and decodes the TOML manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return &m, nil
}

// PackageMetadata is the fully assembled metadata of one distribution.
type PackageMetadata struct {
	Name            string
	Version         string
	License         string
	Maintainer      string
	Email           string
	Homepage        string
	LongDescription string
}

// AssembleMetadata builds the distribution metadata for the project:
// the manifest fields, a version (manifest-pinned or derived from git
// state), and the long description trimmed from README.md.
//
// A missing README is treated as an empty document, which then fails the
// header scan; a README without a header is a fatal configuration error.
func AssembleMetadata(ctx context.Context, projectDir string) (*PackageMetadata, error) {
	manifest, err := LoadManifest(filepath.Join(projectDir, ManifestName))
	if err != nil {
		return nil, err
	}

	description, err := LongDescription(filepath.Join(projectDir, "README.md"))
	if err != nil {
		return nil, err
	}

	version := manifest.Version
	if version == "" {
		version = ProjectVersion(ctx, projectDir)
	}

	return &PackageMetadata{
		Name:            manifest.Name,
		Version:         version,
		License:         manifest.License,
		Maintainer:      manifest.Maintainer,
		Email:           manifest.Email,
		Homepage:        manifest.Homepage,
		LongDescription: description,
	}, nil
}

// LongDescription derives the long-form package description from the
// documentation file at readmePath. A file that cannot be read is treated
// as empty, not as an error; header validation then decides the outcome.
func LongDescription(readmePath string) (string, error) {
	raw, err := os.ReadFile(readmePath)
	if err != nil {
		raw = nil
	}
	return TrimReadme(string(raw))
}

// TrimReadme discards unwanted top matter from README text for reuse as
// the long description: everything up to and including the first Markdown
// header line (begins with '#') and any blank lines immediately after it.
//
// Both leading and trailing horizontal whitespace may be significant in
// Markdown, so lines are never stripped. A document with no header line at
// all is malformed and yields ErrMalformedReadme.
func TrimReadme(doc string) (string, error) {
	lines := strings.Split(doc, "\n")

	foundFirstHeader := false
	for i, line := range lines {
		if foundFirstHeader {
			if line != "" {
				// First non-blank line after the first header: the
				// start of the content we keep.
				return strings.Join(lines[i:], "\n"), nil
			}
		} else if line != "" && line[0] == '#' {
			foundFirstHeader = true
		}
	}

	return "", ErrMalformedReadme
}

// ProjectVersion derives a version string from version-control state,
// falling back to the ldflags-injected build version when git is
// unavailable or the directory is not a repository.
func ProjectVersion(ctx context.Context, projectDir string) string {
	runner := &CLocaleRunner{}
	out, err := runner.Output(ctx, "git", "-C", projectDir, "describe", "--tags", "--always", "--dirty")
	if v := strings.TrimSpace(out); err == nil && v != "" {
		return v
	}
	return buildinfo.Version
}
