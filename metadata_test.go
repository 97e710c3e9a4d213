package mecabext

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fluentnihon/mecab-extension-go/pkg/buildinfo"
)

func TestTrimReadme(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "header and blank line trimmed",
			doc:  "# Title\n\nBody line 1\nBody line 2",
			want: "Body line 1\nBody line 2",
		},
		{
			name: "multiple blank lines after header",
			doc:  "# Title\n\n\n\nBody",
			want: "Body",
		},
		{
			name: "content directly after header",
			doc:  "# Title\nBody",
			want: "Body",
		},
		{
			name: "top matter before header discarded",
			doc:  "badge line\n\n# Title\n\nBody",
			want: "Body",
		},
		{
			name: "whitespace in body preserved",
			doc:  "# Title\n\n  indented\ntrailing  ",
			want: "  indented\ntrailing  ",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := TrimReadme(tc.doc)
			if err != nil {
				t.Fatalf("TrimReadme failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTrimReadmeMalformed(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
	}{
		{"no header at all", "just some text\nno header here\n"},
		{"empty document", ""},
		{"header with no content after", "# Title\n\n\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := TrimReadme(tc.doc); !errors.Is(err, ErrMalformedReadme) {
				t.Errorf("expected ErrMalformedReadme, got %v", err)
			}
		})
	}
}

func TestLongDescriptionMissingFileIsMalformed(t *testing.T) {
	// An absent README reads as an empty document, which then fails the
	// header scan rather than the read.
	path := filepath.Join(t.TempDir(), "README.md")
	if _, err := LongDescription(path); !errors.Is(err, ErrMalformedReadme) {
		t.Errorf("expected ErrMalformedReadme for absent README, got %v", err)
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestName)
	content := `name = "mecab-extension"
version = "1.2.3"
license = "BSD"
maintainer = "Example Maintainer"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}
	if m.Name != "mecab-extension" || m.Version != "1.2.3" || m.License != "BSD" {
		t.Errorf("unexpected manifest: %+v", m)
	}
}

func TestLoadManifestMissing(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), ManifestName)); err == nil {
		t.Fatal("expected error for missing manifest")
	}
}

func TestAssembleMetadata(t *testing.T) {
	projectDir := t.TempDir()

	manifest := `name = "mecab-extension"
version = "9.9.9"
license = "BSD"
`
	if err := os.WriteFile(filepath.Join(projectDir, ManifestName), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	readme := "# Binding\n\nWraps the external morphological analyzer.\n"
	if err := os.WriteFile(filepath.Join(projectDir, "README.md"), []byte(readme), 0o644); err != nil {
		t.Fatal(err)
	}

	meta, err := AssembleMetadata(context.Background(), projectDir)
	if err != nil {
		t.Fatalf("AssembleMetadata failed: %v", err)
	}
	if meta.Name != "mecab-extension" {
		t.Errorf("unexpected name: %s", meta.Name)
	}
	if meta.Version != "9.9.9" {
		t.Errorf("manifest-pinned version must win, got %s", meta.Version)
	}
	if meta.LongDescription != "Wraps the external morphological analyzer.\n" {
		t.Errorf("unexpected long description: %q", meta.LongDescription)
	}
}

func TestProjectVersionFallsBackToBuildInfo(t *testing.T) {
	// A bare temp directory is not a git repository, so describe fails and
	// the ldflags-injected version is used.
	got := ProjectVersion(context.Background(), t.TempDir())
	if got != buildinfo.Version {
		t.Errorf("expected fallback to %q, got %q", buildinfo.Version, got)
	}
}
