package mecabext

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func stageFixture(t *testing.T) (*BuildConfig, *BuildResult) {
	t.Helper()
	projectDir := t.TempDir()
	sourceDir := filepath.Join(projectDir, "swig")
	if err := os.MkdirAll(sourceDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sourceDir, "_mecab.so"), []byte("ELF"), 0o755); err != nil {
		t.Fatal(err)
	}

	config := &BuildConfig{
		ProjectDir: projectDir,
		SourceDir:  "swig",
		DistDir:    "dist",
		Environ:    MapEnviron{},
	}
	result := &BuildResult{
		Success:    true,
		Extensions: []string{"_mecab.so"},
	}
	return config, result
}

func testMetadata() *PackageMetadata {
	return &PackageMetadata{
		Name:            "mecab-extension",
		Version:         "1.0.0",
		License:         "BSD",
		LongDescription: "Wraps the external morphological analyzer.",
	}
}

func TestStageDistribution(t *testing.T) {
	config, result := stageFixture(t)

	distDir, err := StageDistribution(context.Background(), config, result, testMetadata())
	if err != nil {
		t.Fatalf("StageDistribution failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(distDir, "_mecab.so")); err != nil {
		t.Errorf("extension not staged: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(distDir, "METADATA"))
	if err != nil {
		t.Fatalf("metadata file not staged: %v", err)
	}
	metadata := string(raw)
	for _, want := range []string{"Name: mecab-extension", "Version: 1.0.0", "License: BSD", "Wraps the external"} {
		if !strings.Contains(metadata, want) {
			t.Errorf("metadata missing %q:\n%s", want, metadata)
		}
	}

	// Not bundling: no runtime template, no dictionary tree.
	if _, err := os.Stat(filepath.Join(distDir, "dic")); !os.IsNotExist(err) {
		t.Error("dictionary tree staged without bundled mode")
	}
}

func TestStageDistributionBundled(t *testing.T) {
	config, result := stageFixture(t)
	config.UseBundledLib = true

	sourceDir := filepath.Join(config.ProjectDir, "swig")
	if err := os.WriteFile(filepath.Join(sourceDir, "mecabrc.in"), []byte("dicdir = @DICDIR@\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	dicdir := dictDirWithFiles(t, "sys.dic", "unk.dic")
	config.Environ = MapEnviron{"MECAB_DICDIR": dicdir}

	distDir, err := StageDistribution(context.Background(), config, result, testMetadata())
	if err != nil {
		t.Fatalf("StageDistribution failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(distDir, "mecabrc.in")); err != nil {
		t.Errorf("runtime template not staged: %v", err)
	}
	for _, name := range []string{"sys.dic", "unk.dic"} {
		if _, err := os.Stat(filepath.Join(distDir, "dic", name)); err != nil {
			t.Errorf("dictionary file %s not staged: %v", name, err)
		}
	}
}

func TestStageDistributionBundledWithoutDictionary(t *testing.T) {
	config, result := stageFixture(t)
	config.UseBundledLib = true
	config.Environ = MapEnviron{}

	// No dictionary resolvable anywhere: staging must still succeed,
	// bundling is optional.
	resolver := &DictionaryResolver{Environ: config.Environ}
	if dir := resolver.ResolveDir(); dir != "" {
		t.Skipf("host has a resolvable dictionary at %s", dir)
	}

	if _, err := StageDistribution(context.Background(), config, result, testMetadata()); err != nil {
		t.Fatalf("StageDistribution failed: %v", err)
	}
}

func TestStageDistributionRejectsFailedBuild(t *testing.T) {
	config, _ := stageFixture(t)
	failed := &BuildResult{Success: false}

	if _, err := StageDistribution(context.Background(), config, failed, testMetadata()); err == nil {
		t.Fatal("expected error when staging a failed build")
	}
}
