package mecabext

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestBuilderFactory(t *testing.T) {
	factory := NewBuilderFactory()

	builders := factory.ListBuilders()
	if len(builders) != 1 {
		t.Errorf("Expected 1 builder, got %d", len(builders))
	}

	builder, err := factory.BuilderFor("swig/mecab.i")
	if err != nil {
		t.Fatalf("Expected builder for swig/mecab.i, got error: %v", err)
	}
	if builder.Name() != "SWIG" {
		t.Errorf("Expected builder SWIG, got %s", builder.Name())
	}

	// Unsupported extension source
	if _, err := factory.BuilderFor("ext/extconf.rb"); err == nil {
		t.Error("Expected error for unsupported extension source")
	}
}

func TestSwigBuilderDetection(t *testing.T) {
	builder := &SwigBuilder{}

	validFiles := []string{
		"mecab.i",
		"swig/mecab.i",
		"path/to/binding.i",
	}
	invalidFiles := []string{
		"mecab.py",
		"mecab_wrap.cxx",
		"Makefile",
		"interface.inc",
	}

	for _, file := range validFiles {
		if !builder.CanBuild(file) {
			t.Errorf("Expected CanBuild true for %s", file)
		}
	}
	for _, file := range invalidFiles {
		if builder.CanBuild(file) {
			t.Errorf("Expected CanBuild false for %s", file)
		}
	}
}

func TestSwigBuilderClean(t *testing.T) {
	projectDir := t.TempDir()
	sourceDir := filepath.Join(projectDir, "swig")
	if err := os.MkdirAll(sourceDir, 0o755); err != nil {
		t.Fatal(err)
	}

	artifacts := []string{"mecab_wrap.cxx", "_mecab.so"}
	for _, name := range artifacts {
		if err := os.WriteFile(filepath.Join(sourceDir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	config := &BuildConfig{ProjectDir: projectDir, SourceDir: "swig", Environ: MapEnviron{}}
	builder := &SwigBuilder{}
	if err := builder.Clean(context.Background(), config, "swig/mecab.i"); err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	for _, name := range artifacts {
		if _, err := os.Stat(filepath.Join(sourceDir, name)); !os.IsNotExist(err) {
			t.Errorf("artifact %s not removed", name)
		}
	}
}

func TestSwigBuilderCleanNothingToClean(t *testing.T) {
	config := &BuildConfig{ProjectDir: t.TempDir(), SourceDir: "swig", Environ: MapEnviron{}}
	if err := (&SwigBuilder{}).Clean(context.Background(), config, "swig/mecab.i"); err != nil {
		t.Fatalf("Clean on empty tree failed: %v", err)
	}
}

func TestBuildAllExtensionsEmptyInput(t *testing.T) {
	factory := NewBuilderFactory()
	results, err := factory.BuildAllExtensions(context.Background(), &BuildConfig{}, nil)
	if results != nil || err != nil {
		t.Errorf("expected no results for empty input, got (%v, %v)", results, err)
	}
}

func TestBuildAllExtensionsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	factory := NewBuilderFactory()
	results, err := factory.BuildAllExtensions(ctx, &BuildConfig{}, []string{"swig/mecab.i"})
	if err == nil {
		t.Fatal("expected context error")
	}
	if len(results) != 1 || results[0].Success {
		t.Errorf("expected one failed result, got %v", results)
	}
}

func TestBuildAllExtensionsUnknownSource(t *testing.T) {
	factory := NewBuilderFactory()
	results, err := factory.BuildAllExtensions(context.Background(), &BuildConfig{}, []string{"ext/unknown.file"})
	if err == nil {
		t.Fatal("expected error for unknown source")
	}
	if len(results) != 1 || results[0].Success {
		t.Errorf("expected one failed result, got %v", results)
	}
}
