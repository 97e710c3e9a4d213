//go:build mage

// Mage targets driving the binding build pipeline.
//
//	mage build   # compile the extension
//	mage dist    # compile and stage the distributable package
//	mage doctor  # verify the toolchain
//	mage clean   # remove build artifacts
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"

	mecabext "github.com/fluentnihon/mecab-extension-go"
)

const interfaceFile = "swig/mecab.i"

func config() (*mecabext.BuildConfig, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfg := mecabext.NewBuildConfig(wd, nil)
	cfg.Verbose = mg.Verbose()
	return cfg, nil
}

// Build compiles the native extension module.
func Build(ctx context.Context) error {
	cfg, err := config()
	if err != nil {
		return err
	}

	factory := mecabext.NewBuilderFactory()
	results, err := factory.BuildAllExtensions(ctx, cfg, []string{interfaceFile})
	if err != nil {
		return err
	}
	for _, artifact := range results[0].Extensions {
		fmt.Println("built", artifact)
	}
	return nil
}

// Dist stages the distributable package after building.
func Dist(ctx context.Context) error {
	cfg, err := config()
	if err != nil {
		return err
	}

	factory := mecabext.NewBuilderFactory()
	builder, err := factory.BuilderFor(interfaceFile)
	if err != nil {
		return err
	}
	result, err := builder.Build(ctx, cfg, interfaceFile)
	if err != nil {
		return err
	}

	meta, err := mecabext.AssembleMetadata(ctx, cfg.ProjectDir)
	if err != nil {
		return err
	}

	dir, err := mecabext.StageDistribution(ctx, cfg, result, meta)
	if err != nil {
		return err
	}
	fmt.Println("staged", dir)
	return nil
}

// Doctor verifies that the required build tools are installed.
func Doctor() error {
	factory := mecabext.NewBuilderFactory()
	for _, builder := range factory.ListBuilders() {
		checker, ok := builder.(mecabext.ToolChecker)
		if !ok {
			continue
		}
		if err := checker.CheckTools(); err != nil {
			return fmt.Errorf("%s: %w", builder.Name(), err)
		}
	}
	return nil
}

// Clean removes generated sources, compiled extensions, and the dist tree.
func Clean(ctx context.Context) error {
	cfg, err := config()
	if err != nil {
		return err
	}

	builder := &mecabext.SwigBuilder{}
	if err := builder.Clean(ctx, cfg, interfaceFile); err != nil {
		return err
	}
	return sh.Rm(cfg.DistDir)
}
