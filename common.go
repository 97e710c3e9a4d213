package mecabext

import (
	"context"
	"path/filepath"
)

// runCommonBuild executes the standard 3-step build process.
//
// The interfaceFile path is relative to config.ProjectDir; the directory
// containing it becomes the working directory for every step.
//
// If any step fails, processing stops and the error is returned with
// Success=false. The BuildResult.Output field is populated by the step
// functions as they execute.
func runCommonBuild(ctx context.Context, config *BuildConfig, interfaceFile string, steps CommonBuildSteps) (*BuildResult, error) {
	result := &BuildResult{
		Success: false,
		Output:  []string{},
	}

	sourcePath := filepath.Join(config.ProjectDir, interfaceFile)
	sourceDir := filepath.Dir(sourcePath)

	// Step 1: Configure/prepare the build
	if err := steps.ConfigureFunc(ctx, config, sourceDir, result); err != nil {
		result.Error = err
		return result, err
	}

	// Step 2: Build/compile the extension
	if err := steps.BuildFunc(ctx, config, sourceDir, result); err != nil {
		result.Error = err
		return result, err
	}

	// Step 3: Find the built extension files
	extensions, err := steps.FindFunc(sourceDir)
	if err != nil {
		result.Error = err
		return result, err
	}

	result.Extensions = extensions
	result.Success = true
	return result, nil
}
