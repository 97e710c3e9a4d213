package mecabext

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// rcTemplateName is the runtime configuration template shipped alongside a
// bundled library so the installed package can point MeCab at the bundled
// dictionary.
const rcTemplateName = "mecabrc.in"

// metadataFileName is the assembled metadata file written into the dist tree.
const metadataFileName = "METADATA"

// StageDistribution assembles the distributable unit under config.DistDir:
// the compiled extension module, the assembled package metadata, and —
// when building against the bundled library — the runtime configuration
// template and any resolvable dictionary files under dic/.
//
// Dictionary bundling is optional: an unresolved dictionary skips the dic/
// tree silently. Returns the absolute dist directory path.
func StageDistribution(ctx context.Context, config *BuildConfig, result *BuildResult, meta *PackageMetadata) (string, error) {
	if !result.Success {
		return "", fmt.Errorf("cannot stage a failed build")
	}

	distDir, err := filepath.Abs(filepath.Join(config.ProjectDir, config.DistDir))
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(distDir, 0o755); err != nil {
		return "", fmt.Errorf("creating dist dir: %w", err)
	}

	sourceDir := filepath.Join(config.ProjectDir, config.SourceDir)
	for _, extension := range result.Extensions {
		src := filepath.Join(sourceDir, extension)
		if err := copyFile(src, filepath.Join(distDir, filepath.Base(extension))); err != nil {
			return "", fmt.Errorf("staging extension %s: %w", extension, err)
		}
	}

	if err := writeMetadataFile(filepath.Join(distDir, metadataFileName), meta); err != nil {
		return "", err
	}

	if config.UseBundledLib {
		if err := stageBundledData(config, sourceDir, distDir); err != nil {
			return "", err
		}
	}

	return distDir, nil
}

// stageBundledData stages the runtime configuration template and the
// resolved dictionary files for a bundled-library distribution.
func stageBundledData(config *BuildConfig, sourceDir, distDir string) error {
	template := filepath.Join(sourceDir, rcTemplateName)
	if _, err := os.Stat(template); err == nil {
		if err := copyFile(template, filepath.Join(distDir, rcTemplateName)); err != nil {
			return fmt.Errorf("staging %s: %w", rcTemplateName, err)
		}
	}

	resolver := &DictionaryResolver{Environ: config.Environ}
	dicdir, files, err := resolver.Resolve()
	if err != nil {
		return fmt.Errorf("resolving dictionary: %w", err)
	}
	if dicdir == "" || len(files) == 0 {
		return nil // bundling the dictionary is optional
	}

	dataDir := filepath.Join(distDir, "dic")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}
	for _, name := range files {
		src := filepath.Join(dicdir, name)
		info, err := os.Stat(src)
		if err != nil || info.IsDir() {
			continue
		}
		if err := copyFile(src, filepath.Join(dataDir, name)); err != nil {
			return fmt.Errorf("staging dictionary file %s: %w", name, err)
		}
	}

	return nil
}

// writeMetadataFile renders the assembled metadata as a simple header
// block followed by the long description.
func writeMetadataFile(path string, meta *PackageMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fields := []struct{ key, value string }{
		{"Name", meta.Name},
		{"Version", meta.Version},
		{"License", meta.License},
		{"Maintainer", meta.Maintainer},
		{"Maintainer-email", meta.Email},
		{"Home-page", meta.Homepage},
	}
	for _, field := range fields {
		if field.value == "" {
			continue
		}
		if _, err := fmt.Fprintf(f, "%s: %s\n", field.key, field.value); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintf(f, "\n%s\n", meta.LongDescription)
	return err
}

// copyFile copies src to dst, preserving the source file mode.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
