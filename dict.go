package mecabext

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// defaultRCPaths are the fixed fallback locations for the runtime
// configuration file, checked in order when no environment variable
// resolves one.
var defaultRCPaths = []string{"/usr/local/etc/mecabrc", "/etc/mecabrc"}

// DictionaryResolver locates an on-disk MeCab dictionary directory for
// bundling into the package data.
//
// The dictionary is an external data asset the wrapped library needs at
// runtime; this pipeline never interprets its contents, it only stages the
// files. Resolution checks a prioritized list of sources, first match wins:
//
//  1. MECAB_DICDIR, if set and an existing directory
//  2. MECAB_DICPATH, a path-list; the first entry that is an existing directory
//  3. MECABRC, a runtime configuration file whose dicdir key names an
//     existing directory
//  4. The fixed fallback configuration files, same parse-and-extract logic
//
// When nothing matches the resolver yields no directory and no files —
// dictionary bundling is optional, so this is not an error.
type DictionaryResolver struct {
	// Environ supplies the environment variables. Nil means the real
	// process environment.
	Environ Environ

	// RCPaths overrides the fallback configuration file locations.
	// Nil means the standard /usr/local/etc + /etc pair.
	RCPaths []string
}

// Resolve returns the absolute dictionary directory and the names of its
// files (non-recursive), or ("", nil, nil) when no source resolves.
//
// An existing-but-empty directory still wins the resolution race and
// yields an empty file list; bundling then degrades to the no-dictionary
// case without error.
func (r *DictionaryResolver) Resolve() (string, []string, error) {
	dicdir := r.ResolveDir()
	if dicdir == "" {
		return "", nil, nil
	}

	var files []string
	err := withWorkingDir(dicdir, func() error {
		matches, err := filepath.Glob("*")
		if err != nil {
			return err
		}
		files = matches
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	return dicdir, files, nil
}

// ResolveDir walks the precedence chain and returns the absolute path of
// the first existing dictionary directory, or "" when none resolves.
func (r *DictionaryResolver) ResolveDir() string {
	environ := r.environ()

	if d, ok := environ.Lookup("MECAB_DICDIR"); ok {
		if dir := absDir(d); dir != "" {
			return dir
		}
	}

	if list, ok := environ.Lookup("MECAB_DICPATH"); ok {
		for _, d := range filepath.SplitList(list) {
			if dir := absDir(d); dir != "" {
				return dir
			}
		}
	}

	if rc, ok := environ.Lookup("MECABRC"); ok {
		if dir := absDir(dicdirFromRC(rc)); dir != "" {
			return dir
		}
	}

	for _, rc := range r.rcPaths() {
		if dir := absDir(dicdirFromRC(rc)); dir != "" {
			return dir
		}
	}

	return ""
}

func (r *DictionaryResolver) environ() Environ {
	if r.Environ == nil {
		return OSEnviron()
	}
	return r.Environ
}

func (r *DictionaryResolver) rcPaths() []string {
	if r.RCPaths == nil {
		return defaultRCPaths
	}
	return r.RCPaths
}

// dicdirFromRC extracts the dicdir value from a runtime configuration file.
//
// The format is line-oriented: blank lines and lines starting with ';' are
// skipped, and the key may be separated from its value by '=' or by
// whitespace alone, with surrounding whitespace trimmed. Exactly this one
// key is of interest. Returns "" when the file is unreadable or carries no
// usable dicdir.
func dicdirFromRC(rcPath string) string {
	f, err := os.Open(rcPath)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if !strings.HasPrefix(line, "dicdir") {
			continue
		}

		value := strings.TrimLeft(line[len("dicdir"):], " \t")
		if value == "" {
			return ""
		}
		if value[0] == '=' {
			value = strings.TrimLeft(value[1:], " \t")
		}
		if value != "" {
			return value
		}
	}

	return ""
}

// absDir returns the absolute form of path when it names an existing
// directory, "" otherwise.
func absDir(path string) string {
	if path == "" {
		return ""
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	return abs
}

// withWorkingDir runs fn with the working directory changed to dir,
// restoring the previous directory unconditionally, including on error
// paths.
func withWorkingDir(dir string, fn func() error) error {
	prev, err := os.Getwd()
	if err != nil {
		return err
	}
	if err := os.Chdir(dir); err != nil {
		return err
	}
	defer func() {
		_ = os.Chdir(prev)
	}()
	return fn()
}
