package mecabext

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// execCommandContext is a hook for tests to intercept subprocess creation.
var execCommandContext = exec.CommandContext

// CLocaleRunner executes external tools under a forced neutral locale.
//
// Configuration-query tools such as mecab-config localize their output when
// locale variables are set, which breaks machine parsing. The runner strips
// every LC_* variable along with LANG and LANGUAGE from the subprocess
// environment and forces LC_ALL=C, so output is reproducible regardless of
// the host locale.
//
// ("C.UTF-8" would be preferable where available, but there is no portable
// way to detect it.)
type CLocaleRunner struct {
	// Environ supplies the base environment to scrub. Nil means the real
	// process environment.
	Environ Environ
}

// Env returns the scrubbed subprocess environment: the base environment
// minus all locale-category variables, plus LC_ALL=C.
func (r *CLocaleRunner) Env() []string {
	base := r.Environ
	if base == nil {
		base = OSEnviron()
	}

	var env []string
	for _, entry := range base.Environ() {
		key, _, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if strings.HasPrefix(key, "LC_") || key == "LANG" || key == "LANGUAGE" {
			continue
		}
		env = append(env, entry)
	}
	return append(env, "LC_ALL=C")
}

// Output runs the named tool and returns its standard output decoded as
// UTF-8 text. A missing tool or non-zero exit propagates as an error.
func (r *CLocaleRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := execCommandContext(ctx, name, args...)
	cmd.Env = r.Env()

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return string(out), nil
}

// Tokens runs the named tool and returns its standard output split on
// whitespace into discrete tokens.
func (r *CLocaleRunner) Tokens(ctx context.Context, name string, args ...string) ([]string, error) {
	out, err := r.Output(ctx, name, args...)
	if err != nil {
		return nil, err
	}
	return strings.Fields(out), nil
}
