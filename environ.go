package mecabext

import (
	"fmt"
	"os"
	"sort"
)

// Environ abstracts read access to process environment variables.
//
// The build pipeline consults several ambient variables (BUNDLE_LIBMECAB,
// MECAB_DICDIR, MECAB_DICPATH, MECABRC) and scrubs locale variables before
// subprocess calls. Routing all of that through this interface lets tests
// fabricate an environment without touching real process state.
//
// The zero value of the consuming types defaults to OSEnviron, so callers
// outside tests normally never set this explicitly.
type Environ interface {
	// Lookup returns the value of the named variable and whether it is set.
	Lookup(key string) (string, bool)

	// Environ returns the environment as "key=value" entries, in a stable
	// order, suitable for exec.Cmd.Env.
	Environ() []string
}

// OSEnviron returns an Environ backed by the real process environment.
func OSEnviron() Environ {
	return osEnviron{}
}

type osEnviron struct{}

func (osEnviron) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (osEnviron) Environ() []string {
	return os.Environ()
}

// MapEnviron is a fabricated environment backed by a plain map.
//
// Intended for tests and for callers that need a fully controlled
// subprocess environment.
type MapEnviron map[string]string

// Lookup returns the mapped value for key and whether it is present.
func (m MapEnviron) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Environ returns the map as sorted "key=value" entries.
func (m MapEnviron) Environ() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]string, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, fmt.Sprintf("%s=%s", k, m[k]))
	}
	return entries
}
