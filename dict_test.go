package mecabext

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func dictDirWithFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestResolveDicdirEnvWins(t *testing.T) {
	dic1 := dictDirWithFiles(t, "a.dic", "b.dic")
	dic2 := dictDirWithFiles(t, "other.dic")

	resolver := &DictionaryResolver{
		Environ: MapEnviron{
			"MECAB_DICDIR":  dic1,
			"MECAB_DICPATH": dic2,
			"MECABRC":       "/no/such/mecabrc",
		},
		RCPaths: []string{},
	}

	dir, files, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if dir != dic1 {
		t.Errorf("expected MECAB_DICDIR to win, got %s", dir)
	}
	if !slices.Equal(files, []string{"a.dic", "b.dic"}) {
		t.Errorf("unexpected dictionary files: %v", files)
	}
}

func TestResolveDicdirPathListFirstExisting(t *testing.T) {
	dic2 := dictDirWithFiles(t, "sys.dic")
	pathList := "/no/such/dir" + string(os.PathListSeparator) + dic2

	resolver := &DictionaryResolver{
		Environ: MapEnviron{"MECAB_DICPATH": pathList},
		RCPaths: []string{},
	}

	dir, _, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if dir != dic2 {
		t.Errorf("expected first existing path-list entry %s, got %s", dic2, dir)
	}
}

func TestResolveDicdirFromRCFile(t *testing.T) {
	dic := dictDirWithFiles(t, "sys.dic")
	rc := filepath.Join(t.TempDir(), "mecabrc")
	content := "; comment\n dicdir = " + dic + " \n"
	if err := os.WriteFile(rc, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	resolver := &DictionaryResolver{
		Environ: MapEnviron{"MECABRC": rc},
		RCPaths: []string{},
	}

	dir, _, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if dir != dic {
		t.Errorf("expected rc-configured directory %s, got %s", dic, dir)
	}
}

func TestResolveDicdirFallbackRCPaths(t *testing.T) {
	dic := dictDirWithFiles(t, "sys.dic")
	rc := filepath.Join(t.TempDir(), "mecabrc")
	if err := os.WriteFile(rc, []byte("dicdir "+dic+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	resolver := &DictionaryResolver{
		Environ: MapEnviron{},
		RCPaths: []string{"/no/such/mecabrc", rc},
	}

	if dir := resolver.ResolveDir(); dir != dic {
		t.Errorf("expected fallback rc to resolve %s, got %s", dic, dir)
	}
}

func TestResolveDicdirNothingResolves(t *testing.T) {
	resolver := &DictionaryResolver{
		Environ: MapEnviron{},
		RCPaths: []string{"/no/such/mecabrc"},
	}

	dir, files, err := resolver.Resolve()
	if err != nil {
		t.Fatalf("unresolved dictionary must not be an error, got %v", err)
	}
	if dir != "" || files != nil {
		t.Errorf("expected empty result, got (%q, %v)", dir, files)
	}
}

func TestDicdirFromRC(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		want    string
	}{
		{"equals form with padding", "; comment\n dicdir = /tmp/dic3 \n", "/tmp/dic3"},
		{"whitespace form", "dicdir /var/lib/mecab/dic\n", "/var/lib/mecab/dic"},
		{"comment only", "; dicdir = /tmp/ignored\n", ""},
		{"blank lines skipped", "\n\n dicdir=/tmp/d\n", "/tmp/d"},
		{"bare key yields nothing", "dicdir\n", ""},
		{"bare equals keeps scanning", "dicdir =\ndicdir = /tmp/later\n", "/tmp/later"},
		{"unrelated keys ignored", "userdic = /tmp/u\n", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rc := filepath.Join(t.TempDir(), "mecabrc")
			if err := os.WriteFile(rc, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if got := dicdirFromRC(rc); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestDicdirFromRCUnreadableFile(t *testing.T) {
	if got := dicdirFromRC("/no/such/mecabrc"); got != "" {
		t.Errorf("unreadable rc must yield nothing, got %q", got)
	}
}

func TestWithWorkingDirRestoresOnError(t *testing.T) {
	before, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	if err := withWorkingDir(t.TempDir(), func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected fn error to propagate, got %v", err)
	}

	after, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if before != after {
		t.Errorf("working directory not restored: %s != %s", before, after)
	}
}
