package mecabext

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// SwigWrapperMarker is the signature SWIG writes as the first line of the
// high-level wrapper module it generates next to the interface description.
// (The line carries a trailing version segment, so matching is by prefix.)
const SwigWrapperMarker = "# This file was automatically generated by SWIG"

// PruneGeneratedWrapper deletes the redundant high-level wrapper module the
// generator emits as a side effect of building the extension (there is no
// way to ask SWIG not to produce it).
//
// Given the interface description path, the sibling wrapper path is the
// same name with a .py extension. The file is deleted only when its first
// line carries the generator signature; a missing file or an unrecognized
// first line leaves the file untouched, so a hand-written module of the
// same name can never be destroyed.
//
// Returns the wrapper path, whether it was deleted, and any I/O error from
// the deletion itself. Open and read failures are treated as "not a
// generated wrapper" rather than errors.
func PruneGeneratedWrapper(interfacePath string) (string, bool, error) {
	ext := filepath.Ext(interfacePath)
	if ext != ".i" {
		return "", false, nil
	}
	wrapper := strings.TrimSuffix(interfacePath, ext) + ".py"

	f, err := os.Open(wrapper)
	if err != nil {
		return wrapper, false, nil
	}

	scanner := bufio.NewScanner(f)
	generated := scanner.Scan() && strings.HasPrefix(scanner.Text(), SwigWrapperMarker)
	f.Close()

	if !generated {
		return wrapper, false, nil
	}

	if err := os.Remove(wrapper); err != nil {
		return wrapper, false, err
	}
	return wrapper, true, nil
}
