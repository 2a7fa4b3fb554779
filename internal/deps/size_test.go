// SPDX-License-Identifier: MPL-2.0

package deps

import (
	"testing"

	"github.com/spf13/afero"
)

func TestDirSize(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	files := map[string]int{
		"/env/bin/python":               100,
		"/env/lib/site-packages/a.py":   2048,
		"/env/lib/site-packages/b/c.py": 10,
		"/other/ignored.bin":            5000,
	}
	for path, n := range files {
		if err := afero.WriteFile(fs, path, make([]byte, n), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := DirSize(fs, "/env")
	if err != nil {
		t.Fatalf("DirSize() error = %v", err)
	}
	if want := uint64(100 + 2048 + 10); got != want {
		t.Errorf("DirSize() = %d, want %d", got, want)
	}

	missing, err := DirSize(fs, "/nope")
	if err != nil || missing != 0 {
		t.Errorf("DirSize(missing) = %d, %v; want 0, nil", missing, err)
	}
}
