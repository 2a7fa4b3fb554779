// SPDX-License-Identifier: MPL-2.0

package deps

import (
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

// DirSize sums the sizes of the regular files under dir. A missing dir has
// size zero.
func DirSize(afs afero.Fs, dir string) (uint64, error) {
	var total uint64
	err := afero.Walk(afs, dir, func(_ string, info fs.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.Mode().IsRegular() {
			total += uint64(info.Size())
		}
		return nil
	})
	return total, err
}
