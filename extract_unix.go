//go:build unix

package decompress

import (
	"fmt"
	"io/fs"
	"os"
)

// applyEntryMode normalizes the archive-stored permission bits and applies
// them to the extracted file. Archive modes are not trusted verbatim: a mode
// floor keeps extracted files readable, and any executable bit widens to the
// standard executable mode.
func applyEntryMode(path string, mode fs.FileMode) error {
	if err := os.Chmod(path, normalizeMode(mode)); err != nil {
		return fmt.Errorf("cannot set file mode on %s: %w", path, err)
	}
	return nil
}

func normalizeMode(mode fs.FileMode) fs.FileMode {
	if mode.Perm()&0111 != 0 {
		return 0755
	}
	return 0644
}
