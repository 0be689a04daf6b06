package casedir

import (
	"fmt"
	"os"
)

// Remove deletes a case directory. It reports whether anything was removed;
// a missing directory is not an error but a regular file is.
func Remove(dir string) (removed bool, err error) {
	var fi os.FileInfo
	if fi, err = os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return
	}
	if !fi.IsDir() {
		return false, fmt.Errorf("%s is not a directory", dir)
	}
	if err = os.RemoveAll(dir); err != nil {
		return false, err
	}
	return true, nil
}
