package fileutil

import (
	"os"
)

// Exists reports whether filename exists and is a regular file.
func Exists(filename string) bool {
	stat, err := os.Stat(filename)
	return err == nil && !stat.IsDir()
}
