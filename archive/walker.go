package archive

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// WalkFunc is the type of the function called for each container file visited
// by Walk. If an error is returned, processing stops.
type WalkFunc func(path string) error

// Walk walks the directory tree rooted at root, calling walkFn for each regular
// file which extension matches one of exts (case-insensitive). Office owner
// lock files ("~$name.docx") are skipped, symbolic links are not followed.
func Walk(root string, exts []string, walkFn WalkFunc) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, "~$") || !hasExt(name, exts) {
			return nil
		}
		return walkFn(path)
	})
}

func hasExt(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
