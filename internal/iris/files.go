package iris

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const maxFilesToRead = 10

var skippedDirNames = map[string]bool{
	"__pycache__": true,
	"node_modules": true,
	"vendor":       true,
}

// findFilesToRead walks root looking for .go source files, skipping
// hidden directories and the usual build-artifact trees, capped at
// maxFilesToRead — the Go analogue of the original agent's Python-file
// walk.
func findFilesToRead(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), ".") || skippedDirNames[d.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}
		if len(files) >= maxFilesToRead {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".go") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(files) > maxFilesToRead {
		files = files[:maxFilesToRead]
	}
	return files, nil
}

// checksum returns the hex-encoded SHA-256 of filePath's contents, or
// "" if the file doesn't exist.
func checksum(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
