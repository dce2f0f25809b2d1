// Package output persists generated Markdown under a root that mirrors the
// input's relative directory layout.
package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

const (
	markdownExtension     = ".md"
	directoryPermissions  = 0o755
	filePermissions       = 0o644
	writeErrorFormat      = "write markdown to %s: %v"
	parentDirectoryPrefix = ".." + string(filepath.Separator)
)

// WriteError reports a filesystem failure at the target path.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf(writeErrorFormat, e.Path, e.Err) }

func (e *WriteError) Unwrap() error { return e.Err }

// Path computes the mirrored output location for sourcePath. When sourcePath
// is not beneath baseInput the file's own name is used with no subdirectory.
func Path(outputRoot string, baseInput string, sourcePath string) string {
	relativeDirectory := "."
	relative, relError := filepath.Rel(baseInput, sourcePath)
	if relError == nil && relative != ".." && !strings.HasPrefix(relative, parentDirectoryPrefix) {
		relativeDirectory = filepath.Dir(relative)
	}
	stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	return filepath.Join(outputRoot, relativeDirectory, stem+markdownExtension)
}

// Write persists content as UTF-8 text at the mirrored path, creating any
// missing directories and unconditionally overwriting an existing file.
func Write(fileSystem afero.Fs, outputRoot string, baseInput string, sourcePath string, content string) (string, error) {
	targetPath := Path(outputRoot, baseInput, sourcePath)
	if mkdirError := fileSystem.MkdirAll(filepath.Dir(targetPath), directoryPermissions); mkdirError != nil {
		return "", &WriteError{Path: targetPath, Err: mkdirError}
	}
	if writeError := afero.WriteFile(fileSystem, targetPath, []byte(content), filePermissions); writeError != nil {
		return "", &WriteError{Path: targetPath, Err: writeError}
	}
	return targetPath, nil
}
