// Package workflow discovers and loads the JSON workflow definitions that
// documentation is generated for. Inputs are treated as opaque JSON; nothing
// here inspects node graphs.
package workflow

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

const (
	workflowFileExtension    = ".json"
	discoveryErrorFormat     = "input path is neither a JSON file nor a directory: %s"
	discoveryWalkErrorFormat = "scan %s: %w"
)

// DiscoveryError reports an input path that cannot yield workflow files.
type DiscoveryError struct {
	Path   string
	Reason string
}

func (e *DiscoveryError) Error() string { return e.Reason }

// IsJSONFile reports whether path names a regular file with a .json
// extension, compared case-insensitively.
func IsJSONFile(fileSystem afero.Fs, path string) bool {
	info, statError := fileSystem.Stat(path)
	if statError != nil || !info.Mode().IsRegular() {
		return false
	}
	return strings.EqualFold(filepath.Ext(path), workflowFileExtension)
}

// Discover resolves inputPath into the ordered list of workflow files. A
// single JSON file yields itself; a directory yields every JSON file beneath
// it in lexicographic path order. A directory with no matches is an empty
// list, not an error; the caller decides whether that is fatal.
func Discover(fileSystem afero.Fs, inputPath string) ([]string, error) {
	if IsJSONFile(fileSystem, inputPath) {
		return []string{inputPath}, nil
	}

	info, statError := fileSystem.Stat(inputPath)
	if statError != nil || !info.IsDir() {
		return nil, &DiscoveryError{Path: inputPath, Reason: fmt.Sprintf(discoveryErrorFormat, inputPath)}
	}

	var discovered []string
	walkError := afero.Walk(fileSystem, inputPath, func(path string, entry fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if entry.Mode().IsRegular() && strings.EqualFold(filepath.Ext(path), workflowFileExtension) {
			discovered = append(discovered, path)
		}
		return nil
	})
	if walkError != nil {
		return nil, fmt.Errorf(discoveryWalkErrorFormat, inputPath, walkError)
	}

	// Walk order is filesystem dependent; the contract is lexicographic.
	sort.Strings(discovered)
	return discovered, nil
}
