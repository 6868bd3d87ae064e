package app

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// skippedDirs are never descended into during collection
var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
}

// FileHelper provides file discovery and reading. It implements
// domain.FileReader.
type FileHelper struct {
	respectGitignore bool
}

// NewFileHelper creates a new FileHelper that honors .gitignore files
func NewFileHelper() *FileHelper {
	return &FileHelper{respectGitignore: true}
}

// NewFileHelperWithoutGitignore creates a FileHelper that ignores .gitignore
func NewFileHelperWithoutGitignore() *FileHelper {
	return &FileHelper{}
}

// CollectSourceFiles collects JavaScript/TypeScript files from paths
func (h *FileHelper) CollectSourceFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if h.IsValidSourceFile(path) && h.matchesPatterns(path, includePatterns, excludePatterns) {
				files = append(files, path)
			}
			continue
		}

		matcher := h.loadGitignore(path)

		if recursive {
			err = filepath.Walk(path, func(filePath string, info os.FileInfo, err error) error {
				if err != nil {
					// Unreadable entries and broken symlinks are
					// skipped, not fatal to the scan
					if info != nil && info.IsDir() {
						return filepath.SkipDir
					}
					return nil
				}

				if info.IsDir() {
					if filePath != path && h.shouldSkipDir(filepath.Base(filePath)) {
						return filepath.SkipDir
					}
					return nil
				}

				rel := relativeTo(path, filePath)
				if matcher != nil && matcher.MatchesPath(rel) {
					return nil
				}

				// Globs are matched against the root-relative path so
				// patterns like src/** work regardless of where the
				// collection root itself lives
				if h.IsValidSourceFile(filePath) && h.matchesPatterns(rel, includePatterns, excludePatterns) {
					files = append(files, filePath)
				}

				return nil
			})
		} else {
			entries, readErr := os.ReadDir(path)
			if readErr != nil {
				return nil, readErr
			}

			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				filePath := filepath.Join(path, entry.Name())
				if matcher != nil && matcher.MatchesPath(entry.Name()) {
					continue
				}
				if h.IsValidSourceFile(filePath) && h.matchesPatterns(entry.Name(), includePatterns, excludePatterns) {
					files = append(files, filePath)
				}
			}
		}

		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// IsValidSourceFile checks if a file is a JavaScript/TypeScript source file
func (h *FileHelper) IsValidSourceFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".js", ".ts", ".jsx", ".tsx", ".mjs", ".cjs", ".mts", ".cts":
		return true
	}
	return false
}

// FileExists checks if a file exists
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// ReadFile reads file content
func (h *FileHelper) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// shouldSkipDir reports whether a directory is never analyzed
func (h *FileHelper) shouldSkipDir(name string) bool {
	if skippedDirs[name] {
		return true
	}
	// Hidden directories like .cache and .next
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// matchesPatterns applies include then exclude globs. An empty include
// list means everything is included.
func (h *FileHelper) matchesPatterns(path string, includePatterns, excludePatterns []string) bool {
	normalized := filepath.ToSlash(path)

	if len(includePatterns) > 0 {
		included := false
		for _, pattern := range includePatterns {
			if matched, _ := doublestar.Match(pattern, normalized); matched {
				included = true
				break
			}
			if matched, _ := doublestar.Match(pattern, filepath.Base(path)); matched {
				included = true
				break
			}
		}
		if !included {
			return false
		}
	}

	for _, pattern := range excludePatterns {
		if matched, _ := doublestar.Match(pattern, normalized); matched {
			return false
		}
		if matched, _ := doublestar.Match(pattern, filepath.Base(path)); matched {
			return false
		}
		// Plain substrings exclude whole subtrees, e.g. "vendor"
		if !strings.ContainsAny(pattern, "*?[{") && strings.Contains(normalized, pattern) {
			return false
		}
	}

	return true
}

// loadGitignore compiles the .gitignore at the collection root, if any
func (h *FileHelper) loadGitignore(root string) *ignore.GitIgnore {
	if !h.respectGitignore {
		return nil
	}
	matcher, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return matcher
}

// relativeTo returns filePath relative to root with forward slashes
func relativeTo(root, filePath string) string {
	rel, err := filepath.Rel(root, filePath)
	if err != nil {
		return filepath.ToSlash(filePath)
	}
	return filepath.ToSlash(rel)
}

// ResolveFilePaths resolves file paths, returning existing files directly
// or collecting files from directories
func ResolveFilePaths(
	fileHelper *FileHelper,
	paths []string,
	recursive bool,
	includePatterns []string,
	excludePatterns []string,
) ([]string, error) {
	// If every path is already an existing file there is nothing to collect
	allFiles := true
	for _, path := range paths {
		exists, err := fileHelper.FileExists(path)
		if err != nil || !exists {
			allFiles = false
			break
		}
	}

	if allFiles {
		return paths, nil
	}

	return fileHelper.CollectSourceFiles(paths, recursive, includePatterns, excludePatterns)
}
