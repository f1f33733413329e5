package confkit

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// maxWalkDepth bounds how far upwards the root search climbs.
const maxWalkDepth = 8

// walkToRoot calls visit for each directory from start upwards and stops at
// the first one holding go.mod or .git. It returns that directory, or "" when
// none was found.
func walkToRoot(start string, visit func(dir string)) string {
	dir := start
	for i := 0; i < maxWalkDepth; i++ {
		if visit != nil {
			visit(dir)
		}
		if fileExists(filepath.Join(dir, "go.mod")) || fileExists(filepath.Join(dir, ".git")) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

func sourceDir() (string, bool) {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return "", false
	}
	return filepath.Dir(file), true
}

// ProjectRoot locates the repository root by walking upwards from this source
// file. Falls back to the current working directory.
func ProjectRoot() (string, error) {
	if dir, ok := sourceDir(); ok {
		if root := walkToRoot(dir, nil); root != "" {
			return root, nil
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return ".", fmt.Errorf("getwd: %w", err)
	}
	return wd, nil
}

// ProjectPath joins the repository root with the provided relative path.
func ProjectPath(rel string) (string, error) {
	root, err := ProjectRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, rel), nil
}

// MustProjectPath returns ProjectPath(rel) and panics on failure.
func MustProjectPath(rel string) string {
	p, err := ProjectPath(rel)
	if err != nil {
		panic(err)
	}
	return p
}

func fileExists(p string) bool {
	if p == "" {
		return false
	}
	_, err := os.Stat(p)
	return err == nil
}
