package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Dir is the on-disk prefab directory, relative to the working directory.
// Files found there shadow the embedded copies so tuning can be edited live.
var Dir = "prefabs"

//go:embed *.yaml
var SpecsFS embed.FS

//go:embed scenarios/*.tengo
var ScenariosFS embed.FS

// Load returns the named spec file, preferring the disk copy under Dir.
func Load(name string) ([]byte, error) {
	clean := cleanSpecPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return SpecsFS.ReadFile(clean)
}

// LoadScenario returns a scenario script by name, with or without the
// scenarios/ prefix and .tengo extension.
func LoadScenario(name string) ([]byte, error) {
	clean := cleanScenarioPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScenariosFS.ReadFile(clean)
}

// Scenarios lists the embedded scenario names without extension.
func Scenarios() []string {
	entries, err := fs.ReadDir(ScenariosFS, "scenarios")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isScenarioFile(entry.Name()) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	sort.Strings(names)
	return names
}

func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanSpecPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanSpecPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	s = strings.TrimPrefix(s, Dir+"/")
	return strings.TrimPrefix(s, "prefabs/")
}

func cleanScenarioPath(p string) string {
	s := cleanSpecPath(p)
	s = strings.TrimPrefix(s, "scenarios/")
	if path.Ext(s) == "" {
		s += ".tengo"
	}
	return "scenarios/" + s
}

func diskPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
