package prefabs

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

//go:embed *.yaml ramps/*.yaml
var PrefabsFS embed.FS

// Load reads a prefab, preferring the on-disk copy under prefabs/ so edits
// show up without a rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// RampPath maps a ramp name such as "speed_near_pointer" to its prefab path.
func RampPath(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	return "ramps/" + name + ".yaml"
}

// RampName is the inverse of RampPath for any path ending in a ramp file.
func RampName(path string) (string, bool) {
	s := filepath.ToSlash(path)
	dir, file := filepath.Split(s)
	if !strings.HasSuffix(strings.TrimSuffix(dir, "/"), "ramps") || !isSpecFile(file) {
		return "", false
	}
	return strings.TrimSuffix(file, filepath.Ext(file)), true
}

// StartupSpecName reports yaml prefabs outside ramps/, such as rat.yaml and
// swarm.yaml. They are only read at startup.
func StartupSpecName(path string) (string, bool) {
	if _, ok := RampName(path); ok || !isSpecFile(path) {
		return "", false
	}
	return filepath.Base(path), true
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "prefabs/") {
		return strings.TrimPrefix(s, "prefabs/")
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "prefabs/scripts/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		s = after
	}

	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
