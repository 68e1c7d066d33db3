package psim

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// MarkerSpawn is the marker kind harvested into a SpawnRegistry.
const MarkerSpawn = "spawn"

// Marker is a named point placed in a level.
type Marker struct {
	Kind     string     `yaml:"kind"`
	Name     string     `yaml:"name,omitempty"`
	Position [3]float64 `yaml:"position,flow"`
}

// Vec returns the marker position.
func (m Marker) Vec() mgl64.Vec3 {
	return mgl64.Vec3(m.Position)
}

// Level is the part of a level file the simulation cares about.
type Level struct {
	Name    string   `yaml:"name"`
	Markers []Marker `yaml:"markers"`
}

// ParseLevel decodes a level from YAML.
func ParseLevel(data []byte) (*Level, error) {
	var l Level
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("psim: could not parse level: %w", err)
	}
	for i, m := range l.Markers {
		if m.Kind == "" {
			return nil, fmt.Errorf("psim: level %q: marker %d has no kind", l.Name, i)
		}
	}
	return &l, nil
}

// LoadLevel reads and decodes a level file.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("psim: could not read level %s: %w", path, err)
	}
	return ParseLevel(data)
}

// HarvestSpawnPoints registers every spawn marker of l with reg, in file order,
// and removes them from the level so they are registered only once. It returns
// the number of points registered.
func HarvestSpawnPoints(l *Level, reg *SpawnRegistry) int {
	kept := l.Markers[:0]
	n := 0
	for _, m := range l.Markers {
		if m.Kind != MarkerSpawn {
			kept = append(kept, m)
			continue
		}
		reg.Register(m.Vec())
		n++
	}
	clear(l.Markers[len(kept):])
	l.Markers = kept
	return n
}
