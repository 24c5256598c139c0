package engine

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// defaultLocalities is the built-in gazetteer of neighbourhood names the
// extractor recognizes without any prepositional cue.
var defaultLocalities = []string{
	"Koramangala",
	"Indiranagar",
	"HSR Layout",
	"Whitefield",
	"Jayanagar",
	"JP Nagar",
	"BTM Layout",
	"MG Road",
	"Brigade Road",
	"Malleshwaram",
	"Rajajinagar",
	"Basavanagudi",
	"Electronic City",
	"Marathahalli",
	"Bellandur",
	"Hebbal",
	"Yelahanka",
	"Banashankari",
}

// Gazetteer holds known locality names for direct matching. Lookup is by
// lowercased name; matches return the canonical spelling.
type Gazetteer struct {
	canonical map[string]string
	ordered   []string
}

type gazetteerFile struct {
	Localities []string `yaml:"localities"`
}

// NewGazetteer builds a gazetteer from the built-in locality list.
func NewGazetteer() *Gazetteer {
	return newGazetteer(defaultLocalities)
}

// LoadGazetteer extends the built-in list with localities from a YAML file
// of the form `localities: [...]`. An empty path returns the defaults.
func LoadGazetteer(path string) (*Gazetteer, error) {
	if strings.TrimSpace(path) == "" {
		return NewGazetteer(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gazetteer: %w", err)
	}

	var file gazetteerFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse gazetteer: %w", err)
	}

	return newGazetteer(append(append([]string{}, defaultLocalities...), file.Localities...)), nil
}

func newGazetteer(names []string) *Gazetteer {
	g := &Gazetteer{canonical: make(map[string]string, len(names))}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, exists := g.canonical[key]; exists {
			continue
		}
		g.canonical[key] = name
		g.ordered = append(g.ordered, key)
	}
	return g
}

// Match scans the lowercased text for any known locality and returns its
// canonical spelling. Longer names are listed before their substrings in the
// defaults, and first match wins.
func (g *Gazetteer) Match(lower string) (string, bool) {
	for _, key := range g.ordered {
		if strings.Contains(lower, key) {
			return g.canonical[key], true
		}
	}
	return "", false
}

// Canonical returns the canonical spelling for a name if it is known.
func (g *Gazetteer) Canonical(name string) (string, bool) {
	c, ok := g.canonical[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}
