// core/align/presets.go
package align

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// GeneConfigs holds one AlignmentConfig per gene type ("V", "D", "J", "C").
type GeneConfigs map[string]AlignmentConfig

// Clone deep-copies every config.
func (g GeneConfigs) Clone() GeneConfigs {
	if g == nil {
		return nil
	}
	out := make(GeneConfigs, len(g))
	for k, v := range g {
		out[k] = v.Clone()
	}
	return out
}

//go:embed presets.yaml
var presetsYAML []byte

var (
	presetsOnce sync.Once
	presets     map[string]GeneConfigs
	presetsErr  error
)

func loadPresets() (map[string]GeneConfigs, error) {
	presetsOnce.Do(func() {
		presetsErr = yaml.Unmarshal(presetsYAML, &presets)
	})
	return presets, presetsErr
}

// PresetNames lists the built-in presets.
func PresetNames() []string {
	p, err := loadPresets()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(p))
	for n := range p {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Preset returns a private copy of the named preset.
func Preset(name string) (GeneConfigs, error) {
	p, err := loadPresets()
	if err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	g, ok := p[name]
	if !ok {
		return nil, fmt.Errorf("unknown aligner preset %q", name)
	}
	return g.Clone(), nil
}
