package config

import "sort"

// Preset is a named pair of raw parameter strings, fed to the engine the
// same way interactive input is.
type Preset struct {
	A    string
	B    string
	Note string
}

var Presets = map[string]Preset{
	"unit":     {A: "1.0", B: "1.0", Note: "single root near 0.642"},
	"mirrored": {A: "-1.0", B: "1.0", Note: "negative a, search on x ≤ 0"},
	"cosine":   {A: "0.0", B: "1.0", Note: "a = 0, infinitely many roots"},
	"invalid":  {A: "abc", B: "1.0", Note: "rejected input"},
	"dense":    {A: "1.0", B: "1000.0", Note: "tiny search window"},
	"comma":    {A: "0,5", B: "2,5", Note: "decimal comma input"},
	"wide":     {A: "0.05", B: "0.5", Note: "several roots on a long window"},
}

func GetPreset(name string) (Preset, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
