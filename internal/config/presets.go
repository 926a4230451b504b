package config

var Presets = map[string]*Config{
	"balanced-pair": {
		Scenario: "balanced-pair", Dt: 0.01, Duration: 10.0, ColumnState: "none",
		Masses: []MassPlacement{{Value: 2, Distance: -0.75}, {Value: 3, Distance: 0.5}},
	},
	"tip-right": {
		Scenario: "tip-right", Dt: 0.01, Duration: 10.0, ColumnState: "none",
		Masses: []MassPlacement{{Value: 5, Distance: 1.5}},
	},
	"lever-rule": {
		Scenario: "lever-rule", Dt: 0.01, Duration: 15.0, ColumnState: "none",
		Masses: []MassPlacement{{Value: 10, Distance: -0.5}, {Value: 2.5, Distance: 2.0}},
	},
	"kid-and-adult": {
		Scenario: "kid-and-adult", Dt: 0.01, Duration: 15.0, ColumnState: "none",
		Masses: []MassPlacement{{Value: 20, Distance: -2.0}, {Value: 80, Distance: 0.5}},
	},
	"oscillate": {
		Scenario: "oscillate", Dt: 0.005, Duration: 30.0, ColumnState: "none",
		InitTilt: 0.25,
		Masses:   []MassPlacement{{Value: 4, Distance: -1.0}, {Value: 4, Distance: 1.0}},
	},
	"columns-down": {
		Scenario: "columns-down", Dt: 0.01, Duration: 5.0, ColumnState: "double",
		Masses: []MassPlacement{{Value: 60, Distance: 1.75}},
	},
	"single-column": {
		Scenario: "single-column", Dt: 0.01, Duration: 5.0, ColumnState: "single",
		Masses: []MassPlacement{{Value: 15, Distance: -1.25}},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
