package config

var Presets = map[string]*Config{
	"two_slit": {
		Style: "3d", Mode: "amplitude", Speed: 60,
		Sources: []SourceConfig{
			{X: -120, Y: 0, Amplitude: 1.0, Frequency: 2.0},
			{X: 120, Y: 0, Amplitude: 1.0, Frequency: 2.0},
		},
	},
	"standing": {
		Style: "3d", Mode: "elongation", Speed: 40,
		Sources: []SourceConfig{
			{X: -200, Y: 0, Amplitude: 1.2, Frequency: 1.5},
			{X: 200, Y: 0, Amplitude: 1.2, Frequency: 1.5, Phase: 3.14159265},
		},
	},
	"ripple": {
		Style: "water", Mode: "elongation", Speed: 80,
		Sources: []SourceConfig{
			{X: 0, Y: 0, Amplitude: 1.5, Frequency: 2.5},
		},
	},
	"chorus": {
		Style: "3d", Mode: "phase", Speed: 50,
		Sources: []SourceConfig{
			{X: -150, Y: -150, Amplitude: 0.8, Frequency: 1.8},
			{X: 150, Y: -150, Amplitude: 0.8, Frequency: 2.2, Phase: 1.0},
			{X: 0, Y: 180, Amplitude: 1.0, Frequency: 2.0, Phase: 2.0},
		},
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
