package config

const (
	defaultSort             = "natural"
	defaultIgnoreUnloadable = true
	defaultMaxHeight        = 5000
	defaultMinHeight        = 1000
	defaultScanInterval     = 5
	defaultSensitivity      = 220
	defaultOutputDir        = "./stitched"
	defaultFormat           = "jpg"
	defaultQuality          = 100
	defaultCutColor         = "#FF0000"
	defaultSkipColor        = "#35515C"
	defaultCreateDir        = true
	defaultLogLevel         = "info"
	defaultLogFormat        = "auto"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Input: Input{
			Sort:             defaultSort,
			IgnoreUnloadable: defaultIgnoreUnloadable,
		},
		Split: Split{
			MaxHeight:    defaultMaxHeight,
			MinHeight:    defaultMinHeight,
			ScanInterval: defaultScanInterval,
			Sensitivity:  defaultSensitivity,
		},
		Output: Output{
			Dir:       defaultOutputDir,
			Format:    defaultFormat,
			Quality:   defaultQuality,
			CutColor:  defaultCutColor,
			SkipColor: defaultSkipColor,
			CreateDir: defaultCreateDir,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
