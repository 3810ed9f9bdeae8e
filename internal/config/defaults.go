package config

const (
	defaultOutputDir           = "./output_gifs"
	defaultFFmpegBinary        = "ffmpeg"
	defaultFFprobeBinary       = "ffprobe"
	defaultScale               = 0.25
	defaultFontSize            = 15
	defaultFontColor           = "white"
	defaultBorderWidth         = 2
	defaultBorderColor         = "black"
	defaultBottomMargin        = 40
	defaultRenderTimeout       = 120
	defaultMatchPolicy         = "substring"
	defaultLanguage            = "en"
	defaultFallbackInterval    = 10
	defaultMaxDuration         = 24 * 60 * 60
	defaultVideoWorkers        = 1
	defaultProbeTimeoutSeconds = 30
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"

	maxVideoWorkers = 64
	maxRetries      = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
		},
		FFmpeg: FFmpeg{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
		},
		Render: Render{
			Scale:          defaultScale,
			FontSize:       defaultFontSize,
			FontColor:      defaultFontColor,
			BorderWidth:    defaultBorderWidth,
			BorderColor:    defaultBorderColor,
			BottomMargin:   defaultBottomMargin,
			TimeoutSeconds: defaultRenderTimeout,
		},
		Matching: Matching{
			Policy:   defaultMatchPolicy,
			Language: defaultLanguage,
		},
		Fallback: Fallback{
			IntervalSeconds:    defaultFallbackInterval,
			MaxDurationSeconds: defaultMaxDuration,
		},
		Workflow: Workflow{
			VideoWorkers:        defaultVideoWorkers,
			ProbeTimeoutSeconds: defaultProbeTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
