package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"subgif/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose output directory lives in a unique temp
// directory per test. Binaries default to names that do not exist so tests
// never reach a real ffmpeg by accident.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.FFmpeg.FFmpegBinary = filepath.Join(base, "bin", "missing-ffmpeg")
	cfgVal.FFmpeg.FFprobeBinary = filepath.Join(base, "bin", "missing-ffprobe")
	cfgVal.Render.TimeoutSeconds = 10
	cfgVal.Workflow.ProbeTimeoutSeconds = 10

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithStubbedBinaries writes stub executables that exit 0 for the provided
// names and prepends them to PATH. If names is empty, ffmpeg and ffprobe are
// stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"ffmpeg", "ffprobe"}
		}
		binDir := b.binDir()
		for _, name := range names {
			writeScript(b.t, filepath.Join(binDir, name), "#!/bin/sh\nexit 0\n")
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// fakeFFmpegScript writes a tiny GIF to the final argument when it ends in
// .gif. Otherwise it behaves like `ffmpeg -i` without an output: it prints the
// duration banner to stderr and fails. Invocations are appended to
// $SUBGIF_STUB_LOG when set.
const fakeFFmpegScript = `#!/bin/sh
if [ -n "$SUBGIF_STUB_LOG" ]; then echo "$@" >> "$SUBGIF_STUB_LOG"; fi
for last; do :; done
case "$last" in
*.gif)
	if [ -n "$SUBGIF_STUB_FAIL_MATCH" ]; then
		case "$last" in *"$SUBGIF_STUB_FAIL_MATCH"*) echo "stub failure" >&2; exit 1 ;; esac
	fi
	printf 'GIF89a' > "$last"
	;;
*)
	echo "  Duration: %s, start: 0.000000, bitrate: 1000 kb/s" >&2
	echo "At least one output file must be specified" >&2
	exit 1
	;;
esac
`

// WithFakeMedia installs scripted ffmpeg and ffprobe binaries and points the
// config at them. ffprobe always fails, so durations come from the ffmpeg
// banner, which reports clock (for example "00:00:25.00" or "N/A").
func WithFakeMedia(clock string) ConfigOption {
	return func(b *configBuilder) {
		binDir := b.binDir()
		ffmpeg := filepath.Join(binDir, "ffmpeg")
		ffprobe := filepath.Join(binDir, "ffprobe")
		writeScript(b.t, ffmpeg, fmt.Sprintf(fakeFFmpegScript, clock))
		writeScript(b.t, ffprobe, "#!/bin/sh\necho \"ffprobe unavailable\" >&2\nexit 1\n")
		b.cfg.FFmpeg.FFmpegBinary = ffmpeg
		b.cfg.FFmpeg.FFprobeBinary = ffprobe
	}
}

// WithVideoWorkers overrides the batch concurrency.
func WithVideoWorkers(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Workflow.VideoWorkers = n
	}
}

func (b *configBuilder) binDir() string {
	binDir := filepath.Join(b.baseDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		b.t.Fatalf("mkdir bin dir: %v", err)
	}
	return binDir
}

func writeScript(t testing.TB, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", path, err)
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
