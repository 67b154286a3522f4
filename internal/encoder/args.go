package encoder

import (
	"strconv"

	"encsweep/internal/model"
)

// Defaults for the video encoder.
const (
	DefaultCodec  = "libx264"
	DefaultPreset = "veryfast"
)

// baseArgs makes ffmpeg tag every diagnostic with its level and stay off stdin.
func baseArgs() []string {
	return []string{"-hide_banner", "-nostdin", "-loglevel", "level+info"}
}

// BuildProbeArgs constructs ffmpeg arguments that read only the input header.
func BuildProbeArgs(inputPath string) []string {
	return append(baseArgs(), "-i", inputPath)
}

// BuildArgs constructs ffmpeg arguments for one sweep configuration.
// The output path is always the last argument.
func BuildArgs(inputPath string, cfg model.EncodeConfig, outputPath, codec, preset string) []string {
	args := append(baseArgs(), "-y", "-i", inputPath)

	if vf := cfg.Resolution.ScaleFilter(); vf != "" {
		args = append(args, "-vf", vf)
	}
	if !cfg.KeepsSourceRate() {
		args = append(args, "-r", model.FormatFrameRate(cfg.FrameRate))
	}

	args = append(args, "-c:v", valueOr(codec, DefaultCodec))
	if preset != "" {
		args = append(args, "-preset", preset)
	}
	args = append(args, "-crf", strconv.Itoa(cfg.QualityFactor))

	if !cfg.IncludeAudio {
		args = append(args, "-an")
	}

	return append(args, outputPath)
}

func valueOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
