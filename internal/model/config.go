package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxQualityFactor is the upper bound of the x264/x265 CRF scale.
const MaxQualityFactor = 51

// ConfigError reports a malformed sweep parameter. It is raised while building
// configurations, never by a running job.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// EncodeConfig is one point of the sweep.
type EncodeConfig struct {
	Resolution    Resolution
	FrameRate     float64 // 0 keeps the source rate.
	QualityFactor int     // CRF; lower means higher quality.
	IncludeAudio  bool
}

// NewEncodeConfig validates the parameters that can be checked without a source.
func NewEncodeConfig(res Resolution, fps float64, crf int, audio bool) (EncodeConfig, error) {
	if res.IsZero() {
		return EncodeConfig{}, &ConfigError{Field: "resolution", Err: ErrBothAxesUnresolved}
	}
	if fps < 0 {
		return EncodeConfig{}, &ConfigError{Field: "fps", Value: FormatFrameRate(fps), Err: errors.New("must not be negative")}
	}
	if crf < 0 || crf > MaxQualityFactor {
		return EncodeConfig{}, &ConfigError{Field: "crf", Value: strconv.Itoa(crf), Err: fmt.Errorf("must be within 0..%d", MaxQualityFactor)}
	}
	return EncodeConfig{Resolution: res, FrameRate: fps, QualityFactor: crf, IncludeAudio: audio}, nil
}

// KeepsSourceRate reports whether no frame-rate was requested.
func (c EncodeConfig) KeepsSourceRate() bool { return c.FrameRate == 0 }

// FileSuffix encodes every field into a filename fragment, e.g.
// "--res-720p--fps-30--crf-20". Distinct configs yield distinct suffixes.
func (c EncodeConfig) FileSuffix() string {
	fps := "src"
	if !c.KeepsSourceRate() {
		fps = FormatFrameRate(c.FrameRate)
	}
	s := fmt.Sprintf("--res-%s--fps-%s--crf-%d", c.Resolution.Token(), fps, c.QualityFactor)
	if !c.IncludeAudio {
		s += "--noaudio"
	}
	return s
}

// String describes the config with all of its fields.
func (c EncodeConfig) String() string {
	fps := "source"
	if !c.KeepsSourceRate() {
		fps = FormatFrameRate(c.FrameRate)
	}
	return fmt.Sprintf("RES: %s, FPS: %s, CRF: %d, AUDIO: %t", c.Resolution, fps, c.QualityFactor, c.IncludeAudio)
}

// ParseFrameRate accepts a decimal rate; "", "0" and "src" keep the source rate.
func ParseFrameRate(s string) (float64, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if raw == "" || raw == "src" || raw == "source" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &ConfigError{Field: "fps", Value: s, Err: err}
	}
	if v < 0 {
		return 0, &ConfigError{Field: "fps", Value: s, Err: errors.New("must not be negative")}
	}
	return v, nil
}

// FormatFrameRate renders a rate without trailing zeros ("30", "29.97").
func FormatFrameRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
