// Package config loads sweep settings from flags, ENCSWEEP_* variables and an
// optional config file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"encsweep/internal/dirs"
	"encsweep/internal/encoder"
	"encsweep/internal/model"
	"encsweep/internal/pipeline"
)

// Viper keys.
const (
	KeyInput       = "input"
	KeyOutDir      = "out_dir"
	KeyResolutions = "resolutions"
	KeyFPS         = "fps"
	KeyCRF         = "crf"
	KeyAudio       = "audio"
	KeyCodec       = "codec"
	KeyPreset      = "preset"
	KeyFFmpeg      = "ffmpeg"
	KeyLogLevel    = "log_level"
	KeyNoUI        = "no_ui"
	KeyVerbose     = "verbose"
)

// flagKeys maps flag names to the keys they override.
var flagKeys = map[string]string{
	"out-dir":    KeyOutDir,
	"resolution": KeyResolutions,
	"fps":        KeyFPS,
	"crf":        KeyCRF,
	"audio":      KeyAudio,
	"codec":      KeyCodec,
	"preset":     KeyPreset,
	"ffmpeg":     KeyFFmpeg,
	"log-level":  KeyLogLevel,
	"no-ui":      KeyNoUI,
	"verbose":    KeyVerbose,
}

// SetDefaults installs the default sweep: every 16:9 preset at 30 fps and
// CRF 20 and 40, with audio.
func SetDefaults(v *viper.Viper) {
	presets := model.Presets16x9()
	res := make([]string, len(presets))
	for i, p := range presets {
		res[i] = string(p)
	}
	v.SetDefault(KeyResolutions, res)
	v.SetDefault(KeyFPS, []string{"30"})
	v.SetDefault(KeyCRF, []string{"20", "40"})
	v.SetDefault(KeyAudio, true)
	v.SetDefault(KeyCodec, encoder.DefaultCodec)
	v.SetDefault(KeyPreset, encoder.DefaultPreset)
	v.SetDefault(KeyLogLevel, "info")
}

// Init wires v with defaults, ENCSWEEP_* env, the config file and the flags in
// fs that are present. cfgFile, when set, replaces the search in the config
// directory. A missing config file is not an error.
func Init(v *viper.Viper, fs *pflag.FlagSet, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if cfgDir, err := dirs.ConfigDir(); err == nil {
			v.AddConfigPath(cfgDir)
		}
		v.SetConfigName("config") // supports config.{yaml|yml|json|toml}
	}

	v.SetEnvPrefix("ENCSWEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return fmt.Errorf("bind --%s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// Settings is the resolved configuration of one invocation.
type Settings struct {
	Input    string
	OutDir   string
	Configs  []model.EncodeConfig // sweep in matrix order
	Codec    string
	Preset   string
	FFmpeg   string
	LogLevel string
	NoUI     bool
	Verbose  bool
}

// Load resolves v into Settings and expands the sweep. Malformed values are
// reported as *model.ConfigError.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		Input:    v.GetString(KeyInput),
		OutDir:   v.GetString(KeyOutDir),
		Codec:    v.GetString(KeyCodec),
		Preset:   v.GetString(KeyPreset),
		FFmpeg:   v.GetString(KeyFFmpeg),
		LogLevel: v.GetString(KeyLogLevel),
		NoUI:     v.GetBool(KeyNoUI),
		Verbose:  v.GetBool(KeyVerbose),
	}

	var resolutions []model.Resolution
	for _, raw := range splitList(v.GetStringSlice(KeyResolutions)) {
		r, err := model.ParseResolution(raw)
		if err != nil {
			return Settings{}, err
		}
		resolutions = append(resolutions, r)
	}

	var rates []float64
	for _, raw := range splitList(v.GetStringSlice(KeyFPS)) {
		f, err := model.ParseFrameRate(raw)
		if err != nil {
			return Settings{}, err
		}
		rates = append(rates, f)
	}

	var crfs []int
	for _, raw := range splitList(v.GetStringSlice(KeyCRF)) {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Settings{}, &model.ConfigError{Field: "crf", Value: raw, Err: err}
		}
		crfs = append(crfs, n)
	}

	if len(resolutions) == 0 || len(rates) == 0 || len(crfs) == 0 {
		return Settings{}, &model.ConfigError{Field: "sweep", Err: errors.New("resolutions, fps and crf must each have at least one value")}
	}

	configs, err := pipeline.Expand(resolutions, rates, crfs, v.GetBool(KeyAudio))
	if err != nil {
		return Settings{}, err
	}
	s.Configs = configs
	return s, nil
}

// splitList flattens comma-separated entries, so "720p,480p" in a config
// file or env variable behaves like two entries.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
