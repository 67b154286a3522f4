package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBothAxesUnresolved is returned when a derived resolution fixes neither axis.
var ErrBothAxesUnresolved = errors.New("width and height are both derived from the source")

// Preset is a named 16:9 resolution.
type Preset string

const (
	Preset240p  Preset = "240p"
	Preset360p  Preset = "360p"
	Preset480p  Preset = "480p"
	Preset720p  Preset = "720p"
	Preset1080p Preset = "1080p"
	Preset1440p Preset = "1440p"
	Preset2160p Preset = "2160p"
	Preset4320p Preset = "4320p"
)

type presetInfo struct {
	dims Dimensions
	name string
}

var presets = map[Preset]presetInfo{
	Preset240p:  {Dimensions{426, 240}, "240p (SD)"},
	Preset360p:  {Dimensions{640, 360}, "360p (SD)"},
	Preset480p:  {Dimensions{854, 480}, "480p (SD)"},
	Preset720p:  {Dimensions{1280, 720}, "720p (HD)"},
	Preset1080p: {Dimensions{1920, 1080}, "1080p (FHD)"},
	Preset1440p: {Dimensions{2560, 1440}, "1440p (QHD)"},
	Preset2160p: {Dimensions{3840, 2160}, "2160p (4K)"},
	Preset4320p: {Dimensions{7680, 4320}, "4320p (8K)"},
}

// Presets16x9 lists every named preset from smallest to largest.
func Presets16x9() []Preset {
	return []Preset{
		Preset240p, Preset360p, Preset480p, Preset720p,
		Preset1080p, Preset1440p, Preset2160p, Preset4320p,
	}
}

// PresetFor returns the preset whose dimensions equal d, if any.
func PresetFor(d Dimensions) (Preset, bool) {
	for _, p := range Presets16x9() {
		if presets[p].dims == d {
			return p, true
		}
	}
	return "", false
}

// ResolutionKind tags the variant held by a Resolution.
type ResolutionKind uint8

const (
	ResolutionPreset ResolutionKind = iota + 1
	ResolutionExplicit
	ResolutionFixedWidth  // height follows the source aspect ratio
	ResolutionFixedHeight // width follows the source aspect ratio
)

// Resolution is a requested output size: a named preset, explicit dimensions,
// or one fixed axis with the other derived from the source. Values are built
// through the constructors; the zero value is invalid.
type Resolution struct {
	kind   ResolutionKind
	preset Preset
	width  int
	height int
}

// PresetResolution returns the resolution for a named preset.
func PresetResolution(p Preset) (Resolution, error) {
	if _, ok := presets[p]; !ok {
		return Resolution{}, &ConfigError{Field: "resolution", Value: string(p), Err: errors.New("unknown preset")}
	}
	return Resolution{kind: ResolutionPreset, preset: p}, nil
}

// ExplicitResolution returns a fixed width × height resolution.
func ExplicitResolution(width, height int) (Resolution, error) {
	if width <= 0 || height <= 0 {
		return Resolution{}, &ConfigError{Field: "resolution", Value: fmt.Sprintf("%dx%d", width, height), Err: errors.New("dimensions must be positive")}
	}
	return Resolution{kind: ResolutionExplicit, width: width, height: height}, nil
}

// DerivedResolution fixes whichever axes are non-nil. When both are set the
// result is explicit; when neither is, ErrBothAxesUnresolved is returned.
func DerivedResolution(width, height *int) (Resolution, error) {
	switch {
	case width != nil && height != nil:
		return ExplicitResolution(*width, *height)
	case width != nil:
		if *width <= 0 {
			return Resolution{}, &ConfigError{Field: "resolution", Value: strconv.Itoa(*width), Err: errors.New("width must be positive")}
		}
		return Resolution{kind: ResolutionFixedWidth, width: *width}, nil
	case height != nil:
		if *height <= 0 {
			return Resolution{}, &ConfigError{Field: "resolution", Value: strconv.Itoa(*height), Err: errors.New("height must be positive")}
		}
		return Resolution{kind: ResolutionFixedHeight, height: *height}, nil
	default:
		return Resolution{}, &ConfigError{Field: "resolution", Err: ErrBothAxesUnresolved}
	}
}

// ParseResolution accepts "720p", "1280x720", "1280x" (height derived) and
// "x720" (width derived).
func ParseResolution(s string) (Resolution, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	if raw == "" {
		return Resolution{}, &ConfigError{Field: "resolution", Value: s, Err: errors.New("empty value")}
	}
	if _, ok := presets[Preset(raw)]; ok {
		return PresetResolution(Preset(raw))
	}
	w, h, found := strings.Cut(raw, "x")
	if !found {
		return Resolution{}, &ConfigError{Field: "resolution", Value: s, Err: errors.New("expected <preset>, WxH, Wx or xH")}
	}
	axis := func(v string) (*int, error) {
		if v == "" {
			return nil, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, &ConfigError{Field: "resolution", Value: s, Err: err}
		}
		return &n, nil
	}
	wp, err := axis(w)
	if err != nil {
		return Resolution{}, err
	}
	hp, err := axis(h)
	if err != nil {
		return Resolution{}, err
	}
	r, err := DerivedResolution(wp, hp)
	if err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			ce.Value = s
		}
		return Resolution{}, err
	}
	return r, nil
}

// Kind reports the variant.
func (r Resolution) Kind() ResolutionKind { return r.kind }

// IsZero reports whether r was never constructed.
func (r Resolution) IsZero() bool { return r.kind == 0 }

// Resolve computes concrete dimensions against the source video stream.
// A derived axis keeps the source aspect ratio, rounded to the nearest pixel.
func (r Resolution) Resolve(src VideoStream) (Dimensions, error) {
	switch r.kind {
	case ResolutionPreset:
		return presets[r.preset].dims, nil
	case ResolutionExplicit:
		return Dimensions{Width: r.width, Height: r.height}, nil
	case ResolutionFixedWidth, ResolutionFixedHeight:
		if src.Width <= 0 || src.Height <= 0 {
			return Dimensions{}, fmt.Errorf("cannot derive %s: source dimensions unknown", r)
		}
		ratio := float64(src.Width) / float64(src.Height)
		if r.kind == ResolutionFixedWidth {
			return Dimensions{Width: r.width, Height: int(math.Round(float64(r.width) / ratio))}, nil
		}
		return Dimensions{Width: int(math.Round(float64(r.height) * ratio)), Height: r.height}, nil
	default:
		return Dimensions{}, &ConfigError{Field: "resolution", Err: ErrBothAxesUnresolved}
	}
}

// ScaleFilter returns the ffmpeg -vf value for this resolution. Derived axes
// are left to ffmpeg (-2 keeps the value even for yuv420p).
func (r Resolution) ScaleFilter() string {
	switch r.kind {
	case ResolutionPreset:
		d := presets[r.preset].dims
		return fmt.Sprintf("scale=%d:%d", d.Width, d.Height)
	case ResolutionExplicit:
		return fmt.Sprintf("scale=%d:%d", r.width, r.height)
	case ResolutionFixedWidth:
		return fmt.Sprintf("scale=%d:-2", r.width)
	case ResolutionFixedHeight:
		return fmt.Sprintf("scale=-2:%d", r.height)
	}
	return ""
}

// Token is a filename-safe encoding of the resolution. Distinct variants never
// share a token.
func (r Resolution) Token() string {
	switch r.kind {
	case ResolutionPreset:
		return string(r.preset)
	case ResolutionExplicit:
		return fmt.Sprintf("%dx%d", r.width, r.height)
	case ResolutionFixedWidth:
		return fmt.Sprintf("w%d", r.width)
	case ResolutionFixedHeight:
		return fmt.Sprintf("h%d", r.height)
	}
	return "invalid"
}

// String returns a human label, e.g. "720p (HD)" or "1280x(auto)".
func (r Resolution) String() string {
	switch r.kind {
	case ResolutionPreset:
		return presets[r.preset].name
	case ResolutionExplicit:
		d := Dimensions{Width: r.width, Height: r.height}
		if p, ok := PresetFor(d); ok {
			return presets[p].name
		}
		return d.String()
	case ResolutionFixedWidth:
		return fmt.Sprintf("%dx(auto)", r.width)
	case ResolutionFixedHeight:
		return fmt.Sprintf("(auto)x%d", r.height)
	}
	return "invalid"
}

// DimensionsLabel names a concrete size the way String names a preset.
func DimensionsLabel(d Dimensions) string {
	if p, ok := PresetFor(d); ok {
		return presets[p].name
	}
	return d.String()
}
