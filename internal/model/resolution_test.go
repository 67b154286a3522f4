package model

import (
	"errors"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestDerivedResolution_Resolve(t *testing.T) {
	src := VideoStream{Width: 1920, Height: 1080, FrameRate: 30, PixFmt: "yuv420p"}

	tests := []struct {
		name   string
		width  *int
		height *int
		want   Dimensions
	}{
		{name: "height fixed", height: intPtr(720), want: Dimensions{1280, 720}},
		{name: "width fixed", width: intPtr(1280), want: Dimensions{1280, 720}},
		{name: "both fixed", width: intPtr(1280), height: intPtr(720), want: Dimensions{1280, 720}},
		{name: "odd ratio rounds", height: intPtr(481), want: Dimensions{855, 481}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := DerivedResolution(tt.width, tt.height)
			if err != nil {
				t.Fatalf("DerivedResolution() error = %v", err)
			}
			got, err := r.Resolve(src)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDerivedResolution_BothUnresolved(t *testing.T) {
	_, err := DerivedResolution(nil, nil)
	if !errors.Is(err, ErrBothAxesUnresolved) {
		t.Fatalf("DerivedResolution(nil, nil) error = %v, want ErrBothAxesUnresolved", err)
	}
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("error %T is not a *ConfigError", err)
	}
}

func TestParseResolution(t *testing.T) {
	tests := []struct {
		in        string
		wantKind  ResolutionKind
		wantToken string
		wantErr   bool
	}{
		{in: "720p", wantKind: ResolutionPreset, wantToken: "720p"},
		{in: " 1080P ", wantKind: ResolutionPreset, wantToken: "1080p"},
		{in: "1280x720", wantKind: ResolutionExplicit, wantToken: "1280x720"},
		{in: "1280x", wantKind: ResolutionFixedWidth, wantToken: "w1280"},
		{in: "x720", wantKind: ResolutionFixedHeight, wantToken: "h720"},
		{in: "x", wantErr: true},
		{in: "", wantErr: true},
		{in: "720", wantErr: true},
		{in: "axb", wantErr: true},
		{in: "0x720", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := ParseResolution(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseResolution(%q) = %v, want error", tt.in, r)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseResolution(%q) error = %v", tt.in, err)
			}
			if r.Kind() != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", r.Kind(), tt.wantKind)
			}
			if r.Token() != tt.wantToken {
				t.Errorf("Token() = %q, want %q", r.Token(), tt.wantToken)
			}
		})
	}
}

func TestResolution_ScaleFilter(t *testing.T) {
	p, _ := PresetResolution(Preset480p)
	w, _ := ParseResolution("1280x")
	h, _ := ParseResolution("x720")

	if got := p.ScaleFilter(); got != "scale=854:480" {
		t.Errorf("preset ScaleFilter() = %q", got)
	}
	if got := w.ScaleFilter(); got != "scale=1280:-2" {
		t.Errorf("fixed width ScaleFilter() = %q", got)
	}
	if got := h.ScaleFilter(); got != "scale=-2:720" {
		t.Errorf("fixed height ScaleFilter() = %q", got)
	}
}

func TestResolution_String(t *testing.T) {
	p, _ := PresetResolution(Preset720p)
	e, _ := ExplicitResolution(1920, 1080)
	o, _ := ExplicitResolution(1000, 500)

	if p.String() != "720p (HD)" {
		t.Errorf("preset String() = %q", p.String())
	}
	if e.String() != "1080p (FHD)" {
		t.Errorf("explicit preset-sized String() = %q", e.String())
	}
	if o.String() != "1000x500" {
		t.Errorf("explicit String() = %q", o.String())
	}
}
