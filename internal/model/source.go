package model

import (
	"fmt"
	"time"
)

// VideoStream describes the single video stream of a source.
type VideoStream struct {
	Width     int
	Height    int
	FrameRate float64
	PixFmt    string
	Codec     string
}

// Dimensions returns the stream's width × height.
func (v VideoStream) Dimensions() Dimensions {
	return Dimensions{Width: v.Width, Height: v.Height}
}

// AudioStream describes one audio stream of a source.
type AudioStream struct {
	Codec string
}

// SourceStat is the probed metadata of an input file. It is built once by the
// probe and shared read-only across every job of a run.
type SourceStat struct {
	Path         string
	Video        VideoStream
	AudioStreams []AudioStream
	Duration     time.Duration
	FileSize     int64
}

// HasAudio reports whether the source carries at least one audio stream.
func (s *SourceStat) HasAudio() bool {
	return len(s.AudioStreams) > 0
}

// Dimensions is a concrete width × height pair in pixels.
type Dimensions struct {
	Width  int
	Height int
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}
