package encoder

import "time"

// Level is the severity tag ffmpeg puts on a diagnostic line when run with
// -loglevel level+info.
type Level int

const (
	LevelUnknown Level = iota // line carried no level tag
	LevelTrace
	LevelDebug
	LevelVerbose
	LevelInfo
	LevelWarning
	LevelError
	LevelFatal
	LevelPanic
)

var levelNames = map[string]Level{
	"trace":   LevelTrace,
	"debug":   LevelDebug,
	"verbose": LevelVerbose,
	"info":    LevelInfo,
	"warning": LevelWarning,
	"error":   LevelError,
	"fatal":   LevelFatal,
	"panic":   LevelPanic,
}

func (l Level) String() string {
	for name, v := range levelNames {
		if v == l {
			return name
		}
	}
	return "unknown"
}

// StreamKind is the media type of an input stream.
type StreamKind string

const (
	StreamVideo    StreamKind = "video"
	StreamAudio    StreamKind = "audio"
	StreamSubtitle StreamKind = "subtitle"
	StreamData     StreamKind = "data"
	StreamOther    StreamKind = "other"
)

// StreamDescriptor is the parsed form of an ffmpeg "Stream #0:N" input line.
// Geometry fields are only set for video.
type StreamDescriptor struct {
	Index     string // e.g. "0:1"
	Kind      StreamKind
	Codec     string
	Width     int
	Height    int
	FrameRate float64
	PixFmt    string
}

// Event is one classified line of ffmpeg output. The concrete types are
// DurationParsed, StreamParsed, ProgressTick and LogLine.
type Event interface {
	event()
}

// DurationParsed reports the input duration.
type DurationParsed struct {
	Duration time.Duration
}

// StreamParsed reports an input stream.
type StreamParsed struct {
	Stream StreamDescriptor
}

// ProgressTick reports the number of frames encoded so far.
type ProgressTick struct {
	Frame int64
}

// LogLine is any other diagnostic, with its level tag stripped.
type LogLine struct {
	Level   Level
	Message string
}

func (DurationParsed) event() {}
func (StreamParsed) event()   {}
func (ProgressTick) event()   {}
func (LogLine) event()        {}
