package encoder

import (
	"errors"
	"fmt"
)

var (
	ErrNoVideoStream        = errors.New("no video stream found")
	ErrAmbiguousVideoStream = errors.New("multiple video streams found")
	ErrNoDuration           = errors.New("source duration not reported")
	ErrFileAccess           = errors.New("cannot read source file")
)

// ToolError is an error- or fatal-level diagnostic emitted by ffmpeg.
type ToolError struct {
	Level   Level
	Message string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("ffmpeg %s: %s", e.Level, e.Message)
}

// ProbeError is returned by Probe. It aborts the whole run.
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// EncodingError is the failure of one encode: a fatal diagnostic, or a
// non-zero exit with none.
type EncodingError struct {
	Tool     *ToolError // first fatal diagnostic, if any
	ExitCode int
	Err      error // process error when Tool is nil
}

func (e *EncodingError) Error() string {
	if e.Tool != nil {
		return "encoding failed: " + e.Tool.Error()
	}
	return fmt.Sprintf("encoding failed: ffmpeg exited with code %d: %v", e.ExitCode, e.Err)
}

func (e *EncodingError) Unwrap() error {
	if e.Tool != nil {
		return e.Tool
	}
	return e.Err
}
