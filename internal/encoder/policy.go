package encoder

import "strings"

// MissingOutputMessage is ffmpeg's complaint when invoked with only an input,
// which is exactly how the probe runs it.
const MissingOutputMessage = "At least one output file must be specified"

// Verdict is what a caller should do with a LogLine.
type Verdict int

const (
	VerdictIgnore Verdict = iota
	VerdictWarn
	VerdictAbort
)

// LogPolicy decides how leveled diagnostics affect a run.
type LogPolicy struct {
	// IgnoreMissingOutput swallows MissingOutputMessage. Set while probing;
	// during an encode the message is fatal like any other.
	IgnoreMissingOutput bool
}

// ProbePolicy is the policy used for metadata-only runs.
var ProbePolicy = LogPolicy{IgnoreMissingOutput: true}

// EncodePolicy is the policy used for encodes.
var EncodePolicy = LogPolicy{}

// Judge classifies l: error and above abort, warnings are surfaced, the rest
// is dropped.
func (p LogPolicy) Judge(l LogLine) Verdict {
	switch {
	case l.Level >= LevelError:
		if p.IgnoreMissingOutput && IsMissingOutput(l) {
			return VerdictIgnore
		}
		return VerdictAbort
	case l.Level == LevelWarning:
		return VerdictWarn
	default:
		return VerdictIgnore
	}
}

// IsMissingOutput reports whether l is ffmpeg's missing-output complaint.
func IsMissingOutput(l LogLine) bool {
	return strings.TrimSpace(l.Message) == MissingOutputMessage
}
