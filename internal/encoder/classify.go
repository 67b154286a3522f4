package encoder

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Line shapes recognised by the classifier. Stats lines end in '\r', so the
// scanner splits on both line terminators. ffmpeg prints the context of a
// diagnostic ("[h264 @ 0x55...] ") ahead of its level tag.
var (
	reLevelTag = regexp.MustCompile(`^((?:\[[^\]]+ @ 0x[0-9a-fA-F]+\] )*)\[(trace|debug|verbose|info|warning|error|fatal|panic)\] ?`)
	reDuration = regexp.MustCompile(`^\s*Duration: (\d+):(\d{2}):(\d{2}(?:\.\d+)?)`)
	reStream   = regexp.MustCompile(`^\s*Stream #(\d+:\d+)\S*: (Video|Audio|Subtitle|Data|Attachment): (.*)$`)
	reFrame    = regexp.MustCompile(`^\s*frame=\s*(\d+)`)
	reDims     = regexp.MustCompile(`\b(\d{2,5})x(\d{2,5})\b`)
	reFPS      = regexp.MustCompile(`([\d.]+)(k?) fps\b`)
	reTBR      = regexp.MustCompile(`([\d.]+)(k?) tbr\b`)
)

type section int

const (
	sectionNone section = iota
	sectionInput
	sectionOutput
	sectionMapping
)

// Classifier turns ffmpeg stderr lines into Events. It remembers whether it is
// inside an "Input #" or "Output #" block so output streams are not mistaken
// for input streams. A Classifier must not be shared between processes.
type Classifier struct {
	section section
}

// Classify interprets one line. Blank lines yield ok=false.
func (c *Classifier) Classify(line string) (Event, bool) {
	line = strings.TrimRight(line, "\r\n")
	level := LevelUnknown
	prefix := ""
	if m := reLevelTag.FindStringSubmatch(line); m != nil {
		level = levelNames[m[2]]
		prefix = m[1]
		line = line[len(m[0]):]
	}
	if strings.TrimSpace(line) == "" {
		return nil, false
	}

	// Component chatter never carries stream metadata or stats.
	if level <= LevelInfo && prefix == "" {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Input #"):
			c.section = sectionInput
		case strings.HasPrefix(trimmed, "Output #"):
			c.section = sectionOutput
		case strings.HasPrefix(trimmed, "Stream mapping:"):
			c.section = sectionMapping
		}

		if m := reFrame.FindStringSubmatch(line); m != nil {
			if n, err := strconv.ParseInt(m[1], 10, 64); err == nil {
				return ProgressTick{Frame: n}, true
			}
		}
		if c.section == sectionInput {
			if m := reDuration.FindStringSubmatch(line); m != nil {
				if d, ok := parseClock(m[1], m[2], m[3]); ok {
					return DurationParsed{Duration: d}, true
				}
			}
			if m := reStream.FindStringSubmatch(line); m != nil {
				return StreamParsed{Stream: parseStream(m[1], m[2], m[3])}, true
			}
		}
	}

	return LogLine{Level: level, Message: strings.TrimSpace(prefix + line)}, true
}

func parseClock(h, m, s string) (time.Duration, bool) {
	hh, err := strconv.Atoi(h)
	if err != nil {
		return 0, false
	}
	mm, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	ss, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	total := time.Duration(hh)*time.Hour + time.Duration(mm)*time.Minute
	return total + time.Duration(ss*float64(time.Second)), true
}

func parseStream(index, kind, rest string) StreamDescriptor {
	sd := StreamDescriptor{Index: index}
	switch kind {
	case "Video":
		sd.Kind = StreamVideo
	case "Audio":
		sd.Kind = StreamAudio
	case "Subtitle":
		sd.Kind = StreamSubtitle
	case "Data":
		sd.Kind = StreamData
	default:
		sd.Kind = StreamOther
	}

	fields := splitTopLevel(rest)
	if len(fields) > 0 {
		if codec := strings.Fields(fields[0]); len(codec) > 0 {
			sd.Codec = codec[0]
		}
	}
	if sd.Kind != StreamVideo {
		return sd
	}

	if len(fields) > 1 {
		pix := fields[1]
		if i := strings.IndexByte(pix, '('); i >= 0 {
			pix = pix[:i]
		}
		sd.PixFmt = strings.TrimSpace(pix)
	}
	for _, f := range fields {
		if m := reDims.FindStringSubmatch(f); m != nil && sd.Width == 0 {
			sd.Width, _ = strconv.Atoi(m[1])
			sd.Height, _ = strconv.Atoi(m[2])
		}
	}
	if m := reFPS.FindStringSubmatch(rest); m != nil {
		sd.FrameRate = parseRate(m[1], m[2])
	} else if m := reTBR.FindStringSubmatch(rest); m != nil {
		sd.FrameRate = parseRate(m[1], m[2])
	}
	return sd
}

func parseRate(v, kilo string) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	if kilo != "" {
		f *= 1000
	}
	return f
}

// splitTopLevel splits on commas that are not inside parentheses or brackets.
func splitTopLevel(s string) []string {
	var out []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	return append(out, strings.TrimSpace(s[start:]))
}

// EventScanner reads ffmpeg output from r and yields classified events as
// they arrive. Like bufio.Scanner it is single-pass.
type EventScanner struct {
	sc  *bufio.Scanner
	cls Classifier
	ev  Event
}

// NewEventScanner returns a scanner over r.
func NewEventScanner(r io.Reader) *EventScanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(scanLinesOrCR)
	return &EventScanner{sc: sc}
}

// Scan advances to the next event, blocking on the reader.
func (s *EventScanner) Scan() bool {
	for s.sc.Scan() {
		if ev, ok := s.cls.Classify(s.sc.Text()); ok {
			s.ev = ev
			return true
		}
	}
	s.ev = nil
	return false
}

// Event returns the event produced by the last Scan.
func (s *EventScanner) Event() Event { return s.ev }

// Err returns the first non-EOF read error.
func (s *EventScanner) Err() error { return s.sc.Err() }

func scanLinesOrCR(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
