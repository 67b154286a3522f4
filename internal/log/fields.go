package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRunID     = "run_id"
	FieldJobID     = "job_id"
	FieldComponent = "component"
	FieldEvent     = "event"

	// Sweep fields
	FieldResolution = "resolution"
	FieldFPS        = "fps"
	FieldCRF        = "crf"
	FieldAudio      = "audio"

	// Media fields
	FieldCodec    = "codec"
	FieldDuration = "duration"
	FieldBytes    = "bytes"

	// Path fields
	FieldPath   = "path"
	FieldOutput = "output"
)
