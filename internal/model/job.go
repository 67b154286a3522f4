package model

// Job is one (source, config) pair scheduled for one encoder invocation.
type Job struct {
	ID         string
	Index      int // position in the generated matrix
	Source     *SourceStat
	Config     EncodeConfig
	OutputPath string
}

// Outcome is the recorded result of a job. Err is nil on success.
type Outcome struct {
	JobID      string
	Config     EncodeConfig
	OutputPath string
	Bytes      int64
	Err        error
}

// Succeeded reports whether the job produced its output.
func (o Outcome) Succeeded() bool { return o.Err == nil }

// Success builds a successful outcome for j.
func Success(j Job, bytes int64) Outcome {
	return Outcome{JobID: j.ID, Config: j.Config, OutputPath: j.OutputPath, Bytes: bytes}
}

// Failure builds a failed outcome for j.
func Failure(j Job, err error) Outcome {
	return Outcome{JobID: j.ID, Config: j.Config, OutputPath: j.OutputPath, Err: err}
}
