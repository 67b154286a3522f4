package progress

// Handle is the display handle of one job. It is owned by that job alone;
// the Reporter behind it is the only shared piece.
type Handle struct {
	rep     Reporter
	jobID   string
	tracker *Tracker
	message string
}

// NewHandle registers the job with rep and returns its handle.
func NewHandle(rep Reporter, reg Registration, tracker *Tracker) *Handle {
	if rep == nil {
		rep = Discard
	}
	if tracker == nil {
		tracker = NewTracker(0)
	}
	rep.Register(reg)
	return &Handle{rep: rep, jobID: reg.JobID, tracker: tracker}
}

// Tracker returns the job's tracker.
func (h *Handle) Tracker() *Tracker { return h.tracker }

// SetMessage changes the status text and pushes an update.
func (h *Handle) SetMessage(msg string) {
	h.message = msg
	h.Refresh()
}

// Refresh pushes the tracker's current state.
func (h *Handle) Refresh() {
	u := Update{
		JobID:    h.jobID,
		Stage:    StageEncoding,
		Percent:  h.tracker.Percent(),
		Position: h.tracker.Current(),
		Length:   h.tracker.Total(),
		Elapsed:  h.tracker.Elapsed(),
		Message:  h.message,
	}
	if eta, ok := h.tracker.ETA(); ok {
		u.ETA = &eta
	}
	h.rep.Update(u)
}

// Warn forwards a non-fatal diagnostic.
func (h *Handle) Warn(line string) {
	h.rep.Log(Log{JobID: h.jobID, Level: LevelWarning, Line: line})
}

// Succeed finishes the handle with the produced output.
func (h *Handle) Succeed(outputPath string, bytes int64, msg string) {
	h.rep.Update(Update{
		JobID:    h.jobID,
		Stage:    StageCompleted,
		Percent:  100,
		Position: h.tracker.Current(),
		Length:   h.tracker.Total(),
		Elapsed:  h.tracker.Elapsed(),
		Message:  msg,
	})
	h.rep.Result(Result{JobID: h.jobID, OutputPath: outputPath, Bytes: bytes})
}

// Fail finishes the handle with err.
func (h *Handle) Fail(err error) {
	h.rep.Update(Update{
		JobID:   h.jobID,
		Stage:   StageError,
		Percent: -1,
		Elapsed: h.tracker.Elapsed(),
		Message: err.Error(),
	})
	h.rep.Result(Result{JobID: h.jobID, Err: err})
}
