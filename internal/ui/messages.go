package ui

import "encsweep/internal/progress"

type jobRegisterMsg struct {
	R progress.Registration
}

type jobUpdateMsg struct {
	U progress.Update
}

type jobLogMsg struct {
	L progress.Log
}

type jobResultMsg struct {
	R progress.Result
}

// workDoneMsg is sent once the sweep has returned.
type workDoneMsg struct {
	Err error
}
