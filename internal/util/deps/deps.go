package deps

import (
	"fmt"
	"os"
	"os/exec"
)

// FindFFmpeg returns the ffmpeg binary to use. If customPath is non-empty, it
// tries that path or looks it up in PATH; otherwise "ffmpeg" is looked up.
func FindFFmpeg(customPath string) (string, error) {
	if customPath != "" {
		if fi, err := os.Stat(customPath); err == nil && !fi.IsDir() {
			return customPath, nil
		}
		if p, err := exec.LookPath(customPath); err == nil {
			return p, nil
		}
		return "", fmt.Errorf("could not find ffmpeg at %q", customPath)
	}
	if p, err := exec.LookPath("ffmpeg"); err == nil {
		return p, nil
	}
	return "", fmt.Errorf("could not find ffmpeg in PATH. Please install ffmpeg.")
}
