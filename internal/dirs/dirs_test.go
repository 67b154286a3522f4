package dirs

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestXDGOverrides(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG variables only apply on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_STATE_HOME", "/tmp/state")

	if got, _ := ConfigDir(); got != filepath.Join("/tmp/cfg", "encsweep") {
		t.Errorf("ConfigDir() = %q", got)
	}
	if got, _ := StateDir(); got != filepath.Join("/tmp/state", "encsweep") {
		t.Errorf("StateDir() = %q", got)
	}
	if got, _ := LogFile(); got != filepath.Join("/tmp/state", "encsweep", "encsweep.log") {
		t.Errorf("LogFile() = %q", got)
	}
}

func TestEnsure(t *testing.T) {
	if err := Ensure(""); err == nil {
		t.Error("Ensure(\"\") should fail")
	}
	if err := Ensure(filepath.Join(t.TempDir(), "a", "b")); err != nil {
		t.Errorf("Ensure() = %v", err)
	}
}
