package format

import "testing"

func TestHumanizeBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{name: "zero bytes", bytes: 0, want: "0 B"},
		{name: "single byte", bytes: 1, want: "1 B"},
		{name: "under 1kB", bytes: 999, want: "999 B"},
		{name: "exactly 1kB", bytes: 1000, want: "1.0 kB"},
		{name: "1.5 kB", bytes: 1500, want: "1.5 kB"},
		{name: "exactly 1MB", bytes: 1000 * 1000, want: "1.0 MB"},
		{name: "50 MB", bytes: 50 * 1000 * 1000, want: "50 MB"},
		{name: "exactly 1GB", bytes: 1000 * 1000 * 1000, want: "1.0 GB"},
		{name: "negative", bytes: -1500, want: "-1.5 kB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HumanizeBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("HumanizeBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}
