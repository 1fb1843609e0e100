package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	l := New(WARN, &buf)

	l.Info("channel", "dropped %d", 1)
	if buf.Len() != 0 {
		t.Errorf("INFO should be filtered at WARN, got %q", buf.String())
	}

	l.Warn("channel", "slow reader %d", 2)
	out := buf.String()
	if !strings.Contains(out, "[WARN] [channel] slow reader 2") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestLogger_Silent(t *testing.T) {
	var buf bytes.Buffer
	l := New(SILENT, &buf)

	l.Error("app", "boom")
	if buf.Len() != 0 {
		t.Errorf("SILENT should suppress everything, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: DEBUG},
		{in: "INFO", want: INFO},
		{in: "warning", want: WARN},
		{in: " error ", want: ERROR},
		{in: "none", want: SILENT},
		{in: "loud", want: INFO, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
