package printer

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/fatih/color"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0ms"},
		{250 * time.Millisecond, "250ms"},
		{999 * time.Millisecond, "999ms"},
		{time.Second, "1.0s"},
		{1234 * time.Millisecond, "1.2s"},
		{90 * time.Second, "90.0s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatDuration(tt.d); got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestStatusLines(t *testing.T) {
	tests := []struct {
		name  string
		print func(*Printer)
		want  string
	}{
		{"success", func(p *Printer) { p.Success(1200 * time.Millisecond) }, "✓ done in 1.2s\n"},
		{"failure", func(p *Printer) { p.Failure(3, 40*time.Millisecond) }, "✗ exit 3 after 40ms\n"},
		{"interrupted", func(p *Printer) { p.Interrupted(2 * time.Second) }, "! interrupted after 2.0s\n"},
		{"error", func(p *Printer) { p.Error(errors.New("exec: \"nope\": not found")) }, "Error: exec: \"nope\": not found\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.print(New(&buf))
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
