package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestInit_JSON(t *testing.T) {
	t.Cleanup(InitDefault)

	var buf bytes.Buffer
	if err := Init(Options{Level: "debug", Format: FormatJSON, Out: &buf}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("GlobalLevel() = %v, want debug", zerolog.GlobalLevel())
	}

	log.Info().Str("k", "v").Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not json: %q", buf.String())
	}
	if entry["message"] != "hello" || entry["k"] != "v" {
		t.Errorf("entry = %v", entry)
	}
}

func TestInit_Invalid(t *testing.T) {
	t.Cleanup(InitDefault)

	tests := []struct {
		name string
		opts Options
	}{
		{name: "level", opts: Options{Level: "loud"}},
		{name: "format", opts: Options{Format: "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Init(tt.opts); err == nil {
				t.Errorf("Init() error = nil, want error")
			}
		})
	}
}
