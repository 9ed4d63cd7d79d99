package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitAndGet(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	log := Init(Options{Level: "debug", Output: &buf})

	log.Info().Str("component", "test").Msg("hello")
	if !strings.Contains(buf.String(), `"component":"test"`) {
		t.Fatalf("expected structured field in output: %s", buf.String())
	}
	if !strings.Contains(buf.String(), `"service":"erp-api"`) {
		t.Fatalf("expected default service field in output: %s", buf.String())
	}

	// Get returns the same instance once initialised.
	got := Get()
	got.Info().Msg("again")
	if strings.Count(buf.String(), `"message"`) != 2 {
		t.Fatalf("Get did not reuse the initialised logger: %s", buf.String())
	}
}

func TestInitOnlyFirstCallWins(t *testing.T) {
	Reset()
	defer Reset()

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	log := Init(Options{Output: &second})

	log.Info().Msg("routed")
	if second.Len() != 0 {
		t.Fatalf("second Init must be a no-op")
	}
	if first.Len() == 0 {
		t.Fatalf("expected output on the first writer")
	}
}

func TestInitServiceOverride(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	log := Init(Options{Service: "erp-worker", Output: &buf})

	log.Info().Msg("hello")
	if !strings.Contains(buf.String(), `"service":"erp-worker"`) {
		t.Fatalf("expected overridden service field: %s", buf.String())
	}
}

func TestGetBeforeInitPanics(t *testing.T) {
	Reset()
	defer Reset()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	Get()
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"debug":   "debug",
		"WARN":    "warn",
		"warning": "warn",
		" error ": "error",
		"bogus":   "info",
		"":        "info",
	}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Fatalf("parseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
