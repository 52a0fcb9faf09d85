package envconfig

import (
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"false": slog.LevelInfo,
		"t":     slog.LevelDebug,
		"1":     slog.LevelDebug,
		"2":     slog.Level(-8),
	}

	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("STEPNET_DEBUG", k)
			if i := LogLevel(); i != v {
				t.Errorf("%s: expected %d, got %d", k, v, i)
			}
		})
	}
}

func TestBool(t *testing.T) {
	cases := map[string]bool{
		"":      false,
		"true":  true,
		"false": false,
		"1":     true,
		"0":     false,
		// invalid
		"random":    true,
		"something": true,
	}

	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("STEPNET_NOPARALLEL", k)
			if b := NoParallel(); b != v {
				t.Errorf("%s: expected %t, got %t", k, v, b)
			}
		})
	}
}

func TestUint(t *testing.T) {
	cases := map[string]uint{
		"0":    0,
		"1":    1,
		"1337": 1337,
		// default
		"":  64,
		"-": 64,
		// invalid
		"-1":     64,
		"random": 64,
	}

	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("STEPNET_DNC_LEAF", k)
			if i := LeafSize(); i != v {
				t.Errorf("%s: expected %d, got %d", k, v, i)
			}
		})
	}
}

func TestVar(t *testing.T) {
	cases := map[string]string{
		"value":       "value",
		" value ":     "value",
		" 'value' ":   "value",
		` "value" `:   "value",
		" ' value ' ": " value ",
	}

	for k, v := range cases {
		t.Run(k, func(t *testing.T) {
			t.Setenv("STEPNET_VAR", k)
			if s := Var("STEPNET_VAR"); s != v {
				t.Errorf("%s: expected %q, got %q", k, v, s)
			}
		})
	}
}

func TestValues(t *testing.T) {
	t.Setenv("STEPNET_NUM_WORKERS", "3")
	t.Setenv("STEPNET_MIN_CHUNK", "8")
	t.Setenv("STEPNET_STATS", "1")

	got := Values()
	want := map[string]string{
		"STEPNET_NUM_WORKERS": "3",
		"STEPNET_MIN_CHUNK":   "8",
		"STEPNET_STATS":       "true",
	}
	for k, v := range want {
		if diff := cmp.Diff(v, got[k]); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", k, diff)
		}
	}
	if len(got) != len(AsMap()) {
		t.Errorf("expected %d values, got %d", len(AsMap()), len(got))
	}
}
