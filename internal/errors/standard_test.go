package errors

import (
	"strings"
	"testing"
)

func TestStandardErrorFormatting(t *testing.T) {
	cases := []struct {
		name string
		err  *StandardError
		cat  ErrorCategory
	}{
		{"Exhausted", Exhausted(128), CategoryExhausted},
		{"ContingencyExceeded", ContingencyExceeded("regions", 10), CategoryContingency},
		{"InvalidID", InvalidID("region", -1), CategoryInvalidID},
		{"Zombie", Zombie("clock", 2), CategoryZombie},
		{"Saturation", Saturation(0), CategorySaturation},
		{"Invariant", Invariant("corrupted page count"), CategoryInvariant},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if c.err.Category != c.cat {
				t.Fatalf("expected category %s, got %s", c.cat, c.err.Category)
			}

			msg := c.err.Error()
			if !strings.Contains(msg, string(c.cat)) {
				t.Fatalf("expected formatted message to contain category, got %q", msg)
			}

			if c.err.Caller == "" {
				t.Fatal("expected a non-empty caller")
			}
		})
	}
}
