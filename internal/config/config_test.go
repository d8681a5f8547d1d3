package config

import (
	"testing"
	"time"
)

func TestLocationDefaultsToUTC(t *testing.T) {
	c := &Config{}
	loc, err := c.Location()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc != time.UTC {
		t.Errorf("empty timezone should resolve to UTC, got %v", loc)
	}
}

func TestLocationResolvesIANAName(t *testing.T) {
	c := &Config{Timezone: "America/New_York"}
	loc, err := c.Location()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.String() != "America/New_York" {
		t.Errorf("unexpected location %v", loc)
	}
}

func TestLocationRejectsUnknownZone(t *testing.T) {
	c := &Config{Timezone: "Not/AZone"}
	if _, err := c.Location(); err == nil {
		t.Fatal("expected an error for an unknown timezone")
	}
}
