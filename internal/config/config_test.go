package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	if cfg.PresenceMinutes != 10 {
		t.Errorf("expected default presence threshold 10, got %d", cfg.PresenceMinutes)
	}
	if cfg.TimeZone != "America/Toronto" {
		t.Errorf("expected default zone America/Toronto, got %s", cfg.TimeZone)
	}
	if cfg.ActivityTTL != 30*time.Second {
		t.Errorf("expected default activity TTL 30s, got %s", cfg.ActivityTTL)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PRESENCE_MIN_MINUTES", "45")
	t.Setenv("ACTIVITY_CACHE_TTL", "2m")
	cfg := Load()
	if cfg.PresenceMinutes != 45 {
		t.Errorf("expected 45, got %d", cfg.PresenceMinutes)
	}
	if cfg.ActivityTTL != 2*time.Minute {
		t.Errorf("expected 2m, got %s", cfg.ActivityTTL)
	}
}

func TestLocation_FallsBackToUTC(t *testing.T) {
	cfg := App{TimeZone: "Not/AZone"}
	if loc := cfg.Location(); loc != time.UTC {
		t.Errorf("expected UTC fallback, got %v", loc)
	}
}
