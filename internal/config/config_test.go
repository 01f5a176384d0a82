package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DetailAttempts != 3 {
		t.Errorf("DetailAttempts = %d, want 3", cfg.DetailAttempts)
	}
	if cfg.PageSettle != 3*time.Second || cfg.ScrollPause != 2*time.Second {
		t.Errorf("Pauses = %v/%v", cfg.PageSettle, cfg.ScrollPause)
	}
	if !cfg.Headless {
		t.Error("Headless should default to true")
	}
	if cfg.SheetName != "Bali_Exception" {
		t.Errorf("SheetName = %q", cfg.SheetName)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BALISCRAPE_SHEET_NAME", "Staging")
	t.Setenv("BALISCRAPE_HEADLESS", "false")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SheetName != "Staging" {
		t.Errorf("SheetName = %q, want env override", cfg.SheetName)
	}
	if cfg.Headless {
		t.Error("Headless env override not applied")
	}
}

func TestValidate_Bounds(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cfg.DetailAttempts = 0
	if err := validate(cfg); err == nil {
		t.Error("Zero attempts should fail validation")
	}
	cfg.DetailAttempts = MaxDetailAttempts + 1
	if err := validate(cfg); err == nil {
		t.Error("Attempts above the cap should fail validation")
	}
	cfg.DetailAttempts = 3
	cfg.SheetName = ""
	if err := validate(cfg); err == nil {
		t.Error("Empty sheet name should fail validation")
	}
}
