package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Selection.Algorithm != "enn" {
		t.Errorf("Expected default algorithm enn, got %q", cfg.Selection.Algorithm)
	}
	if cfg.Selection.K != 1 {
		t.Errorf("Expected default k 1, got %d", cfg.Selection.K)
	}
	if cfg.Selection.Mu != 0.7 {
		t.Errorf("Expected default mu 0.7, got %f", cfg.Selection.Mu)
	}
	if cfg.Selection.Alpha != 0.05 {
		t.Errorf("Expected default alpha 0.05, got %f", cfg.Selection.Alpha)
	}
	if cfg.Dataset.ClassIndex != -1 {
		t.Errorf("Expected default class index -1, got %d", cfg.Dataset.ClassIndex)
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Selection.Algorithm != "enn" {
		t.Errorf("Expected defaults for a missing file, got algorithm %q", cfg.Selection.Algorithm)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "selection:\n  algorithm: mi\n  k: 6\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Selection.Algorithm != "mi" {
		t.Errorf("Expected algorithm mi, got %q", cfg.Selection.Algorithm)
	}
	if cfg.Selection.K != 6 {
		t.Errorf("Expected k 6, got %d", cfg.Selection.K)
	}

	// Keys absent from the file keep their defaults.
	if cfg.Selection.Mu != 0.7 {
		t.Errorf("Expected default mu 0.7, got %f", cfg.Selection.Mu)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("selection: [not a mapping"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("Expected an error for invalid yaml")
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Selection.Algorithm = "ennth"
	cfg.Selection.Mu = 0.9

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if loaded.Selection.Algorithm != "ennth" {
		t.Errorf("Expected algorithm ennth, got %q", loaded.Selection.Algorithm)
	}
	if loaded.Selection.Mu != 0.9 {
		t.Errorf("Expected mu 0.9, got %f", loaded.Selection.Mu)
	}
}
