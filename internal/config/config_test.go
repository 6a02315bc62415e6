package config

import (
	"os"
	"testing"
)

func unsetBuildEnv() {
	_ = os.Unsetenv("NUTRIDASH_BUILD_TARGET")
	_ = os.Unsetenv("NUTRIDASH_STORE_DRIVER")
	_ = os.Unsetenv("NUTRIDASH_SPREADSHEET_ID")
}

func TestResolveDefaultsLocal(t *testing.T) {
	unsetBuildEnv()
	_ = os.Setenv("NUTRIDASH_BUILD_TARGET", "local")
	defer unsetBuildEnv()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.StoreDriver != "sqlite" {
		t.Fatalf("unexpected driver mapping: %s", cfg.StoreDriver)
	}
}

func TestResolveDefaultsSheetsRequiresSpreadsheet(t *testing.T) {
	unsetBuildEnv()
	_ = os.Setenv("NUTRIDASH_BUILD_TARGET", "sheets")
	defer unsetBuildEnv()

	if _, err := New(); err == nil {
		t.Fatal("expected error when SPREADSHEET_ID is missing for sheets driver")
	}
}

func TestResolveDefaultsSheets(t *testing.T) {
	unsetBuildEnv()
	_ = os.Setenv("NUTRIDASH_BUILD_TARGET", "sheets")
	_ = os.Setenv("NUTRIDASH_SPREADSHEET_ID", "sheet-123")
	defer unsetBuildEnv()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.StoreDriver != "sheets" {
		t.Fatalf("unexpected driver mapping: %s", cfg.StoreDriver)
	}
}

func TestResolveDefaultsUnknownTarget(t *testing.T) {
	unsetBuildEnv()
	_ = os.Setenv("NUTRIDASH_BUILD_TARGET", "cloud")
	defer unsetBuildEnv()

	if _, err := New(); err == nil {
		t.Fatal("expected error for unsupported BUILD_TARGET")
	}
}

func TestConfigLoad_TimeoutDefault(t *testing.T) {
	unsetBuildEnv()
	_ = os.Setenv("NUTRIDASH_BUILD_TARGET", "local")
	_ = os.Unsetenv("NUTRIDASH_REMOTE_TIMEOUT_SECONDS")
	defer unsetBuildEnv()

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load: %v", err)
	}
	if cfg.RemoteTimeoutSeconds != 10 {
		t.Fatalf("unexpected default remote timeout: %d", cfg.RemoteTimeoutSeconds)
	}
}

func TestConfigLoad_TimezoneFallback(t *testing.T) {
	cfg := NewForTesting()
	cfg.Timezone = "Not/AZone"
	if loc := cfg.Location(); loc.String() != "UTC" {
		t.Fatalf("expected UTC fallback, got %s", loc)
	}
}
