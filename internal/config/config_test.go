package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

// validConfig returns a config that passes Validate; tests mutate one field.
func validConfig() *Config {
	return &Config{
		Server:    ServerConfig{Port: 8080, ShutdownTimeout: time.Second},
		Upload:    UploadConfig{MaxFileSize: 1},
		Run:       RunConfig{MaxConcurrent: 1, MaxWaitTime: time.Second, Timeout: time.Minute, TTL: time.Minute},
		Rate:      RateLimitConfig{Enabled: true, RequestsPerMinute: 100},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
		Reconcile: ReconcileConfig{Profile: "csod_sap"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Upload.MaxFileSize != 20971520 {
		t.Errorf("Upload.MaxFileSize = %d, want %d", cfg.Upload.MaxFileSize, 20971520)
	}
	if cfg.Run.MaxConcurrent != 4 {
		t.Errorf("Run.MaxConcurrent = %d, want %d", cfg.Run.MaxConcurrent, 4)
	}
	if cfg.Run.TTL != 30*time.Minute {
		t.Errorf("Run.TTL = %v, want %v", cfg.Run.TTL, 30*time.Minute)
	}
	if cfg.Reconcile.Profile != "csod_sap" {
		t.Errorf("Reconcile.Profile = %q, want %q", cfg.Reconcile.Profile, "csod_sap")
	}
	if cfg.Reconcile.MinIDDigits != 0 {
		t.Errorf("Reconcile.MinIDDigits = %d, want 0 (unset)", cfg.Reconcile.MinIDDigits)
	}
	if cfg.Reconcile.InvalidIDPrefixes != nil {
		t.Errorf("Reconcile.InvalidIDPrefixes = %v, want nil (unset)", cfg.Reconcile.InvalidIDPrefixes)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RUN_MAX_CONCURRENT", "10")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MIN_ID_DIGITS", "5")
	t.Setenv("STATUS_MARKER", "inativo")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Run.MaxConcurrent != 10 {
		t.Errorf("Run.MaxConcurrent = %d, want %d", cfg.Run.MaxConcurrent, 10)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
	if cfg.Reconcile.MinIDDigits != 5 {
		t.Errorf("Reconcile.MinIDDigits = %d, want %d", cfg.Reconcile.MinIDDigits, 5)
	}
	if cfg.Reconcile.StatusMarker != "inativo" {
		t.Errorf("Reconcile.StatusMarker = %q, want %q", cfg.Reconcile.StatusMarker, "inativo")
	}
}

func TestLoad_Duration(t *testing.T) {
	t.Setenv("SERVER_READ_TIMEOUT", "45s")
	t.Setenv("RUN_MAX_WAIT_TIME", "1m30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Run.MaxWaitTime != 90*time.Second {
		t.Errorf("Run.MaxWaitTime = %v, want %v", cfg.Run.MaxWaitTime, 90*time.Second)
	}
}

func TestLoad_InvalidInteger(t *testing.T) {
	t.Setenv("HEADER_SCAN_ROWS", "ten")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for non-numeric HEADER_SCAN_ROWS")
	}
	if !strings.Contains(err.Error(), "HEADER_SCAN_ROWS") {
		t.Errorf("error should mention HEADER_SCAN_ROWS: %v", err)
	}
}

func TestLoad_ReportsEveryInvalidValue(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")
	t.Setenv("RUN_TTL", "30")
	t.Setenv("RATE_LIMIT_ENABLED", "sometimes")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error")
	}
	for _, key := range []string{"SERVER_PORT", "RUN_TTL", "RATE_LIMIT_ENABLED"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error should mention %s: %v", key, err)
		}
	}
}

func TestLoad_BlankValueUsesDefault(t *testing.T) {
	t.Setenv("RECON_PROFILE", "   ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Reconcile.Profile != "csod_sap" {
		t.Errorf("Reconcile.Profile = %q, want default csod_sap", cfg.Reconcile.Profile)
	}
}

func TestLoad_ClearPrefixesMarker(t *testing.T) {
	t.Setenv("INVALID_ID_PREFIXES", "-")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Reconcile.InvalidIDPrefixes) != 1 || cfg.Reconcile.InvalidIDPrefixes[0] != "-" {
		t.Errorf("InvalidIDPrefixes = %v, want [-]", cfg.Reconcile.InvalidIDPrefixes)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	t.Setenv("INVALID_ID_PREFIXES", "100008, 89 , 70,")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"100008", "89", "70"}
	if len(cfg.Reconcile.InvalidIDPrefixes) != len(expected) {
		t.Fatalf("InvalidIDPrefixes length = %d, want %d", len(cfg.Reconcile.InvalidIDPrefixes), len(expected))
	}
	for i, v := range expected {
		if cfg.Reconcile.InvalidIDPrefixes[i] != v {
			t.Errorf("InvalidIDPrefixes[%d] = %q, want %q", i, cfg.Reconcile.InvalidIDPrefixes[i], v)
		}
	}
	if len(cfg.Security.TrustedProxies) != 2 {
		t.Errorf("TrustedProxies length = %d, want 2", len(cfg.Security.TrustedProxies))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"invalid port", func(c *Config) { c.Server.Port = 99999 }, "SERVER_PORT"},
		{"zero run slots", func(c *Config) { c.Run.MaxConcurrent = 0 }, "RUN_MAX_CONCURRENT"},
		{"zero ttl", func(c *Config) { c.Run.TTL = 0 }, "RUN_TTL"},
		{"negative digits", func(c *Config) { c.Reconcile.MinIDDigits = -1 }, "MIN_ID_DIGITS"},
		{"scan window too large", func(c *Config) { c.Reconcile.HeaderScanRows = 500 }, "HEADER_SCAN_ROWS"},
		{"empty profile", func(c *Config) { c.Reconcile.Profile = " " }, "RECON_PROFILE"},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"invalid log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %s: %v", tt.wantErr, err)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestMain(m *testing.M) {
	// Keep the developer's shell environment from leaking into Load().
	for _, key := range []string{
		"SERVER_PORT", "LOG_LEVEL", "LOG_FORMAT", "RECON_PROFILE", "MIN_ID_DIGITS",
		"INVALID_ID_PREFIXES", "HEADER_SCAN_ROWS", "RUN_MAX_CONCURRENT",
	} {
		os.Unsetenv(key)
	}
	os.Exit(m.Run())
}
