package config

import (
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(wd); err != nil {
			t.Fatalf("restore wd: %v", err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 5000 {
		t.Fatalf("expected default port 5000, got %d", cfg.Server.Port)
	}
	if cfg.Auth.TokenTTL != 2*time.Hour {
		t.Fatalf("expected 2h token ttl, got %s", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.CookieName != "token" {
		t.Fatalf("expected cookie name token, got %s", cfg.Auth.CookieName)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Database.Driver != "mysql" {
		t.Fatalf("expected mysql driver, got %s", cfg.Database.Driver)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing jwt secret to fail validation")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "8081")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("CORS_ORIGIN", "http://a.example, http://b.example/")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "clearance")
	t.Setenv("DB_PASSWORD", "p@ss word")
	t.Setenv("DB_NAME", "records")
	t.Setenv("COOKIE_SAMESITE", "strict")
	t.Setenv("CLEARANCE_SLIP_TERM", "Spring 2024")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.Addr() != ":8081" {
		t.Fatalf("expected :8081, got %s", cfg.Addr())
	}
	if cfg.Auth.JWTSecret != "test-secret" || cfg.Auth.TokenTTL != 30*time.Minute {
		t.Fatalf("unexpected auth config %+v", cfg.Auth)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "http://b.example" {
		t.Fatalf("unexpected origins %v", cfg.Server.AllowedOrigins)
	}
	if cfg.SameSite() != http.SameSiteStrictMode {
		t.Fatalf("expected strict same-site")
	}
	if cfg.Slip.Term != "Spring 2024" {
		t.Fatalf("expected slip term override, got %q", cfg.Slip.Term)
	}

	dsn := cfg.DataSourceName()
	for _, part := range []string{"host=db.internal", "port=5432", "dbname=records", "user=clearance", "password='p@ss word'"} {
		if !strings.Contains(dsn, part) {
			t.Fatalf("dsn %q missing %q", dsn, part)
		}
	}
}

func TestDataSourceName(t *testing.T) {
	var cfg Config
	cfg.Database.Driver = "mysql"
	cfg.Database.Host = "localhost"
	cfg.Database.User = "root"
	cfg.Database.Password = "secret"
	cfg.Database.Name = "nub"

	if got := cfg.DataSourceName(); !strings.HasPrefix(got, "root:secret@tcp(localhost:3306)/nub") {
		t.Fatalf("unexpected mysql dsn %q", got)
	}

	cfg.Database.DSN = "root@tcp(other:3306)/x"
	if got := cfg.DataSourceName(); got != "root@tcp(other:3306)/x" {
		t.Fatalf("explicit dsn must win, got %q", got)
	}

	cfg.Database.DSN = ""
	cfg.Database.Driver = "sqlite"
	cfg.Database.Name = ""
	if got := cfg.DataSourceName(); got != "data/clearance.db" {
		t.Fatalf("unexpected sqlite dsn %q", got)
	}
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	var cfg Config
	cfg.Auth.JWTSecret = "s"
	cfg.Auth.TokenTTL = time.Hour
	cfg.Server.Port = 5000
	cfg.Database.Driver = "oracle"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected unknown driver to fail")
	}
	cfg.Database.Driver = "pgx"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("pgx alias should validate: %v", err)
	}
}
