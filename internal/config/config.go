package config

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Host           string
		Port           int
		AllowedOrigins []string
		ServeClient    bool
	}
	Database struct {
		Driver          string
		DSN             string
		Host            string
		Port            int
		User            string
		Password        string
		Name            string
		SSLMode         string
		MaxOpenConns    int
		ConnMaxLifetime time.Duration
	}
	Auth struct {
		JWTSecret      string
		Issuer         string
		TokenTTL       time.Duration
		CookieName     string
		CookieSecure   bool
		CookieSameSite string
	}
	Slip struct {
		Institution   string
		Title         string
		Term          string
		Section       string
		Remarks       string
		ProgramPrefix string
		Validity      string
		Signatory     string
		Address       string
		Logo          string
	}
	Storage struct {
		Region   string
		Endpoint string
	}
	AWS struct {
		Profile string
	}
	Log struct {
		Level  string
		Format string
	}
}

// envBindings keeps the variable names the service has always been deployed with.
var envBindings = map[string]string{
	"server.port":              "PORT",
	"server.allowedorigins":    "CORS_ORIGIN",
	"database.driver":          "DB_DRIVER",
	"database.dsn":             "DATABASE_URL",
	"database.host":            "DB_HOST",
	"database.port":            "DB_PORT",
	"database.user":            "DB_USER",
	"database.password":        "DB_PASSWORD",
	"database.name":            "DB_NAME",
	"database.sslmode":         "DB_SSLMODE",
	"database.maxopenconns":    "DB_MAX_OPEN_CONNS",
	"database.connmaxlifetime": "DB_CONN_MAX_LIFETIME",
	"auth.jwtsecret":           "JWT_SECRET",
	"auth.issuer":              "JWT_ISSUER",
	"auth.tokenttl":            "TOKEN_TTL",
	"auth.cookiename":          "COOKIE_NAME",
	"auth.cookiesecure":        "COOKIE_SECURE",
	"auth.cookiesamesite":      "COOKIE_SAMESITE",
	"log.level":                "LOG_LEVEL",
	"log.format":               "LOG_FORMAT",
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	_ = godotenv.Load() // optional .env, never overrides the real environment

	v := viper.New()
	v.SetEnvPrefix("CLEARANCE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, "CLEARANCE_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.allowedorigins", "http://localhost:3000")
	v.SetDefault("server.serveclient", true)
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 0)
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.maxopenconns", 10)
	v.SetDefault("database.connmaxlifetime", "30m")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.tokenttl", "2h")
	v.SetDefault("auth.cookiename", "token")
	v.SetDefault("auth.cookiesecure", false)
	v.SetDefault("auth.cookiesamesite", "lax")
	v.SetDefault("slip.institution", "")
	v.SetDefault("slip.title", "")
	v.SetDefault("slip.term", "")
	v.SetDefault("slip.section", "")
	v.SetDefault("slip.remarks", "")
	v.SetDefault("slip.programprefix", "")
	v.SetDefault("slip.validity", "")
	v.SetDefault("slip.signatory", "")
	v.SetDefault("slip.address", "")
	v.SetDefault("slip.logo", "")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Server.AllowedOrigins = splitOrigins(cfg.Server.AllowedOrigins)

	return cfg, nil
}

// Validate reports configuration that would keep the server from working.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("auth jwt secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("auth token ttl must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	switch c.driver() {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// SameSite maps the configured cookie SameSite mode.
func (c Config) SameSite() http.SameSite {
	switch strings.ToLower(c.Auth.CookieSameSite) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}

// DataSourceName returns the explicit DSN, or builds one from the connection parts.
func (c Config) DataSourceName() string {
	if dsn := strings.TrimSpace(c.Database.DSN); dsn != "" {
		return dsn
	}

	db := c.Database
	switch c.driver() {
	case "postgres":
		port := db.Port
		if port == 0 {
			port = 5432
		}
		parts := []string{
			"host=" + db.Host,
			"port=" + strconv.Itoa(port),
			"dbname=" + db.Name,
			"sslmode=" + db.SSLMode,
		}
		if db.User != "" {
			parts = append(parts, "user="+db.User)
		}
		if db.Password != "" {
			parts = append(parts, "password="+quotePG(db.Password))
		}
		return strings.Join(parts, " ")
	case "sqlite":
		if db.Name == "" {
			return "data/clearance.db"
		}
		return db.Name
	default:
		port := db.Port
		if port == 0 {
			port = 3306
		}
		mc := mysql.NewConfig()
		mc.User = db.User
		mc.Passwd = db.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(db.Host, strconv.Itoa(port))
		mc.DBName = db.Name
		return mc.FormatDSN()
	}
}

func (c Config) driver() string {
	d := strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if d == "pgx" {
		return "postgres"
	}
	return d
}

func quotePG(v string) string {
	if !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func splitOrigins(in []string) []string {
	var out []string
	for _, item := range in {
		for _, p := range strings.Split(item, ",") {
			if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
				out = append(out, o)
			}
		}
	}
	return out
}
