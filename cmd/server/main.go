package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"exam-clearance/internal/auth"
	"exam-clearance/internal/config"
	apphttp "exam-clearance/internal/http"
	"exam-clearance/internal/repository/sqlstore"
	"exam-clearance/internal/service"
	"exam-clearance/internal/slip"
	"exam-clearance/internal/storage"
	"exam-clearance/web"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}
	configureLogger(logger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.DataSourceName(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()
	logger.Infof("connected to %s database", db.Dialect.Name)

	userService := service.NewUserService(sqlstore.NewUserRepository(db))
	studentService := service.NewStudentService(sqlstore.NewStudentRepository(db))
	tokens := auth.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer)

	tmpl, err := buildTemplate(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("load slip template: %v", err)
	}
	renderer, err := slip.NewRenderer(tmpl)
	if err != nil {
		logger.Fatalf("setup slip renderer: %v", err)
	}

	opts := apphttp.Options{
		CookieName:     cfg.Auth.CookieName,
		CookieSecure:   cfg.Auth.CookieSecure,
		CookieSameSite: cfg.SameSite(),
		TokenTTL:       cfg.Auth.TokenTTL,
	}
	if cfg.Server.ServeClient {
		opts.Client = web.Client()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(userService, studentService, tokens, renderer, logger, opts)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           apphttp.WithCORS(router, cfg.Server.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func configureLogger(logger *logrus.Logger, cfg config.Config) {
	if strings.EqualFold(cfg.Log.Format, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warnf("unknown log level %q, using info", cfg.Log.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}

// buildTemplate merges configured slip text over the defaults and loads the logo, if any.
func buildTemplate(ctx context.Context, cfg config.Config, logger *logrus.Logger) (slip.Template, error) {
	s := cfg.Slip
	tmpl := slip.Template{
		Institution:   s.Institution,
		Title:         s.Title,
		Term:          s.Term,
		Section:       s.Section,
		Remarks:       s.Remarks,
		ProgramPrefix: s.ProgramPrefix,
		Validity:      s.Validity,
		Signatory:     s.Signatory,
		Address:       s.Address,
	}
	if s.Logo == "" {
		return tmpl, nil
	}

	var fetcher storage.ObjectFetcher
	if strings.HasPrefix(s.Logo, "s3://") {
		s3svc, err := buildS3(ctx, cfg, logger)
		if err != nil {
			return slip.Template{}, err
		}
		fetcher = s3svc
	}

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	logo, err := storage.New(fetcher).Fetch(fetchCtx, s.Logo)
	if err != nil {
		return slip.Template{}, fmt.Errorf("fetch logo: %w", err)
	}
	tmpl.Logo = logo
	logger.Infof("loaded slip logo from %s (%d bytes)", s.Logo, len(logo))
	return tmpl, nil
}

func buildS3(ctx context.Context, cfg config.Config, logger *logrus.Logger) (*storage.S3Service, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 assets (region %s)", cfg.Storage.Region)
	return storage.NewS3Service(client), nil
}
