package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/caddyserver/certmagic"
	"github.com/hashicorp/go-hclog"
	echo_prometheus "github.com/labstack/echo-contrib/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/tpanh/rentd/internal/auth"
	"github.com/tpanh/rentd/internal/config"
	"github.com/tpanh/rentd/internal/core"
	"github.com/tpanh/rentd/internal/database"
	"github.com/tpanh/rentd/internal/domain"
	"github.com/tpanh/rentd/internal/handlers"
	"github.com/tpanh/rentd/internal/permission"
	"github.com/tpanh/rentd/internal/service"
	"github.com/tpanh/rentd/internal/token"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"
)

func Start(c *config.Config) error {
	if err := c.Validate(); err != nil {
		return err
	}

	logger, err := setupLogging(c.Logging)
	if err != nil {
		return err
	}

	httpLogger, err := setupHTTPLogging(c.Logging)
	if err != nil {
		return err
	}

	logger.Info("Starting rentd server")

	repository, err := database.OpenDB(&c.Database, logger)
	if err != nil {
		return err
	}

	expiration, err := c.Jwt.ExpirationDuration()
	if err != nil {
		return err
	}

	tokens, err := token.NewService(c.Jwt.Secret, expiration)
	if err != nil {
		return err
	}

	mailer := service.NewMailer(c.Email)
	svc := service.NewService(repository, tokens, mailer, c)

	if err := svc.BootstrapAdmin(context.Background()); err != nil {
		return err
	}

	core.StartWorker(repository)

	serverUrl, err := url.Parse(c.ServerUrl)
	if err != nil {
		return err
	}

	// prepare CertMagic
	if c.Tls.AcmeEnabled {
		certmagic.DefaultACME.Agreed = true
		certmagic.DefaultACME.Email = c.Tls.AcmeEmail
		certmagic.DefaultACME.CA = c.Tls.AcmeCA
		if c.Tls.AcmePath != "" {
			certmagic.Default.Storage = &certmagic.FileStorage{Path: c.Tls.AcmePath}
		}

		cfg := certmagic.NewDefault()
		if err := cfg.ManageAsync(context.Background(), []string{serverUrl.Host}); err != nil {
			return err
		}

		c.HttpListenAddr = fmt.Sprintf(":%d", certmagic.HTTPPort)
		c.HttpsListenAddr = fmt.Sprintf(":%d", certmagic.HTTPSPort)
	}

	p := echo_prometheus.NewPrometheus("http", nil)

	metricsHandler := echo.New()
	p.SetMetricsPath(metricsHandler)

	appHandler := newAppHandler(c, svc, repository, tokens, logger, httpLogger, p)

	nonTlsAppHandler := echo.New()
	nonTlsAppHandler.Use(EchoMetrics(p), EchoLogger(httpLogger), EchoRecover())
	nonTlsAppHandler.Any("/*", handlers.HttpRedirectHandler(c.Tls))

	tlsL, err := tlsListener(c)
	if err != nil {
		return err
	}

	nonTlsL, err := nonTlsListener(c)
	if err != nil {
		return err
	}

	metricsL, err := metricsListener(c)
	if err != nil {
		return err
	}

	httpL := selectListener(tlsL, nonTlsL)
	http2Server := &http2.Server{}
	g := new(errgroup.Group)

	g.Go(func() error { return http.Serve(httpL, h2c.NewHandler(appHandler, http2Server)) })
	g.Go(func() error { return http.Serve(metricsL, metricsHandler) })

	if tlsL != nil {
		g.Go(func() error { return http.Serve(nonTlsL, nonTlsAppHandler) })
	}

	if c.Tls.AcmeEnabled {
		logger.Info("TLS is enabled with ACME", "domain", serverUrl.Host)
		logger.Info("Server is running", "http_addr", c.HttpListenAddr, "https_addr", c.HttpsListenAddr, "metrics_addr", c.MetricsListenAddr)
	} else if !c.Tls.Disable {
		logger.Info("TLS is enabled", "cert", c.Tls.CertFile)
		logger.Info("Server is running", "http_addr", c.HttpListenAddr, "https_addr", c.HttpsListenAddr, "metrics_addr", c.MetricsListenAddr)
	} else {
		logger.Warn("TLS is disabled")
		logger.Info("Server is running", "http_addr", c.HttpListenAddr, "metrics_addr", c.MetricsListenAddr)
	}

	return g.Wait()
}

func newAppHandler(
	c *config.Config,
	svc *service.Service,
	repository domain.Repository,
	tokens *token.Service,
	logger hclog.Logger,
	httpLogger *zap.Logger,
	p *echo_prometheus.Prometheus,
) *echo.Echo {

	buildingPerm := permission.NewBuildingPermission(repository)
	roomPerm := permission.NewRoomPermission(repository)
	tenantPerm := permission.NewTenantPermission(repository, roomPerm)
	invoicePerm := permission.NewInvoicePermission(repository, buildingPerm)
	readingPerm := permission.NewUtilityReadingPermission(repository, roomPerm)
	invitationPerm := permission.NewInvitationPermission(repository, roomPerm)

	guard := func(check func(ctx context.Context, id uint64) (bool, error)) echo.MiddlewareFunc {
		return permission.Require(func(ec echo.Context) (bool, error) {
			id, err := permission.ParamID(ec, "id")
			if err != nil {
				return false, err
			}
			return check(ec.Request().Context(), id)
		})
	}

	authHandlers := handlers.NewAuthHandlers(svc)
	buildingHandlers := handlers.NewBuildingHandlers(svc)
	roomHandlers := handlers.NewRoomHandlers(svc)
	tenantHandlers := handlers.NewTenantHandlers(svc)
	invoiceHandlers := handlers.NewInvoiceHandlers(svc)
	readingHandlers := handlers.NewUtilityReadingHandlers(svc)
	invitationHandlers := handlers.NewInvitationHandlers(svc)
	userHandlers := handlers.NewUserHandlers(svc)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.ErrorHandler(logger)
	e.Use(EchoMetrics(p), EchoLogger(httpLogger), EchoRecover())
	e.Use(auth.Middleware(tokens, logger))

	e.GET("/version", handlers.Version)

	api := e.Group("/api")

	api.POST("/auth/login", authHandlers.Login)
	api.POST("/auth/register", authHandlers.Register)
	api.POST("/auth/introspect", authHandlers.Introspect)
	api.GET("/auth/me", authHandlers.Me, permission.Authenticated())

	api.POST("/buildings", buildingHandlers.Create, permission.RequireRole("ADMIN", "MANAGER"))
	api.GET("/buildings", buildingHandlers.List, permission.Authenticated())
	api.GET("/buildings/:id", buildingHandlers.Get, guard(buildingPerm.CanAccessBuilding))
	api.PUT("/buildings/:id", buildingHandlers.Update, guard(buildingPerm.CanAccessBuilding))
	api.DELETE("/buildings/:id", buildingHandlers.Delete, guard(buildingPerm.CanAccessBuilding))

	api.POST("/buildings/:id/rooms", roomHandlers.Create, guard(buildingPerm.CanAccessBuilding))
	api.GET("/buildings/:id/rooms", roomHandlers.List, guard(roomPerm.CanAccessBuildingRooms))
	api.GET("/rooms/:id", roomHandlers.Get, guard(roomPerm.CanAccessRoom))
	api.PUT("/rooms/:id", roomHandlers.Update, guard(roomPerm.CanAccessRoom))
	api.DELETE("/rooms/:id", roomHandlers.Delete, guard(roomPerm.CanAccessRoom))

	api.GET("/rooms/:id/tenants", tenantHandlers.ListByRoom, guard(tenantPerm.CanAccessRoomTenants))
	api.GET("/tenants/:id", tenantHandlers.Get, guard(tenantPerm.CanAccessTenant))
	api.POST("/tenants/:id/end", tenantHandlers.End, guard(tenantPerm.CanAccessTenant))

	api.POST("/buildings/:id/invoices", invoiceHandlers.Generate, guard(invoicePerm.CanAccessBuildingInvoices))
	api.GET("/buildings/:id/invoices", invoiceHandlers.ListByBuilding, guard(invoicePerm.CanAccessBuildingInvoices))
	api.GET("/invoices/:id", invoiceHandlers.Get, guard(invoicePerm.CanAccessInvoice))
	api.POST("/invoices/:id/pay", invoiceHandlers.Pay, guard(invoicePerm.CanAccessInvoice))
	api.POST("/invoices/:id/send", invoiceHandlers.Send, guard(invoicePerm.CanAccessInvoice))

	api.POST("/rooms/:id/readings", readingHandlers.Record, guard(roomPerm.CanAccessRoom))
	api.GET("/rooms/:id/readings", readingHandlers.ListByRoom, guard(readingPerm.CanAccessRoomUtilityReadings))
	api.GET("/buildings/:id/readings", readingHandlers.ListByBuilding, guard(readingPerm.CanAccessBuildingUtilityReadings))
	api.GET("/readings/:id", readingHandlers.Get, guard(readingPerm.CanAccessUtilityReading))

	api.POST("/rooms/:id/invitations", invitationHandlers.Invite, guard(roomPerm.CanAccessRoom))
	api.POST("/invitations/accept", invitationHandlers.Accept, permission.Authenticated())
	api.DELETE("/invitations/:id", invitationHandlers.Cancel, guard(invitationPerm.CanCancel))

	admin := api.Group("/admin", permission.RequireRole("ADMIN"))
	admin.GET("/users", userHandlers.List)
	admin.POST("/users/:id/activate", userHandlers.Activate)
	admin.POST("/users/:id/deactivate", userHandlers.Deactivate)

	return e
}

func metricsListener(config *config.Config) (net.Listener, error) {
	return net.Listen("tcp", config.MetricsListenAddr)
}

func tlsListener(config *config.Config) (net.Listener, error) {
	if config.Tls.Disable {
		return nil, nil
	}

	if config.Tls.AcmeEnabled {
		cfg := certmagic.NewDefault()
		tlsConfig := cfg.TLSConfig()
		tlsConfig.NextProtos = append([]string{"h2", "http/1.1"}, tlsConfig.NextProtos...)
		return tls.Listen("tcp", config.HttpsListenAddr, tlsConfig)
	}

	certPEMBlock, err := os.ReadFile(config.Tls.CertFile)
	if err != nil {
		return nil, fmt.Errorf("error reading cert file: %v", err)
	}
	keyPEMBlock, err := os.ReadFile(config.Tls.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("error reading key file: %v", err)
	}

	cer, err := tls.X509KeyPair(certPEMBlock, keyPEMBlock)
	if err != nil {
		return nil, fmt.Errorf("error reading cert and key file: %v", err)
	}

	tlsConfig := &tls.Config{Certificates: []tls.Certificate{cer}}

	return tls.Listen("tcp", config.HttpsListenAddr, tlsConfig)
}

func nonTlsListener(config *config.Config) (net.Listener, error) {
	return net.Listen("tcp", config.HttpListenAddr)
}

func selectListener(a net.Listener, b net.Listener) net.Listener {
	if a != nil {
		return a
	}
	return b
}

func setupLogging(config config.Logging) (hclog.Logger, error) {
	file, err := createLogFile(config)
	if err != nil {
		return nil, err
	}
	appLogger := hclog.New(&hclog.LoggerOptions{
		Name:       "rentd",
		Level:      hclog.LevelFromString(config.Level),
		JSONFormat: strings.ToLower(config.Format) == "json",
		Output:     file,
	})

	hclog.SetDefault(appLogger)

	log.SetOutput(appLogger.StandardWriter(&hclog.StandardLoggerOptions{InferLevels: true}))
	log.SetPrefix("")
	log.SetFlags(0)

	return appLogger, nil
}

func setupHTTPLogging(config config.Logging) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if strings.ToLower(config.Format) != "json" {
		zapConfig.Encoding = "console"
	}

	switch strings.ToLower(config.Level) {
	case "trace", "debug":
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "warn":
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	default:
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	httpLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(httpLogger)

	return httpLogger, nil
}

func createLogFile(config config.Logging) (*os.File, error) {
	if config.File != "" {
		f, err := os.OpenFile(config.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return os.Stdout, nil
}
