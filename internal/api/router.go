package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"github.com/bluemoon/resident-portal/internal/api/handler"
	"github.com/bluemoon/resident-portal/internal/api/metrics"
	"github.com/bluemoon/resident-portal/internal/api/middleware"
	"github.com/bluemoon/resident-portal/internal/api/view"
	"github.com/bluemoon/resident-portal/internal/core/navigation"
	"github.com/bluemoon/resident-portal/internal/core/ports"
	"github.com/bluemoon/resident-portal/internal/core/screens"
	"github.com/bluemoon/resident-portal/internal/core/service"
	"github.com/bluemoon/resident-portal/internal/i18n"
	"github.com/bluemoon/resident-portal/internal/infrastructure/http/handlers"
)

// Deps are the collaborators of the web surface.
type Deps struct {
	Navigator *navigation.Navigator
	Sessions  handler.Sessions
	Portal    *service.Portal
	Flash     ports.FlashStore
	Notices   *i18n.Catalog
	// Checks are the readiness probes, by dependency name.
	Checks  map[string]handlers.Check
	Session middleware.SessionConfig

	LoginRate  rate.Limit
	LoginBurst int

	// Registry receives the HTTP metrics; nil means the default registry.
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	renderer, err := view.New()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	promMW := echoprometheus.MiddlewareConfig{Subsystem: "portal_http"}
	promHandler := echoprometheus.HandlerConfig{}
	if d.Registry != nil {
		promMW.Registerer = d.Registry
		promHandler.Gatherer = d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Secure())
	e.Use(echoprometheus.NewMiddlewareWithConfig(promMW))
	e.Use(middleware.Session(d.Session))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		Skipper:        skipInfra,
		TokenLookup:    "form:_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   d.Session.Secure,
		CookieSameSite: http.SameSiteLaxMode,
	}))

	// --- Dependencies ---
	screen := handler.NewScreenHandler(d.Navigator, d.Flash, d.Log)
	actions := handler.NewActions(d.Flash, d.Notices, d.Log)
	authHandler := handler.NewAuthHandler(d.Sessions, screen, actions, func(c echo.Context) error {
		return middleware.RotateSession(c, d.Session)
	})
	feeHandler := handler.NewFeeHandler(d.Portal, screen, actions)
	householdHandler := handler.NewHouseholdHandler(d.Portal, screen, actions)
	accountHandler := handler.NewAccountHandler(d.Portal, screen, actions)
	adminHandler := handler.NewAdminHandler(d.Portal, screen, actions)

	guard := func(pattern string) echo.MiddlewareFunc {
		return middleware.Guard(d.Navigator, d.Flash, d.Log, middleware.ScreenPath(pattern))
	}

	// --- Screens: one GET per navigable route ---
	d.Navigator.Tree().Walk(func(r *navigation.Route) {
		if r.View != "" {
			e.GET(r.Pattern(), screen.Show)
		}
	})

	// --- Auth actions (public) ---
	e.POST(screens.PathLogin, authHandler.Login, loginLimiter(d.LoginRate, d.LoginBurst))
	e.POST("/logout", authHandler.Logout)
	e.POST(screens.PathRegister, authHandler.Register)
	e.POST(screens.PathPasswordReset, authHandler.PasswordReset)

	// --- Screen actions, guarded like the screen they belong to ---
	e.POST(screens.PathFees, feeHandler.Add, guard(screens.PathFees))
	e.POST(screens.PathFeeInfo, feeHandler.Edit, guard(screens.PathFeeInfo))
	e.POST(screens.PathFeeInfo+"/delete", feeHandler.Delete, guard(screens.PathFeeInfo))
	e.POST(screens.PathFeeInfo+"/assign", feeHandler.Assign, guard(screens.PathFeeInfo))
	e.POST(screens.PathHousehold+"/pay", householdHandler.Pay, guard(screens.PathHousehold))
	e.POST(screens.PathFamily, householdHandler.AddFamilyMember, guard(screens.PathFamily))
	e.POST(screens.PathSettings, accountHandler.Settings, guard(screens.PathSettings))
	e.POST(screens.PathAccountEdit, accountHandler.Update, guard(screens.PathAccountEdit))
	e.POST(screens.PathAccount+"/password", accountHandler.Password, guard(screens.PathAccountEdit))
	e.POST(screens.PathNotificationManager, adminHandler.SendNotification, guard(screens.PathNotificationManager))
	e.POST(screens.PathAdminAccounts+"/:userId/status", adminHandler.SetStatus, guard(screens.PathAdminAccounts))

	// --- Health probes, metrics and docs (no session required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(promHandler))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}

func loginLimiter(limit rate.Limit, burst int) echo.MiddlewareFunc {
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      limit,
		Burst:     burst,
		ExpiresIn: 5 * time.Minute,
	})
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			metrics.LoginAttemptsTotal.WithLabelValues("throttled").Inc()
			return echo.NewHTTPError(http.StatusTooManyRequests, "quá nhiều lần đăng nhập, vui lòng thử lại sau")
		},
	})
}

func skipInfra(c echo.Context) bool {
	p := c.Request().URL.Path
	return strings.HasPrefix(p, "/health") || p == "/metrics" || strings.HasPrefix(p, "/swagger")
}
