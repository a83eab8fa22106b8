package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/clinicdesk/clinic-api/internal/handler/appointment"
	"github.com/clinicdesk/clinic-api/internal/handler/auth"
	"github.com/clinicdesk/clinic-api/internal/handler/dashboard"
	"github.com/clinicdesk/clinic-api/internal/handler/employee"
	"github.com/clinicdesk/clinic-api/internal/handler/health"
	"github.com/clinicdesk/clinic-api/internal/handler/master"
	"github.com/clinicdesk/clinic-api/internal/handler/patient"
	"github.com/clinicdesk/clinic-api/internal/handler/settings"
	"github.com/clinicdesk/clinic-api/internal/middleware"
	pkgauth "github.com/clinicdesk/clinic-api/pkg/auth"
	"github.com/clinicdesk/clinic-api/pkg/metrics"
)

// Handler is anything that can attach its routes to a group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit  rate.Limit
	RateBurst  int
	CORSConfig middleware.CORSConfig
}

type Handlers struct {
	Health      *health.Handler
	Auth        *auth.Handler
	Appointment *appointment.Handler
	Patient     *patient.Handler
	Employee    *employee.Handler
	Master      *master.Handler
	Dashboard   *dashboard.Handler
	Settings    *settings.Handler
}

type Router struct {
	engine *gin.Engine
}

// NewRouter builds the engine with the full middleware chain and wires
// every handler. Settings writes sit behind bearer-token auth; the rest
// of the API is open.
func NewRouter(h Handlers, jwt pkgauth.JWTService, m *metrics.Metrics, cfg Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		middleware.Metrics(m),
		middleware.CORS(cfg.CORSConfig),
	)

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  cfg.RateLimit,
		Burst: cfg.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	h.Health.RegisterRoutes(engine.Group(""))

	api := engine.Group("/api")
	h.Auth.RegisterRoutes(api)
	h.Appointment.RegisterRoutes(api)
	h.Patient.RegisterRoutes(api)
	h.Employee.RegisterRoutes(api)
	h.Master.RegisterRoutes(api)
	h.Dashboard.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(middleware.Auth(jwt))
	h.Settings.RegisterRoutes(api, protected)

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
