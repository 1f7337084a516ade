package v1

import (
	"net/http"
	"time"

	"mancarijo/config"
	"mancarijo/internal/delivery/http/middleware"
	"mancarijo/internal/delivery/http/response"
	"mancarijo/internal/domain"
	"mancarijo/internal/usecase"
	"mancarijo/pkg/metrics"
	"mancarijo/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC         domain.AuthUsecase
	SessionUC      domain.SessionUsecase
	JobUC          domain.JobUsecase
	ApplicationUC  domain.ApplicationUsecase
	NotificationUC domain.NotificationUsecase
	PreferenceUC   domain.PreferenceUsecase
	ProfileUC      domain.ProfileUsecase
	TestimonyUC    domain.TestimonyUsecase
	HealthUC       usecase.HealthUsecase
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	Config         *config.Config
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cookie := middleware.SessionConfig{
		CookieName: deps.Config.SessionCookieName,
		Secure:     deps.Config.CookieSecure,
	}

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.S3.PublicBaseURL))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		status := deps.HealthUC.Check(c.Request.Context())
		code := http.StatusOK
		if status["status"] != "ok" {
			code = http.StatusServiceUnavailable
		}
		response.Success(c, code, "Health checked", status)
	})
	v1.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	v1.GET("/about-us", aboutUs)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	app := v1.Group("")
	app.Use(middleware.CSRFMiddleware(deps.Config.CookieSecure))
	app.Use(middleware.SessionMiddleware(deps.SessionUC, cookie))

	signedIn := app.Group("", middleware.RequireSignedIn())
	seeker := app.Group("", middleware.RequireRole(domain.RoleJobSeeker))
	provider := app.Group("/provider", middleware.RequireRole(domain.RoleJobProvider))

	limited := middleware.RateLimitMiddleware(middleware.SignInRateLimitConfig(
		deps.Config.RateLimitLoginThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	))
	{
		NewAuthHandler(app, limited, deps.AuthUC, deps.SessionUC, cookie)
		NewSessionHandler(app, deps.SessionUC)
		NewJobHandler(app, seeker, provider, deps.JobUC)
		NewApplicationHandler(seeker, provider, deps.ApplicationUC)
		NewPreferenceHandler(app, seeker, deps.PreferenceUC)
		NewNotificationHandler(seeker, deps.NotificationUC)
		NewProfileHandler(signedIn, deps.ProfileUC)
		NewTestimonyHandler(signedIn, deps.TestimonyUC)
	}

	return r
}
