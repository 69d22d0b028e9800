package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"

	"resume-jobmatch/internal/resumes"
	"resume-jobmatch/internal/services/health"
	"resume-jobmatch/internal/shared/config"
	"resume-jobmatch/internal/shared/metrics"
	"resume-jobmatch/internal/shared/server/middleware"
	"resume-jobmatch/internal/shared/server/respond"
)

// BannerMessage is returned from GET /.
const BannerMessage = "Resume Parser API is running"

// RouterDeps holds the handlers mounted on the engine.
type RouterDeps struct {
	Config        config.Config
	ResumeHandler *resumes.Handler
	Health        *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/", func(c *gin.Context) {
		respond.OK(c, gin.H{"message": BannerMessage})
	})
	r.GET("/metrics", metrics.Handler())
	r.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))

	api := r.Group("/api")
	api.GET("/health", healthHandler(deps.Health))
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api)
	}

	return r
}

// healthHandler godoc
// @Summary Dependency health
// @Tags health
// @Produce json
// @Success 200 {object} health.Report
// @Router /health [get]
func healthHandler(svc *health.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if svc == nil {
			respond.OK(c, gin.H{"ok": true})
			return
		}
		report := svc.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":5000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
