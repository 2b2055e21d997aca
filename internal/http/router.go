package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/wellbore-architecture/internal/http/handlers"
	httpMW "github.com/yungbote/wellbore-architecture/internal/http/middleware"
	"github.com/yungbote/wellbore-architecture/internal/observability"
	"github.com/yungbote/wellbore-architecture/internal/platform/logger"
)

const DefaultBasePath = "/WellBoreArchitecture/api"

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	BasePath    string
	CORSOrigins []string
	// ServiceName names the otelgin spans. Empty disables HTTP tracing.
	ServiceName string

	WellBoreArchitectureHandler *httpH.WellBoreArchitectureHandler
	HealthHandler               *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics, "/metrics", "/healthcheck"))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group(normalizeBasePath(cfg.BasePath))
	{
		if h := cfg.WellBoreArchitectureHandler; h != nil {
			api.GET("/WellBoreArchitecture", h.ListIDs)
			api.GET("/WellBoreArchitecture/MetaInfo", h.ListMetaInfo)
			api.GET("/WellBoreArchitecture/LightData", h.ListLight)
			api.GET("/WellBoreArchitecture/HeavyData", h.ListAll)
			api.GET("/WellBoreArchitecture/:id", h.Get)
			api.GET("/WellBoreArchitecture/:id/Realization", h.Realization)
			api.POST("/WellBoreArchitecture", h.Create)
			api.PUT("/WellBoreArchitecture/:id", h.Update)
			api.DELETE("/WellBoreArchitecture/:id", h.Delete)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"message": "route not found", "code": "not_found"}})
	})
	return r
}

func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return DefaultBasePath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(p, "/")
}
