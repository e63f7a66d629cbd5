package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"academy-booking/internal/domain/booking"
	"academy-booking/internal/handler/api"
	"academy-booking/internal/handler/middleware"
	"academy-booking/internal/pkg/config"
)

// Multipart framing on top of the largest accepted evidence file.
const evidenceBodyLimit = booking.MaxEvidenceBytes + 1<<20

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, flowHandler *api.FlowHandler, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, flowHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, flowHandler *api.FlowHandler, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		flows := apiGroup.Group("/flows")
		flows.Use(middleware.RequireDevice(), authMiddleware.OptionalAuth())
		{
			addRoutes(flows, []route{
				{Method: http.MethodPost, Path: "", Handler: flowHandler.CreateFlow},
				{Method: http.MethodPost, Path: "/resume", Handler: flowHandler.ResumeFlow},
				{Method: http.MethodGet, Path: "/:id", Handler: flowHandler.GetFlow},
				{Method: http.MethodDelete, Path: "/:id", Handler: flowHandler.DeleteFlow},
				{Method: http.MethodPut, Path: "/:id/duration", Handler: flowHandler.SelectDuration},
				{Method: http.MethodPut, Path: "/:id/date", Handler: flowHandler.SelectDate},
				{Method: http.MethodPut, Path: "/:id/slot", Handler: flowHandler.SelectSlot},
				{Method: http.MethodPut, Path: "/:id/players", Handler: flowHandler.SetPlayers},
				{Method: http.MethodPut, Path: "/:id/payment", Handler: flowHandler.SetPayment},
				{Method: http.MethodPut, Path: "/:id/evidence", Handler: flowHandler.AttachEvidence, Mw: []gin.HandlerFunc{middleware.LimitBody(evidenceBodyLimit)}},
				{Method: http.MethodDelete, Path: "/:id/evidence", Handler: flowHandler.RemoveEvidence},
				{Method: http.MethodPost, Path: "/:id/next", Handler: flowHandler.Next},
				{Method: http.MethodPost, Path: "/:id/back", Handler: flowHandler.Back},
				{Method: http.MethodPost, Path: "/:id/retry", Handler: flowHandler.Retry},
				{Method: http.MethodPost, Path: "/:id/submit", Handler: flowHandler.Submit},
				{Method: http.MethodPost, Path: "/:id/guest", Handler: flowHandler.GuestCheckout},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
