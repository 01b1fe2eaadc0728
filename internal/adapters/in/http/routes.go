package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MaxUploadSize limits the body of a document upload.
const MaxUploadSize = "25M"

// RegisterHandlers mounts the API under /api/v1 behind auth, and the
// unauthenticated /health and /metrics endpoints at the root.
func RegisterHandlers(
	e *echo.Echo,
	s *Server,
	auth echo.MiddlewareFunc,
	metrics *Metrics,
	gatherer prometheus.Gatherer,
) {
	e.Use(metrics.Middleware())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := e.Group("/api/v1", auth)

	api.GET("/orders", s.ListOrders)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id", s.UpdateOrder)
	api.DELETE("/orders/:id", s.DeleteOrder)
	api.POST("/orders/:id/status/:status", s.ChangeOrderStatus)
	api.GET("/orders/:id/history", s.GetOrderHistory)

	api.GET("/orders/:id/comments", s.ListComments)
	api.POST("/orders/:id/comments", s.AddComment)
	api.PUT("/orders/:id/comments/:commentId", s.UpdateComment)
	api.DELETE("/orders/:id/comments/:commentId", s.DeleteComment)

	api.GET("/orders/:id/documents", s.ListDocuments)
	api.POST("/orders/:id/documents", s.UploadDocument, middleware.BodyLimit(MaxUploadSize))
	api.GET("/orders/:id/documents/:docId/content", s.DownloadDocument)
	api.PUT("/orders/:id/documents/:docId", s.UpdateDocument)
	api.DELETE("/orders/:id/documents/:docId", s.DeleteDocument)

	api.GET("/order-statuses", s.ListOrderStatuses)
	api.GET("/order-types", s.ListOrderTypes)
	api.GET("/order-items/search", s.SearchOrderItems)
}
