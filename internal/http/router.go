// README: HTTP router registration (gin engine + middleware + handlers).
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farelink/internal/http/handlers"
	"farelink/internal/http/middleware"
	"farelink/internal/modules/conversation"
)

func NewRouter(convService *conversation.Service) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	convHandler := handlers.NewConversationHandler(convService)
	r.POST("/api/conversations", convHandler.Create)
	r.POST("/api/conversations/:id/messages", convHandler.Message)
	r.GET("/api/conversations/:id/spec", convHandler.Spec)
	r.POST("/api/conversations/:id/reset", convHandler.Reset)

	linkHandler := handlers.NewLinkHandler(convService)
	r.GET("/api/conversations/:id/links", linkHandler.Link)
	r.POST("/api/links/parse", linkHandler.Parse)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
