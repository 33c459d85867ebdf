package embeddings

import (
	"github.com/gin-gonic/gin"

	"github.com/Conversly/embedding-gateway/internal/embedder"
)

func RegisterRoutes(api *gin.RouterGroup, provider embedder.Provider) {
	svc := NewService(provider)
	ctrl := NewController(svc)
	api.POST("/embeddings", ctrl.Create)
	api.GET("/embeddings/info", ctrl.Info)
}
