package embeddings

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Conversly/embedding-gateway/internal/types"
	"github.com/Conversly/embedding-gateway/internal/utils"
)

type Controller struct {
	svc *Service
}

func NewController(svc *Service) *Controller {
	return &Controller{svc: svc}
}

func (c *Controller) Create(ctx *gin.Context) {
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Zlog.Warn("invalid /embeddings payload", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":     "bad_request",
			"message":   err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	}

	result, err := c.svc.CreateEmbeddings(ctx.Request.Context(), &req)
	if err != nil {
		utils.Zlog.Warn("embedding request failed", zap.Error(err), zap.Int("texts", len(req.Texts)))
		ctx.JSON(http.StatusBadGateway, gin.H{
			"error":     "embedding_error",
			"message":   err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	}

	res := Response{
		BaseResponse: types.BaseResponse{Success: true},
		Embeddings:   result.Embeddings,
		Usage:        result.Usage,
	}
	if idVal, exists := ctx.Get("request_id"); exists {
		if rid, ok := idVal.(string); ok {
			res.RequestID = rid
		}
	}
	ctx.JSON(http.StatusOK, res)
}

func (c *Controller) Info(ctx *gin.Context) {
	info := c.svc.Info()
	ctx.JSON(http.StatusOK, InfoResponse{Name: info.Name})
}
