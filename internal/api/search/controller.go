package search

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

func (c *Controller) Search(ctx *gin.Context) {
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Zlog.Warn("invalid /search payload", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":     "bad_request",
			"message":   err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	}

	results, err := c.svc.Search(ctx.Request.Context(), &req)
	if err != nil {
		utils.Zlog.Warn("search failed", zap.Error(err))
		ctx.JSON(http.StatusBadGateway, gin.H{
			"error":     "search_error",
			"message":   err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	}

	res := Response{BaseResponse: types.BaseResponse{Success: true}, Results: results}
	if idVal, exists := ctx.Get("request_id"); exists {
		if rid, ok := idVal.(string); ok {
			res.RequestID = rid
		}
	}
	ctx.JSON(http.StatusOK, res)
}
