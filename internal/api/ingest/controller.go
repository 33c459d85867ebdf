package ingest

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

func (c *Controller) Ingest(ctx *gin.Context) {
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Zlog.Warn("invalid /ingest payload", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":     "bad_request",
			"message":   err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	}

	stats, err := c.svc.Ingest(ctx.Request.Context(), &req)
	if err != nil {
		utils.Zlog.Warn("ingestion failed", zap.Error(err))
		ctx.JSON(http.StatusBadGateway, gin.H{
			"error":     "ingest_error",
			"message":   err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	}

	c.respond(ctx, stats)
}

func (c *Controller) IngestFile(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":     "bad_request",
			"message":   "file is required",
			"timestamp": time.Now().UTC(),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.Zlog.Warn("failed to open upload", zap.Error(err), zap.String("filename", fileHeader.Filename))
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":     "bad_request",
			"message":   err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	}
	defer file.Close()

	stats, err := c.svc.IngestFile(ctx.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		utils.Zlog.Warn("file ingestion failed", zap.Error(err), zap.String("filename", fileHeader.Filename))
		ctx.JSON(http.StatusBadGateway, gin.H{
			"error":     "ingest_error",
			"message":   err.Error(),
			"timestamp": time.Now().UTC(),
		})
		return
	}

	c.respond(ctx, stats)
}

func (c *Controller) respond(ctx *gin.Context, stats *types.IngestStats) {
	res := Response{BaseResponse: types.BaseResponse{Success: true}, Stats: *stats}
	if idVal, exists := ctx.Get("request_id"); exists {
		if rid, ok := idVal.(string); ok {
			res.RequestID = rid
		}
	}
	ctx.JSON(http.StatusOK, res)
}
