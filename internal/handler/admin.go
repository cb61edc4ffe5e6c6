package handler

import (
	"net/http"
	"time"

	"github.com/Aniket-89/recrm/internal/service"
	"github.com/Aniket-89/recrm/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// AdminHandler exposes operational endpoints (admin role only).
type AdminHandler struct {
	sweeper service.SweepService
	rdb     *redis.Client
}

func NewAdminHandler(sweeper service.SweepService, rdb *redis.Client) *AdminHandler {
	return &AdminHandler{sweeper: sweeper, rdb: rdb}
}

// RunSweep godoc
// @Summary      Run the overdue sweep now (admin)
// @Description  Marks past-due Pending/Partial schedule rows Overdue and re-derives affected booking statuses. The daily cron runs the same pass automatically.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]int
// @Failure      400 {object} apierror.APIError
// @Router       /v1/admin/sweep-overdue [post]
func (h *AdminHandler) RunSweep(c *gin.Context) {
	marked, err := h.sweeper.SweepOverdue(c.Request.Context(), time.Now())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows_marked_overdue": marked})
}

// QueueStats godoc
// @Summary      Background queue depths (admin)
// @Description  Pending and dead-lettered job counts for the receipt and email queues.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]map[string]int64
// @Router       /v1/admin/queues [get]
func (h *AdminHandler) QueueStats(c *gin.Context) {
	ctx := c.Request.Context()
	out := gin.H{}
	for _, queue := range []string{service.QueueReceipt, service.QueueEmail} {
		pending, _ := h.rdb.LLen(ctx, queue).Result()
		dead, _ := worker.DLQLength(ctx, h.rdb, queue)
		out[queue] = gin.H{"pending": pending, "dead_lettered": dead}
	}
	c.JSON(http.StatusOK, out)
}
