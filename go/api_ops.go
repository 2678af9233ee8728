package trackerserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/go-gin-order-tracker/internal/shared/errors"
)

// OpsAPI serves liveness and metrics endpoints.
type OpsAPI struct {
	metrics http.Handler
}

// NewOpsAPI creates an OpsAPI. A nil metrics handler disables /metrics.
func NewOpsAPI(metrics http.Handler) OpsAPI {
	return OpsAPI{metrics: metrics}
}

// Get /healthz
func (api *OpsAPI) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Get /metrics
func (api *OpsAPI) Metrics(c *gin.Context) {
	if api.metrics == nil {
		apierrors.Respond(c, apierrors.ErrNotFound)
		return
	}
	api.metrics.ServeHTTP(c.Writer, c.Request)
}
