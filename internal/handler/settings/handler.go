package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicdesk/clinic-api/internal/model"
	"github.com/clinicdesk/clinic-api/internal/service/settings"
)

type Handler struct {
	service *settings.Service
}

func NewHandler(service *settings.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the settings surface. The write route is expected
// to sit behind the auth middleware; the caller decides which group.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/settings", h.GetSettings)
	protected.PUT("/settings", h.UpdateSettings)
}

func (h *Handler) GetSettings(c *gin.Context) {
	s, err := h.service.Get(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": s})
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var req model.ClinicSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	if err := h.service.Update(c.Request.Context(), &req); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "settings updated"})
}
