package dashboard

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicdesk/clinic-api/internal/service/dashboard"
)

type Handler struct {
	service *dashboard.Service
}

func NewHandler(service *dashboard.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	d := r.Group("/dashboard")
	{
		d.GET("/today-appointments", h.TodayAppointments)
		d.GET("/total-appointments", h.TotalAppointments)
		d.GET("/total-clients", h.TotalClients)
		d.GET("/pending-lab-tests", h.PendingLabTests)
	}
}

func (h *Handler) TodayAppointments(c *gin.Context) {
	today, err := h.service.TodayAppointments(c.Request.Context(), time.Now())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": today})
}

func (h *Handler) TotalAppointments(c *gin.Context) {
	count, err := h.service.TotalAppointments(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"total": count}})
}

func (h *Handler) TotalClients(c *gin.Context) {
	count, err := h.service.TotalClients(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"total": count}})
}

func (h *Handler) PendingLabTests(c *gin.Context) {
	count, err := h.service.PendingLabTests(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"total": count}})
}
