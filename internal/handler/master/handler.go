package master

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicdesk/clinic-api/internal/service/master"
)

type Handler struct {
	service *master.Service
}

func NewHandler(service *master.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	m := r.Group("/master")
	{
		m.GET("", h.GetMasterData)
		m.GET("/countries", h.GetCountries)
		m.GET("/currencies", h.GetCurrencies)
		m.GET("/languages", h.GetLanguages)
		m.GET("/appointment-types", h.GetAppointmentTypes)
		m.GET("/appointment-statuses", h.GetAppointmentStatuses)
	}
}

func (h *Handler) GetMasterData(c *gin.Context) {
	data, err := h.service.MasterData(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": data})
}

func (h *Handler) GetCountries(c *gin.Context) {
	countries, err := h.service.Countries(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": countries})
}

func (h *Handler) GetCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": h.service.Currencies()})
}

func (h *Handler) GetLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": h.service.Languages()})
}

func (h *Handler) GetAppointmentTypes(c *gin.Context) {
	types, err := h.service.AppointmentTypes(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": types})
}

func (h *Handler) GetAppointmentStatuses(c *gin.Context) {
	statuses, err := h.service.AppointmentStatuses(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": statuses})
}
