package appointment

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicdesk/clinic-api/internal/model"
	"github.com/clinicdesk/clinic-api/internal/service/appointment"
)

const dateLayout = "2006-01-02"

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/doctors", h.ListDoctors)
		appointments.GET("/check-availability", h.CheckAvailability)
		appointments.GET("/by-date/:date", h.ListAppointmentsByDate)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.POST("/:id/cancel", h.CancelAppointment)
		appointments.POST("/:id/complete", h.CompleteAppointment)
	}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	apt, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": apt})
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid appointment ID"})
		return
	}

	apt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": apt})
}

func (h *Handler) ListAppointments(c *gin.Context) {
	var filters model.AppointmentFilters

	if v := c.Query("clientId"); v != "" {
		clientID, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid client ID"})
			return
		}
		filters.ClientID = &clientID
	}
	if v := c.Query("employeeId"); v != "" {
		employeeID, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid employee ID"})
			return
		}
		filters.EmployeeID = &employeeID
	}
	filters.Status = c.Query("status")
	if v := c.Query("dateFrom"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid dateFrom timestamp"})
			return
		}
		filters.ScheduledFrom = &from
	}
	if v := c.Query("dateTo"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid dateTo timestamp"})
			return
		}
		filters.ScheduledTo = &to
	}

	appointments, err := h.service.List(c.Request.Context(), &filters)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": appointments})
}

func (h *Handler) ListAppointmentsByDate(c *gin.Context) {
	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid date, expected YYYY-MM-DD"})
		return
	}

	appointments, err := h.service.ListByDate(c.Request.Context(), date)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": appointments})
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid appointment ID"})
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	apt, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": apt})
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	h.closeAppointment(c, h.service.Cancel, "appointment cancelled")
}

func (h *Handler) CompleteAppointment(c *gin.Context) {
	h.closeAppointment(c, h.service.Complete, "appointment completed")
}

func (h *Handler) closeAppointment(c *gin.Context, closeFn func(ctx context.Context, id int) (bool, error), message string) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid appointment ID"})
		return
	}

	ok, err := closeFn(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "appointment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": message})
}

// CheckAvailability answers the advisory slot query. The response is a
// snapshot; a conflicting booking may still land before a follow-up
// create.
func (h *Handler) CheckAvailability(c *gin.Context) {
	employeeID, err := strconv.Atoi(c.Query("employeeId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid employee ID"})
		return
	}

	scheduledTime, err := time.Parse(time.RFC3339, c.Query("scheduledTime"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid scheduled time, expected RFC3339"})
		return
	}

	available, err := h.service.IsTimeSlotAvailable(c.Request.Context(), employeeID, scheduledTime)
	if err != nil {
		c.Error(err)
		return
	}

	message := fmt.Sprintf("The time slot is available for employee %d", employeeID)
	if !available {
		message = fmt.Sprintf("Employee %d already has an appointment within 30 minutes of the requested time", employeeID)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": model.Availability{
		IsAvailable:   available,
		EmployeeID:    employeeID,
		ScheduledTime: scheduledTime,
		Message:       message,
	}})
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.Doctors(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": doctors})
}
