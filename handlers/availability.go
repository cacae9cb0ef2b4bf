package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fieldly/services/availability"
	"fieldly/utils"
)

// AvailabilityHandler exposes the availability store over HTTP.
type AvailabilityHandler struct {
	Service availability.AvailabilityService
	Logger  *zap.Logger
}

func NewAvailabilityHandler(svc availability.AvailabilityService, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc, Logger: logger}
}

// SetOnlineStatusHandler upserts a worker's presence.
func (h *AvailabilityHandler) SetOnlineStatusHandler(c *gin.Context) {
	var input struct {
		WorkerID             string `json:"workerId" binding:"required"`
		IsOnline             bool   `json:"isOnline"`
		AcceptsQuickBookings *bool  `json:"acceptsQuickBookings"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	acceptsQuick := true
	if input.AcceptsQuickBookings != nil {
		acceptsQuick = *input.AcceptsQuickBookings
	}

	if err := h.Service.SetOnlineStatus(c.Request.Context(), input.WorkerID, input.IsOnline, acceptsQuick); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to set online status", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"workerId": input.WorkerID, "isOnline": input.IsOnline})
}

// GetOnlineStatusHandler returns a worker's presence; a null status means the
// worker never set one and should be assumed available.
func (h *AvailabilityHandler) GetOnlineStatusHandler(c *gin.Context) {
	workerID := c.Param("workerId")
	status, err := h.Service.GetOnlineStatus(c.Request.Context(), workerID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch online status", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"workerId": workerID, "status": status})
}

// SetDayAvailabilityHandler flips a worker's day-level availability switch.
func (h *AvailabilityHandler) SetDayAvailabilityHandler(c *gin.Context) {
	var input struct {
		WorkerID    string `json:"workerId" binding:"required"`
		Date        string `json:"date" binding:"required"`
		IsAvailable *bool  `json:"isAvailable" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.Service.SetDayAvailability(c.Request.Context(), input.WorkerID, input.Date, *input.IsAvailable); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to set day availability", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"workerId": input.WorkerID, "date": input.Date, "isAvailable": *input.IsAvailable})
}

// CheckAvailabilityHandler runs a conflict check for a worker/date/time window.
func (h *AvailabilityHandler) CheckAvailabilityHandler(c *gin.Context) {
	var input struct {
		WorkerID            string `json:"workerId" binding:"required"`
		Date                string `json:"date" binding:"required"`
		StartTime           string `json:"startTime" binding:"required"`
		DurationHours       int    `json:"durationHours"`
		RespectOnlineStatus bool   `json:"respectOnlineStatus"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result := h.Service.CheckAvailability(
		c.Request.Context(),
		input.WorkerID, input.Date, input.StartTime, input.DurationHours,
		availability.CheckOptions{RespectOnlineStatus: input.RespectOnlineStatus},
	)
	c.JSON(http.StatusOK, result)
}

// ListQuickWorkersHandler returns workers online and open to quick bookings.
func (h *AvailabilityHandler) ListQuickWorkersHandler(c *gin.Context) {
	workers, err := h.Service.ListAvailableWorkersForQuickBookings(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list quick-booking workers", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"workers": workers})
}

// ListScheduleWorkersHandler returns online workers free at the given window.
func (h *AvailabilityHandler) ListScheduleWorkersHandler(c *gin.Context) {
	var input struct {
		Date          string `json:"date" binding:"required"`
		StartTime     string `json:"startTime" binding:"required"`
		DurationHours int    `json:"durationHours"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	workerIDs, err := h.Service.ListAvailableWorkersForSchedule(c.Request.Context(), input.Date, input.StartTime, input.DurationHours)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list workers for schedule", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"workerIds": workerIDs})
}
