package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"fieldly/models"
	"fieldly/services/booking"
	"fieldly/utils"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// domainErrorStatus maps lifecycle errors to HTTP status codes.
func domainErrorStatus(err error) int {
	var notFound *booking.NotFoundError
	var conflict *booking.ConflictError
	var policy *booking.PolicyViolationError
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &policy):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// CreateBookingHandler stores a new pending booking.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var input struct {
		ClientID     string  `json:"clientId" binding:"required"`
		ServiceType  string  `json:"serviceType" binding:"required"`
		ScheduleDate string  `json:"scheduleDate"`
		ScheduleTime string  `json:"scheduleTime"`
		TotalAmount  float64 `json:"totalAmount"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	b := &models.Booking{
		ClientID:     input.ClientID,
		ServiceType:  input.ServiceType,
		ScheduleDate: input.ScheduleDate,
		ScheduleTime: input.ScheduleTime,
		TotalAmount:  input.TotalAmount,
	}
	if err := h.Service.Create(c.Request.Context(), b); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create booking", err.Error())
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, domainErrorStatus(err), "failed to fetch booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) ListWorkerBookingsHandler(c *gin.Context) {
	bookings, err := h.Service.ListByWorker(c.Request.Context(), c.Param("workerId"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) ListClientBookingsHandler(c *gin.Context) {
	bookings, err := h.Service.ListByClient(c.Request.Context(), c.Param("clientId"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// AcceptBookingHandler lets a worker take a pending booking; a slot conflict
// surfaces as 409.
func (h *BookingHandler) AcceptBookingHandler(c *gin.Context) {
	var input struct {
		WorkerID string `json:"workerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	bookingID := c.Param("id")
	if err := h.Service.Accept(c.Request.Context(), bookingID, input.WorkerID); err != nil {
		utils.JSONError(c, domainErrorStatus(err), "failed to accept booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookingId": bookingID, "status": models.BookingStatusAccepted})
}

func (h *BookingHandler) RejectBookingHandler(c *gin.Context) {
	bookingID := c.Param("id")
	if err := h.Service.Reject(c.Request.Context(), bookingID); err != nil {
		utils.JSONError(c, domainErrorStatus(err), "failed to reject booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookingId": bookingID, "status": models.BookingStatusRejected})
}

func (h *BookingHandler) CanCancelHandler(c *gin.Context) {
	check, err := h.Service.CanCancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, domainErrorStatus(err), "failed to evaluate cancellation", err.Error())
		return
	}
	c.JSON(http.StatusOK, check)
}

func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	// Reason is optional; an empty body is fine.
	_ = c.ShouldBindJSON(&input)

	bookingID := c.Param("id")
	fee, err := h.Service.Cancel(c.Request.Context(), bookingID, input.Reason)
	if err != nil {
		utils.JSONError(c, domainErrorStatus(err), "failed to cancel booking", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"bookingId":       bookingID,
		"status":          models.BookingStatusCancelled,
		"cancellationFee": fee,
	})
}

// UpdateStatusHandler performs a generic status transition.
func (h *BookingHandler) UpdateStatusHandler(c *gin.Context) {
	var input struct {
		Status string         `json:"status" binding:"required"`
		Extra  map[string]any `json:"extra"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	extra := bson.M{}
	for k, v := range input.Extra {
		extra[k] = v
	}

	bookingID := c.Param("id")
	if err := h.Service.UpdateStatus(c.Request.Context(), bookingID, input.Status, extra); err != nil {
		utils.JSONError(c, domainErrorStatus(err), "failed to update booking status", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookingId": bookingID, "status": input.Status})
}
