package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openstays/stay-booking/internal/httperr"
	"github.com/openstays/stay-booking/internal/httpresp"
	"github.com/openstays/stay-booking/internal/middleware"
	"github.com/openstays/stay-booking/internal/models"
	ucBooking "github.com/openstays/stay-booking/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create *ucBooking.CreateBooking
	accept *ucBooking.AcceptBooking
	cancel *ucBooking.CancelBooking
	get    *ucBooking.GetBooking
	list   *ucBooking.ListBookings
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	accept *ucBooking.AcceptBooking,
	cancel *ucBooking.CancelBooking,
	get *ucBooking.GetBooking,
	list *ucBooking.ListBookings,
) *BookingHandler {
	return &BookingHandler{
		create: create,
		accept: accept,
		cancel: cancel,
		get:    get,
		list:   list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	PropertyID uint   `json:"property_id" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	NumGuests  int    `json:"num_guests" binding:"required,min=1"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	travelerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "All fields are required.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		TravelerID: travelerID,
		PropertyID: req.PropertyID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		NumGuests:  req.NumGuests,
	})
	if err != nil {
		writeError(c, err, "failed_to_create_booking")
		return
	}

	httpresp.Created(c, gin.H{
		"booking_id":  b.ID,
		"total_price": b.TotalPrice,
		"status":      b.Status,
	})
}

// ======================================================
// ACCEPT / CANCEL
// ======================================================

func (h *BookingHandler) Accept(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)

	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.accept.Execute(c.Request.Context(), ownerID, id)
	if err != nil {
		writeError(c, err, "failed_to_accept_booking")
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	actorRole := c.MustGet(middleware.ContextUserRole).(models.Role)

	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), actorID, actorRole, id)
	if err != nil {
		writeError(c, err, "failed_to_cancel_booking")
		return
	}

	httpresp.OK(c, b)
}

// ======================================================
// READ
// ======================================================

func (h *BookingHandler) GetByID(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	actorRole := c.MustGet(middleware.ContextUserRole).(models.Role)

	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.get.Execute(c.Request.Context(), actorID, actorRole, id)
	if err != nil {
		writeError(c, err, "failed_to_get_booking")
		return
	}

	httpresp.OK(c, gin.H{
		"id":            b.ID,
		"property_id":   b.PropertyID,
		"traveler_id":   b.TravelerID,
		"start_date":    b.StartDate,
		"end_date":      b.EndDate,
		"num_guests":    b.NumGuests,
		"total_price":   b.TotalPrice,
		"status":        b.Status,
		"created_at":    b.CreatedAt,
		"property_name": b.Property.Name,
		"location":      b.Property.Location,
		"city":          b.Property.City,
		"country":       b.Property.Country,
		"traveler_name": b.Traveler.Name,
	})
}

func (h *BookingHandler) ListForTraveler(c *gin.Context) {
	travelerID := c.MustGet(middleware.ContextUserID).(uint)

	rows, err := h.list.ForTraveler(c.Request.Context(), travelerID)
	if err != nil {
		writeError(c, err, "failed_to_list_bookings")
		return
	}

	httpresp.List(c, rows)
}

func (h *BookingHandler) ListForOwner(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)

	rows, err := h.list.ForOwner(c.Request.Context(), ownerID)
	if err != nil {
		writeError(c, err, "failed_to_list_bookings")
		return
	}

	httpresp.List(c, rows)
}

// ======================================================
// HELPERS
// ======================================================

func bookingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Booking id must be numeric.")
		return 0, false
	}
	return uint(id), true
}
