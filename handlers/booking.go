package handlers

import (
	"net/http"
	"strings"

	"labbook/database/recordstore"
	"labbook/middleware"
	"labbook/services/booking"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the caller's stored bookings.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// ListBookingsHandler handles GET /api/bookings.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	user := middleware.GetSession(c).User()
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required", "redirect": "/login"})
		return
	}
	bookings, err := h.Service.ListBookings(c.Request.Context(), booking.BookingFilter{
		Status: c.Query("status"),
		Email:  user.Email,
		Limit:  queryInt(c, "limit"),
		Offset: queryInt(c, "offset"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingHandler handles GET /api/bookings/:id. Bookings of other users are reported as missing.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	user := middleware.GetSession(c).User()
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required", "redirect": "/login"})
		return
	}
	rec, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !strings.EqualFold(rec.Email, user.Email) {
		respondError(c, recordstore.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, rec)
}
