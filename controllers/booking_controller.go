package controllers

import (
	"errors"
	"log"
	"net/http"

	"rental-backend/metrics"
	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	BookingSvc      *services.BookingService
	AvailabilitySvc *services.AvailabilityService
}

func NewBookingController(bookingSvc *services.BookingService, availabilitySvc *services.AvailabilityService) *BookingController {
	return &BookingController{BookingSvc: bookingSvc, AvailabilitySvc: availabilitySvc}
}

type availabilityPayload struct {
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Cart      []services.CartEntry `json:"cart"`
}

// CheckAvailability reports remaining stock per cart entry for a date
// range. Read-only; a booking may still be rejected at creation time if
// stock moves in between.
func (ctrl *BookingController) CheckAvailability(c *gin.Context) {
	var payload availabilityPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if payload.Cart == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	result, err := ctrl.AvailabilitySvc.Check(payload.StartDate, payload.EndDate, payload.Cart)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}
		log.Printf("CheckAvailability error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "availability check failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"start_date": payload.StartDate,
		"end_date":   payload.EndDate,
		"result":     result,
	})
}

// CreateBooking re-validates availability and persists the booking with
// its line items atomically, returning the payment reference the
// customer uses for the manual mobile-money transfer.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var input services.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	result, err := ctrl.BookingSvc.Create(input)
	if err != nil {
		var availErr *services.AvailabilityError
		switch {
		case errors.As(err, &availErr):
			metrics.IncAvailabilityRejected()
			c.JSON(http.StatusConflict, gin.H{"error": availErr.Error()})
		case errors.Is(err, services.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrItemNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrReferenceCollision):
			log.Printf("CreateBooking: payment reference retry budget exhausted")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not allocate payment reference"})
		default:
			log.Printf("CreateBooking error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create booking"})
		}
		return
	}

	metrics.IncBookingCreated()
	c.JSON(http.StatusOK, gin.H{
		"booking_id":   result.BookingID,
		"amount_total": result.AmountTotal,
		"payment":      paymentInstructions(result.Reference),
	})
}

// GetPaymentDetails exposes the static mobile-money account details for
// the storefront checkout page.
func (ctrl *BookingController) GetPaymentDetails(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"momo_name":    utils.EnvOrDefault("MOMO_NAME", "RENTAL HUB"),
		"momo_number":  utils.EnvOrDefault("MOMO_NUMBER", "0000000000"),
		"momo_network": utils.EnvOrDefault("MOMO_NETWORK", "MTN MoMo"),
	})
}

// GetBookings lists all bookings with nested line items for the admin
// dashboard.
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.BookingSvc.ListWithItems()
	if err != nil {
		log.Printf("GetBookings error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load bookings"})
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (ctrl *BookingController) MarkPaid(c *gin.Context) {
	ctrl.transition(c, models.StatusPaid)
}

func (ctrl *BookingController) Complete(c *gin.Context) {
	ctrl.transition(c, models.StatusCompleted)
}

func (ctrl *BookingController) Cancel(c *gin.Context) {
	ctrl.transition(c, models.StatusCancelled)
}

func (ctrl *BookingController) transition(c *gin.Context, target string) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.Transition(id, target)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			log.Printf("Transition error for booking %d -> %s: %v", id, target, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking status"})
		}
		return
	}

	metrics.IncStatusTransition(target)
	c.JSON(http.StatusOK, gin.H{"ok": true, "status": booking.Status})
}

func paymentInstructions(reference string) gin.H {
	return gin.H{
		"method":       "momo",
		"momo_name":    utils.EnvOrDefault("MOMO_NAME", "RENTAL HUB"),
		"momo_number":  utils.EnvOrDefault("MOMO_NUMBER", "0000000000"),
		"momo_network": utils.EnvOrDefault("MOMO_NETWORK", "MTN MoMo"),
		"reference":    reference,
		"instructions": "Send the exact amount to the MoMo number above and use the reference as the payment reference. Your booking will be confirmed after admin verification.",
	}
}
