package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"labbook/middleware"
	"labbook/models"
	"labbook/services/wizard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// fieldOrder is the order PATCH edits are applied in. bookingType comes first
// so a kind switch does not wipe an id sent in the same request.
var fieldOrder = []string{
	models.FieldBookingType,
	models.FieldName,
	models.FieldEmail,
	models.FieldPhone,
	models.FieldAddress,
	models.FieldSelectedTime,
	models.FieldSelectedTest,
	models.FieldSelectedCombo,
	models.FieldAdditionalInfo,
}

// WizardHandler exposes the booking wizard registry over HTTP.
type WizardHandler struct {
	Registry *wizard.Registry
}

func NewWizardHandler(registry *wizard.Registry) *WizardHandler {
	return &WizardHandler{Registry: registry}
}

func ownerID(c *gin.Context) string {
	if user := middleware.GetSession(c).User(); user != nil {
		return user.ID
	}
	return ""
}

// lookup resolves the :id wizard for the caller, writing the error response on failure.
func (h *WizardHandler) lookup(c *gin.Context) (*wizard.Wizard, bool) {
	w, err := h.Registry.Get(c.Param("id"), ownerID(c))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return w, true
}

// OpenHandler handles POST /api/wizard.
func (h *WizardHandler) OpenHandler(c *gin.Context) {
	w, err := h.Registry.Open(c.Request.Context(), ownerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Booking wizard opened", zap.String("wizardID", w.ID()))
	c.JSON(http.StatusCreated, w.Snapshot())
}

// GetHandler handles GET /api/wizard/:id.
func (h *WizardHandler) GetHandler(c *gin.Context) {
	w, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, w.Snapshot())
}

// UpdateFieldsHandler handles PATCH /api/wizard/:id/fields. The whole body is
// checked for unknown keys before any edit is applied. Edits are not atomic:
// when some fields fail validation the valid ones in the same body are kept,
// and the 422 carries the resulting wizard state next to the field errors.
func (h *WizardHandler) UpdateFieldsHandler(c *gin.Context) {
	w, ok := h.lookup(c)
	if !ok {
		return
	}
	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	for key := range fields {
		if !knownField(key) {
			respondError(c, fmt.Errorf("%w: %s", wizard.ErrUnknownField, key))
			return
		}
	}

	failed := wizard.ValidationErrors{}
	for _, key := range fieldOrder {
		value, present := fields[key]
		if !present {
			continue
		}
		err := w.SetField(key, value)
		var verrs wizard.ValidationErrors
		switch {
		case err == nil:
		case errors.As(err, &verrs):
			for f, msg := range verrs {
				failed[f] = msg
			}
		default:
			respondError(c, err)
			return
		}
	}
	if len(failed) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "errors": failed, "wizard": w.Snapshot()})
		return
	}
	c.JSON(http.StatusOK, w.Snapshot())
}

func knownField(key string) bool {
	for _, f := range fieldOrder {
		if f == key {
			return true
		}
	}
	return false
}

// SetDateHandler handles PUT /api/wizard/:id/date.
func (h *WizardHandler) SetDateHandler(c *gin.Context) {
	w, ok := h.lookup(c)
	if !ok {
		return
	}
	var req struct {
		Date string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	err := w.SetDate(c.Request.Context(), req.Date)
	var verrs wizard.ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &verrs),
		errors.Is(err, wizard.ErrWizardClosed),
		errors.Is(err, wizard.ErrSubmitInFlight),
		errors.Is(err, wizard.ErrWizardFinished):
		respondError(c, err)
		return
	default:
		getLogger(c).Warn("Time slot lookup failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not load available times. Please try again."})
		return
	}
	c.JSON(http.StatusOK, w.Snapshot())
}

// ContinueHandler handles POST /api/wizard/:id/continue.
func (h *WizardHandler) ContinueHandler(c *gin.Context) {
	w, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := w.Continue(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w.Snapshot())
}

// BackHandler handles POST /api/wizard/:id/back.
func (h *WizardHandler) BackHandler(c *gin.Context) {
	w, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := w.Back(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w.Snapshot())
}

// SubmitHandler handles POST /api/wizard/:id/submit.
func (h *WizardHandler) SubmitHandler(c *gin.Context) {
	w, ok := h.lookup(c)
	if !ok {
		return
	}
	recap, err := w.Submit(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Booking confirmed",
		zap.String("wizardID", w.ID()),
		zap.String("bookingID", recap.Booking.ID),
	)
	c.JSON(http.StatusCreated, recap)
}

// DismissErrorHandler handles DELETE /api/wizard/:id/error.
func (h *WizardHandler) DismissErrorHandler(c *gin.Context) {
	w, ok := h.lookup(c)
	if !ok {
		return
	}
	w.DismissError()
	c.JSON(http.StatusOK, w.Snapshot())
}

// SummaryHandler handles GET /api/wizard/:id/summary.
func (h *WizardHandler) SummaryHandler(c *gin.Context) {
	w, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": w.SelectionName(), "price": w.CalculatePrice()})
}

// CancelHandler handles DELETE /api/wizard/:id; pass ?confirm=true to discard a touched form.
func (h *WizardHandler) CancelHandler(c *gin.Context) {
	confirmed := c.Query("confirm") == "true"
	if err := h.Registry.Cancel(c.Param("id"), ownerID(c), confirmed); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}
