package handlers

import (
	"errors"
	"net/http"

	"labbook/database/recordstore"
	"labbook/services/catalog"
	"labbook/services/session"
	"labbook/services/wizard"
	"labbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps a service error onto its HTTP status and JSON body.
func respondError(c *gin.Context, err error) {
	var verrs wizard.ValidationErrors
	var subErr *wizard.SubmissionError
	var inputErr *catalog.InputError

	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "errors": verrs})
	case errors.As(err, &subErr):
		getLogger(c).Warn("Booking submission failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": subErr.Message, "code": subErr.Code, "retryable": true})
	case errors.As(err, &inputErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": inputErr.Message, "field": inputErr.Field})
	case errors.Is(err, wizard.ErrConfirmationRequired):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "confirmationRequired": true})
	case errors.Is(err, wizard.ErrInvalidTransition),
		errors.Is(err, wizard.ErrSubmitInFlight),
		errors.Is(err, wizard.ErrWizardFinished):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, wizard.ErrWizardNotFound),
		errors.Is(err, wizard.ErrWizardClosed),
		errors.Is(err, recordstore.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, wizard.ErrUnknownField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrInvalidIdentityToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		getLogger(c).Error("Unhandled error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}
