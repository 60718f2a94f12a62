package handlers

import (
	"errors"
	"net/http"
	"strings"

	"loanservicing/internal/pkg/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// writeError maps the domain error vocabulary onto HTTP statuses by error
// code family and hides everything else behind a 500.
func writeError(c *gin.Context, err error) {
	var customErr *models.CustomError
	if !errors.As(err, &customErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case strings.Contains(customErr.Code, "_VALIDATION_"):
		status = http.StatusBadRequest
	case strings.Contains(customErr.Code, "_NOT_FOUND_"):
		status = http.StatusNotFound
	case strings.Contains(customErr.Code, "_STATE_"):
		status = http.StatusConflict
	case strings.Contains(customErr.Code, "_VERIFICATION_"):
		status = http.StatusUnprocessableEntity
	case strings.Contains(customErr.Code, "_REQUEST_"):
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{
		"code":  customErr.Code,
		"error": err.Error(),
	})
}

// parseObjectID reads a hex ObjectID path parameter, answering a 400 itself
// when the value does not parse.
func parseObjectID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return primitive.NilObjectID, false
	}
	return id, true
}
