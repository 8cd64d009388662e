package handlers

import (
	"errors"
	"huddle/internal/schedule"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleError provides a consistent way to handle and log errors
func handleError(c *gin.Context, status int, message string, err error) {
	log.Printf("Error: %v", err)
	c.JSON(status, gin.H{"error": message})
}

// handleEngineError maps the engine's error taxonomy onto HTTP statuses
func handleEngineError(c *gin.Context, err error) {
	var validationErr *schedule.ValidationError
	var notFoundErr *schedule.NotFoundError
	var conflictErr *schedule.StateConflictError

	switch {
	case errors.As(err, &validationErr):
		handleError(c, http.StatusBadRequest, validationErr.Reason, err)
	case errors.As(err, &notFoundErr):
		handleError(c, http.StatusNotFound, notFoundErr.Error(), err)
	case errors.As(err, &conflictErr):
		handleError(c, http.StatusConflict, conflictErr.Reason, err)
	default:
		handleError(c, http.StatusInternalServerError, "Operation failed", err)
	}
}

// HomeHandler handles requests to the root path "/"
func HomeHandler(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to Huddle!")
}

// HealthHandler is a simple health check endpoint
func HealthHandler(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
