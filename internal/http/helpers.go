// Package http assembles the site's route layer: public marketing endpoints
// and the session-gated admin API. Handlers translate store results into the
// wire format; every error body is {"message": string}.
package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// --- Response Types ---

// ErrorResponse is the standard error body for all API errors.
type ErrorResponse struct {
	Message string `json:"message"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Message: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 response. The actual
// error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, message string) {
	log.Printf("Internal error (%s): %v", message, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: message})
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an integer ID from URL parameters.
// Responds with a 400 error and returns false when the value is not numeric.
func parseIDParam(c *gin.Context, paramName string) (int, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.Atoi(idStr)
	if err != nil {
		respondBadRequest(c, "Invalid announcement ID")
		return 0, false
	}
	return id, true
}
