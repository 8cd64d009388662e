package handlers

import (
	"huddle/internal/database"
	"huddle/internal/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RSVPMeeting records the authenticated user's response for one specific
// occurrence
func RSVPMeeting(c *gin.Context) {
	meetingID := c.Param("meeting_id")
	username := c.GetString("username")

	var request models.RSVPRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	record, err := newEngine(database.GetDB()).RSVPSingleOccurrence(meetingID, username, request.Status)
	if err != nil {
		handleEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// RSVPSeries records the authenticated user's standing preference for every
// occurrence of a series
func RSVPSeries(c *gin.Context) {
	seriesID := c.Param("series_id")
	username := c.GetString("username")

	var request models.RSVPRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	updated, err := newEngine(database.GetDB()).RSVPWholeSeries(seriesID, username, request.Status)
	if err != nil {
		handleEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Series response recorded",
		"updated_meetings": updated,
	})
}
