package handlers

import (
	"encoding/json"
	"huddle/internal/database"
	"huddle/internal/models"
	"huddle/internal/schedule"
	"huddle/internal/services"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// newEngine builds the scheduling engine over the request's DB handle
func newEngine(db *gorm.DB) *schedule.Engine {
	return schedule.NewEngine(database.NewMeetingStore(db), database.NewAttendanceStore(db))
}

// CreateMeeting handles scheduling a meeting or expanding a recurring series
func CreateMeeting(c *gin.Context) {
	var request models.CreateMeetingRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	// Validate that DateTime is in the future
	if request.DateTime.Before(time.Now()) {
		handleError(c, http.StatusBadRequest, "Meeting date must be in the future", nil)
		return
	}

	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}

	db := database.GetDB()

	// Check the group exists
	var group models.Group
	if err := db.Where("id = ?", request.GroupID).First(&group).Error; err != nil {
		handleError(c, http.StatusNotFound, "Group not found", err)
		return
	}

	// Standardize the location when a place id was supplied
	if request.PlaceID != "" {
		location, err := services.ResolveMeetingLocation(request.PlaceID)
		if err != nil {
			log.Printf("Warning: Failed to resolve place %s: %v", request.PlaceID, err)
		} else {
			request.Location = location
		}
	}

	meetings, err := newEngine(db).CreateSeries(request)
	if err != nil {
		handleEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, meetings)
}

// GetGroupMeetings handles listing all meetings of a group
func GetGroupMeetings(c *gin.Context) {
	groupID := c.Param("group_id")
	db := database.GetDB()

	var group models.Group
	if err := db.Where("id = ?", groupID).First(&group).Error; err != nil {
		handleError(c, http.StatusNotFound, "Group not found", err)
		return
	}

	meetings, err := database.NewMeetingStore(db).GroupMeetings(groupID)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch meetings", err)
		return
	}

	c.JSON(http.StatusOK, meetings)
}

// GetMeeting handles fetching one meeting with its attendee records
func GetMeeting(c *gin.Context) {
	meetingID := c.Param("meeting_id")
	db := database.GetDB()

	meeting, err := database.NewMeetingStore(db).MeetingByID(meetingID)
	if err != nil {
		handleEngineError(c, err)
		return
	}

	records, err := database.NewAttendanceStore(db).RecordsForMeetings([]string{meetingID})
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch attendee records", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meeting":   meeting,
		"attendees": records,
	})
}

// SkipMeeting shifts an occurrence and all later ones forward by one
// recurrence interval, returning the full change set so the client can patch
// its cached view
func SkipMeeting(c *gin.Context) {
	meetingID := c.Param("meeting_id")
	username := c.GetString("username")

	db := database.GetDB()

	changes, err := newEngine(db).SkipMeeting(meetingID)
	if err != nil {
		handleEngineError(c, err)
		return
	}

	// Record the skip as an audit row
	payload, err := json.Marshal(changes)
	if err != nil {
		log.Printf("Warning: Failed to encode change set for meeting %s: %v", meetingID, err)
	} else {
		entry := models.SeriesChangeLog{
			SeriesID:  changes.SeriesID,
			MeetingID: meetingID,
			Actor:     username,
			Changes:   payload,
			CreatedAt: time.Now(),
		}
		if err := db.Create(&entry).Error; err != nil {
			log.Printf("Warning: Failed to write series change log: %v", err)
		}
	}

	c.JSON(http.StatusOK, changes)
}

// DeleteSeries removes every occurrence of a series
func DeleteSeries(c *gin.Context) {
	seriesID := c.Param("series_id")

	db := database.GetDB()
	if err := newEngine(db).DeleteSeries(seriesID); err != nil {
		handleEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Series deleted"})
}
