package handlers

import (
	"huddle/internal/database"
	"huddle/internal/models"
	"huddle/internal/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GroupCalendar serves a group's meetings as an iCalendar feed
func GroupCalendar(c *gin.Context) {
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

	c.Header("Content-Disposition", "attachment; filename=\""+group.ID+".ics\"")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(services.BuildGroupCalendar(group, meetings)))
}
