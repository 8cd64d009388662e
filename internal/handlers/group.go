package handlers

import (
	"huddle/internal/database"
	"huddle/internal/models"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateGroup handles the creation of a new group
func CreateGroup(c *gin.Context) {
	var request models.CreateGroupRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		handleError(c, http.StatusBadRequest, "Invalid input: "+err.Error(), err)
		return
	}

	username := c.GetString("username")
	if username == "" {
		handleError(c, http.StatusUnauthorized, "Not authenticated", nil)
		return
	}

	group := models.Group{
		ID:             uuid.NewString(),
		Name:           request.Name,
		Description:    request.Description,
		LeaderUsername: username,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	db := database.GetDB()
	if err := db.Create(&group).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create group", err)
		return
	}

	c.JSON(http.StatusCreated, group)
}

// GetGroup handles fetching a single group with its upcoming meetings
func GetGroup(c *gin.Context) {
	groupID := c.Param("group_id")
	db := database.GetDB()

	var group models.Group
	if err := db.Where("id = ?", groupID).First(&group).Error; err != nil {
		handleError(c, http.StatusNotFound, "Group not found", err)
		return
	}

	var upcoming []models.Meeting
	if err := db.Where("group_id = ? AND date_time > ?", groupID, time.Now()).
		Order("date_time ASC").
		Find(&upcoming).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch meetings", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"group":    group,
		"upcoming": upcoming,
	})
}
