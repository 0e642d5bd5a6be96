package social

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/saaabbasi2121-ai/Vidra-AI/models"
)

type Handler struct {
	DB        *gorm.DB
	JWTSecret string
}

func NewHandler(db *gorm.DB, jwtSecret string) *Handler {
	return &Handler{DB: db, JWTSecret: jwtSecret}
}

type ConnectRequest struct {
	Username string `json:"username" binding:"required"`
	// Repo is required for GitHub connections, in "owner/name" form.
	Repo string `json:"repo"`
}

// Connect walks the scripted handshake and stores the connection.
// Reconnecting an already-connected platform refreshes the token.
func (h *Handler) Connect(c *gin.Context) {
	platform, ok := PlatformName(c.Param("platform"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown platform"})
		return
	}

	var req ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if platform == models.PlatformGitHub && !strings.Contains(req.Repo, "/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "GitHub repository must be in 'owner/name' form"})
		return
	}

	authorizeURL := AuthorizeURL(c.Param("platform"), uuid.NewString())
	steps := RunHandshake()

	token, err := SignConnectionToken(h.JWTSecret, platform, req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue connection token"})
		return
	}

	now := time.Now().UTC()
	account := models.SocialAccount{
		ID:              uuid.NewString(),
		Platform:        platform,
		Username:        req.Username,
		IsConnected:     true,
		ConnectionToken: token,
		LastSync:        &now,
		SchemaVersion:   models.SocialAccountSchemaVersion,
	}
	err = h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "platform"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"username", "is_connected", "connection_token", "last_sync",
		}),
	}).Create(&account).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save connection"})
		return
	}

	log.Printf("Connected %s account %q", platform, req.Username)
	c.JSON(http.StatusOK, gin.H{
		"account":       account,
		"steps":         steps,
		"authorize_url": authorizeURL,
	})
}

func (h *Handler) ListAccounts(c *gin.Context) {
	var accounts []models.SocialAccount
	if err := h.DB.Order("platform").Find(&accounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve accounts"})
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// Disconnect removes a platform connection.
func (h *Handler) Disconnect(c *gin.Context) {
	platform, ok := PlatformName(c.Param("platform"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown platform"})
		return
	}

	result := h.DB.Where("platform = ?", platform).Delete(&models.SocialAccount{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disconnect"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Platform not connected"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Disconnected", "platform": platform})
}

type PushRequest struct {
	VideoID string `json:"video_id" binding:"required"`
}

// Push performs a mock publish of a ready video to a connected platform.
// Nothing leaves the process; the video is marked posted and tagged with the
// platform.
func (h *Handler) Push(c *gin.Context) {
	platform, ok := PlatformName(c.Param("platform"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown platform"})
		return
	}

	var account models.SocialAccount
	if err := h.DB.First(&account, "platform = ? AND is_connected = ?", platform, true).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Platform not connected"})
		return
	}

	var req PushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var video models.Video
	if err := h.DB.First(&video, "id = ?", req.VideoID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}
	if video.Status != models.VideoStatusReady && video.Status != models.VideoStatusPosted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video is not ready to post"})
		return
	}

	platforms := video.Platforms
	if !contains(platforms, platform) {
		platforms = append(platforms, platform)
	}
	updates := map[string]interface{}{
		"status":    models.VideoStatusPosted,
		"platforms": platforms,
	}
	if err := h.DB.Model(&video).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update video"})
		return
	}

	now := time.Now().UTC()
	h.DB.Model(&account).Update("last_sync", &now)

	log.Printf("Pushed video %s to %s as %q", video.ID, platform, account.Username)
	c.JSON(http.StatusOK, gin.H{"message": "Posted", "video_id": video.ID, "platform": platform})
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
