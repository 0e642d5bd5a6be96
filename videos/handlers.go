package videos

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saaabbasi2121-ai/Vidra-AI/models"
	"github.com/saaabbasi2121-ai/Vidra-AI/tasks"
)

type Handler struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewHandler(db *gorm.DB, rdb *redis.Client) *Handler {
	return &Handler{DB: db, Redis: rdb}
}

// ListVideos returns all videos, newest first. An optional ?source=ai or
// ?source=manual filter narrows the list to one origin.
func (h *Handler) ListVideos(c *gin.Context) {
	query := h.DB.Order("created_at desc")

	switch c.Query("source") {
	case "ai":
		query = query.Where("source = ?", models.VideoSourceAI)
	case "manual":
		query = query.Where("source = ?", models.VideoSourceManual)
	case "":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid source filter, expected 'ai' or 'manual'"})
		return
	}

	var videos []models.Video
	if err := query.Find(&videos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve videos"})
		return
	}

	c.JSON(http.StatusOK, videos)
}

func (h *Handler) GetVideo(c *gin.Context) {
	var video models.Video
	if err := h.DB.First(&video, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	c.JSON(http.StatusOK, video)
}

// RegenerateVideo queues a fresh pipeline run for an AI video. The existing
// bundle stays in place until the new one commits.
func (h *Handler) RegenerateVideo(c *gin.Context) {
	var video models.Video
	if err := h.DB.First(&video, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	if video.IsManual() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Manual uploads cannot be regenerated"})
		return
	}

	payload, err := tasks.Marshal(tasks.GenerateTaskPayload{VideoID: video.ID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue regeneration"})
		return
	}
	if err := h.Redis.LPush(c.Request.Context(), tasks.QueueVideoGenerate, payload).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to queue regeneration"})
		return
	}

	if err := h.DB.Model(&video).Update("status", models.VideoStatusGenerating).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, video)
}

func (h *Handler) DeleteVideo(c *gin.Context) {
	videoID := c.Param("id")

	result := h.DB.Where("id = ?", videoID).Delete(&models.Video{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete video"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Video deleted", "id": videoID})
}

type UploadVideoRequest struct {
	Title    string `json:"title" binding:"required"`
	Script   string `json:"script"`
	VideoURL string `json:"video_url" binding:"required"`
}

// UploadVideo registers a manually produced video. Manual videos carry a
// playable file URL and no scenes; they never enter the generation pipeline.
func (h *Handler) UploadVideo(c *gin.Context) {
	var req UploadVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video := models.Video{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Script:        req.Script,
		VideoURL:      req.VideoURL,
		Status:        models.VideoStatusReady,
		Source:        models.VideoSourceManual,
		Scenes:        models.SceneList{},
		SchemaVersion: models.VideoSchemaVersion,
	}
	if err := video.ValidateShape(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.DB.Create(&video).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save video"})
		return
	}

	c.JSON(http.StatusOK, video)
}

// ExportBundle wraps a video record with export metadata. Importing the
// bundle reconstructs the exact record.
type ExportBundle struct {
	Video      models.Video `json:"video"`
	ExportedAt time.Time    `json:"exported_at"`
	Engine     string       `json:"engine"`
}

const exportEngine = "Vidra v1.0-alpha"

func (h *Handler) ExportVideo(c *gin.Context) {
	var video models.Video
	if err := h.DB.First(&video, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="vidra-export-`+video.ID+`.json"`)
	c.JSON(http.StatusOK, ExportBundle{
		Video:      video,
		ExportedAt: time.Now().UTC(),
		Engine:     exportEngine,
	})
}

// ImportVideo restores a video from an export bundle. The record keeps its
// original id; re-importing the same bundle overwrites the existing row.
func (h *Handler) ImportVideo(c *gin.Context) {
	var bundle ExportBundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video := bundle.Video
	if video.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Export bundle has no video id"})
		return
	}
	if err := video.ValidateShape(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.DB.Save(&video).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import video"})
		return
	}

	c.JSON(http.StatusOK, video)
}
