package series

import (
	"encoding/json"
	"log"
	"net/http"

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

type CreateSeriesRequest struct {
	Topic           string `json:"topic" binding:"required"`
	Description     string `json:"description"`
	Tone            string `json:"tone"`
	Style           string `json:"style"`
	VoiceID         string `json:"voice_id" binding:"required"`
	DurationSeconds int    `json:"duration_seconds" binding:"required,min=15,max=180"`
	Platform        string `json:"platform" binding:"required"`
	Frequency       string `json:"frequency" binding:"required,oneof=Daily Weekly Bi-Weekly"`
	NicheID         string `json:"niche_id"`
}

func (h *Handler) CreateSeries(c *gin.Context) {
	var req CreateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	series := models.Series{
		ID:              uuid.NewString(),
		Topic:           req.Topic,
		Description:     req.Description,
		Tone:            req.Tone,
		Style:           req.Style,
		VoiceID:         req.VoiceID,
		DurationSeconds: req.DurationSeconds,
		Platform:        req.Platform,
		Frequency:       req.Frequency,
		NicheID:         req.NicheID,
		IsActive:        true,
		SchemaVersion:   models.SeriesSchemaVersion,
	}

	if err := h.DB.Create(&series).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create series"})
		return
	}

	// The scheduler picks this up, queues the first video immediately and
	// registers the recurring job.
	message := tasks.SeriesCreatedMessage{
		SeriesID:  series.ID,
		Frequency: series.Frequency,
	}
	payload, err := json.Marshal(message)
	if err != nil {
		log.Printf("Error marshalling json: %v", err)
	} else {
		err := h.Redis.Publish(c.Request.Context(), tasks.ChannelSeriesCreated, payload).Err()
		if err != nil {
			log.Printf("Error publishing to redis: %v", err)
		}
	}

	c.JSON(http.StatusOK, series)
}

func (h *Handler) ListSeries(c *gin.Context) {
	var series []models.Series
	if err := h.DB.Order("created_at desc").Find(&series).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve series"})
		return
	}

	for i := range series {
		var count int64
		if err := h.DB.Model(&models.Video{}).Where("series_id = ?", series[i].ID).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		series[i].VideoCount = int(count)
	}

	c.JSON(http.StatusOK, series)
}

func (h *Handler) GetSeriesVideos(c *gin.Context) {
	seriesID := c.Param("id")

	var series models.Series
	if err := h.DB.First(&series, "id = ?", seriesID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Series not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	var videos []models.Video
	if err := h.DB.Where("series_id = ?", seriesID).Order("created_at desc").Find(&videos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve videos"})
		return
	}

	c.JSON(http.StatusOK, videos)
}

// DeleteSeries removes a series and every video that belongs to it in one
// transaction. A series is never deleted while its videos survive, and vice
// versa.
func (h *Handler) DeleteSeries(c *gin.Context) {
	seriesID := c.Param("id")

	var series models.Series
	if err := h.DB.First(&series, "id = ?", seriesID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Series not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("series_id = ?", seriesID).Delete(&models.Video{}).Error; err != nil {
			return err
		}
		return tx.Delete(&series).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete series"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Series deleted", "id": seriesID})
}

// ToggleSeries flips a series between active and paused. Paused series are
// skipped by the scheduler.
func (h *Handler) ToggleSeries(c *gin.Context) {
	seriesID := c.Param("id")

	var series models.Series
	if err := h.DB.First(&series, "id = ?", seriesID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Series not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	if err := h.DB.Model(&series).Update("is_active", !series.IsActive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update series"})
		return
	}

	c.JSON(http.StatusOK, series)
}
