package playback

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	Loader *Loader
}

func NewHandler(loader *Loader) *Handler {
	return &Handler{Loader: loader}
}

// GetSceneAudio returns the audio clip for one scene, synthesizing it on
// first request. Repeat requests serve the stored clip.
func (h *Handler) GetSceneAudio(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("scene"))
	if err != nil || index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scene index"})
		return
	}

	audioURL, err := h.Loader.SceneAudio(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		case errors.Is(err, ErrSceneOutOfRange):
			c.JSON(http.StatusNotFound, gin.H{"error": "Scene not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to synthesize scene audio"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"scene": index, "audio_url": audioURL})
}
