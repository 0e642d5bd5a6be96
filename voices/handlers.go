package voices

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Synthesizer produces a playable clip for preview requests.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) (string, error)
}

type Handler struct {
	Synth Synthesizer
}

func NewHandler(synth Synthesizer) *Handler {
	return &Handler{Synth: synth}
}

func (h *Handler) ListVoices(c *gin.Context) {
	c.JSON(http.StatusOK, Defaults)
}

const previewText = "Hi! This is how your series will sound."

// PreviewVoice synthesizes a short sample clip for one voice.
func (h *Handler) PreviewVoice(c *gin.Context) {
	voice, ok := ByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Voice not found"})
		return
	}

	audioURL, err := h.Synth.Synthesize(c.Request.Context(), previewText, voice.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to synthesize preview"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"voice_id": voice.ID, "audio_url": audioURL})
}
