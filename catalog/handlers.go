package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// ListNiches returns the full niche catalog. An optional ?group= filter
// narrows it to one group.
func (h *Handler) ListNiches(c *gin.Context) {
	niches, err := Niches()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Niche catalog unavailable"})
		return
	}

	if group := c.Query("group"); group != "" {
		filtered := niches[:0:0]
		for _, n := range niches {
			if n.Group == group {
				filtered = append(filtered, n)
			}
		}
		niches = filtered
	}

	c.JSON(http.StatusOK, niches)
}
