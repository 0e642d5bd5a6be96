package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/saaabbasi2121-ai/Vidra-AI/models"
	"github.com/saaabbasi2121-ai/Vidra-AI/tasks"
)

// HandleVideoGeneration assembles the full content bundle for one pending
// video. The result is committed in a single update so a crash or failure
// mid-pipeline never leaves a half-written video behind: the record either
// stays untouched (status Failed) or carries the complete bundle.
func (p *Processor) HandleVideoGeneration(ctx context.Context, payload string) error {
	var task tasks.GenerateTaskPayload
	if err := json.Unmarshal([]byte(payload), &task); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}

	var video models.Video
	if err := p.DB.First(&video, "id = ?", task.VideoID).Error; err != nil {
		return fmt.Errorf("video %s not found: %w", task.VideoID, err)
	}
	if video.IsManual() {
		log.Printf("Video %s is a manual upload, nothing to generate", video.ID)
		return nil
	}

	var series models.Series
	if err := p.DB.First(&series, "id = ?", video.SeriesID).Error; err != nil {
		p.markFailed(video.ID)
		return fmt.Errorf("series %s not found for video %s: %w", video.SeriesID, video.ID, err)
	}

	if err := p.DB.Model(&video).Update("status", models.VideoStatusGenerating).Error; err != nil {
		return err
	}

	// Preflight: one cheap completion proves the key and model are usable
	// before we burn a full pipeline run on them.
	if err := p.Gen.TestConnection(ctx); err != nil {
		p.markFailed(video.ID)
		return fmt.Errorf("generation backend unreachable: %w", err)
	}

	start := time.Now()
	bundle, err := p.Gen.AssembleBundle(ctx, series, func(msg string) {
		log.Printf("[video %s] %s", video.ID, msg)
	})
	if err != nil {
		p.markFailed(video.ID)
		return fmt.Errorf("bundle assembly failed for video %s: %w", video.ID, err)
	}

	updates := map[string]interface{}{
		"title":         bundle.Title,
		"script":        bundle.Script,
		"scenes":        bundle.Scenes,
		"thumbnail_url": bundle.ThumbnailURL,
		"status":        models.VideoStatusReady,
	}
	if err := p.DB.Model(&models.Video{}).Where("id = ?", video.ID).Updates(updates).Error; err != nil {
		p.markFailed(video.ID)
		return fmt.Errorf("failed to commit bundle for video %s: %w", video.ID, err)
	}

	log.Printf("Video %s ready: %d scenes in %s", video.ID, len(bundle.Scenes), time.Since(start).Round(time.Second))
	return nil
}

// markFailed flips the status only. No bundle fields are written, so the
// record keeps whatever it held before the failed run.
func (p *Processor) markFailed(videoID string) {
	if err := p.DB.Model(&models.Video{}).Where("id = ?", videoID).
		Update("status", models.VideoStatusFailed).Error; err != nil {
		log.Printf("Failed to mark video %s as failed: %v", videoID, err)
	}
}
