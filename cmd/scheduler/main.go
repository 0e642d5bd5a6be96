package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/saaabbasi2121-ai/Vidra-AI/internal/platform"
	"github.com/saaabbasi2121-ai/Vidra-AI/models"
	"github.com/saaabbasi2121-ai/Vidra-AI/tasks"
)

func main() {
	cfg, err := platform.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	db := platform.NewDBConnection(cfg)
	rdb := platform.NewRedisClient(cfg)
	ctx := context.Background()

	c := cron.New()
	c.Start()
	defer c.Stop()

	// Re-register jobs for series that existed before this process started.
	var existing []models.Series
	if err := db.Where("is_active = ?", true).Find(&existing).Error; err != nil {
		log.Fatal("Failed to load existing series:", err)
	}
	for _, s := range existing {
		scheduleSeries(ctx, db, rdb, c, s.ID, s.Frequency)
	}
	log.Printf("Rescheduled %d existing series", len(existing))

	go listenForNewSeries(ctx, db, rdb, c)

	log.Println("Scheduler started, waiting for messages...")
	select {}
}

// cronSpec maps a series frequency to its cron schedule.
func cronSpec(frequency string) string {
	switch frequency {
	case models.FrequencyDaily:
		return "@daily"
	case models.FrequencyWeekly:
		return "@weekly"
	case models.FrequencyBiWeekly:
		return "@every 336h"
	default:
		return ""
	}
}

// listenForNewSeries subscribes to series_created, queues the first video
// immediately and registers the recurring job. Pub/Sub delivers to every
// subscriber, so run exactly one scheduler instance.
func listenForNewSeries(ctx context.Context, db *gorm.DB, rdb *redis.Client, c *cron.Cron) {
	pubsub := rdb.Subscribe(ctx, tasks.ChannelSeriesCreated)
	defer pubsub.Close()
	ch := pubsub.Channel()

	log.Println("Scheduler listening for new series...")

	for msg := range ch {
		var message tasks.SeriesCreatedMessage
		if err := json.Unmarshal([]byte(msg.Payload), &message); err != nil {
			log.Printf("Error unmarshalling %s message: %v", tasks.ChannelSeriesCreated, err)
			continue
		}

		log.Printf("Received new series %s (%s)", message.SeriesID, message.Frequency)

		// First video goes out right away; the cron entry handles the rest.
		enqueueVideo(ctx, db, rdb, message.SeriesID)
		scheduleSeries(ctx, db, rdb, c, message.SeriesID, message.Frequency)
	}
}

func scheduleSeries(ctx context.Context, db *gorm.DB, rdb *redis.Client, c *cron.Cron, seriesID, frequency string) {
	spec := cronSpec(frequency)
	if spec == "" {
		log.Printf("Series %s has unknown frequency %q, not scheduling", seriesID, frequency)
		return
	}

	_, err := c.AddFunc(spec, func() {
		// The series may have been paused or deleted since scheduling.
		var series models.Series
		if err := db.First(&series, "id = ?", seriesID).Error; err != nil {
			log.Printf("Series %s gone, skipping scheduled run", seriesID)
			return
		}
		if !series.IsActive {
			log.Printf("Series %s is paused, skipping scheduled run", seriesID)
			return
		}
		enqueueVideo(ctx, db, rdb, seriesID)
	})
	if err != nil {
		log.Printf("Error scheduling cron job for series %s: %v", seriesID, err)
	}
}

// enqueueVideo creates a pending video row for the series and pushes its
// generation task.
func enqueueVideo(ctx context.Context, db *gorm.DB, rdb *redis.Client, seriesID string) {
	var series models.Series
	if err := db.First(&series, "id = ?", seriesID).Error; err != nil {
		log.Printf("Series %s not found, cannot queue video: %v", seriesID, err)
		return
	}

	video := models.Video{
		ID:              uuid.NewString(),
		SeriesID:        series.ID,
		Status:          models.VideoStatusGenerating,
		Source:          models.VideoSourceAI,
		VoiceID:         series.VoiceID,
		DurationSeconds: series.DurationSeconds,
		Platforms:       models.StringList{series.Platform},
		Scenes:          models.SceneList{},
		SchemaVersion:   models.VideoSchemaVersion,
	}
	if err := db.Create(&video).Error; err != nil {
		log.Printf("Error creating pending video for series %s: %v", seriesID, err)
		return
	}

	payload, err := tasks.Marshal(tasks.GenerateTaskPayload{VideoID: video.ID})
	if err != nil {
		log.Printf("Error marshalling video task: %v", err)
		return
	}
	if err := rdb.LPush(ctx, tasks.QueueVideoGenerate, payload).Err(); err != nil {
		log.Printf("Error pushing task to queue %s: %v", tasks.QueueVideoGenerate, err)
		return
	}
	log.Printf("Queued video %s for series %s", video.ID, seriesID)
}
