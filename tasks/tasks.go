package tasks

import "encoding/json"

// ---
// QUEUE DEFINITIONS
// ---
const (
	// QueueVideoGenerate feeds the worker one video id per bundle to assemble.
	QueueVideoGenerate = "q_video_generate"

	// ChannelSeriesCreated announces new series to the scheduler.
	ChannelSeriesCreated = "series_created"
)

// ---
// TASK PAYLOADS
// ---

// GenerateTaskPayload is the payload for QueueVideoGenerate.
type GenerateTaskPayload struct {
	VideoID string `json:"video_id"`
}

// SeriesCreatedMessage is published on ChannelSeriesCreated.
type SeriesCreatedMessage struct {
	SeriesID  string `json:"series_id"`
	Frequency string `json:"frequency"`
}

// Marshal creates a JSON payload for a task.
func Marshal(payload interface{}) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
