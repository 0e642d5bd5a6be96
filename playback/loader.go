package playback

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/saaabbasi2121-ai/Vidra-AI/models"
)

// Synthesizer turns narration text and a voice id into a playable audio data
// URI.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) (string, error)
}

var ErrSceneOutOfRange = errors.New("scene index out of range")

// Loader resolves scene audio on demand. A scene's clip is synthesized the
// first time it is requested and written back to the video record, so every
// later request for the same scene is a cache hit. Concurrent requests for
// the same scene are collapsed into a single synthesis call.
type Loader struct {
	db    *gorm.DB
	synth Synthesizer
	group singleflight.Group
}

func NewLoader(db *gorm.DB, synth Synthesizer) *Loader {
	return &Loader{db: db, synth: synth}
}

// SceneAudio returns the audio data URI for one scene of a video.
func (l *Loader) SceneAudio(ctx context.Context, videoID string, index int) (string, error) {
	var video models.Video
	if err := l.db.First(&video, "id = ?", videoID).Error; err != nil {
		return "", err
	}
	if index < 0 || index >= len(video.Scenes) {
		return "", fmt.Errorf("%w: scene %d of %d", ErrSceneOutOfRange, index, len(video.Scenes))
	}
	if url := video.Scenes[index].AudioURL; url != "" {
		return url, nil
	}

	key := fmt.Sprintf("%s/%d", videoID, index)
	url, err, _ := l.group.Do(key, func() (interface{}, error) {
		return l.synthesize(ctx, videoID, index)
	})
	if err != nil {
		return "", err
	}
	return url.(string), nil
}

func (l *Loader) synthesize(ctx context.Context, videoID string, index int) (string, error) {
	// Re-read inside the flight: another process may have written the clip
	// between our stale read and now.
	var video models.Video
	if err := l.db.First(&video, "id = ?", videoID).Error; err != nil {
		return "", err
	}
	if index >= len(video.Scenes) {
		return "", fmt.Errorf("%w: scene %d of %d", ErrSceneOutOfRange, index, len(video.Scenes))
	}
	if url := video.Scenes[index].AudioURL; url != "" {
		return url, nil
	}

	url, err := l.synth.Synthesize(ctx, video.Scenes[index].Text, video.VoiceID)
	if err != nil {
		return "", fmt.Errorf("scene %d audio failed: %w", index, err)
	}

	// The scenes column holds the whole list, and flights for other scenes
	// of the same video run concurrently. Merge onto a fresh row inside the
	// transaction so only this scene's slot changes.
	err = l.db.Transaction(func(tx *gorm.DB) error {
		var current models.Video
		if err := tx.First(&current, "id = ?", videoID).Error; err != nil {
			return err
		}
		if index >= len(current.Scenes) {
			return fmt.Errorf("%w: scene %d of %d", ErrSceneOutOfRange, index, len(current.Scenes))
		}
		if existing := current.Scenes[index].AudioURL; existing != "" {
			url = existing
			return nil
		}
		current.Scenes[index].AudioURL = url
		return tx.Model(&models.Video{}).Where("id = ?", videoID).
			Update("scenes", current.Scenes).Error
	})
	if err != nil {
		return "", err
	}
	return url, nil
}
