package playback

import (
	"context"
	"encoding/base64"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/saaabbasi2121-ai/Vidra-AI/processing"
)

// AudioSource resolves a scene's audio clip. Loader satisfies this; tests
// substitute their own.
type AudioSource interface {
	SceneAudio(ctx context.Context, videoID string, index int) (string, error)
}

// Playback states. The controller is either idle or playing exactly one
// scene.
const (
	StateIdle    = "idle"
	StatePlaying = "playing"
)

// silentFallback is how long a scene holds on screen when its audio cannot
// be loaded. Playback degrades to a silent slideshow instead of stalling.
const silentFallback = 3 * time.Second

// SceneFunc is called as each scene starts playing.
type SceneFunc func(index int, audioURL string)

// Controller drives sequential scene playback for one video. Scenes play in
// order, each for the duration of its audio clip, and the controller returns
// to idle when the last scene finishes or Stop is called.
type Controller struct {
	source AudioSource

	mu     sync.Mutex
	state  string
	scene  int
	cancel context.CancelFunc
	epoch  int

	// sleep is swapped out in tests so playback does not take real time.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewController(source AudioSource) *Controller {
	return &Controller{
		source: source,
		state:  StateIdle,
		scene:  -1,
		sleep:  sleepCtx,
	}
}

// State reports the current playback state and scene index. The index is -1
// when idle.
func (c *Controller) State() (string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.scene
}

// PlayScene plays a single scene and returns when it finishes or Stop is
// called.
func (c *Controller) PlayScene(ctx context.Context, videoID string, index int, onScene SceneFunc) error {
	return c.run(ctx, videoID, index, index+1, onScene)
}

// PlayAll plays scenes 0..sceneCount-1 back to back, each exactly once.
func (c *Controller) PlayAll(ctx context.Context, videoID string, sceneCount int, onScene SceneFunc) error {
	return c.run(ctx, videoID, 0, sceneCount, onScene)
}

// Stop interrupts playback and returns the controller to idle. Safe to call
// when already idle.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Controller) run(ctx context.Context, videoID string, from, to int, onScene SceneFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Starting playback supersedes whatever was playing. The epoch guards
	// the shared state: a superseded run must not clobber its successor's
	// bookkeeping on the way out.
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.epoch++
	epoch := c.epoch
	c.state = StatePlaying
	c.mu.Unlock()

	defer func() {
		cancel()
		c.mu.Lock()
		if c.epoch == epoch {
			c.cancel = nil
			c.state = StateIdle
			c.scene = -1
		}
		c.mu.Unlock()
	}()

	for i := from; i < to; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		c.mu.Lock()
		if c.epoch == epoch {
			c.scene = i
		}
		c.mu.Unlock()

		hold := silentFallback
		audioURL, err := c.source.SceneAudio(ctx, videoID, i)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// A scene that does not exist is a caller error, not a
			// synthesis failure to play through.
			if errors.Is(err, ErrSceneOutOfRange) {
				return err
			}
			log.Printf("Scene %d audio unavailable, playing silent: %v", i, err)
			audioURL = ""
		} else if d := ClipDuration(audioURL); d > 0 {
			hold = d
		}

		if onScene != nil {
			onScene(i, audioURL)
		}
		if err := c.sleep(ctx, hold); err != nil {
			return err
		}
	}
	return nil
}

// ClipDuration extracts the playing time of a WAV data URI. Returns 0 for
// anything else; callers fall back to the fixed hold.
func ClipDuration(dataURI string) time.Duration {
	const prefix = "data:audio/wav;base64,"
	if !strings.HasPrefix(dataURI, prefix) {
		return 0
	}
	wav, err := base64.StdEncoding.DecodeString(dataURI[len(prefix):])
	if err != nil {
		return 0
	}
	secs := processing.WAVDuration(wav)
	return time.Duration(secs * float64(time.Second))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
