package playback

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/saaabbasi2121-ai/Vidra-AI/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// sqlite is a single-writer store; one pooled connection keeps
	// concurrent test transactions queued instead of erroring.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}
	if err := db.AutoMigrate(&models.Video{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type countingSynth struct {
	calls int64
	delay time.Duration
	err   error
}

func (s *countingSynth) Synthesize(ctx context.Context, text, voiceID string) (string, error) {
	atomic.AddInt64(&s.calls, 1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return "", s.err
	}
	return "data:audio/wav;base64,clip-for-" + text, nil
}

func seedVideo(t *testing.T, db *gorm.DB) models.Video {
	t.Helper()
	video := models.Video{
		ID:      "video-1",
		Title:   "Test Video",
		VoiceID: "onyx",
		Status:  models.VideoStatusReady,
		Scenes: models.SceneList{
			{Text: "scene zero", ImagePrompt: "p0", ImageURL: "img0"},
			{Text: "scene one", ImagePrompt: "p1", ImageURL: "img1"},
		},
	}
	if err := db.Create(&video).Error; err != nil {
		t.Fatalf("seed video: %v", err)
	}
	return video
}

func TestSceneAudioSynthesizesOnceAndPersists(t *testing.T) {
	db := openTestDB(t)
	seedVideo(t, db)
	synth := &countingSynth{}
	loader := NewLoader(db, synth)

	first, err := loader.SceneAudio(context.Background(), "video-1", 0)
	if err != nil {
		t.Fatalf("SceneAudio: %v", err)
	}
	second, err := loader.SceneAudio(context.Background(), "video-1", 0)
	if err != nil {
		t.Fatalf("SceneAudio (cached): %v", err)
	}

	if first != second {
		t.Errorf("cached clip differs: %q vs %q", first, second)
	}
	if got := atomic.LoadInt64(&synth.calls); got != 1 {
		t.Errorf("synth calls = %d, want 1", got)
	}

	// The clip survives a reload from storage.
	var video models.Video
	if err := db.First(&video, "id = ?", "video-1").Error; err != nil {
		t.Fatalf("reload video: %v", err)
	}
	if video.Scenes[0].AudioURL != first {
		t.Errorf("persisted audio = %q, want %q", video.Scenes[0].AudioURL, first)
	}
	if video.Scenes[1].AudioURL != "" {
		t.Error("untouched scene gained audio")
	}
}

func TestSceneAudioCollapsesConcurrentRequests(t *testing.T) {
	db := openTestDB(t)
	seedVideo(t, db)
	synth := &countingSynth{delay: 50 * time.Millisecond}
	loader := NewLoader(db, synth)

	const n = 8
	var wg sync.WaitGroup
	results := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = loader.SceneAudio(context.Background(), "video-1", 1)
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("request %d: %v", i, errs[i])
		}
		if results[i] != results[0] {
			t.Errorf("request %d got %q, want %q", i, results[i], results[0])
		}
	}
	if got := atomic.LoadInt64(&synth.calls); got != 1 {
		t.Errorf("synth calls = %d, want 1 for concurrent requests", got)
	}
}

func TestSceneAudioConcurrentDistinctScenesBothPersist(t *testing.T) {
	db := openTestDB(t)
	seedVideo(t, db)
	synth := &countingSynth{delay: 50 * time.Millisecond}
	loader := NewLoader(db, synth)

	// Overlapping first-plays of two different scenes: neither write-back
	// may drop the other's clip.
	var wg sync.WaitGroup
	urls := make([]string, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			urls[i], errs[i] = loader.SceneAudio(context.Background(), "video-1", i)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 2; i++ {
		if errs[i] != nil {
			t.Fatalf("scene %d: %v", i, errs[i])
		}
	}
	if got := atomic.LoadInt64(&synth.calls); got != 2 {
		t.Errorf("synth calls = %d, want one per scene", got)
	}

	var video models.Video
	if err := db.First(&video, "id = ?", "video-1").Error; err != nil {
		t.Fatalf("reload video: %v", err)
	}
	for i := 0; i < 2; i++ {
		if video.Scenes[i].AudioURL != urls[i] {
			t.Errorf("scene %d persisted audio = %q, want %q", i, video.Scenes[i].AudioURL, urls[i])
		}
	}

	// And neither scene re-synthesizes afterwards.
	for i := 0; i < 2; i++ {
		if _, err := loader.SceneAudio(context.Background(), "video-1", i); err != nil {
			t.Fatalf("cached scene %d: %v", i, err)
		}
	}
	if got := atomic.LoadInt64(&synth.calls); got != 2 {
		t.Errorf("synth calls after cache hits = %d, want still 2", got)
	}
}

func TestSceneAudioErrors(t *testing.T) {
	db := openTestDB(t)
	seedVideo(t, db)
	loader := NewLoader(db, &countingSynth{})

	if _, err := loader.SceneAudio(context.Background(), "missing", 0); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("missing video err = %v, want record not found", err)
	}
	if _, err := loader.SceneAudio(context.Background(), "video-1", 5); !errors.Is(err, ErrSceneOutOfRange) {
		t.Errorf("out of range err = %v, want ErrSceneOutOfRange", err)
	}
	if _, err := loader.SceneAudio(context.Background(), "video-1", -1); !errors.Is(err, ErrSceneOutOfRange) {
		t.Errorf("negative index err = %v, want ErrSceneOutOfRange", err)
	}
}

func TestSceneAudioSurfacesSynthFailure(t *testing.T) {
	db := openTestDB(t)
	seedVideo(t, db)
	loader := NewLoader(db, &countingSynth{err: errors.New("voice service down")})

	if _, err := loader.SceneAudio(context.Background(), "video-1", 0); err == nil {
		t.Fatal("expected synthesis failure to surface")
	}

	// No half-written clip on the record.
	var video models.Video
	if err := db.First(&video, "id = ?", "video-1").Error; err != nil {
		t.Fatalf("reload video: %v", err)
	}
	if video.Scenes[0].AudioURL != "" {
		t.Errorf("failed scene persisted audio %q", video.Scenes[0].AudioURL)
	}
}
