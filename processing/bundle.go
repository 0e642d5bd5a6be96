package processing

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/saaabbasi2121-ai/Vidra-AI/models"
)

// Bundle is one fully assembled video: script, illustrated scenes and a
// thumbnail, ready for preview. Scene audio is synthesized lazily at playback
// time, never here.
type Bundle struct {
	Title           string
	CharacterAnchor string
	Hook            string
	CallToAction    string
	Script          string
	Scenes          models.SceneList
	ThumbnailURL    string
}

// ProgressFunc receives coarse human-readable progress lines while a bundle
// is assembled. Calls are serialized; the callback never runs concurrently
// with itself.
type ProgressFunc func(msg string)

// AssembleBundle runs the generation pipeline for one series: a single script
// call, then one image call per scene with bounded concurrency, collected
// positionally so scene order is preserved. A failed scene image degrades to
// the placeholder frame; a failed script aborts the bundle.
func (g *Generator) AssembleBundle(ctx context.Context, series models.Series, progress ProgressFunc) (*Bundle, error) {
	if progress == nil {
		progress = func(string) {}
	}
	// Scene images are generated concurrently; the mutex keeps the progress
	// contract single-threaded for the caller.
	var progressMu sync.Mutex
	emit := func(msg string) {
		progressMu.Lock()
		progress(msg)
		progressMu.Unlock()
	}

	emit("Writing script...")
	script, err := g.GenerateScript(ctx, series)
	if err != nil {
		return nil, err
	}
	emit(fmt.Sprintf("Script ready: %q", script.Title))

	scenes := make(models.SceneList, len(script.Scenes))
	for i, s := range script.Scenes {
		scenes[i] = models.Scene{Text: s.Text, ImagePrompt: s.ImagePrompt}
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)
	total := len(scenes)
	for i := range scenes {
		i := i
		eg.Go(func() error {
			emit(fmt.Sprintf("Visualizing scene %d/%d...", i+1, total))
			img, err := g.GenerateImage(gctx, scenes[i].ImagePrompt, script.CharacterAnchor, series.Style)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Printf("Scene %d image failed, using placeholder: %v", i+1, err)
				scenes[i].ImageURL = g.placeholder
				return nil
			}
			scenes[i].ImageURL = img
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	emit("Assembling bundle...")
	return &Bundle{
		Title:           script.Title,
		CharacterAnchor: script.CharacterAnchor,
		Hook:            script.Hook,
		CallToAction:    script.CallToAction,
		Script:          script.FlattenedScript(),
		Scenes:          scenes,
		ThumbnailURL:    scenes[0].ImageURL,
	}, nil
}
