package processing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/saaabbasi2121-ai/Vidra-AI/internal/platform"
	"github.com/saaabbasi2121-ai/Vidra-AI/models"
)

const testPlaceholder = "https://placeholder.test/frame.png"

// fakeBackend is a minimal stand-in for the generation API. Handlers can be
// swapped per test; unset handlers serve a happy-path default.
type fakeBackend struct {
	chat   func(w http.ResponseWriter, body string)
	images func(w http.ResponseWriter, body string)
	speech func(w http.ResponseWriter, body string)
}

func (f *fakeBackend) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body := string(raw)
		switch {
		case strings.HasSuffix(r.URL.Path, "/chat/completions"):
			f.chat(w, body)
		case strings.HasSuffix(r.URL.Path, "/images/generations"):
			f.images(w, body)
		case strings.HasSuffix(r.URL.Path, "/audio/speech"):
			f.speech(w, body)
		default:
			http.NotFound(w, r)
		}
	})
}

func serveChatScript(w http.ResponseWriter, script Script) {
	content, _ := json.Marshal(script)
	resp := map[string]interface{}{
		"choices": []map[string]interface{}{
			{
				"message":       map[string]interface{}{"role": "assistant", "content": string(content)},
				"finish_reason": "stop",
			},
		},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func serveImage(w http.ResponseWriter, b64 string) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"data":[{"b64_json":%q}]}`, b64)
}

func testScript(sceneCount int) Script {
	s := Script{
		Title:           "Five Facts That Feel Illegal To Know",
		CharacterAnchor: "a lone astronaut in a worn orange suit",
		Hook:            "You were never supposed to hear this.",
		CallToAction:    "Follow for more.",
	}
	for i := 0; i < sceneCount; i++ {
		s.Scenes = append(s.Scenes, ScriptScene{
			Text:        fmt.Sprintf("Scene %d narration.", i),
			ImagePrompt: fmt.Sprintf("scene-prompt-%d", i),
		})
	}
	return s
}

func newTestGenerator(t *testing.T, backend *fakeBackend) (*Generator, *httptest.Server) {
	t.Helper()
	if backend.chat == nil {
		backend.chat = func(w http.ResponseWriter, _ string) { serveChatScript(w, testScript(6)) }
	}
	if backend.images == nil {
		backend.images = func(w http.ResponseWriter, _ string) { serveImage(w, "aGVsbG8=") }
	}
	if backend.speech == nil {
		backend.speech = func(w http.ResponseWriter, _ string) { w.Write(make([]byte, 4800)) }
	}

	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	cfg := platform.Config{}
	cfg.OpenAI.APIKey = "test-key"
	cfg.OpenAI.BaseURL = srv.URL
	cfg.OpenAI.ChatModel = "gpt-4o-mini"
	cfg.OpenAI.ImageModel = "dall-e-3"
	cfg.OpenAI.SpeechModel = "tts-1"
	cfg.Generation.ImageConcurrency = 2
	cfg.Generation.PlaceholderImageURL = testPlaceholder

	gen, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return gen, srv
}

func testSeries() models.Series {
	return models.Series{
		ID:              "series-1",
		Topic:           "Space Facts",
		Description:     "The strangest corners of the universe",
		Tone:            "Awestruck",
		Style:           "Deep space renders",
		VoiceID:         "onyx",
		DurationSeconds: 60,
	}
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	_, err := NewGenerator(platform.Config{})
	if err != ErrMissingAPIKey {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestGenerateScript(t *testing.T) {
	gen, _ := newTestGenerator(t, &fakeBackend{})

	script, err := gen.GenerateScript(context.Background(), testSeries())
	if err != nil {
		t.Fatalf("GenerateScript: %v", err)
	}
	if len(script.Scenes) != 6 {
		t.Errorf("scene count = %d, want 6", len(script.Scenes))
	}
	if script.Title == "" || script.Hook == "" {
		t.Error("expected title and hook to be populated")
	}

	flat := script.FlattenedScript()
	if !strings.HasPrefix(flat, script.Hook) {
		t.Error("flattened script must start with the hook")
	}
	for _, s := range script.Scenes {
		if !strings.Contains(flat, s.Text) {
			t.Errorf("flattened script missing scene line %q", s.Text)
		}
	}
}

func TestGenerateScriptRequestCarriesPacing(t *testing.T) {
	var chatBody string
	backend := &fakeBackend{
		chat: func(w http.ResponseWriter, body string) {
			chatBody = body
			serveChatScript(w, testScript(6))
		},
	}
	gen, _ := newTestGenerator(t, backend)

	if _, err := gen.GenerateScript(context.Background(), testSeries()); err != nil {
		t.Fatalf("GenerateScript: %v", err)
	}
	// 60s series: 6 scenes, ~150 words.
	if !strings.Contains(chatBody, "exactly 6 scenes") {
		t.Error("prompt does not request the derived scene count")
	}
	if !strings.Contains(chatBody, "~150 words") {
		t.Error("prompt does not request the derived word budget")
	}
}

func TestGenerateScriptTruncatesOverlongResponse(t *testing.T) {
	backend := &fakeBackend{
		chat: func(w http.ResponseWriter, _ string) { serveChatScript(w, testScript(9)) },
	}
	gen, _ := newTestGenerator(t, backend)

	script, err := gen.GenerateScript(context.Background(), testSeries())
	if err != nil {
		t.Fatalf("GenerateScript: %v", err)
	}
	if len(script.Scenes) != 6 {
		t.Errorf("scene count = %d, want truncation to 6", len(script.Scenes))
	}
}

func TestGenerateScriptRejectsEmptyStoryboard(t *testing.T) {
	backend := &fakeBackend{
		chat: func(w http.ResponseWriter, _ string) { serveChatScript(w, testScript(0)) },
	}
	gen, _ := newTestGenerator(t, backend)

	if _, err := gen.GenerateScript(context.Background(), testSeries()); err == nil {
		t.Fatal("expected error for a script with no scenes")
	}
}

func TestAssembleBundle(t *testing.T) {
	var imageCalls int64
	backend := &fakeBackend{
		images: func(w http.ResponseWriter, body string) {
			atomic.AddInt64(&imageCalls, 1)
			// Echo the scene index back so ordering is observable.
			for i := 0; i < 6; i++ {
				if strings.Contains(body, fmt.Sprintf("scene-prompt-%d", i)) {
					serveImage(w, fmt.Sprintf("img-%d", i))
					return
				}
			}
			http.Error(w, "unknown prompt", http.StatusBadRequest)
		},
	}
	gen, _ := newTestGenerator(t, backend)

	var progress []string
	bundle, err := gen.AssembleBundle(context.Background(), testSeries(), func(msg string) {
		progress = append(progress, msg)
	})
	if err != nil {
		t.Fatalf("AssembleBundle: %v", err)
	}

	if len(bundle.Scenes) != 6 {
		t.Fatalf("scene count = %d, want 6", len(bundle.Scenes))
	}
	if got := atomic.LoadInt64(&imageCalls); got != 6 {
		t.Errorf("image calls = %d, want 6", got)
	}
	for i, s := range bundle.Scenes {
		want := fmt.Sprintf("data:image/png;base64,img-%d", i)
		if s.ImageURL != want {
			t.Errorf("scene %d image = %q, want %q (ordering broken?)", i, s.ImageURL, want)
		}
		if s.AudioURL != "" {
			t.Errorf("scene %d has audio %q, audio must stay lazy", i, s.AudioURL)
		}
	}
	if bundle.ThumbnailURL != bundle.Scenes[0].ImageURL {
		t.Errorf("thumbnail = %q, want first scene image", bundle.ThumbnailURL)
	}
	if len(progress) == 0 {
		t.Error("expected progress callbacks")
	}
}

func TestAssembleBundleProgressIsSerialized(t *testing.T) {
	gen, _ := newTestGenerator(t, &fakeBackend{})

	// A plain slice is safe here precisely because the callback contract is
	// serial; the race detector flags any regression.
	var progress []string
	_, err := gen.AssembleBundle(context.Background(), testSeries(), func(msg string) {
		progress = append(progress, msg)
	})
	if err != nil {
		t.Fatalf("AssembleBundle: %v", err)
	}

	// Script start + script ready + one line per scene + final assembly.
	want := 2 + 6 + 1
	if len(progress) != want {
		t.Errorf("progress lines = %d, want %d: %q", len(progress), want, progress)
	}
	sceneLines := 0
	for _, msg := range progress {
		if strings.HasPrefix(msg, "Visualizing scene ") {
			sceneLines++
		}
	}
	if sceneLines != 6 {
		t.Errorf("scene progress lines = %d, want 6", sceneLines)
	}
}

func TestAssembleBundleDegradesFailedSceneToPlaceholder(t *testing.T) {
	backend := &fakeBackend{
		images: func(w http.ResponseWriter, body string) {
			if strings.Contains(body, "scene-prompt-2") {
				// 400 is terminal for the client, no retry loop in tests.
				http.Error(w, "model refused", http.StatusBadRequest)
				return
			}
			serveImage(w, "aGVsbG8=")
		},
	}
	gen, _ := newTestGenerator(t, backend)

	bundle, err := gen.AssembleBundle(context.Background(), testSeries(), nil)
	if err != nil {
		t.Fatalf("AssembleBundle: %v", err)
	}

	for i, s := range bundle.Scenes {
		if i == 2 {
			if s.ImageURL != testPlaceholder {
				t.Errorf("failed scene image = %q, want placeholder", s.ImageURL)
			}
			continue
		}
		if s.ImageURL == testPlaceholder || s.ImageURL == "" {
			t.Errorf("healthy scene %d image = %q, placeholder leaked", i, s.ImageURL)
		}
	}
}

func TestAssembleBundleAbortsOnScriptFailure(t *testing.T) {
	var imageCalls int64
	backend := &fakeBackend{
		chat: func(w http.ResponseWriter, _ string) {
			http.Error(w, "quota exceeded", http.StatusBadRequest)
		},
		images: func(w http.ResponseWriter, _ string) {
			atomic.AddInt64(&imageCalls, 1)
			serveImage(w, "aGVsbG8=")
		},
	}
	gen, _ := newTestGenerator(t, backend)

	if _, err := gen.AssembleBundle(context.Background(), testSeries(), nil); err == nil {
		t.Fatal("expected bundle to fail when the script fails")
	}
	if got := atomic.LoadInt64(&imageCalls); got != 0 {
		t.Errorf("image calls after script failure = %d, want 0", got)
	}
}

func TestSynthesizeWrapsPCM(t *testing.T) {
	pcm := make([]byte, 48000)
	backend := &fakeBackend{
		speech: func(w http.ResponseWriter, _ string) { w.Write(pcm) },
	}
	gen, _ := newTestGenerator(t, backend)

	uri, err := gen.Synthesize(context.Background(), "hello there", "onyx")
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if !strings.HasPrefix(uri, "data:audio/wav;base64,") {
		t.Fatalf("want a wav data uri, got %.40q", uri)
	}
}

func TestSynthesizeValidatesInput(t *testing.T) {
	gen, _ := newTestGenerator(t, &fakeBackend{})

	if _, err := gen.Synthesize(context.Background(), "", "onyx"); err == nil {
		t.Error("expected error for empty text")
	}
	if _, err := gen.Synthesize(context.Background(), "hello", ""); err == nil {
		t.Error("expected error for missing voice")
	}
}
