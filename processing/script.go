package processing

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/saaabbasi2121-ai/Vidra-AI/models"
)

// ScriptScene is one beat of the generated storyboard.
type ScriptScene struct {
	Text        string `json:"text" jsonschema_description:"The voiceover line for this scene"`
	ImagePrompt string `json:"imagePrompt" jsonschema_description:"A detailed prompt for generating this scene's image"`
}

// Script is the structured response of one script-generation call.
type Script struct {
	Title           string        `json:"title" jsonschema_description:"A catchy title for the video"`
	CharacterAnchor string        `json:"characterAnchor" jsonschema_description:"A recurring subject description reused across scene image prompts for visual consistency"`
	Hook            string        `json:"hook" jsonschema_description:"The first 3 seconds, written to grab attention"`
	Scenes          []ScriptScene `json:"scenes" jsonschema_description:"The ordered scenes making up the video"`
	CallToAction    string        `json:"callToAction" jsonschema_description:"A closing subscribe/follow prompt"`
}

var scriptSchema = GenerateSchema[Script]()

// FlattenedScript joins the hook and every scene line into the single script
// string stored on the video record.
func (s *Script) FlattenedScript() string {
	out := s.Hook
	for _, scene := range s.Scenes {
		out += " " + scene.Text
	}
	return out
}

// GenerateScript turns a series definition into a structured script. The
// scene count and word budget derived from the target duration are passed in
// as explicit constraints; an over-long response is truncated and a short one
// accepted with a log line, so one loose completion never fails the bundle.
func (g *Generator) GenerateScript(ctx context.Context, series models.Series) (*Script, error) {
	sceneCount := ScenesFor(series.DurationSeconds)
	wordCount := WordsFor(series.DurationSeconds)
	wordsPerScene := WordsPerScene(series.DurationSeconds)

	// A fresh seed per invocation keeps retries from reproducing an earlier
	// script.
	seed := uuid.NewString()

	prompt := fmt.Sprintf(`Create a viral short-form video script for a faceless vertical video.

Topic: %s
Description: %s
Tone: %s
Visual Style: %s
Target Duration: %d seconds
Target Word Count: ~%d words
Uniqueness Seed: %s (use this to make the script different from any previous one)

Requirements:
- title: a catchy title under 100 characters
- characterAnchor: a short recurring subject description to reuse in every scene's image prompt so the visuals stay consistent
- hook: the first 3 seconds, written to grab attention
- scenes: exactly %d scenes, each with a voiceover line of approximately %d words and a detailed image generation prompt
- callToAction: end with a subscribe/follow prompt`,
		series.Topic, series.Description, series.Tone, series.Style,
		series.DurationSeconds, wordCount, seed, sceneCount, wordsPerScene)

	script, err := getStructuredResponse[Script](ctx, g, prompt, scriptSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to generate script: %w", err)
	}

	if len(script.Scenes) == 0 {
		return nil, fmt.Errorf("script response contained no scenes")
	}
	if len(script.Scenes) > sceneCount {
		log.Printf("Script returned %d scenes, truncating to the requested %d", len(script.Scenes), sceneCount)
		script.Scenes = script.Scenes[:sceneCount]
	} else if len(script.Scenes) < sceneCount {
		log.Printf("Script returned %d scenes, fewer than the requested %d", len(script.Scenes), sceneCount)
	}

	return script, nil
}
