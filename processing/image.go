package processing

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
)

// GenerateImage turns a scene's visual prompt into one vertical frame,
// returned as a data URI. The character anchor keeps the subject consistent
// across a bundle's scenes; the style tag comes from the series.
func (g *Generator) GenerateImage(ctx context.Context, imagePrompt, characterAnchor, style string) (string, error) {
	prompt := imagePrompt
	if characterAnchor != "" {
		prompt = fmt.Sprintf("%s Recurring subject: %s.", prompt, characterAnchor)
	}
	if style != "" {
		prompt = fmt.Sprintf("%s Style: %s.", prompt, style)
	}
	prompt += " High resolution, vertical 9:16 aspect ratio, cinematic photography, professional lighting."

	resp, err := g.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(g.imageModel),
		N:              openai.Int(1),
		Size:           openai.ImageGenerateParamsSize1024x1792,
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
	})
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return "", fmt.Errorf("image generation returned no image data")
	}

	return "data:image/png;base64," + resp.Data[0].B64JSON, nil
}
