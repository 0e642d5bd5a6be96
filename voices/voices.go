// Package voices exposes the narration voices available to a series.
package voices

import "github.com/saaabbasi2121-ai/Vidra-AI/models"

// Defaults is the built-in voice roster. Every entry is accepted by the
// speech backend as-is; the id doubles as the synthesis voice parameter.
var Defaults = []models.VoiceOption{
	{ID: "alloy", Name: "Alloy", Provider: "openai", Gender: "neutral", AvatarURL: "/avatars/alloy.png"},
	{ID: "echo", Name: "Echo", Provider: "openai", Gender: "male", AvatarURL: "/avatars/echo.png"},
	{ID: "fable", Name: "Fable", Provider: "openai", Gender: "male", AvatarURL: "/avatars/fable.png"},
	{ID: "onyx", Name: "Onyx", Provider: "openai", Gender: "male", AvatarURL: "/avatars/onyx.png"},
	{ID: "nova", Name: "Nova", Provider: "openai", Gender: "female", AvatarURL: "/avatars/nova.png"},
	{ID: "shimmer", Name: "Shimmer", Provider: "openai", Gender: "female", AvatarURL: "/avatars/shimmer.png"},
}

// ByID finds a voice in the roster.
func ByID(id string) (models.VoiceOption, bool) {
	for _, v := range Defaults {
		if v.ID == id {
			return v, true
		}
	}
	return models.VoiceOption{}, false
}
