package models

// VoiceOption is a selectable narrator. Not persisted; served from the voice
// catalog (static defaults or the provider's voice listing).
type VoiceOption struct {
	ID         string `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Provider   string `json:"provider" yaml:"provider"`
	Gender     string `json:"gender,omitempty" yaml:"gender,omitempty"`
	AvatarURL  string `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty"`
	PreviewURL string `json:"preview_url,omitempty" yaml:"preview_url,omitempty"`
}

// NicheCategory is a static catalog entry describing a content vertical,
// used to prefill series creation.
type NicheCategory struct {
	ID               string `json:"id" yaml:"id"`
	Name             string `json:"name" yaml:"name"`
	Group            string `json:"group" yaml:"group"`
	Icon             string `json:"icon" yaml:"icon"`
	Tone             string `json:"tone" yaml:"tone"`
	Style            string `json:"style" yaml:"style"`
	Description      string `json:"description" yaml:"description"`
	SuggestedVoiceID string `json:"suggested_voice_id" yaml:"suggested_voice_id"`
}
