package platform

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries everything the api, worker and scheduler binaries need.
// Values come from config.yaml when present, overridden by environment
// variables (VIDRA_OPENAI_API_KEY etc.); a .env file is loaded first so
// local development matches the deployed environment.
type Config struct {
	ServerPort  string `mapstructure:"server_port"`
	FrontendURL string `mapstructure:"frontend_url"`
	DatabaseURL string `mapstructure:"database_url"`
	RedisURL    string `mapstructure:"redis_url"`
	JWTSecret   string `mapstructure:"jwt_secret"`

	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Generation GenerationConfig `mapstructure:"generation"`
}

type OpenAIConfig struct {
	APIKey      string `mapstructure:"api_key"`
	BaseURL     string `mapstructure:"base_url"`
	ChatModel   string `mapstructure:"chat_model"`
	ImageModel  string `mapstructure:"image_model"`
	SpeechModel string `mapstructure:"speech_model"`
}

type GenerationConfig struct {
	// ImageConcurrency bounds the per-bundle image fan-out.
	ImageConcurrency int `mapstructure:"image_concurrency"`
	// PlaceholderImageURL replaces a scene image whose synthesis failed.
	PlaceholderImageURL string `mapstructure:"placeholder_image_url"`
}

// DefaultPlaceholderImage is the static frame used when scene image
// synthesis fails; the bundle still succeeds.
const DefaultPlaceholderImage = "https://images.unsplash.com/photo-1618005182384-a83a8bd57fbe?q=80&w=800"

// LoadConfig reads config.yaml (optional) and the environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("server_port", "8080")
	v.SetDefault("frontend_url", "http://localhost:3000")
	v.SetDefault("database_url", "vidra.db")
	v.SetDefault("redis_url", "localhost:6379")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.chat_model", "gpt-4o-mini")
	v.SetDefault("openai.image_model", "dall-e-3")
	v.SetDefault("openai.speech_model", "tts-1")
	v.SetDefault("generation.image_concurrency", 3)
	v.SetDefault("generation.placeholder_image_url", DefaultPlaceholderImage)

	v.SetEnvPrefix("VIDRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// OPENAI_API_KEY is honored without the prefix since every deployment
	// already sets it for the SDK.
	_ = v.BindEnv("openai.api_key", "VIDRA_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("database_url", "VIDRA_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("redis_url", "VIDRA_REDIS_URL", "REDIS_URL")
	_ = v.BindEnv("jwt_secret", "VIDRA_JWT_SECRET", "JWT_SECRET")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
		log.Println("No config.yaml found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
