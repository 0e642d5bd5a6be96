package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/saaabbasi2121-ai/Vidra-AI/catalog"
	"github.com/saaabbasi2121-ai/Vidra-AI/internal/platform"
	"github.com/saaabbasi2121-ai/Vidra-AI/playback"
	"github.com/saaabbasi2121-ai/Vidra-AI/processing"
	"github.com/saaabbasi2121-ai/Vidra-AI/series"
	"github.com/saaabbasi2121-ai/Vidra-AI/social"
	"github.com/saaabbasi2121-ai/Vidra-AI/videos"
	"github.com/saaabbasi2121-ai/Vidra-AI/voices"
)

type Server struct {
	Config platform.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *gin.Engine
}

func NewServer() (*Server, error) {
	cfg, err := platform.LoadConfig()
	if err != nil {
		return nil, err
	}

	db := platform.NewDBConnection(cfg)
	rdb := platform.NewRedisClient(cfg)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	server := &Server{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Router: router,
	}
	server.setupRoutes()

	return server, nil
}

func (s *Server) setupRoutes() {
	s.Router.GET("/health", func(c *gin.Context) {
		sqlDB, err := s.DB.DB()
		if err != nil {
			c.JSON(500, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(500, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "healthy", "database": "connected"})
	})

	s.Router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Vidra API v1"})
	})

	gen, err := processing.NewGenerator(s.Config)
	if err != nil {
		// The API still serves everything that does not synthesize; the
		// worker preflight surfaces the missing credential to the user.
		log.Printf("Generation backend unavailable: %v", err)
	}

	seriesHandler := series.NewHandler(s.DB, s.Redis)
	videoHandler := videos.NewHandler(s.DB, s.Redis)
	catalogHandler := catalog.NewHandler()
	socialHandler := social.NewHandler(s.DB, s.Config.JWTSecret)

	seriesRoutes := s.Router.Group("/series")
	{
		seriesRoutes.POST("", seriesHandler.CreateSeries)
		seriesRoutes.GET("", seriesHandler.ListSeries)
		seriesRoutes.GET("/:id/videos", seriesHandler.GetSeriesVideos)
		seriesRoutes.POST("/:id/toggle", seriesHandler.ToggleSeries)
		seriesRoutes.DELETE("/:id", seriesHandler.DeleteSeries)
	}

	videoRoutes := s.Router.Group("/videos")
	{
		videoRoutes.GET("", videoHandler.ListVideos)
		videoRoutes.POST("/upload", videoHandler.UploadVideo)
		videoRoutes.POST("/import", videoHandler.ImportVideo)
		videoRoutes.GET("/:id", videoHandler.GetVideo)
		videoRoutes.GET("/:id/export", videoHandler.ExportVideo)
		videoRoutes.POST("/:id/regenerate", videoHandler.RegenerateVideo)
		videoRoutes.DELETE("/:id", videoHandler.DeleteVideo)
	}

	if gen != nil {
		playbackHandler := playback.NewHandler(playback.NewLoader(s.DB, gen))
		s.Router.POST("/videos/:id/scenes/:scene/audio", playbackHandler.GetSceneAudio)

		voiceHandler := voices.NewHandler(gen)
		s.Router.GET("/voices", voiceHandler.ListVoices)
		s.Router.POST("/voices/:id/preview", voiceHandler.PreviewVoice)
	} else {
		s.Router.GET("/voices", func(c *gin.Context) {
			c.JSON(200, voices.Defaults)
		})
	}

	s.Router.GET("/catalog/niches", catalogHandler.ListNiches)

	socialRoutes := s.Router.Group("/social")
	{
		socialRoutes.GET("", socialHandler.ListAccounts)
		socialRoutes.POST("/:platform/connect", socialHandler.Connect)
		socialRoutes.POST("/:platform/push", socialHandler.Push)
		socialRoutes.DELETE("/:platform", socialHandler.Disconnect)
	}
}

func (s *Server) Run() error {
	log.Printf("Server starting on port %s", s.Config.ServerPort)
	return s.Router.Run(":" + s.Config.ServerPort)
}

func main() {
	server, err := NewServer()
	if err != nil {
		log.Fatal("Failed to create server:", err)
	}
	if err := server.Run(); err != nil {
		log.Fatal("Failed to run server:", err)
	}
}
