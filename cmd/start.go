package cmd

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/tieubaoca/pdfchat-be/config"
	"github.com/tieubaoca/pdfchat-be/handler"
	"github.com/tieubaoca/pdfchat-be/service"
	"github.com/tieubaoca/pdfchat-be/storage"
)

// startServerCmd represents the startServer command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the chat server",
	Long:  `Starts a server that handles AI chat and PDF extraction requests`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		// Initialize services
		pdfService := service.NewPDFService()

		store := storage.NewFileStore(cfg.SessionFile)
		if err := store.Load(); err != nil {
			log.Fatalf("Failed to load sessions: %v", err)
		}

		var aiService service.AIService
		switch cfg.Provider {
		case "openai":
			aiService = service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model)
		default:
			geminiService, err := service.NewGeminiService(context.Background(), cfg.GeminiAPIKey, cfg.Model)
			if err != nil {
				log.Fatalf("Failed to create Gemini client: %v", err)
			}
			defer geminiService.Close()
			aiService = geminiService
		}

		chatService := service.NewChatService(store, pdfService, aiService)
		wsService := service.NewWebSocketService(aiService)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		chatHandler := handler.NewChatHandler(aiService)
		extractHandler := handler.NewExtractHandler(pdfService, cfg.MaxUploadSize)
		sessionHandler := handler.NewSessionHandler(chatService, store, cfg.MaxUploadSize)

		// Setup Gin router
		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		apiV1 := router.Group("/api/v1")
		{
			apiV1.POST("/chat", chatHandler.HandleChat)
			apiV1.POST("/extract-pdf", extractHandler.HandleExtract)

			apiV1.POST("/sessions", sessionHandler.HandleCreateSession)
			apiV1.GET("/sessions", sessionHandler.HandleListSessions)
			apiV1.POST("/sessions/:id/select", sessionHandler.HandleSelectSession)
			apiV1.POST("/sessions/:id/messages", sessionHandler.HandleSubmitMessage)
			apiV1.POST("/sessions/:id/document", sessionHandler.HandleUploadDocument)

			apiV1.GET("/ws/chat", func(c *gin.Context) {
				wsService.HandleChat(c.Writer, c.Request)
			})
		}

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(startServerCmd)
	startServerCmd.Flags().StringP("config", "c", "config/config.yaml", "config file")
}
