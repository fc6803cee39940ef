package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/avelyx/prepmate/config"
	"github.com/avelyx/prepmate/internal/api/handlers"
	"github.com/avelyx/prepmate/internal/api/middleware"
	"github.com/avelyx/prepmate/internal/api/routes"
	"github.com/avelyx/prepmate/internal/cache"
	"github.com/avelyx/prepmate/internal/logger"
	"github.com/avelyx/prepmate/internal/providers/llm"
	mongorepo "github.com/avelyx/prepmate/internal/repositories/mongo"
	pgrepo "github.com/avelyx/prepmate/internal/repositories/postgres"
	"github.com/avelyx/prepmate/internal/services"
)

func main() {
	_ = godotenv.Load()

	l := logger.New()

	if err := config.InitPostgres(); err != nil {
		log.Fatalf("PostgreSQL init error: %v", err)
	}
	if err := config.MigratePostgres(); err != nil {
		log.Fatalf("PostgreSQL migrate error: %v", err)
	}
	l.Info("PostgreSQL connected")

	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	l.Info("MongoDB connected")

	// profile cache; the service works without it
	var profileCache cache.Cache
	if os.Getenv("REDIS_ADDR") != "" || os.Getenv("REDIS_URL") != "" {
		if err := config.InitRedis(); err != nil {
			log.Fatalf("Redis init error: %v", err)
		}
		profileCache = cache.NewRedisCache(config.RedisClient, "prepmate")
		l.Info("Redis connected")
	}

	provider, err := newLLMProvider()
	if err != nil {
		log.Fatalf("LLM provider init error: %v", err)
	}
	defer provider.Close()

	// Repositories
	convos := pgrepo.NewConversationRepo(config.PostgresDB)
	messages := pgrepo.NewMessageRepo(config.PostgresDB)
	assessments := pgrepo.NewAssessmentRepo(config.PostgresDB)
	quizzes := pgrepo.NewQuizRepo(config.PostgresDB)
	flashcards := pgrepo.NewFlashcardRepo(config.PostgresDB)
	profiles := pgrepo.NewProfileRepo(config.PostgresDB)
	resourceLog := mongorepo.NewResourceRequestRepo(config.MongoDatabase())

	// Services
	profileSvc := services.NewProfileService(profiles, profileCache)
	chatSvc := services.NewChatService(convos, messages, provider, l)
	assessmentSvc := services.NewAssessmentService(assessments, provider, l)
	quizSvc := services.NewQuizService(quizzes, provider, l)
	flashcardSvc := services.NewFlashcardService(flashcards, provider, l)
	planSvc := services.NewPlanService(assessments, quizzes, profileSvc, provider, l)
	resourceSvc := services.NewResourceService(resourceLog, l)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(l))

	routes.RegisterRoutes(r, routes.Deps{
		Auth: middleware.JWTAuth(
			os.Getenv("AUTH_JWT_SECRET"),
			os.Getenv("AUTH_JWT_ISSUER"),
			os.Getenv("AUTH_JWT_AUDIENCE"),
		),
		Chat:       handlers.NewChatHandler(chatSvc),
		Assessment: handlers.NewAssessmentHandler(assessmentSvc),
		Quiz:       handlers.NewQuizHandler(quizSvc),
		Flashcard:  handlers.NewFlashcardHandler(flashcardSvc),
		Plan:       handlers.NewPlanHandler(planSvc),
		Resource:   handlers.NewResourceHandler(resourceSvc),
		Profile:    handlers.NewProfileHandler(profileSvc),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func newLLMProvider() (llm.Provider, error) {
	if os.Getenv("LLM_PROVIDER") == "vertex" {
		return llm.NewVertexGemini(
			context.Background(),
			os.Getenv("VERTEX_PROJECT_ID"),
			os.Getenv("VERTEX_LOCATION"),
			os.Getenv("VERTEX_MODEL"),
		)
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4.1-2025-04-14"
	}
	return llm.NewOpenAI(llm.OpenAIConfig{
		BaseURL: os.Getenv("OPENAI_BASE_URL"),
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		Model:   model,
	}), nil
}
