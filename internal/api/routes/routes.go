package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/avelyx/prepmate/internal/api/handlers"
)

type Deps struct {
	Auth       gin.HandlerFunc
	Chat       *handlers.ChatHandler
	Assessment *handlers.AssessmentHandler
	Quiz       *handlers.QuizHandler
	Flashcard  *handlers.FlashcardHandler
	Plan       *handlers.PlanHandler
	Resource   *handlers.ResourceHandler
	Profile    *handlers.ProfileHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Protected routes (JWT)
	auth := r.Group("/")
	auth.Use(d.Auth)

	auth.POST("/chat", d.Chat.Send)
	auth.GET("/conversations", d.Chat.ListConversations)
	auth.GET("/conversations/:conversation_id/messages", d.Chat.ListMessages)

	auth.POST("/assessments/grade", d.Assessment.Grade)
	auth.GET("/assessments", d.Assessment.ListRecent)

	auth.POST("/quizzes/generate", d.Quiz.Generate)
	auth.GET("/quizzes/:quiz_id", d.Quiz.Get)
	auth.POST("/quizzes/:quiz_id/attempts", d.Quiz.SubmitAttempt)

	auth.POST("/flashcards/generate", d.Flashcard.Generate)
	auth.GET("/flashcards", d.Flashcard.List)

	auth.POST("/plan/generate", d.Plan.Generate)

	auth.POST("/resources/search", d.Resource.Search)

	auth.GET("/profile/me", d.Profile.Me)
	auth.PUT("/profile/update", d.Profile.Update)
}
