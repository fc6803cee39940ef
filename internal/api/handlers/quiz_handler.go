package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/avelyx/prepmate/internal/services"
	"github.com/avelyx/prepmate/internal/utils"
)

type QuizHandler struct {
	svc services.QuizService
}

func NewQuizHandler(svc services.QuizService) *QuizHandler {
	return &QuizHandler{svc: svc}
}

type GenerateQuizRequest struct {
	Subject      string `json:"subject"`
	Topic        string `json:"topic"`
	NumQuestions int    `json:"numQuestions"`
	Difficulty   string `json:"difficulty"`
}

func (h *QuizHandler) Generate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "QuizHandler.Generate", "invalid request body", err))
		return
	}

	res, err := h.svc.Generate(c.Request.Context(), userID, services.QuizInput{
		Subject:      req.Subject,
		Topic:        req.Topic,
		NumQuestions: req.NumQuestions,
		Difficulty:   req.Difficulty,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quizId": res.QuizID,
		"items":  res.Items,
	})
}

func (h *QuizHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	quiz, err := h.svc.Get(c.Request.Context(), userID, c.Param("quiz_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz)
}

type SubmitAttemptRequest struct {
	Responses []int `json:"responses"`
}

func (h *QuizHandler) SubmitAttempt(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "QuizHandler.SubmitAttempt", "invalid request body", err))
		return
	}

	attempt, err := h.svc.SubmitAttempt(c.Request.Context(), userID, c.Param("quiz_id"), req.Responses)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attemptId":  attempt.ID,
		"scoreTotal": attempt.ScoreTotal,
		"scoreOutOf": attempt.ScoreOutOf,
	})
}
