package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/avelyx/prepmate/internal/services"
	"github.com/avelyx/prepmate/internal/utils"
)

type FlashcardHandler struct {
	svc services.FlashcardService
}

func NewFlashcardHandler(svc services.FlashcardService) *FlashcardHandler {
	return &FlashcardHandler{svc: svc}
}

type GenerateFlashcardsRequest struct {
	Subject    string `json:"subject"`
	Topic      string `json:"topic"`
	SourceText string `json:"sourceText"`
	NumCards   int    `json:"numCards"`
}

func (h *FlashcardHandler) Generate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req GenerateFlashcardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "FlashcardHandler.Generate", "invalid request body", err))
		return
	}

	res, err := h.svc.Generate(c.Request.Context(), userID, services.FlashcardInput{
		Subject:    req.Subject,
		Topic:      req.Topic,
		SourceText: req.SourceText,
		NumCards:   req.NumCards,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cards": res.Output})
}

func (h *FlashcardHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rows, err := h.svc.List(c.Request.Context(), userID, queryLimit(c, 100, 500))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"flashcards": rows})
}
