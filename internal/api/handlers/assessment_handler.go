package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/avelyx/prepmate/internal/services"
	"github.com/avelyx/prepmate/internal/utils"
)

type AssessmentHandler struct {
	svc services.AssessmentService
}

func NewAssessmentHandler(svc services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{svc: svc}
}

type GradeRequest struct {
	Subject  string         `json:"subject"`
	Answer   string         `json:"answer"`
	Question string         `json:"question"`
	Criteria map[string]any `json:"criteria"`
}

func (h *AssessmentHandler) Grade(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req GradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AssessmentHandler.Grade", "invalid request body", err))
		return
	}

	res, err := h.svc.Grade(c.Request.Context(), userID, services.GradeInput{
		Subject:  req.Subject,
		Answer:   req.Answer,
		Question: req.Question,
		Criteria: req.Criteria,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  res.Output,
	})
}

func (h *AssessmentHandler) ListRecent(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	rows, err := h.svc.ListRecent(c.Request.Context(), userID, queryLimit(c, 20, 100))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assessments": rows})
}
