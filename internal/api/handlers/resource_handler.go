package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/avelyx/prepmate/internal/models"
	"github.com/avelyx/prepmate/internal/services"
	"github.com/avelyx/prepmate/internal/utils"
)

type ResourceHandler struct {
	svc services.ResourceService
}

func NewResourceHandler(svc services.ResourceService) *ResourceHandler {
	return &ResourceHandler{svc: svc}
}

type ResourceSearchRequest struct {
	Subject string `json:"subject"`
	Year    string `json:"year"`
	Session string `json:"session"`
	Paper   string `json:"paper"`
}

func (h *ResourceHandler) Search(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req ResourceSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ResourceHandler.Search", "invalid request body", err))
		return
	}

	res, err := h.svc.Search(c.Request.Context(), userID, models.ResourceQuery{
		Subject: req.Subject,
		Year:    req.Year,
		Session: req.Session,
		Paper:   req.Paper,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
