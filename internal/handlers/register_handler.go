package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cardano2vn/group-signup/internal/registration"
)

// RegisterInput is the JSON body of POST /api/register.
type RegisterInput struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	School            string `json:"school"`
	Group             string `json:"group"`
	VerificationToken string `json:"verificationToken"`
}

// RegisterHandler maps HTTP onto the registration workflow. Validation
// rejections come back as 400 with the workflow's message; everything
// else is a generic 500, details stay in the log.
type RegisterHandler struct {
	Service *registration.Service
}

func NewRegisterHandler(s *registration.Service) *RegisterHandler {
	return &RegisterHandler{Service: s}
}

func (h *RegisterHandler) RegisterHandler(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	err := h.Service.Register(c.Request.Context(), registration.Candidate{
		Name:              input.Name,
		Email:             input.Email,
		Phone:             input.Phone,
		School:            input.School,
		Group:             input.Group,
		VerificationToken: input.VerificationToken,
		RemoteIP:          c.ClientIP(),
	})

	var rejection *registration.Rejection
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Registration successful"})
	case errors.As(err, &rejection):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": rejection.Message})
	default:
		slog.Error("Registration failed", "error", err, "request_id", c.GetString("request_id"))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error, please try again later"})
	}
}
