package auth

import (
	"net/http"

	"github.com/badoux/checkmail"
	"github.com/gin-gonic/gin"

	"github.com/dcastane/labsamples/internal/models"
	"github.com/dcastane/labsamples/internal/storage"
)

type registerParams struct {
	Username string `json:"username" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,max=100"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) handleRegister(c *gin.Context) {
	params := &registerParams{}
	if err := c.ShouldBindJSON(params); err != nil {
		c.String(http.StatusBadRequest, "Missing required parameters: "+err.Error())
		return
	}

	if err := checkmail.ValidateFormat(params.Email); err != nil {
		c.String(http.StatusBadRequest, "Invalid email format.")
		return
	}

	exists, err := storage.EmailExists(h.db, params.Email)
	if err != nil {
		logger.Error().Err(err).Msg("Error checking email existence")
		c.String(http.StatusInternalServerError, "An error occurred while registering the user.")
		return
	}
	if exists {
		c.String(http.StatusBadRequest, "The email is already in use.")
		return
	}

	user := &models.User{
		Username: params.Username,
		Email:    params.Email,
	}
	if err := user.SetPassword(params.Password); err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		c.String(http.StatusInternalServerError, "An error occurred while registering the user.")
		return
	}

	if err := storage.CreateUser(h.db, user); err != nil {
		logger.Error().Err(err).Msg("Database error during user registration")
		c.String(http.StatusInternalServerError, "An error occurred while creating the user.")
		return
	}

	c.String(http.StatusOK, "User successfully registered.")
}
