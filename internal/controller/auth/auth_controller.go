package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/dto"
	"github.com/j22k/AI-Educationa-Platform-for-Students-with-LD/internal/service"
	"github.com/rs/zerolog/log"
)

type AuthController struct {
	authSvc service.AuthService
}

func NewAuthController(authSvc service.AuthService) *AuthController {
	return &AuthController{authSvc: authSvc}
}

// Signup godoc
// @Summary Create a new user account
// @Description Registers a user with name, email and password. The email must not already be registered.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.SignupRequest true "Signup data"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 409 {object} dto.StatusResponse "User already exists"
// @Failure 500 {object} dto.StatusResponse "Storage failure"
// @Router /signup [post]
func (ctrl *AuthController) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind SignupRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := ctrl.authSvc.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, dto.StatusResponse{Status: false, Message: "User already exists"})
			return
		}
		log.Error().Err(err).Str("email", req.Email).Msg("Signup failed")
		c.JSON(http.StatusInternalServerError, dto.StatusResponse{Status: false, Message: "Failed to create user"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Status:  true,
		Message: "User created successfully",
		UserID:  result.UserID,
		Name:    result.Name,
		Token:   result.Token,
	})
}

// Login godoc
// @Summary Authenticate a user
// @Description Verifies credentials and returns the user's id, name and a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Login data"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 401 {object} dto.StatusResponse "Invalid email or password"
// @Failure 500 {object} dto.StatusResponse "Storage failure"
// @Router /login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind LoginRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := ctrl.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.StatusResponse{Status: false, Message: "Invalid email or password"})
			return
		}
		log.Error().Err(err).Str("email", req.Email).Msg("Login failed")
		c.JSON(http.StatusInternalServerError, dto.StatusResponse{Status: false, Message: "Server error"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Status:  true,
		Message: "User logged in successfully",
		UserID:  result.UserID,
		Name:    result.Name,
		Token:   result.Token,
	})
}
