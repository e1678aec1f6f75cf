package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/courtside-app/courtside/config"
	"github.com/courtside-app/courtside/internal/coach"
	"github.com/courtside-app/courtside/internal/middleware"
	"github.com/courtside-app/courtside/pkg/responses"
	"github.com/courtside-app/courtside/pkg/token"
	pkgutils "github.com/courtside-app/courtside/pkg/utils"
	"github.com/courtside-app/courtside/pkg/validator"
	"github.com/courtside-app/courtside/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	repo   AuthRepository
	config *config.Config
}

func NewAuthController(repo AuthRepository, cfg *config.Config) *AuthController {
	return &AuthController{
		repo:   repo,
		config: cfg,
	}
}

func (ac *AuthController) generateAndSaveTokens(coachID uint) (string, string, error) {
	accessToken, err := token.GenerateJWT(coachID, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return "", "", fmt.Errorf("access token generation failed: %w", err)
	}

	refreshTokenString, err := pkgutils.GenerateRefreshToken(coachID, ac.config.JWT.RefreshTokenSecret, ac.config.JWT.RefreshTokenExpiryDays)
	if err != nil {
		return "", "", fmt.Errorf("refresh token generation failed: %w", err)
	}

	refreshToken := &coach.RefreshToken{
		CoachID:   coachID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().AddDate(0, 0, ac.config.JWT.RefreshTokenExpiryDays),
	}

	if err := ac.repo.SaveRefreshToken(refreshToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}
	return accessToken, refreshTokenString, nil
}

func coachResponse(cc *coach.Coach) CoachResponse {
	return CoachResponse{ID: cc.ID, Name: cc.Name, Email: cc.Email}
}

// Register godoc
// @Summary      Register a new coach
// @Description  Create a coach account with name, email and password.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        coach  body  RegisterRequest  true  "Coach registration details"
// @Success      201 {object} responses.SuccessResponse
// @Failure      400 {object} responses.ErrorResponse
// @Failure      409 {object} responses.ErrorResponse
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := ac.repo.GetCoachByEmail(email); !errors.Is(err, gorm.ErrRecordNotFound) {
		responses.Conflict(c, "A coach with this email already exists")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Failed to hash password")
		return
	}

	cc := &coach.Coach{
		Name:     req.Name,
		Email:    email,
		Password: hashed,
	}
	if err := ac.repo.CreateCoach(cc); err != nil {
		responses.InternalServerError(c, "Failed to create coach")
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(cc.ID)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Coach registered successfully", AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Coach:        coachResponse(cc),
	})
}

// Login godoc
// @Summary      Log a coach in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200 {object} responses.SuccessResponse
// @Failure      401 {object} responses.ErrorResponse
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	cc, err := ac.repo.GetCoachByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.Unauthorized(c, "Invalid email or password")
			return
		}
		responses.InternalServerError(c, "Failed to look up coach")
		return
	}

	if !utils.CheckPassword(cc.Password, req.Password) {
		responses.Unauthorized(c, "Invalid email or password")
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(cc.ID)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Logged in successfully", AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Coach:        coachResponse(cc),
	})
}

// RefreshToken godoc
// @Summary      Exchange a refresh token for a new token pair
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        refresh  body  RefreshTokenRequest  true  "Refresh token"
// @Success      200 {object} responses.SuccessResponse
// @Failure      401 {object} responses.ErrorResponse
// @Router       /auth/refresh-token [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	coachID, err := pkgutils.VerifyRefreshToken(req.RefreshToken, ac.config.JWT.RefreshTokenSecret)
	if err != nil {
		responses.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	// The token must also still be live server-side (not revoked by logout).
	stored, err := ac.repo.GetRefreshToken(req.RefreshToken)
	if err != nil || stored.CoachID != coachID {
		responses.Unauthorized(c, "Refresh token has been revoked")
		return
	}

	// Rotate: the old refresh token is single-use.
	if err := ac.repo.InvalidateRefreshToken(req.RefreshToken); err != nil {
		responses.InternalServerError(c, "Failed to rotate refresh token")
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(coachID)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Token refreshed", gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Logout revokes every live refresh token for the authenticated coach.
func (ac *AuthController) Logout(c *gin.Context) {
	coachID, err := middleware.GetCoachIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	if err := ac.repo.InvalidateAllRefreshTokensForCoach(coachID); err != nil {
		responses.InternalServerError(c, "Failed to log out")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Logged out successfully", nil)
}

// GetProfile returns the authenticated coach.
func (ac *AuthController) GetProfile(c *gin.Context) {
	coachID, err := middleware.GetCoachIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	cc, err := ac.repo.GetCoachByID(coachID)
	if err != nil {
		responses.NotFound(c, "Coach")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", coachResponse(cc))
}

// ChangePassword verifies the old password and stores a new hash. All refresh
// tokens are revoked so stolen sessions die with the old password.
func (ac *AuthController) ChangePassword(c *gin.Context) {
	coachID, err := middleware.GetCoachIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, validator.ParseError(err))
		return
	}

	cc, err := ac.repo.GetCoachByID(coachID)
	if err != nil {
		responses.NotFound(c, "Coach")
		return
	}

	if !utils.CheckPassword(cc.Password, req.OldPassword) {
		responses.Unauthorized(c, "Old password is incorrect")
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		responses.InternalServerError(c, "Failed to hash password")
		return
	}
	cc.Password = hashed

	if err := ac.repo.UpdateCoach(cc); err != nil {
		responses.InternalServerError(c, "Failed to update password")
		return
	}
	if err := ac.repo.InvalidateAllRefreshTokensForCoach(coachID); err != nil {
		responses.InternalServerError(c, "Failed to revoke sessions")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Password changed successfully", nil)
}
