package auth

import (
	"time"

	"github.com/courtside-app/courtside/internal/coach"
	"gorm.io/gorm"
)

type AuthRepository interface {
	CreateCoach(cc *coach.Coach) error
	GetCoachByEmail(email string) (*coach.Coach, error)
	GetCoachByID(id uint) (*coach.Coach, error)
	UpdateCoach(cc *coach.Coach) error

	SaveRefreshToken(token *coach.RefreshToken) error
	GetRefreshToken(tokenString string) (*coach.RefreshToken, error)
	InvalidateRefreshToken(tokenString string) error
	InvalidateAllRefreshTokensForCoach(coachID uint) error
}

type authRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateCoach(cc *coach.Coach) error {
	return r.db.Create(cc).Error
}

func (r *authRepository) GetCoachByEmail(email string) (*coach.Coach, error) {
	var cc coach.Coach
	if err := r.db.Where("email = ?", email).First(&cc).Error; err != nil {
		return nil, err
	}
	return &cc, nil
}

func (r *authRepository) GetCoachByID(id uint) (*coach.Coach, error) {
	var cc coach.Coach
	if err := r.db.First(&cc, id).Error; err != nil {
		return nil, err
	}
	return &cc, nil
}

func (r *authRepository) UpdateCoach(cc *coach.Coach) error {
	return r.db.Save(cc).Error
}

func (r *authRepository) SaveRefreshToken(token *coach.RefreshToken) error {
	return r.db.Create(token).Error
}

func (r *authRepository) GetRefreshToken(tokenString string) (*coach.RefreshToken, error) {
	var rt coach.RefreshToken
	if err := r.db.Where("token = ? AND expires_at > ? AND revoked = ?", tokenString, time.Now(), false).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *authRepository) InvalidateRefreshToken(tokenString string) error {
	return r.db.Model(&coach.RefreshToken{}).Where("token = ?", tokenString).Update("revoked", true).Error
}

func (r *authRepository) InvalidateAllRefreshTokensForCoach(coachID uint) error {
	return r.db.Model(&coach.RefreshToken{}).
		Where("coach_id = ? AND revoked = ?", coachID, false).
		Update("revoked", true).Error
}
