package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quizbox/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	db         *gorm.DB
	tokens     TokenStore
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(db *gorm.DB, tokens TokenStore, jwtSecret string, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		db:         db,
		tokens:     tokens,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*TokenPair, error) {
	var user models.User
	if err := s.db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user.ID)
}

// Refresh exchanges a valid refresh token for a new pair. The stored token is
// replaced, so each refresh token is single-use.
func (s *AuthService) Refresh(ctx context.Context, req *RefreshRequest) (*TokenPair, error) {
	userID, err := ParseToken(req.Refresh, s.jwtSecret, "refresh")
	if err != nil {
		return nil, ErrInvalidToken
	}

	valid, err := s.tokens.CheckRefreshToken(ctx, userID, req.Refresh)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, ErrInvalidToken
	}

	return s.issueTokens(ctx, userID)
}

// Logout revokes the user's stored refresh token. Outstanding access tokens
// remain valid until they expire.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	return s.tokens.DeleteRefreshToken(ctx, userID)
}

func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) issueTokens(ctx context.Context, userID uint) (*TokenPair, error) {
	access, err := s.signToken(userID, "access", s.accessTTL)
	if err != nil {
		return nil, err
	}

	refresh, err := s.signToken(userID, "refresh", s.refreshTTL)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.SaveRefreshToken(ctx, userID, refresh, s.refreshTTL); err != nil {
		return nil, err
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *AuthService) signToken(userID uint, tokenType string, ttl time.Duration) (string, error) {
	// iat/exp have second resolution; the jti keeps two tokens issued in
	// the same second distinct so rotation actually invalidates the old one.
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"type":    tokenType,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
}

// ParseToken validates a signed token of the given type ("access" or
// "refresh") and returns the user id it was issued for.
func ParseToken(tokenString, secret, tokenType string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	if claims["type"] != tokenType {
		return 0, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}

	return uint(userID), nil
}
