package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/coopregistry/coopregistry-api/internal/config"
	"github.com/coopregistry/coopregistry-api/internal/models"
	"github.com/coopregistry/coopregistry-api/internal/repository"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo repository.UserRepository
	auditSvc AuditRecorder
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, auditSvc AuditRecorder, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		auditSvc: auditSvc,
		cfg:      cfg,
	}
}

// LoginResult represents the result of a login attempt
type LoginResult struct {
	Token   string                  `json:"token"`
	User    models.UserResponse     `json:"user"`
	Society *models.SocietyResponse `json:"society,omitempty"`
}

// DeveloperLogin authenticates a platform developer and returns a token.
// Every credential failure collapses to ErrInvalidCredentials so the
// response never reveals whether the email exists.
func (s *AuthService) DeveloperLogin(ctx context.Context, email, password string, meta RequestMeta) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmailAndRole(ctx, email, models.RoleDeveloper)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive() {
		return nil, ErrInvalidCredentials
	}

	if !VerifyPassword(password, user.EncryptedPassword) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, AuditEntry{
		UserID:   &user.ID,
		Action:   models.AuditActionLogin,
		Entity:   "User",
		EntityID: user.ID,
		Meta:     meta,
	})

	return &LoginResult{
		Token: token,
		User:  user.ToResponse(),
	}, nil
}

// SocietyLogin authenticates a society admin. Admins of societies that have
// not been approved are turned away with ErrSocietyNotApproved, which is
// deliberately distinct from a credentials failure.
func (s *AuthService) SocietyLogin(ctx context.Context, email, password string, meta RequestMeta) (*LoginResult, error) {
	user, err := s.userRepo.FindByEmailAndRole(ctx, email, models.RoleSocietyAdmin)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive() || user.Society == nil {
		return nil, ErrInvalidCredentials
	}

	if !user.Society.IsApproved() {
		return nil, ErrSocietyNotApproved
	}

	if !VerifyPassword(password, user.EncryptedPassword) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, AuditEntry{
		UserID:    &user.ID,
		SocietyID: user.SocietyID,
		Action:    models.AuditActionLogin,
		Entity:    "User",
		EntityID:  user.ID,
		Meta:      meta,
	})

	society := user.Society.ToResponse()
	return &LoginResult{
		Token:   token,
		User:    user.ToResponse(),
		Society: &society,
	}, nil
}

// generateJWT creates a new JWT token for a user
func (s *AuthService) generateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	if user.SocietyID != nil {
		claims["society_id"] = *user.SocietyID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// VerifyPassword compares a password with a hash
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
