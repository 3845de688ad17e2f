package services

import (
	"context"
	"fmt"
	"time"

	"macrobox/internal/models"
	"macrobox/internal/repositories/interfaces"
	"macrobox/internal/utils"
	"macrobox/pkg/email"
	"macrobox/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles signup, email verification, login and password
// recovery.
type AuthService struct {
	userRepo      interfaces.UserRepository
	mailer        *email.Mailer
	logger        *logger.Logger
	jwtSecret     string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	resetTokenTTL time.Duration
	frontendURL   string
}

type AuthConfig struct {
	JWTSecret     string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	ResetTokenTTL time.Duration
	FrontendURL   string
}

func NewAuthService(userRepo interfaces.UserRepository, mailer *email.Mailer, cfg AuthConfig, log *logger.Logger) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		mailer:        mailer,
		logger:        log,
		jwtSecret:     cfg.JWTSecret,
		refreshSecret: cfg.RefreshSecret,
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		resetTokenTTL: cfg.ResetTokenTTL,
		frontendURL:   cfg.FrontendURL,
	}
}

// Signup registers a new account and sends a verification email. An
// existing deactivated account with the same email is reactivated
// instead of rejected.
func (s *AuthService) Signup(ctx context.Context, name, emailAddr, password string) (*models.User, error) {
	emailAddr = utils.NormalizeEmail(emailAddr)

	if err := utils.ValidatePasswordStrength(password); err != nil {
		return nil, ErrWeakPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if existing, err := s.userRepo.GetByEmail(ctx, emailAddr); err == nil {
		if !existing.IsDeactivated {
			return nil, ErrEmailTaken
		}
		existing.Name = name
		existing.Password = string(hashed)
		existing.IsDeactivated = false
		existing.DeactivatedAt = nil
		existing.EmailVerified = false
		existing.VerificationToken = utils.GenerateSecureToken(utils.VerificationTokenLength)
		if err := s.userRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.sendVerification(existing)
		return existing, nil
	}

	user := &models.User{
		Name:              name,
		Email:             emailAddr,
		Password:          string(hashed),
		Role:              models.UserRoleUser,
		VerificationToken: utils.GenerateSecureToken(utils.VerificationTokenLength),
		Favorites:         []primitive.ObjectID{},
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, ErrEmailTaken
	}

	s.sendVerification(user)

	return user, nil
}

// VerifyEmail marks the account as verified and burns the token.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	user, err := s.userRepo.GetByVerificationToken(ctx, token)
	if err != nil {
		return ErrInvalidToken
	}

	user.EmailVerified = true
	user.VerificationToken = ""

	return s.userRepo.Update(ctx, user)
}

// Login authenticates credentials and returns a token pair. Frozen and
// deactivated accounts cannot log in.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (*models.User, *utils.TokenPair, error) {
	emailAddr = utils.NormalizeEmail(emailAddr)

	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if user.IsDeactivated {
		return nil, nil, ErrAccountDeactivated
	}
	if user.IsFrozen {
		return nil, nil, ErrAccountFrozen
	}
	if !user.EmailVerified {
		return nil, nil, ErrEmailNotVerified
	}

	tokens, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, s.jwtSecret, s.refreshSecret, s.accessTTL, s.refreshTTL)
	if err != nil {
		return nil, nil, err
	}

	return user, tokens, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*utils.TokenPair, error) {
	claims, err := utils.ValidateToken(refreshToken, s.refreshSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if user.IsDeactivated || user.IsFrozen {
		return nil, ErrInvalidToken
	}

	return utils.GenerateTokenPair(user.ID, string(user.Role), user.Email, s.jwtSecret, s.refreshSecret, s.accessTTL, s.refreshTTL)
}

// ForgotPassword issues a reset token and emails the reset link. It
// reports success even for unknown emails so the endpoint cannot be
// used to probe for accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	emailAddr = utils.NormalizeEmail(emailAddr)

	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return nil
	}

	expires := time.Now().Add(s.resetTokenTTL)
	user.ResetPasswordToken = utils.GenerateSecureToken(utils.VerificationTokenLength)
	user.ResetPasswordExpires = &expires

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, user.ResetPasswordToken)
	if err := s.mailer.SendPasswordResetEmail(user.Email, user.Name, link); err != nil {
		s.logger.WithError(err).WithUserID(user.ID).Warn("failed to send password reset email")
	}

	return nil
}

// ResetPassword sets a new password for the account holding a live
// reset token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrInvalidToken
	}
	if err := utils.ValidatePasswordStrength(newPassword); err != nil {
		return ErrWeakPassword
	}

	user, err := s.userRepo.GetByResetToken(ctx, token)
	if err != nil {
		return ErrInvalidToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.Password = string(hashed)
	user.ResetPasswordToken = ""
	user.ResetPasswordExpires = nil

	return s.userRepo.Update(ctx, user)
}

func (s *AuthService) sendVerification(user *models.User) {
	link := fmt.Sprintf("%s/verify-email?token=%s", s.frontendURL, user.VerificationToken)
	if err := s.mailer.SendVerificationEmail(user.Email, user.Name, link); err != nil {
		s.logger.WithError(err).WithUserID(user.ID).Warn("failed to send verification email")
	}
}
