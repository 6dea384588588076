package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/logging"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

const activationPurpose = "activation"

type AuthService struct {
	db            *gorm.DB
	mailer        IEmailService
	jwtSecret     []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	activationTTL time.Duration
	appURL        string
	now           func() time.Time
}

func NewAuthService(db *gorm.DB, cfg *config.Config, mailer IEmailService) *AuthService {
	return &AuthService{
		db:            db,
		mailer:        mailer,
		jwtSecret:     []byte(cfg.JWTSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
		activationTTL: cfg.ActivationTokenTTL,
		appURL:        strings.TrimRight(cfg.AppURL, "/"),
		now:           time.Now,
	}
}

// Register validates the request, stores an inactive user with an empty
// profile and mails the activation link. The user row is kept when mailing
// fails.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	verr := NewValidationError()
	if req.Password != req.Password2 {
		verr.Add("password", msgPasswordMatch)
	} else {
		for _, p := range PasswordProblems(req.Password) {
			verr.Add("password", p)
		}
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		verr.Add("username", "A user with that username already exists.")
		verr.Err = ErrUsernameTaken
	}
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		verr.Add("email", "A user with that email already exists.")
		if verr.Err == nil {
			verr.Err = ErrEmailTaken
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{Username: username, Email: email, PasswordHash: string(hash)}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &models.Profile{UserID: user.ID, Bio: req.Bio, Website: req.Website}
		return tx.Omit(clause.Associations).Create(profile).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// lost a race with a concurrent registration
		return nil, FieldError(NonFieldErrors, "A user with that username or email already exists.", ErrUsernameTaken)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logging.Ctx(ctx).Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("user registered")

	if err := s.sendActivation(ctx, user); err != nil {
		return user, err
	}
	return user, nil
}

func (s *AuthService) sendActivation(ctx context.Context, user *models.User) error {
	token, err := s.GenerateActivationToken(user)
	if err != nil {
		return err
	}
	if err := s.mailer.SendActivationEmail(ctx, user, s.ActivationLink(user, token)); err != nil {
		logging.Ctx(ctx).Error().Err(err).Uint("user_id", user.ID).Msg("failed to send activation email")
		return fmt.Errorf("failed to send activation email: %w", err)
	}
	return nil
}

// ActivationLink is the absolute URL mailed to a new user.
func (s *AuthService) ActivationLink(user *models.User, token string) string {
	return fmt.Sprintf("%s/api/activate/%s/%s", s.appURL, EncodeUID(user.ID), token)
}

// Authenticate checks a username and password pair. Unknown users, wrong
// passwords and inactive accounts all fail.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInactiveAccount
	}

	now := s.now()
	if err := s.db.WithContext(ctx).Model(&user).UpdateColumn("last_login", now).Error; err != nil {
		logging.Ctx(ctx).Warn().Err(err).Uint("user_id", user.ID).Msg("failed to record last login")
	}
	user.LastLogin = &now
	return &user, nil
}

// IssueTokenPair signs a fresh access and refresh token for user.
func (s *AuthService) IssueTokenPair(user *models.User) (*types.TokenPair, error) {
	access, err := s.signToken(user, types.AccessToken, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.signToken(user, types.RefreshToken, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &types.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *AuthService) signToken(user *models.User, tokenType types.TokenType, ttl time.Duration) (string, error) {
	now := s.now()
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    user.ID,
		Username:  user.Username,
		IsStaff:   user.IsStaff,
		TokenType: tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return s.jwtSecret, nil
}

func (s *AuthService) parseToken(tokenString string, want types.TokenType) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != want || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ValidateToken accepts only unexpired access tokens.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	return s.parseToken(tokenString, types.AccessToken)
}

// Refresh exchanges a refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parseToken(refreshToken, types.RefreshToken)
	if err != nil {
		return "", err
	}
	user, err := s.GetUser(ctx, claims.UserID)
	if errors.Is(err, ErrNotFound) {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", err
	}
	if !user.IsActive {
		return "", ErrInactiveAccount
	}
	return s.signToken(user, types.AccessToken, s.accessTTL)
}

// GenerateActivationToken signs a token bound to the user's current inactive
// state, so it stops validating once the account is activated.
func (s *AuthService) GenerateActivationToken(user *models.User) (string, error) {
	now := s.now()
	claims := types.ActivationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.activationTTL)),
		},
		Purpose: activationPurpose,
		Active:  user.IsActive,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign activation token: %w", err)
	}
	return signed, nil
}

// Activate verifies the uid/token pair from an activation link and marks the
// user active.
func (s *AuthService) Activate(ctx context.Context, uid, token string) (*models.User, error) {
	userID, err := DecodeUID(uid)
	if err != nil {
		return nil, ErrInvalidActivation
	}

	claims := &types.ActivationClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, s.keyFunc, jwt.WithTimeFunc(s.now)); err != nil {
		return nil, ErrInvalidActivation
	}
	if claims.Purpose != activationPurpose || claims.Subject != strconv.FormatUint(uint64(userID), 10) {
		return nil, ErrInvalidActivation
	}

	var user models.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			return notFound(err)
		}
		if user.IsActive || claims.Active != user.IsActive {
			return ErrInvalidActivation
		}
		user.IsActive = true
		return tx.Model(&user).Update("is_active", true).Error
	})
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidActivation
	}
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Info().Uint("user_id", user.ID).Msg("account activated")
	return &user, nil
}

// CreateSuperuser creates an active staff account with a profile.
func (s *AuthService) CreateSuperuser(ctx context.Context, username, email, password string) (*models.User, error) {
	verr := NewValidationError()
	if strings.TrimSpace(username) == "" {
		verr.Add("username", "This field may not be blank.")
	}
	if strings.TrimSpace(email) == "" {
		verr.Add("email", "This field may not be blank.")
	}
	for _, p := range PasswordProblems(password) {
		verr.Add("password", p)
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		Username:     strings.TrimSpace(username),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		IsActive:     true,
		IsStaff:      true,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(&models.Profile{UserID: user.ID}).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, FieldError(NonFieldErrors, "A user with that username or email already exists.", ErrUsernameTaken)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create superuser: %w", err)
	}
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// EncodeUID renders a user id the way activation links carry it.
func EncodeUID(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

func DecodeUID(uid string) (uint, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(uid, "="))
	if err != nil {
		return 0, fmt.Errorf("invalid uid: %w", err)
	}
	id, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid uid %q", uid)
	}
	return uint(id), nil
}
