package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/KerryNK/Smart-Farm/internal/config"
	"github.com/KerryNK/Smart-Farm/internal/domain"
	"github.com/KerryNK/Smart-Farm/internal/repository"
	"github.com/KerryNK/Smart-Farm/internal/store"
)

// AuthService handles registration, login and session management.
type AuthService struct {
	users      repository.UsersRepository
	irrigation repository.IrrigationRepository
	sessions   *store.SessionStore
	rules      config.RulesConfig
	logger     *zap.Logger
}

func NewAuthService(
	users repository.UsersRepository,
	irrigation repository.IrrigationRepository,
	sessions *store.SessionStore,
	rules config.RulesConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		irrigation: irrigation,
		sessions:   sessions,
		rules:      rules,
		logger:     logger,
	}
}

// RegisterRequest carries the fields accepted at signup.
type RegisterRequest struct {
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	FullName     string  `json:"full_name"`
	Phone        string  `json:"phone"`
	FarmLocation string  `json:"farm_location"`
	FarmSize     float64 `json:"farm_size"`
}

// Register creates a user, seeds default irrigation settings and opens a session.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.PublicUser, string, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.FullName = strings.TrimSpace(req.FullName)

	if req.Username == "" || req.Email == "" || req.Password == "" || req.FullName == "" {
		return nil, "", domain.Validationf("All required fields must be filled")
	}
	if !strings.Contains(req.Email, "@") {
		return nil, "", domain.Validationf("Invalid email address")
	}
	if len(req.Password) < 6 {
		return nil, "", domain.Validationf("Password must be at least 6 characters")
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, "", domain.Conflictf("Username or email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Phone:        nullString(req.Phone),
		FarmLocation: nullString(req.FarmLocation),
		FarmSize:     req.FarmSize,
	}

	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		s.logger.Error("Failed to create user",
			zap.String("username", req.Username),
			zap.Error(err),
		)
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = id

	// Every account starts with a usable irrigation configuration.
	if err := s.irrigation.CreateDefaultSettings(ctx, user.ID, s.rules.DefaultMoistureThreshold, s.rules.DefaultDuration); err != nil {
		s.logger.Error("Failed to seed irrigation settings",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		return nil, "", fmt.Errorf("failed to seed irrigation settings: %w", err)
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session: %w", err)
	}

	s.logger.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	pub := user.Public()
	return &pub, token, nil
}

// Login verifies credentials and opens a session. The login field
// accepts either a username or an email address.
func (s *AuthService) Login(ctx context.Context, login, password string) (*domain.PublicUser, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domain.Validationf("Username and password are required")
	}

	user, err := s.users.GetUserByLogin(ctx, login)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, "", domain.Authf("Invalid username or password")
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.Authf("Invalid username or password")
	}

	token, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session: %w", err)
	}

	s.logger.Info("User logged in", zap.Int64("user_id", user.ID))

	pub := user.Public()
	return &pub, token, nil
}

// Logout revokes the session token. Revoking an unknown token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// CurrentUser resolves the profile behind a session token.
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*domain.PublicUser, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	pub := user.Public()
	return &pub, nil
}
