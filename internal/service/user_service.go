package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/akssingh0102/task-management/internal/domain"
	"github.com/akssingh0102/task-management/internal/platform/logger"
	"github.com/akssingh0102/task-management/internal/service/auth"
	"github.com/akssingh0102/task-management/internal/store"
)

// UserService registers users and exchanges credentials for tokens.
type UserService interface {
	// Register creates a user and returns it with a fresh token.
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)

	// Login checks email and password and returns the user with a fresh
	// token. Unknown email and wrong password both yield ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)

	// GetUser retrieves a user by their ID
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users       store.UserStore
	hasher      auth.PasswordHasher
	credentials auth.CredentialService
	logger      *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	credentials auth.CredentialService,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:       users,
		hasher:      hasher,
		credentials: credentials,
		logger:      logger.With("component", "user_service"),
	}
}

var _ UserService = (*UserServiceImpl)(nil)

// Register implements UserService.Register.
func (s *UserServiceImpl) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(name, email, password)
	if err != nil {
		return nil, "", err
	}
	if user.Password == "" {
		return nil, "", domain.NewValidationError("password", "cannot be empty", nil)
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return nil, "", NewServiceError("register", "failed to hash password", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("attempted to register existing email", "email", user.Email)
			return nil, "", domain.NewValidationError("email", "user already exists", err)
		}
		log.Error("failed to save user", "error", err, "email", user.Email)
		return nil, "", NewServiceError("register", "failed to save user", err)
	}

	token, err := s.credentials.IssueCredential(ctx, user.ID)
	if err != nil {
		return nil, "", NewServiceError("register", "failed to issue credential", err)
	}

	log.Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Login implements UserService.Login.
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("login for unknown email")
			return nil, "", ErrInvalidCredentials
		}
		log.Error("failed to look up user for login", "error", err)
		return nil, "", NewServiceError("login", "failed to look up user", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login with wrong password", "user_id", user.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.credentials.IssueCredential(ctx, user.ID)
	if err != nil {
		return nil, "", NewServiceError("login", "failed to issue credential", err)
	}

	log.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

// GetUser implements UserService.GetUser.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.NewNotFoundError("user", userID.String())
		}
		return nil, NewServiceError("get_user", "failed to retrieve user", err)
	}
	return user, nil
}
