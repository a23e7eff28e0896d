package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mrlokans/learnhub/internal/config"
	"github.com/mrlokans/learnhub/internal/database"
	"github.com/mrlokans/learnhub/internal/entities"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrNameRequired       = errors.New("name is required")
	ErrEmailInvalid       = errors.New("invalid email format")
	ErrForbidden          = errors.New("insufficient permissions")
)

// UserStore is the persistence the service needs.
type UserStore interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uint) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}

// Session is the result of a successful register or login.
type Session struct {
	User  *entities.User
	Token string
}

// Service handles registration, login and token validation.
type Service struct {
	users  UserStore
	tokens *TokenIssuer
	config config.Auth

	// dummyHash is compared against on unknown emails so both login failure
	// paths cost one bcrypt comparison.
	dummyHash string
}

// NewService creates a new authentication service.
func NewService(users UserStore, tokens *TokenIssuer, cfg config.Auth) (*Service, error) {
	dummy, err := HashPassword("dummy-password-for-timing", cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &Service{
		users:     users,
		tokens:    tokens,
		config:    cfg,
		dummyHash: dummy,
	}, nil
}

// Register creates a STUDENT account and issues a token for it.
func (s *Service) Register(ctx context.Context, email, password, name string) (*Session, error) {
	return s.register(ctx, email, password, name, entities.RoleStudent)
}

// CreateUserWithRole is Register for operator tooling that needs to pick the role.
func (s *Service) CreateUserWithRole(ctx context.Context, email, password, name string, role entities.Role) (*Session, error) {
	return s.register(ctx, email, password, name, role)
}

func (s *Service) register(ctx context.Context, email, password, name string, role entities.Role) (*Session, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	switch {
	case email == "":
		return nil, ErrEmailRequired
	case password == "":
		return nil, ErrPasswordRequired
	case name == "":
		return nil, ErrNameRequired
	}
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return nil, ErrEmailInvalid
	}

	hash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         role,
	}
	// The unique index decides concurrent registrations of the same email.
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.newSession(user)
}

// Login verifies credentials. Unknown emails and wrong passwords both return
// ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			_ = CheckPassword(password, s.dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return s.newSession(user)
}

// ValidateToken verifies a bearer token and loads its user.
func (s *Service) ValidateToken(ctx context.Context, token string) (*entities.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	user, err := s.GetUserByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidToken
	}
	return user, err
}

// GetUserByID retrieves a user by ID.
func (s *Service) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Authorize returns ErrForbidden unless role is one of allowed. An empty
// allowed list admits every role.
func Authorize(role entities.Role, allowed ...entities.Role) error {
	u := entities.User{Role: role}
	if !u.HasRole(allowed...) {
		return ErrForbidden
	}
	return nil
}

func (s *Service) newSession(user *entities.User) (*Session, error) {
	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}
