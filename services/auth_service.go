package services

import (
	"context"
	"strings"
	"time"

	"hotelbooking/constants"
	"hotelbooking/dto"
	"hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/logger"
	"hotelbooking/storage"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles signup, login and the session token.
type AuthService struct {
	users   storage.UserStore
	tokens  *TokenIssuer
	logger  logger.Logger
	timeout time.Duration
}

func NewAuthService(users storage.UserStore, tokens *TokenIssuer, log logger.Logger) *AuthService {
	if log == nil {
		log = logger.Nop{}
	}
	return &AuthService{users: users, tokens: tokens, logger: log, timeout: DefaultOperationTimeout}
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func roleOf(u *models.User) int {
	if u.IsAdmin {
		return constants.RoleAdmin
	}
	return constants.RoleUser
}

// Register tạo user mới và trả về token đăng nhập
func (s *AuthService) Register(ctx context.Context, input dto.RegisterInput) (*models.User, string, error) {
	if len(input.Password) < constants.MinPasswordChars {
		return nil, "", errors.Validation("Password must be at least 8 characters.")
	}
	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, "", errors.NewAppError(errors.ErrCodeInternal, "Failed to hash password", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user := &models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    normalizeEmail(input.Email),
		Password: hashed,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("user %d registered", user.ID)
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (*models.User, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.users.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, errors.ErrUserNotFound) {
			return nil, "", errors.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, "", errors.ErrInvalidCredentials
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) issue(user *models.User) (string, error) {
	token, err := s.tokens.Generate(UserInfo{UserId: user.ID, Role: roleOf(user)})
	if err != nil {
		return "", errors.NewAppError(errors.ErrCodeInternal, "Failed to generate token", err)
	}
	return token, nil
}

// Authenticate resolves a session token to its user. A token whose user was
// deleted is rejected.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	info, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.users.GetByID(ctx, info.UserId)
	if err != nil {
		if errors.Is(err, errors.ErrUserNotFound) {
			return nil, errors.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// DeleteUser xoá tài khoản; booking của user đó sẽ bị job orphan dọn sau.
// An admin cannot delete their own account.
func (s *AuthService) DeleteUser(ctx context.Context, who Requester, id uint) error {
	if who.UserID == id {
		return errors.Validation("You cannot delete your own account.")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user %d deleted by %d", id, who.UserID)
	return nil
}

func (s *AuthService) TokenTTL() time.Duration { return s.tokens.TTL() }
