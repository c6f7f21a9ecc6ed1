package authservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/Leopold1975/signage_control/internal/pkg/config"
	"github.com/Leopold1975/signage_control/internal/pkg/jwtauth"
	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
	"github.com/Leopold1975/signage_control/internal/signage/repository/userrepo"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo Repository
	cfg      config.Auth
}

const (
	AdminRole = "admin"
	UserRole  = "user"
)

var (
	ErrNotAllowed  = errors.New("only admins can create admin")
	ErrUnknownRole = errors.New("unknown role")
)

type Repository interface {
	CreateUser(context.Context, models.User) error
	GetUser(context.Context, string) (models.User, error)
}

func New(userRepo Repository, cfg config.Auth) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (as *AuthService) CreateUser(ctx context.Context, req CreateUserRequest) (string, error) {
	switch req.Role {
	case AdminRole: // только админы могут создавать админов
		isAdmin, err := as.Auth(req.Token)
		if err != nil {
			return "", fmt.Errorf("auth error: %w", err)
		}

		if !isAdmin {
			return "", ErrNotAllowed
		}
	case UserRole:
	default:
		return "", ErrUnknownRole
	}

	u, err := as.newUser(req.Username, req.Password, req.Role)
	if err != nil {
		return "", err
	}

	err = as.userRepo.CreateUser(ctx, u)
	if err != nil {
		return "", fmt.Errorf("create user error: %w", err)
	}

	token, err := jwtauth.GetToken(u, as.cfg.TTL, as.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("can't get token error: %w", err)
	}

	return token, nil
}

// EnsureAdmin creates the bootstrap admin account if it does not exist yet.
func (as *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	u, err := as.newUser(username, password, AdminRole)
	if err != nil {
		return err
	}

	err = as.userRepo.CreateUser(ctx, u)
	if err != nil && !errors.Is(err, userrepo.ErrAleradyExists) {
		return fmt.Errorf("create admin error: %w", err)
	}

	return nil
}

func (as *AuthService) Auth(token string) (bool, error) {
	role, err := jwtauth.ValidateTokenRole(token, as.cfg.Secret)
	if err != nil {
		return false, fmt.Errorf("validate token role error: %w", err)
	}

	return role == AdminRole, nil
}

func (as *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := as.userRepo.GetUser(ctx, username)
	if err != nil {
		return "", fmt.Errorf("get user error: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	if err != nil {
		return "", fmt.Errorf("compare password error: %w", err)
	}

	token, err := jwtauth.GetToken(u, as.cfg.TTL, as.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("can't get token error: %w", err)
	}

	return token, nil
}

func (as *AuthService) newUser(username, password, role string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("generate from password error: %w", err)
	}

	return models.User{ //nolint:exhaustruct
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}, nil
}
