package service

import (
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/nathanndk/BitHealth-parking-app/internal/auth"
	"github.com/nathanndk/BitHealth-parking-app/internal/db"
	"github.com/nathanndk/BitHealth-parking-app/internal/entities"
	httperrors "github.com/nathanndk/BitHealth-parking-app/internal/errors"
	"github.com/nathanndk/BitHealth-parking-app/internal/repository"
)

type AuthService interface {
	Signup(req entities.SignupRequest) (*entities.UserResponse, error)
	Login(req entities.LoginRequest) (*entities.LoginResponse, error)
}

type authService struct {
	users      repository.UserRepository
	jwtSecret  string
	bcryptCost int
}

func NewAuthService(users repository.UserRepository, jwtSecret string, bcryptCost int) AuthService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{users: users, jwtSecret: jwtSecret, bcryptCost: bcryptCost}
}

func (s *authService) Signup(req entities.SignupRequest) (*entities.UserResponse, error) {
	role := db.RoleUser
	if req.Role != "" {
		parsed, err := db.ParseRole(req.Role)
		if err != nil {
			return nil, httperrors.BadRequest("role must be USER or OFFICER")
		}
		role = parsed
	}

	if _, err := s.users.GetByUsername(req.Username); err == nil {
		return nil, httperrors.NewHTTPError(http.StatusBadRequest, httperrors.CodeUserAlreadyExists, "User already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("error checking username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &db.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         role,
		Email:        req.Email,
		Phone:        req.Phone,
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, httperrors.NewHTTPError(http.StatusBadRequest, httperrors.CodeUserAlreadyExists, "User already exists")
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	resp := entities.NewUserResponse(user)
	return &resp, nil
}

func (s *authService) Login(req entities.LoginRequest) (*entities.LoginResponse, error) {
	user, err := s.users.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, httperrors.NewHTTPError(http.StatusNotFound, httperrors.CodeUserNotFound, "User not found")
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, httperrors.NewHTTPError(http.StatusBadRequest, httperrors.CodeInvalidCredentials, "Invalid credentials")
	}

	token, err := auth.IssueToken(s.jwtSecret, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error signing token: %w", err)
	}

	return &entities.LoginResponse{
		User:  entities.NewUserResponse(user),
		Token: token,
	}, nil
}
