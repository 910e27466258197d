package authController

import (
	"context"
	"fmt"
	"time"

	"renhold/internal/apperrors"
	"renhold/internal/logger"
	. "renhold/internal/models"
	"renhold/internal/repositories"
	"renhold/internal/sanitize"
	"renhold/internal/services"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type AuthControllerInterface interface {
	Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, user *User) (*UserProfile, error)
}

type AuthController struct {
	userRepo       repositories.UserRepository
	sessionService *services.SessionService
	log            logger.Logger
}

func New(
	userRepo repositories.UserRepository,
	sessionService *services.SessionService,
) AuthControllerInterface {
	return &AuthController{
		userRepo:       userRepo,
		sessionService: sessionService,
		log:            logger.New("authController"),
	}
}

func (c *AuthController) Register(
	ctx context.Context,
	request *RegisterRequest,
) (*AuthResponse, error) {
	log := c.log.Function("Register")

	email, ok := sanitize.Email(request.Email)
	if !ok {
		return nil, fmt.Errorf("%w: a valid email address is required", apperrors.ErrValidation)
	}

	if len(request.Password) < minPasswordLength {
		return nil, fmt.Errorf(
			"%w: password must be at least %d characters",
			apperrors.ErrValidation,
			minPasswordLength,
		)
	}

	fullName := sanitize.Text(request.FullName)
	if fullName == "" {
		return nil, fmt.Errorf("%w: full name is required", apperrors.ErrValidation)
	}

	passwordHash, err := bcrypt.GenerateFromPassword(
		[]byte(request.Password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		log.Er("failed to hash password", err)
		return nil, apperrors.ErrDatabase
	}

	user := User{
		Email:        email,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Phone:        sanitize.Phone(request.Phone),
		IsActive:     true,
		Roles:        []UserRole{{Role: RoleCustomer}},
	}

	if err := c.userRepo.Create(ctx, &user); err != nil {
		return nil, apperrors.FromDatabase(err)
	}

	token, err := c.sessionService.Create(ctx, user.ID)
	if err != nil {
		return nil, apperrors.ErrDatabase
	}

	log.Info("User registered", "userID", user.ID)

	return &AuthResponse{Token: token, User: user.ToProfile()}, nil
}

func (c *AuthController) Login(
	ctx context.Context,
	request *LoginRequest,
) (*AuthResponse, error) {
	log := c.log.Function("Login")

	email, ok := sanitize.Email(request.Email)
	if !ok {
		return nil, fmt.Errorf("%w: a valid email address is required", apperrors.ErrValidation)
	}

	user, err := c.userRepo.GetByEmail(ctx, email)
	if err != nil {
		// Indistinguishable from a wrong password on purpose.
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrPermissionDenied)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrPermissionDenied)
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash),
		[]byte(request.Password),
	); err != nil {
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrPermissionDenied)
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := c.userRepo.Update(ctx, user); err != nil {
		log.Warn("failed to record login time", "userID", user.ID, "error", err)
	}

	token, err := c.sessionService.Create(ctx, user.ID)
	if err != nil {
		return nil, apperrors.ErrDatabase
	}

	log.Info("User logged in", "userID", user.ID)

	return &AuthResponse{Token: token, User: user.ToProfile()}, nil
}

func (c *AuthController) Logout(ctx context.Context, token string) error {
	return c.sessionService.Revoke(ctx, token)
}

func (c *AuthController) GetProfile(ctx context.Context, user *User) (*UserProfile, error) {
	profile := user.ToProfile()
	return &profile, nil
}
