package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kindaboxs/meetboxs/contracts"
	"github.com/kindaboxs/meetboxs/domain"
	"github.com/kindaboxs/meetboxs/domain/repository"
	"github.com/kindaboxs/meetboxs/pkg/jwt"
	"github.com/kindaboxs/meetboxs/pkg/logger"
)

// AuthUseCase defines the interface for authentication-related business operations
type AuthUseCase interface {
	// Register creates a new account and returns a token pair for it
	Register(ctx context.Context, req *contracts.RegisterRequest) (*contracts.TokenPairResponse, error)
	// Login authenticates a user with email and password
	Login(ctx context.Context, req *contracts.LoginRequest) (*contracts.TokenPairResponse, error)
	// Refresh generates new access and refresh tokens using a valid refresh token
	// The old refresh token must be successfully revoked before new tokens are
	// issued so old and new tokens are never valid simultaneously
	Refresh(ctx context.Context, req *contracts.RefreshTokenRequest) (*contracts.TokenPairResponse, error)
	// Profile retrieves the caller's profile information
	Profile(ctx context.Context, callerID string) (*contracts.UserResponse, error)
}

// authUseCase implements the AuthUseCase interface
type authUseCase struct {
	userRepo  repository.User
	jwtClient jwt.JWTClient
	logger    logger.LoggerInterface
}

// NewAuthUseCase creates a new instance of authUseCase
func NewAuthUseCase(userRepo repository.User, jwtClient jwt.JWTClient, appLogger logger.LoggerInterface) AuthUseCase {
	return &authUseCase{
		userRepo:  userRepo,
		jwtClient: jwtClient,
		logger:    appLogger,
	}
}

// Register creates a new account with a bcrypt-hashed password
// Returns domain.ErrEmailAlreadyExists when the email is taken
func (uc *authUseCase) Register(ctx context.Context, req *contracts.RegisterRequest) (*contracts.TokenPairResponse, error) {
	uc.logger.InfoContext(ctx, "Register attempt", "email", req.Email)

	existing, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		uc.logger.ErrorContext(ctx, "Error checking email uniqueness", "email", req.Email, "error", err)
		return nil, fmt.Errorf("error checking email uniqueness: %w", err)
	}
	if existing != nil {
		uc.logger.WarnContext(ctx, "Email already registered", "email", req.Email)
		return nil, domain.ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.ErrorContext(ctx, "Error hashing password", "error", err)
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := contracts.RegisterRequestToModel(req)
	user.Password = string(hashedPassword)

	if err := uc.userRepo.Create(ctx, user); err != nil {
		uc.logger.ErrorContext(ctx, "Failed to create user", "email", req.Email, "error", err)
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	uc.logger.InfoContext(ctx, "User registered successfully", "userID", user.ID, "email", user.Email)
	return uc.issueTokenPair(ctx, user.ID, user.Email)
}

// Login authenticates a user with email and password
// Unknown emails and wrong passwords are reported identically
func (uc *authUseCase) Login(ctx context.Context, req *contracts.LoginRequest) (*contracts.TokenPairResponse, error) {
	uc.logger.InfoContext(ctx, "Login attempt", "email", req.Email)

	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.WarnContext(ctx, "User not found", "email", req.Email)
			return nil, domain.ErrInvalidCredentials
		}
		uc.logger.ErrorContext(ctx, "Error retrieving user", "email", req.Email, "error", err)
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		uc.logger.WarnContext(ctx, "Invalid password", "email", req.Email)
		return nil, domain.ErrInvalidCredentials
	}

	uc.logger.InfoContext(ctx, "Login successful", "userID", user.ID, "email", req.Email)
	return uc.issueTokenPair(ctx, user.ID, user.Email)
}

// Refresh rotates a refresh token into a fresh token pair
func (uc *authUseCase) Refresh(ctx context.Context, req *contracts.RefreshTokenRequest) (*contracts.TokenPairResponse, error) {
	uc.logger.InfoContext(ctx, "Refresh token attempt")

	claims, err := uc.jwtClient.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		uc.logger.WarnContext(ctx, "Invalid refresh token", "error", err)
		return nil, domain.ErrInvalidCredentials
	}

	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.WarnContext(ctx, "User for refresh token no longer exists", "userID", claims.UserID)
			return nil, domain.ErrInvalidCredentials
		}
		uc.logger.ErrorContext(ctx, "Error retrieving user by ID", "userID", claims.UserID, "error", err)
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	// Fail fast: if revocation fails the refresh is aborted so the old token
	// cannot stay valid alongside the new one
	if uc.jwtClient.IsStateful() {
		if err := uc.jwtClient.RevokeRefreshToken(claims.UserID, claims.ID); err != nil {
			uc.logger.ErrorContext(ctx, "Failed to revoke old refresh token, aborting refresh", "userID", claims.UserID, "tokenID", claims.ID, "error", err)
			return nil, fmt.Errorf("failed to revoke old refresh token: %w", err)
		}
		uc.logger.InfoContext(ctx, "Old refresh token revoked", "userID", claims.UserID, "tokenID", claims.ID)
	}

	uc.logger.InfoContext(ctx, "Token refresh successful", "userID", user.ID)
	return uc.issueTokenPair(ctx, user.ID, user.Email)
}

// Profile retrieves the caller's profile information
func (uc *authUseCase) Profile(ctx context.Context, callerID string) (*contracts.UserResponse, error) {
	uc.logger.InfoContext(ctx, "Profile request", "userID", callerID)
	if callerID == "" {
		uc.logger.WarnContext(ctx, "Missing caller ID for profile request")
		return nil, domain.ErrInvalidID
	}

	user, err := uc.userRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.logger.WarnContext(ctx, "User not found", "userID", callerID)
			return nil, domain.ErrUserNotFound
		}
		uc.logger.ErrorContext(ctx, "Error retrieving user", "userID", callerID, "error", err)
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	uc.logger.InfoContext(ctx, "Profile retrieved successfully", "userID", callerID)
	return contracts.UserModelToResponse(user), nil
}

// issueTokenPair generates an access and refresh token pair for the user
func (uc *authUseCase) issueTokenPair(ctx context.Context, userID, email string) (*contracts.TokenPairResponse, error) {
	accessToken, err := uc.jwtClient.GenerateAccessToken(userID, email)
	if err != nil {
		uc.logger.ErrorContext(ctx, "Error generating access token", "userID", userID, "error", err)
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	refreshToken, err := uc.jwtClient.GenerateRefreshToken(userID, email)
	if err != nil {
		uc.logger.ErrorContext(ctx, "Error generating refresh token", "userID", userID, "error", err)
		return nil, fmt.Errorf("error generating refresh token: %w", err)
	}

	accessTokenExpire, err := uc.jwtClient.GetTokenExpiration(accessToken)
	if err != nil {
		uc.logger.ErrorContext(ctx, "Error getting access token expiration", "userID", userID, "error", err)
		return nil, fmt.Errorf("error getting access token expiration: %w", err)
	}

	refreshTokenExpire, err := uc.jwtClient.GetTokenExpiration(refreshToken)
	if err != nil {
		uc.logger.ErrorContext(ctx, "Error getting refresh token expiration", "userID", userID, "error", err)
		return nil, fmt.Errorf("error getting refresh token expiration: %w", err)
	}

	return &contracts.TokenPairResponse{
		AccessToken:        accessToken,
		RefreshToken:       refreshToken,
		AccessTokenExpire:  int64(time.Until(accessTokenExpire).Seconds()),
		RefreshTokenExpire: int64(time.Until(refreshTokenExpire).Seconds()),
	}, nil
}
