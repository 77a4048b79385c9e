package services

import (
	"errors"
	"fmt"
	"time"

	"storefront/internal/apperror"
	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// Principal is the authenticated caller carried by a token.
type Principal struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// IsAdmin reports whether the caller holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo      repositories.UserRepository
	jwtSecret     []byte
	tokenDuration time.Duration
}

// NewAuthService creates a new AuthService issuing tokens valid for tokenDuration.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenDuration time.Duration) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     []byte(jwtSecret),
		tokenDuration: tokenDuration,
	}
}

// RegisterUser registers a new user, hashes their password, and saves them to the database.
func (s *AuthService) RegisterUser(user *models.User) error {
	taken, err := exists(s.userRepo.GetByUsername(user.Username))
	if err != nil {
		return err
	}
	if taken {
		return apperror.Conflict("username '%s' already taken", user.Username)
	}
	taken, err = exists(s.userRepo.GetByEmail(user.Email))
	if err != nil {
		return err
	}
	if taken {
		return apperror.Conflict("email '%s' already registered", user.Email)
	}

	if user.Role == "" {
		user.Role = models.RoleUser
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	return s.userRepo.Create(user)
}

// exists interprets a user lookup, treating NotFound as absence.
func exists(user *models.User, err error) (bool, error) {
	var nf *apperror.NotFoundError
	switch {
	case err == nil:
		return user != nil, nil
	case errors.As(err, &nf):
		return false, nil
	}
	return false, err
}

// LoginUser authenticates a user and returns a signed JWT on success. Every
// failure is reported as apperror.ErrInvalidCredentials.
func (s *AuthService) LoginUser(username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		var nf *apperror.NotFoundError
		if !errors.As(err, &nf) {
			log.Error().Err(err).Msg("user lookup failed during login")
		}
		return "", apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperror.ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
		"exp":      now.Add(s.tokenDuration).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Debug().Err(err).Msg("token validation failed")
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// Authenticate validates tokenString and returns the caller it names.
func (s *AuthService) Authenticate(tokenString string) (*Principal, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	// JSON numbers decode as float64.
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return nil, fmt.Errorf("invalid token: missing user_id")
	}
	p := &Principal{UserID: uint(id)}
	p.Username, _ = claims["username"].(string)
	p.Email, _ = claims["email"].(string)
	p.Role, _ = claims["role"].(string)
	if p.Email == "" {
		return nil, fmt.Errorf("invalid token: missing email")
	}
	return p, nil
}

// CurrentUser loads the stored user behind p.
func (s *AuthService) CurrentUser(p Principal) (*models.User, error) {
	return s.userRepo.GetByID(p.UserID)
}
