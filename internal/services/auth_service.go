package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"foodcourt/internal/models"
	"foodcourt/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

const otpValidity = 30 * time.Minute

// AuthService handles registration, login, token validation and the
// OTP-based password reset flow.
type AuthService struct {
	userRepo   repositories.UserRepository
	notifier   NotificationSink
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, notifier NotificationSink, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		notifier:   notifier,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// RegisterUser registers a new user, hashes their password, and saves them.
// Admins additionally get a generated admin ID which is emailed to them;
// the email is best effort.
func (s *AuthService) RegisterUser(user *models.User) error {
	if existing, err := s.userRepo.GetByEmail(user.Email); err == nil && existing != nil {
		return fmt.Errorf("%w: email '%s' already registered", ErrInvalidInput, user.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if user.Role == models.RoleAdmin {
		user.AdminID = generateAdminID()
	}

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}

	if user.AdminID != "" && s.notifier != nil {
		body := fmt.Sprintf("Your unique admin ID is: %s", user.AdminID)
		if err := s.notifier.Send(user.Email, "Admin registration", body); err != nil {
			log.Printf("Warning: failed to email admin ID to %s: %v", user.Email, err)
		}
	}
	return nil
}

// LoginUser authenticates a user by email and password and returns a signed
// JWT carrying the user's ID, email and role.
func (s *AuthService) LoginUser(email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Do not reveal whether the account exists.
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, user, nil
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
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// ForgotPassword stores a fresh OTP on the account and emails it to the
// user. The OTP is valid for 30 minutes.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%w: user", ErrNotFound)
		}
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(otpValidity)
	user.OTP = otp
	user.OTPExpiresAt = &expiry
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to store OTP: %w", err)
	}

	if s.notifier != nil {
		body := fmt.Sprintf("Your one time password (OTP) is: %s\nThis OTP is valid for 30 minutes. Please do not share it with anyone.", otp)
		if err := s.notifier.Send(user.Email, "Password reset OTP", body); err != nil {
			log.Printf("Warning: failed to email OTP to %s: %v", user.Email, err)
		}
	}
	return nil
}

// VerifyOTP checks an OTP for validity and freshness.
func (s *AuthService) VerifyOTP(email, otp string) error {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("%w: invalid or expired OTP", ErrInvalidInput)
	}
	if user.OTP == "" || user.OTP != otp ||
		user.OTPExpiresAt == nil || time.Now().After(*user.OTPExpiresAt) {
		return fmt.Errorf("%w: invalid or expired OTP", ErrInvalidInput)
	}
	return nil
}

// ResetPassword sets a new password after OTP verification and clears the OTP.
func (s *AuthService) ResetPassword(email, otp, password string) error {
	if err := s.VerifyOTP(email, otp); err != nil {
		return err
	}
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("%w: user", ErrNotFound)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	user.OTP = ""
	user.OTPExpiresAt = nil
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// generateAdminID produces a human-readable admin identifier like
// FOOD/2026/4821.
func generateAdminID() string {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		n = big.NewInt(0)
	}
	return fmt.Sprintf("FOOD/%d/%04d", time.Now().Year(), n.Int64()+1000)
}

// generateOTP produces a 6-digit one-time password.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
