package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/ecostock/ecostock-api/internal/domain"
	"github.com/ecostock/ecostock-api/internal/mapper"
	"github.com/ecostock/ecostock-api/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// AuthService verifies admin credentials
type AuthService struct {
	usuarioRepo *repository.UsuarioRepository
	logger      *zap.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(usuarioRepo *repository.UsuarioRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		usuarioRepo: usuarioRepo,
		logger:      logger,
	}
}

// Login checks a login/password pair and returns the account without its password
func (s *AuthService) Login(ctx context.Context, login, senha string) (*domain.UserDTO, error) {
	if login == "" || senha == "" {
		return nil, fmt.Errorf("%w: login and senha are required", ErrInvalidInput)
	}

	usuario, err := s.usuarioRepo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get usuario: %w", err)
	}

	if !CheckPassword(usuario.Senha, senha) {
		s.logger.Info("login rejected", zap.String("login", login))
		return nil, ErrInvalidCredentials
	}

	dto := mapper.ToUserDTO(usuario)
	return &dto, nil
}

// HashPlaintextPasswords replaces every stored plaintext password with its
// bcrypt hash and returns how many accounts were rewritten
func (s *AuthService) HashPlaintextPasswords(ctx context.Context) (int, error) {
	usuarios, err := s.usuarioRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list usuarios: %w", err)
	}

	hashed := 0
	for _, u := range usuarios {
		if IsPasswordHash(u.Senha) {
			continue
		}
		hash, err := HashPassword(u.Senha)
		if err != nil {
			return hashed, err
		}
		if err := s.usuarioRepo.UpdateSenha(ctx, u.ID, hash); err != nil {
			return hashed, fmt.Errorf("failed to update senha of %s: %w", u.Login, err)
		}
		s.logger.Info("password hashed", zap.String("login", u.Login))
		hashed++
	}
	return hashed, nil
}

// HashPassword returns the bcrypt hash of a password
func HashPassword(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// IsPasswordHash reports whether a stored password is a bcrypt hash
func IsPasswordHash(stored string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(stored, prefix) {
			return true
		}
	}
	return false
}

// CheckPassword compares a candidate with a stored password. Accounts created
// before hashing still hold plaintext, which is compared in constant time.
func CheckPassword(stored, candidate string) bool {
	if IsPasswordHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}
