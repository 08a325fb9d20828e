package authenticating

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/open-finance-api/infrastructure/repository"
	"github.com/vfg2006/open-finance-api/internal/config"
	"github.com/vfg2006/open-finance-api/internal/domain"
	"github.com/vfg2006/open-finance-api/pkg/apiErrors"
	"github.com/vfg2006/open-finance-api/pkg/log"
	"github.com/vfg2006/open-finance-api/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleAdmin   = 1
	RoleDefault = 3

	MinPasswordLength = 6
	defaultTokenTTL   = 24 * time.Hour
)

type Authenticator interface {
	Register(ctx context.Context, request *domain.RegisterUserRequest) (*domain.User, error)
	Login(ctx context.Context, cpf, password string) (string, error)
	GetUserProfile(ctx context.Context, userID int) (*domain.User, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewService(userRepo repository.UserRepository, cfg *config.Config) Authenticator {
	return &Service{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

func (s *Service) Register(ctx context.Context, request *domain.RegisterUserRequest) (*domain.User, error) {
	if request == nil || request.CPF == "" || request.Name == "" || request.Email == "" || request.Password == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "CPF, nome, email e senha são obrigatórios")
	}

	cpf := utils.NormalizeCPF(request.CPF)
	if !utils.IsValidCPF(cpf) {
		return nil, NewAuthError(ErrInvalidCPF, apiErrors.ErrInvalidCPF, "CPF deve ter 11 dígitos")
	}

	if len(request.Password) < MinPasswordLength {
		return nil, NewAuthError(ErrWeakPassword, apiErrors.ErrWeakPassword, fmt.Sprintf("A senha deve ter no mínimo %d caracteres", MinPasswordLength))
	}

	email := handleEmail(request.Email)

	existing, err := s.userRepo.GetUserByCPF(ctx, cpf)
	if err != nil {
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}
	if existing == nil {
		existing, err = s.userRepo.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
		}
	}
	if existing != nil {
		return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "CPF ou email já cadastrado")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao processar senha")
	}

	user, err := s.userRepo.CreateUser(ctx, &domain.User{
		CPF:          cpf,
		Name:         strings.TrimSpace(request.Name),
		Email:        email,
		PasswordHash: string(hashedPassword),
		RoleID:       RoleDefault,
	})
	if err != nil {
		// Cadastro concorrente com o mesmo CPF ou email
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "CPF ou email já cadastrado")
		}
		return nil, NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao criar usuário")
	}

	log.ForContext(ctx).WithField("user_id", user.ID).Info("Usuário cadastrado")

	user.PasswordHash = ""
	return user, nil
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

func (s *Service) Login(ctx context.Context, cpf, password string) (string, error) {
	if cpf == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "CPF e senha são obrigatórios")
	}

	user, err := s.userRepo.GetUserByCPF(ctx, utils.NormalizeCPF(cpf))
	if err != nil {
		return "", NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Erro ao consultar usuário no banco de dados")
	}

	// Usuário inexistente e senha incorreta têm a mesma resposta
	if user == nil {
		return "", NewAuthError(ErrUserNotFound, apiErrors.ErrInvalidCredentials, "CPF ou senha inválidos")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "CPF ou senha inválidos")
	}

	token, err := generateJWT(user, s.cfg.SecretKey, s.tokenTTL())
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, nil
}

func (s *Service) tokenTTL() time.Duration {
	if s.cfg.Auth.TokenTTL > 0 {
		return s.cfg.Auth.TokenTTL
	}
	return defaultTokenTTL
}

func (s *Service) GetUserProfile(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar perfil do usuário")
		return nil, NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, "Erro ao buscar usuário")
	}
	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "Usuário não encontrado")
	}

	user.PasswordHash = ""
	return user, nil
}

func generateJWT(user *domain.User, secretKey string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := domain.Claims{
		UserID:     user.ID,
		UserCPF:    user.CPF,
		UserName:   user.Name,
		UserEmail:  user.Email,
		UserRoleID: user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "Token expirado")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "Token inválido")
}
