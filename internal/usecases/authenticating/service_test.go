package authenticating

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/vfg2006/open-finance-api/infrastructure/repository"
	repomocks "github.com/vfg2006/open-finance-api/infrastructure/repository/mocks"
	"github.com/vfg2006/open-finance-api/internal/config"
	"github.com/vfg2006/open-finance-api/internal/domain"
	"github.com/vfg2006/open-finance-api/pkg/apiErrors"
)

func testConfig() *config.Config {
	return &config.Config{
		SecretKey: "test-secret",
		Auth:      config.Auth{TokenTTL: time.Hour},
	}
}

func TestService_Register(t *testing.T) {
	validRequest := func() *domain.RegisterUserRequest {
		return &domain.RegisterUserRequest{
			CPF:      "123.456.789-01",
			Name:     " Maria ",
			Email:    " Maria@Email.com ",
			Password: "segredo",
		}
	}

	tests := []struct {
		name     string
		request  *domain.RegisterUserRequest
		setup    func(repo *repomocks.MockUserRepository)
		wantErr  error
		wantCode string
		validate func(t *testing.T, user *domain.User)
	}{
		{
			name:    "Cadastro válido",
			request: validRequest(),
			setup: func(repo *repomocks.MockUserRepository) {
				repo.EXPECT().GetUserByCPF(gomock.Any(), "12345678901").Return(nil, nil)
				repo.EXPECT().GetUserByEmail(gomock.Any(), "maria@email.com").Return(nil, nil)
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, u *domain.User) (*domain.User, error) {
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("segredo")))
						u.ID = 1
						return u, nil
					})
			},
			validate: func(t *testing.T, user *domain.User) {
				assert.Equal(t, 1, user.ID)
				assert.Equal(t, "12345678901", user.CPF)
				assert.Equal(t, "Maria", user.Name)
				assert.Equal(t, "maria@email.com", user.Email)
				assert.Equal(t, RoleDefault, user.RoleID)
				assert.Empty(t, user.PasswordHash)
			},
		},
		{
			name:     "Dados obrigatórios ausentes",
			request:  &domain.RegisterUserRequest{CPF: "12345678901"},
			setup:    func(repo *repomocks.MockUserRepository) {},
			wantErr:  ErrMissingRequiredData,
			wantCode: apiErrors.ErrMissingRequiredData,
		},
		{
			name: "CPF com tamanho errado",
			request: func() *domain.RegisterUserRequest {
				r := validRequest()
				r.CPF = "123.456"
				return r
			}(),
			setup:    func(repo *repomocks.MockUserRepository) {},
			wantErr:  ErrInvalidCPF,
			wantCode: apiErrors.ErrInvalidCPF,
		},
		{
			name: "Senha curta",
			request: func() *domain.RegisterUserRequest {
				r := validRequest()
				r.Password = "12345"
				return r
			}(),
			setup:    func(repo *repomocks.MockUserRepository) {},
			wantErr:  ErrWeakPassword,
			wantCode: apiErrors.ErrWeakPassword,
		},
		{
			name:    "CPF já cadastrado",
			request: validRequest(),
			setup: func(repo *repomocks.MockUserRepository) {
				repo.EXPECT().GetUserByCPF(gomock.Any(), "12345678901").Return(&domain.User{ID: 9}, nil)
			},
			wantErr:  ErrUserAlreadyExists,
			wantCode: apiErrors.ErrUserAlreadyExists,
		},
		{
			name:    "Email já cadastrado",
			request: validRequest(),
			setup: func(repo *repomocks.MockUserRepository) {
				repo.EXPECT().GetUserByCPF(gomock.Any(), "12345678901").Return(nil, nil)
				repo.EXPECT().GetUserByEmail(gomock.Any(), "maria@email.com").Return(&domain.User{ID: 9}, nil)
			},
			wantErr:  ErrUserAlreadyExists,
			wantCode: apiErrors.ErrUserAlreadyExists,
		},
		{
			name:    "Violação de unicidade no insert",
			request: validRequest(),
			setup: func(repo *repomocks.MockUserRepository) {
				repo.EXPECT().GetUserByCPF(gomock.Any(), "12345678901").Return(nil, nil)
				repo.EXPECT().GetUserByEmail(gomock.Any(), "maria@email.com").Return(nil, nil)
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("criar usuário: %w", repository.ErrDuplicateKey))
			},
			wantErr:  ErrUserAlreadyExists,
			wantCode: apiErrors.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := repomocks.NewMockUserRepository(ctrl)
			tt.setup(repo)

			service := NewService(repo, testConfig())
			user, err := service.Register(context.Background(), tt.request)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				var authErr *AuthError
				require.True(t, errors.As(err, &authErr))
				assert.Equal(t, tt.wantCode, authErr.Code)
				return
			}

			require.NoError(t, err)
			tt.validate(t, user)
		})
	}
}

func TestService_LoginEValidateToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("segredo"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &domain.User{ID: 5, CPF: "12345678901", Name: "Maria", Email: "maria@email.com", PasswordHash: string(hash), RoleID: RoleDefault}

	tests := []struct {
		name     string
		cpf      string
		password string
		setup    func(repo *repomocks.MockUserRepository)
		wantErr  error
	}{
		{
			name:     "Login com CPF formatado",
			cpf:      "123.456.789-01",
			password: "segredo",
			setup: func(repo *repomocks.MockUserRepository) {
				repo.EXPECT().GetUserByCPF(gomock.Any(), "12345678901").Return(stored, nil)
			},
		},
		{
			name:     "Senha incorreta",
			cpf:      "12345678901",
			password: "errada",
			setup: func(repo *repomocks.MockUserRepository) {
				repo.EXPECT().GetUserByCPF(gomock.Any(), "12345678901").Return(stored, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "Usuário inexistente",
			cpf:      "98765432100",
			password: "segredo",
			setup: func(repo *repomocks.MockUserRepository) {
				repo.EXPECT().GetUserByCPF(gomock.Any(), "98765432100").Return(nil, nil)
			},
			wantErr: ErrUserNotFound,
		},
		{
			name:    "Senha ausente",
			cpf:     "12345678901",
			setup:   func(repo *repomocks.MockUserRepository) {},
			wantErr: ErrMissingRequiredData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := repomocks.NewMockUserRepository(ctrl)
			tt.setup(repo)

			service := NewService(repo, testConfig())
			token, err := service.Login(context.Background(), tt.cpf, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsCredentialsError(err) || errors.Is(err, ErrMissingRequiredData))
				return
			}

			require.NoError(t, err)
			claims, err := service.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, stored.ID, claims.UserID)
			assert.Equal(t, stored.CPF, claims.UserCPF)
			assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
		})
	}
}

func TestService_ValidateToken(t *testing.T) {
	service := NewService(nil, testConfig())

	t.Run("Token expirado", func(t *testing.T) {
		token, err := generateJWT(&domain.User{ID: 1}, "test-secret", -time.Minute)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
		assert.True(t, IsTokenError(err))
	})

	t.Run("Assinatura com outra chave", func(t *testing.T) {
		token, err := generateJWT(&domain.User{ID: 1}, "outra-chave", time.Hour)
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Algoritmo inesperado", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, domain.Claims{UserID: 1})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestService_GetUserProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := repomocks.NewMockUserRepository(ctrl)

	repo.EXPECT().GetUserByID(gomock.Any(), 5).Return(&domain.User{ID: 5, PasswordHash: "hash"}, nil)
	repo.EXPECT().GetUserByID(gomock.Any(), 6).Return(nil, nil)

	service := NewService(repo, testConfig())

	user, err := service.GetUserProfile(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash)

	_, err = service.GetUserProfile(context.Background(), 6)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
