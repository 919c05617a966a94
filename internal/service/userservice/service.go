package userservice

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"posstock/internal/domain"
	apperror "posstock/internal/errors"
	"posstock/internal/pkg/logger"
)

// UserRepository é o contrato de persistência de operadores.
type UserRepository interface {
	Save(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// TokenIssuer é o contrato da camada de token (internal/pkg/token).
type TokenIssuer interface {
	GenerateToken(userID string, role string) (string, error)
}

// UserService define o serviço de lógica de negócio para a entidade User.
type UserService struct {
	repo   UserRepository
	tokens TokenIssuer
	logger logger.Logger
}

// NewService cria uma nova instância do UserService.
func NewService(repo UserRepository, tokens TokenIssuer, log logger.Logger) *UserService {
	return &UserService{repo: repo, tokens: tokens, logger: log}
}

// Register registra um novo operador com o papel padrão de caixa.
func (s *UserService) Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error) {
	if registration.Email == "" || registration.Password == "" {
		return domain.User{}, apperror.NewValidationError("Email e senha são obrigatórios.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	user, err := s.repo.Save(ctx, domain.User{
		Email:        registration.Email,
		PasswordHash: string(hashed),
		Role:         domain.RoleCashier,
	})
	if err != nil {
		return domain.User{}, err
	}

	s.logger.Info("Usuário registrado.", map[string]interface{}{"user_id": user.ID, "role": user.Role})
	return user, nil
}

// Login autentica um operador, verifica a senha e gera um JWT.
func (s *UserService) Login(ctx context.Context, email string, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperror.NewUnauthorizedError("Email e senha são obrigatórios.")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// Não revela se o e-mail existe.
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Senha incorreta no login.", map[string]interface{}{"user_id": user.ID})
		return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	tokenString, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}
	return tokenString, nil
}
