package user

import (
	"context"
	"net/http"

	"posstock/internal/domain"
	"posstock/internal/pkg/logger"
	"posstock/internal/pkg/respond"
)

// UserService define o contrato para as operações de registro e login.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error)
	Login(ctx context.Context, email string, password string) (string, error)
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// RegisterUserHandler lida com a requisição POST /v1/register.
// @Summary Registra um novo operador
// @Description Cria um operador com papel de caixa, hasheia a senha e salva no banco de dados.
// @Tags users
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Credenciais de registro (email e senha)"
// @Success 201 {object} domain.User "Usuário criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /v1/register [post]
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := respond.Bind(r, &reg); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	newUser, err := h.Service.Register(r.Context(), reg)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	// PasswordHash não é serializado (json:"-").
	respond.JSON(w, h.Logger, http.StatusCreated, newUser)
}

// LoginUserHandler lida com a requisição POST /v1/login.
// @Summary Autentica um operador e retorna um JWT
// @Tags users
// @Accept json
// @Produce json
// @Param login body domain.LoginRequest true "Credenciais do usuário (email e senha)"
// @Success 200 {object} domain.LoginResponse "Token JWT emitido"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Router /v1/login [post]
func (h *Handler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := respond.Bind(r, &req); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	token, err := h.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, h.Logger, http.StatusOK, domain.LoginResponse{Token: token})
}
