package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"posstock/internal/domain"
	apperror "posstock/internal/errors"
	"posstock/internal/pkg/database"
	"posstock/internal/pkg/logger"
)

const (
	insertUserSQL = `INSERT INTO users (id, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	selectUserByEmailSQL = `SELECT id, email, password_hash, role, created_at, updated_at
		FROM users WHERE email = $1`
)

// UserRepository persiste os operadores do back-office.
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *UserRepository {
	return &UserRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// Save insere um novo usuário. E-mail repetido vira ConflictError.
func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	_, err := r.DB.ExecContext(ctxTimeout, insertUserSQL,
		user.ID, user.Email, user.PasswordHash, user.Role, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			r.logger.Warn("Tentativa de registro com e-mail existente.", map[string]interface{}{"email": user.Email})
			return domain.User{}, apperror.NewConflictError(fmt.Sprintf("E-mail '%s' já cadastrado.", user.Email))
		}
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao inserir usuário", err)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": user.ID, "email": user.Email})
	return user, nil
}

// FindByEmail busca um usuário pelo endereço de e-mail.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var user domain.User
	err := r.DB.QueryRowContext(ctxTimeout, selectUserByEmailSQL, email).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		r.logger.Info("Usuário não encontrado no DB por email.", map[string]interface{}{"email": email})
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com email '%s' não encontrado", email))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar usuário por email no DB.", err)
		return domain.User{}, apperror.NewDBError("Falha ao buscar usuário por email", err)
	}
	return user, nil
}
