package stockrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"posstock/internal/domain"
	apperror "posstock/internal/errors"
	"posstock/internal/pkg/cache"
	"posstock/internal/pkg/logger"
	"posstock/internal/repository/productrepo"
)

// BuildAdjustment recebe o produto bloqueado na transação e devolve a linha do
// livro a gravar. Um erro aborta a transação sem efeito.
type BuildAdjustment func(current domain.Product) (domain.StockAdjustment, error)

// StockRepository grava ajustes de estoque e mantém a quantidade do produto.
type StockRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewStockRepository cria e retorna uma nova instância do Repositório de Estoque.
func NewStockRepository(db *sql.DB, cacheClient cache.Client, dbTimeout time.Duration, log logger.Logger) *StockRepository {
	return &StockRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// ApplyAdjustment bloqueia o produto, confere a versão esperada (OCC), deixa
// build validar o ajuste contra o estado bloqueado e grava quantidade e livro
// na mesma transação.
func (r *StockRepository) ApplyAdjustment(ctx context.Context, productID string, expectedVersion int, build BuildAdjustment) (domain.AdjustmentOutcome, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao iniciar transação de ajuste.", err)
		return domain.AdjustmentOutcome{}, apperror.NewDBError("Falha ao iniciar transação", err)
	}
	defer tx.Rollback()

	// 1. Bloqueia a linha do produto até o commit.
	current, err := productrepo.ScanProduct(tx.QueryRowContext(ctxTimeout,
		`SELECT id, sku, name, description, case_size, pack_size,
			selling_price, purchase_price, case_selling_price, case_purchase_price,
			quantity, version, is_active, created_at, updated_at
		FROM products WHERE id = $1 FOR UPDATE`, productID))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.AdjustmentOutcome{}, apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %s não existe.", productID))
	}
	if err != nil {
		r.logger.Error("Falha ao bloquear produto para ajuste.", err)
		return domain.AdjustmentOutcome{}, apperror.NewDBError("Falha ao buscar produto para ajuste", err)
	}

	// 2. OCC: o operador precisa ter visto a versão atual.
	if current.Version != expectedVersion {
		r.logger.Warn("Versão do produto desatualizada.", map[string]interface{}{
			"product_id":       productID,
			"expected_version": expectedVersion,
			"current_version":  current.Version,
		})
		return domain.AdjustmentOutcome{}, apperror.NewConflictError("O estoque foi modificado por outra operação. Recarregue e tente novamente.")
	}

	// 3. Revalida contra o estado bloqueado.
	adj, err := build(current)
	if err != nil {
		return domain.AdjustmentOutcome{}, err
	}

	now := time.Now().UTC()
	adj.ID = uuid.NewString()
	adj.ProductID = productID
	adj.QuantityBefore = current.Quantity
	adj.CreatedAt = now

	// 4. Atualiza quantidade e versão.
	res, err := tx.ExecContext(ctxTimeout,
		`UPDATE products SET quantity = $1, version = version + 1, updated_at = $2
		WHERE id = $3 AND version = $4`,
		adj.QuantityAfter, now, productID, current.Version)
	if err != nil {
		r.logger.Error("Falha ao atualizar quantidade do produto.", err)
		return domain.AdjustmentOutcome{}, apperror.NewDBError("Falha ao atualizar estoque", err)
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return domain.AdjustmentOutcome{}, apperror.NewConflictError("O estoque foi modificado por outra operação. Recarregue e tente novamente.")
	}

	// 5. Livro de ajustes.
	_, err = tx.ExecContext(ctxTimeout,
		`INSERT INTO stock_adjustments (id, product_id, reason_code, quantity_delta, quantity_before,
			quantity_after, mode, input_unit, raw_value, notes, actor_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		adj.ID, adj.ProductID, adj.ReasonCode, adj.QuantityDelta, adj.QuantityBefore,
		adj.QuantityAfter, adj.Mode, adj.InputUnit, adj.RawValue, adj.Notes, adj.ActorID, adj.CreatedAt)
	if err != nil {
		r.logger.Error("Falha ao gravar ajuste no livro.", err)
		return domain.AdjustmentOutcome{}, apperror.NewDBError("Falha ao gravar ajuste", err)
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Falha ao commitar transação de ajuste.", err)
		return domain.AdjustmentOutcome{}, apperror.NewDBError("Falha ao commitar transação", err)
	}

	if err := r.Cache.Delete(ctx, productrepo.CacheKey(productID)); err != nil {
		r.logger.Warn("Falha ao invalidar cache do produto.", map[string]interface{}{"product_id": productID, "error": err.Error()})
	}

	current.Quantity = adj.QuantityAfter
	current.Version++
	current.UpdatedAt = now

	r.logger.Info("Ajuste de estoque aplicado.", map[string]interface{}{
		"product_id":     productID,
		"adjustment_id":  adj.ID,
		"reason_code":    adj.ReasonCode,
		"quantity_delta": adj.QuantityDelta,
		"new_quantity":   current.Quantity,
		"new_version":    current.Version,
	})
	return domain.AdjustmentOutcome{Adjustment: adj, Product: current}, nil
}

// ListAdjustments devolve o livro de um produto, do mais recente ao mais antigo.
func (r *StockRepository) ListAdjustments(ctx context.Context, productID string, limit int) ([]domain.StockAdjustment, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout,
		`SELECT id, product_id, reason_code, quantity_delta, quantity_before, quantity_after,
			mode, input_unit, raw_value, notes, actor_id, created_at
		FROM stock_adjustments
		WHERE product_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, productID, limit)
	if err != nil {
		r.logger.Error("Falha ao listar ajustes.", err)
		return nil, apperror.NewDBError("Falha ao listar ajustes", err)
	}
	defer rows.Close()

	adjustments := make([]domain.StockAdjustment, 0, limit)
	for rows.Next() {
		var a domain.StockAdjustment
		if err := rows.Scan(&a.ID, &a.ProductID, &a.ReasonCode, &a.QuantityDelta, &a.QuantityBefore, &a.QuantityAfter,
			&a.Mode, &a.InputUnit, &a.RawValue, &a.Notes, &a.ActorID, &a.CreatedAt); err != nil {
			return nil, apperror.NewDBError("Falha ao ler ajuste", err)
		}
		adjustments = append(adjustments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Falha ao iterar ajustes", err)
	}
	return adjustments, nil
}
