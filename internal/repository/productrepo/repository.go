package productrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"posstock/internal/domain"
	apperror "posstock/internal/errors"
	"posstock/internal/pkg/cache"
	"posstock/internal/pkg/database"
	"posstock/internal/pkg/logger"
)

// productCacheKey é a chave de cache de um produto pelo ID.
const productCacheKey = "product:%s"

// CacheKey devolve a chave de cache do produto; o stockrepo usa para invalidar.
func CacheKey(id string) string {
	return fmt.Sprintf(productCacheKey, id)
}

const productColumns = `id, sku, name, description, case_size, pack_size,
	selling_price, purchase_price, case_selling_price, case_purchase_price,
	quantity, version, is_active, created_at, updated_at`

// ProductRepository persiste produtos no PostgreSQL com cache-aside no Redis.
type ProductRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewProductRepository cria o repositório injetando DB e cache.
func NewProductRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, log logger.Logger) *ProductRepository {
	return &ProductRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    log,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// ScanProduct lê uma linha com productColumns, na mesma ordem.
func ScanProduct(row rowScanner) (domain.Product, error) {
	var (
		p                  domain.Product
		caseSize, packSize sql.NullInt64
	)
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &caseSize, &packSize,
		&p.SellingPrice, &p.PurchasePrice, &p.CaseSellingPrice, &p.CasePurchasePrice,
		&p.Quantity, &p.Version, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}
	p.CaseSize = fromNullInt(caseSize)
	p.PackSize = fromNullInt(packSize)
	return p, nil
}

func fromNullInt(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// Save insere um novo produto.
func (r *ProductRepository) Save(ctx context.Context, p domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const insertSQL = `INSERT INTO products (` + productColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		p.ID, p.SKU, p.Name, p.Description, toNullInt(p.CaseSize), toNullInt(p.PackSize),
		p.SellingPrice, p.PurchasePrice, p.CaseSellingPrice, p.CasePurchasePrice,
		p.Quantity, p.Version, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.Product{}, apperror.NewConflictError(fmt.Sprintf("SKU '%s' já cadastrado.", p.SKU))
		}
		r.logger.Error("Falha ao inserir produto no DB.", err)
		return domain.Product{}, apperror.NewDBError("Falha ao inserir produto", err)
	}

	r.logger.Info("Produto salvo no repositório.", map[string]interface{}{"product_id": p.ID, "sku": p.SKU})
	return p, nil
}

// FindByID busca um produto pelo ID usando Cache-Aside.
// Falhas do cache nunca derrubam a leitura: caem para o DB.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	key := CacheKey(id)

	if cached, err := r.Cache.Get(ctx, key); err == nil {
		var p domain.Product
		if jsonErr := json.Unmarshal([]byte(cached), &p); jsonErr == nil {
			r.logger.Debug("Produto servido do cache.", map[string]interface{}{"product_id": id})
			return p, nil
		}
		r.logger.Warn("Entrada de cache corrompida, consultando o DB.", map[string]interface{}{"key": key})
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		r.logger.Warn("Falha ao ler do cache, consultando o DB.", map[string]interface{}{"key": key, "error": err.Error()})
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	p, err := ScanProduct(r.DB.QueryRowContext(ctxTimeout,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %s não existe.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar produto no DB.", err)
		return domain.Product{}, apperror.NewDBError("Falha ao buscar produto", err)
	}

	if payload, marshalErr := json.Marshal(p); marshalErr == nil {
		if setErr := r.Cache.Set(ctx, key, payload, r.CacheTTL); setErr != nil {
			r.logger.Warn("Falha ao gravar produto no cache.", map[string]interface{}{"key": key, "error": setErr.Error()})
		}
	}

	return p, nil
}

// FindAll lista produtos com filtros por nome/SKU e paginação.
func (r *ProductRepository) FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var (
		conds []string
		args  []interface{}
	)
	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.SKU != "" {
		args = append(args, filter.SKU)
		conds = append(conds, fmt.Sprintf("sku = $%d", len(args)))
	}
	if filter.ActiveOnly {
		conds = append(conds, "is_active = TRUE")
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, filter.Limit, filter.Offset())
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao listar produtos no DB.", err)
		return nil, apperror.NewDBError("Falha ao listar produtos", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, filter.Limit)
	for rows.Next() {
		p, err := ScanProduct(rows)
		if err != nil {
			return nil, apperror.NewDBError("Falha ao ler produto", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("Falha ao iterar produtos", err)
	}
	return products, nil
}

// Update grava catálogo, embalagem e preços com OCC. A quantidade não é tocada:
// estoque só muda pelo livro de ajustes.
func (r *ProductRepository) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const updateSQL = `UPDATE products
		SET sku = $1, name = $2, description = $3, case_size = $4, pack_size = $5,
		    selling_price = $6, purchase_price = $7, case_selling_price = $8, case_purchase_price = $9,
		    version = version + 1, updated_at = $10
		WHERE id = $11 AND version = $12
		RETURNING ` + productColumns

	updated, err := ScanProduct(r.DB.QueryRowContext(ctxTimeout, updateSQL,
		p.SKU, p.Name, p.Description, toNullInt(p.CaseSize), toNullInt(p.PackSize),
		p.SellingPrice, p.PurchasePrice, p.CaseSellingPrice, p.CasePurchasePrice,
		time.Now().UTC(), p.ID, p.Version,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, r.missingOrStale(ctxTimeout, p.ID)
	}
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.Product{}, apperror.NewConflictError(fmt.Sprintf("SKU '%s' já cadastrado.", p.SKU))
		}
		r.logger.Error("Falha ao atualizar produto no DB.", err)
		return domain.Product{}, apperror.NewDBError("Falha ao atualizar produto", err)
	}

	r.invalidate(ctx, p.ID)
	return updated, nil
}

// Deactivate marca o produto como inativo; o histórico de ajustes é preservado.
func (r *ProductRepository) Deactivate(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout,
		`UPDATE products SET is_active = FALSE, version = version + 1, updated_at = $1 WHERE id = $2`,
		time.Now().UTC(), id)
	if err != nil {
		r.logger.Error("Falha ao desativar produto no DB.", err)
		return apperror.NewDBError("Falha ao desativar produto", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %s não existe.", id))
	}

	r.invalidate(ctx, id)
	return nil
}

// AverageDailySales lê a média diária de unidades vendidas na janela informada,
// a partir do agregado product_daily_sales alimentado pelo pipeline de vendas.
// Dias sem linha contam como zero. Sem nenhuma linha devolve zero.
func (r *ProductRepository) AverageDailySales(ctx context.Context, productID string, windowDays int) (decimal.Decimal, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const query = `SELECT COALESCE(SUM(units_sold), 0)
		FROM product_daily_sales
		WHERE product_id = $1 AND sales_date > CURRENT_DATE - $2::int`

	var total decimal.Decimal
	if err := r.DB.QueryRowContext(ctxTimeout, query, productID, windowDays).Scan(&total); err != nil {
		r.logger.Error("Falha ao ler vendas diárias no DB.", err)
		return decimal.Zero, apperror.NewDBError("Falha ao ler vendas diárias", err)
	}
	return total.Div(decimal.NewFromInt(int64(windowDays))), nil
}

func (r *ProductRepository) missingOrStale(ctx context.Context, id string) error {
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
		return apperror.NewDBError("Falha ao verificar produto", err)
	}
	if !exists {
		return apperror.NewNotFoundError(fmt.Sprintf("Produto com ID %s não existe.", id))
	}
	return apperror.NewConflictError("O produto foi modificado por outra operação. Recarregue e tente novamente.")
}

func (r *ProductRepository) invalidate(ctx context.Context, id string) {
	if err := r.Cache.Delete(ctx, CacheKey(id)); err != nil {
		r.logger.Warn("Falha ao invalidar cache do produto.", map[string]interface{}{"product_id": id, "error": err.Error()})
	}
}
