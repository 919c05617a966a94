package productservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"posstock/internal/domain"
	apperror "posstock/internal/errors"
	"posstock/internal/pkg/logger"
	"posstock/internal/reconcile"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// ProductRepository define o contrato (interface) que este Serviço espera
// da camada de Persistência (DB, Cache).
type ProductRepository interface {
	Save(ctx context.Context, product domain.Product) (domain.Product, error)
	FindByID(ctx context.Context, id string) (domain.Product, error)
	FindAll(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, product domain.Product) (domain.Product, error)
	Deactivate(ctx context.Context, id string) error
}

// SalesReader fornece a velocidade de vendas usada na cobertura de estoque.
type SalesReader interface {
	AverageDailySales(ctx context.Context, productID string, windowDays int) (decimal.Decimal, error)
}

// Service é a estrutura que implementa as operações de catálogo e métricas.
type Service struct {
	repo            ProductRepository
	sales           SalesReader
	logger          logger.Logger
	policy          reconcile.Policy
	salesWindowDays int
}

// NewService cria e retorna uma nova instância do Serviço de Produto.
func NewService(repo ProductRepository, sales SalesReader, log logger.Logger, policy reconcile.Policy, salesWindowDays int) *Service {
	return &Service{
		repo:            repo,
		sales:           sales,
		logger:          log,
		policy:          policy,
		salesWindowDays: salesWindowDays,
	}
}

// checkInput aplica as regras que as tags do validator não expressam.
func checkInput(in domain.ProductInput) error {
	if in.SellingPrice.IsNegative() || in.PurchasePrice.IsNegative() {
		return apperror.NewValidationError("Preços unitários não podem ser negativos.")
	}
	if (in.CaseSellingPrice.Valid && in.CaseSellingPrice.Decimal.IsNegative()) ||
		(in.CasePurchasePrice.Valid && in.CasePurchasePrice.Decimal.IsNegative()) {
		return apperror.NewValidationError("Preços de caixa não podem ser negativos.")
	}
	if _, err := reconcile.ComputeUnitsPerCase(in.CaseSize, in.PackSize); err != nil {
		return apperror.NewRejectionError(reconcile.InvalidPackagingConfig)
	}
	return nil
}

func parseID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NewValidationError("O ID do produto deve ser um UUID válido.")
	}
	return nil
}

// CreateProduct cadastra um produto ativo com a quantidade inicial informada.
func (s *Service) CreateProduct(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	if err := checkInput(in); err != nil {
		return domain.Product{}, err
	}

	now := time.Now().UTC()
	product := domain.Product{
		ID:                uuid.NewString(),
		SKU:               in.SKU,
		Name:              in.Name,
		Description:       in.Description,
		CaseSize:          in.CaseSize,
		PackSize:          in.PackSize,
		SellingPrice:      in.SellingPrice,
		PurchasePrice:     in.PurchasePrice,
		CaseSellingPrice:  in.CaseSellingPrice,
		CasePurchasePrice: in.CasePurchasePrice,
		Quantity:          in.InitialQuantity,
		Version:           1,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.repo.Save(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}
	s.logger.Info("Produto criado.", map[string]interface{}{"product_id": created.ID, "sku": created.SKU})
	return created, nil
}

// GetProductByID busca um produto pelo ID.
func (s *Service) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	if err := parseID(id); err != nil {
		return domain.Product{}, err
	}
	return s.repo.FindByID(ctx, id)
}

// GetProducts lista produtos paginados. Filtros aceitos: name, sku, is_active.
func (s *Service) GetProducts(ctx context.Context, page, limit int, filters map[string]string) ([]domain.Product, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := domain.ProductFilter{Page: page, Limit: limit}
	if filters != nil {
		filter.Name = filters["name"]
		filter.SKU = filters["sku"]
		filter.ActiveOnly = filters["is_active"] == "true"
	}

	products, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		var appErr apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperror.NewInternalError(fmt.Sprintf("Falha interna ao buscar produtos. %s", err.Error()), err)
	}
	return products, nil
}

// UpdateProduct altera catálogo, embalagem e preços. A quantidade é preservada.
func (s *Service) UpdateProduct(ctx context.Context, id string, in domain.ProductInput) (domain.Product, error) {
	if err := parseID(id); err != nil {
		return domain.Product{}, err
	}
	if err := checkInput(in); err != nil {
		return domain.Product{}, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	current.SKU = in.SKU
	current.Name = in.Name
	current.Description = in.Description
	current.CaseSize = in.CaseSize
	current.PackSize = in.PackSize
	current.SellingPrice = in.SellingPrice
	current.PurchasePrice = in.PurchasePrice
	current.CaseSellingPrice = in.CaseSellingPrice
	current.CasePurchasePrice = in.CasePurchasePrice
	current.Version = in.ExpectedVersion

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return domain.Product{}, err
	}
	s.logger.Info("Produto atualizado.", map[string]interface{}{"product_id": id, "new_version": updated.Version})
	return updated, nil
}

// DeleteProduct desativa o produto.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := parseID(id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Produto desativado.", map[string]interface{}{"product_id": id})
	return nil
}

// GetPricing calcula margens e desconto da caixa do produto.
func (s *Service) GetPricing(ctx context.Context, id string) (domain.PricingView, error) {
	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return domain.PricingView{}, err
	}

	m, err := reconcile.Summarize(product.StockState(), decimal.Zero, s.policy)
	if err != nil {
		return domain.PricingView{}, s.rejection(err)
	}

	return domain.PricingView{
		ProductID:         product.ID,
		UnitsPerCase:      m.UnitsPerCase,
		UnitMargin:        m.UnitMargin,
		CaseSellingPrice:  m.CaseSellingPrice,
		CasePurchasePrice: m.CasePurchasePrice,
		CaseMargin:        m.CaseMargin,
		CaseDiscount:      m.CaseDiscount,
		PricingAnomaly:    m.CaseDiscount.IsNegative(),
	}, nil
}

// GetSupplyInsight estima os dias de cobertura e sugere reposição.
// Produto e velocidade de vendas são lidos em paralelo.
func (s *Service) GetSupplyInsight(ctx context.Context, id string) (domain.SupplyView, error) {
	if err := parseID(id); err != nil {
		return domain.SupplyView{}, err
	}

	var (
		product domain.Product
		avg     decimal.Decimal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		product, err = s.repo.FindByID(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		avg, err = s.sales.AverageDailySales(gctx, id, s.salesWindowDays)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.SupplyView{}, err
	}

	days := reconcile.EstimateDaysOfSupply(product.Quantity, avg)
	view := domain.SupplyView{
		ProductID:            product.ID,
		Quantity:             product.Quantity,
		AvgDailySales:        avg.Round(2),
		WindowDays:           s.salesWindowDays,
		DaysOfSupply:         days,
		ReorderThresholdDays: s.policy.ReorderThresholdDays,
		ReorderSuggested:     s.policy.ReorderSuggested(days),
	}
	if view.ReorderSuggested {
		s.logger.Debug("Reposição sugerida.", map[string]interface{}{"product_id": id, "days_of_supply": *days})
	}
	return view, nil
}

func (s *Service) rejection(err error) error {
	var reason reconcile.Rejection
	if errors.As(err, &reason) {
		return apperror.NewRejectionError(reason)
	}
	return apperror.NewInternalError("Falha ao calcular métricas do produto.", err)
}
