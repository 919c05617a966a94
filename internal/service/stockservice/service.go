package stockservice

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"posstock/internal/domain"
	apperror "posstock/internal/errors"
	"posstock/internal/pkg/logger"
	"posstock/internal/reconcile"
	"posstock/internal/repository/stockrepo"
)

// DefaultHistoryLimit é o tamanho padrão da página do livro de ajustes.
const DefaultHistoryLimit = 50

// ProductReader é o que o serviço precisa para ler o snapshot do produto.
type ProductReader interface {
	FindByID(ctx context.Context, id string) (domain.Product, error)
}

// StockRepository define o contrato que o Serviço de Estoque espera da camada de Persistência.
type StockRepository interface {
	ApplyAdjustment(ctx context.Context, productID string, expectedVersion int, build stockrepo.BuildAdjustment) (domain.AdjustmentOutcome, error)
	ListAdjustments(ctx context.Context, productID string, limit int) ([]domain.StockAdjustment, error)
}

// Service orquestra o motor de reconciliação e a persistência dos ajustes.
type Service struct {
	products ProductReader
	repo     StockRepository
	logger   logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Estoque.
func NewService(products ProductReader, repo StockRepository, log logger.Logger) *Service {
	return &Service{products: products, repo: repo, logger: log}
}

// loadProduct lê o snapshot; IDs que não são UUID nem chegam ao banco.
func (s *Service) loadProduct(ctx context.Context, productID string) (domain.Product, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return domain.Product{}, apperror.NewValidationError("O ID do produto deve ser um UUID válido.")
	}
	return s.products.FindByID(ctx, productID)
}

// PreviewAdjustment valida o ajuste contra o snapshot atual sem gravar nada.
// Uma rejeição não é erro: volta no próprio resultado para a UI exibir.
func (s *Service) PreviewAdjustment(ctx context.Context, productID string, req reconcile.AdjustmentRequest) (reconcile.AdjustmentResult, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return reconcile.AdjustmentResult{}, err
	}
	return reconcile.Reconcile(product.StockState(), req), nil
}

// AdjustStock valida o ajuste e, se aceito, grava-o com OCC.
// A validação roda de novo contra a linha bloqueada na transação.
func (s *Service) AdjustStock(ctx context.Context, productID string, expectedVersion int, req reconcile.AdjustmentRequest, actorID string) (domain.AdjustmentOutcome, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return domain.AdjustmentOutcome{}, err
	}
	if !product.IsActive {
		return domain.AdjustmentOutcome{}, apperror.NewValidationError("Produto inativo não aceita ajustes de estoque.")
	}

	// Falha rápida com o snapshot lido, sem abrir transação.
	if result := reconcile.Reconcile(product.StockState(), req); !result.Valid {
		s.logger.Info("Ajuste rejeitado pelo motor.", map[string]interface{}{
			"product_id": productID,
			"reason":     result.RejectionReason,
		})
		return domain.AdjustmentOutcome{}, apperror.NewRejectionError(result.RejectionReason)
	}

	outcome, err := s.repo.ApplyAdjustment(ctx, productID, expectedVersion, func(current domain.Product) (domain.StockAdjustment, error) {
		result := reconcile.Reconcile(current.StockState(), req)
		if !result.Valid {
			return domain.StockAdjustment{}, apperror.NewRejectionError(result.RejectionReason)
		}
		return domain.StockAdjustment{
			ReasonCode:    req.ReasonCode,
			QuantityDelta: result.NormalizedDelta,
			QuantityAfter: result.NewQuantity,
			Mode:          req.Mode,
			InputUnit:     req.InputUnit,
			RawValue:      req.RawValue,
			Notes:         req.Notes,
			ActorID:       actorID,
		}, nil
	})
	if err != nil {
		var appErr apperror.AppError
		if errors.As(err, &appErr) {
			return domain.AdjustmentOutcome{}, err
		}
		s.logger.Error("Falha ao ajustar estoque no repositório.", err)
		return domain.AdjustmentOutcome{}, apperror.NewInternalError("Falha interna ao ajustar estoque.", err)
	}

	s.logger.Info("Estoque ajustado com sucesso.", map[string]interface{}{
		"product_id":   productID,
		"new_quantity": outcome.Product.Quantity,
		"new_version":  outcome.Product.Version,
	})
	return outcome, nil
}

// ListAdjustments devolve o histórico do produto, mais recente primeiro.
func (s *Service) ListAdjustments(ctx context.Context, productID string, limit int) ([]domain.StockAdjustment, error) {
	if limit <= 0 || limit > 500 {
		limit = DefaultHistoryLimit
	}
	if _, err := s.loadProduct(ctx, productID); err != nil {
		return nil, err
	}
	return s.repo.ListAdjustments(ctx, productID, limit)
}
