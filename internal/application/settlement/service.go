package settlement

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hugohenrick/mercadinho/internal/application/inventory"
	"github.com/hugohenrick/mercadinho/internal/application/replenishment"
	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/hugohenrick/mercadinho/internal/domain/client"
	"github.com/hugohenrick/mercadinho/internal/domain/finance"
	"github.com/hugohenrick/mercadinho/internal/domain/product"
	"github.com/hugohenrick/mercadinho/internal/domain/sale"
	"github.com/hugohenrick/mercadinho/internal/infrastructure/metrics"
	"github.com/hugohenrick/mercadinho/pkg/logger"
	"github.com/shopspring/decimal"
)

// LineItem é um produto pedido na venda
type LineItem struct {
	ProductID string
	Quantity  int
}

// CreateSaleInput contém os dados para registrar uma venda
type CreateSaleInput struct {
	ClientID        string
	DeliveryAddress string
	PaymentType     sale.PaymentType
	Items           []LineItem
	Installments    int
}

// Result é a venda gravada com o resultado das reposições disparadas por ela
type Result struct {
	Sale           *sale.Sale
	Receivables    []*finance.Installment
	Replenishments []replenishment.Outcome
}

// Restocker dispara a reposição automática após cada baixa de estoque
type Restocker interface {
	CheckAndRestock(ctx context.Context, productID string) replenishment.Outcome
}

// Service registra vendas
type Service struct {
	tx          domain.Transactor
	ledger      *inventory.Ledger
	restocker   Restocker
	clients     client.Repository
	sales       sale.Repository
	receivables finance.ReceivableRepository
	logger      logger.Logger
	now         func() time.Time
}

// NewService cria um novo serviço de vendas
func NewService(
	tx domain.Transactor,
	ledger *inventory.Ledger,
	restocker Restocker,
	clients client.Repository,
	sales sale.Repository,
	receivables finance.ReceivableRepository,
	log logger.Logger,
) *Service {
	return &Service{
		tx:          tx,
		ledger:      ledger,
		restocker:   restocker,
		clients:     clients,
		sales:       sales,
		receivables: receivables,
		logger:      log.With("component", "settlement"),
		now:         time.Now,
	}
}

// WithClock troca o relógio usado para vencimentos
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CreateSale valida estoque e crédito, grava a venda com seus itens, baixa o
// estoque, dispara a reposição de cada produto e gera as contas a receber.
// Tudo numa transação: qualquer erro desfaz a venda inteira. Falhas da
// reposição não interrompem a venda.
func (s *Service) CreateSale(ctx context.Context, input CreateSaleInput) (*Result, error) {
	if err := validateInput(input); err != nil {
		metrics.SalesRejected.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}

	var result *Result
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		c, err := s.clients.FindByID(ctx, input.ClientID)
		if err != nil {
			return err
		}

		// Valida todos os itens antes de gravar qualquer coisa
		products := make([]*product.Product, len(input.Items))
		total := decimal.Zero
		for i, item := range input.Items {
			p, err := s.ledger.GetProductForUpdate(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if !p.HasStock(item.Quantity) {
				return &inventory.InsufficientStockError{
					ProductID:   p.ID,
					ProductName: p.Name,
					Requested:   item.Quantity,
					Available:   p.StockQuantity,
				}
			}
			products[i] = p
			total = total.Add(p.Subtotal(item.Quantity))
		}

		if input.PaymentType == sale.PaymentStoreCredit && !c.CanAfford(total) {
			return domain.NewValidationError(sale.ErrCreditLimitExceeded,
				fmt.Sprintf("total %s, limite %s", total.StringFixed(2), c.Credit.StringFixed(2)))
		}

		sl, err := sale.NewSale(c.ID, input.DeliveryAddress, input.PaymentType, total, input.Installments)
		if err != nil {
			return err
		}
		if err := s.sales.Create(ctx, sl); err != nil {
			return err
		}

		outcomes := make([]replenishment.Outcome, 0, len(input.Items))
		for i, item := range input.Items {
			p := products[i]
			if err := s.sales.AddItem(ctx, sl.AddItem(p.ID, item.Quantity, p.SalePrice)); err != nil {
				return err
			}
			if _, err := s.ledger.ReserveAndDecrement(ctx, p.ID, item.Quantity); err != nil {
				return err
			}
			outcomes = append(outcomes, s.restocker.CheckAndRestock(ctx, p.ID))
		}

		var receivables []*finance.Installment
		if input.PaymentType.GeneratesReceivables() {
			receivables, err = finance.ScheduleInstallments(total, input.Installments, s.now(), c.ID, finance.KindReceivable)
			if err != nil {
				return err
			}
			finance.WithSource(receivables, sl.ID)
			if err := s.receivables.CreateBatch(ctx, receivables); err != nil {
				return err
			}
		}

		result = &Result{Sale: sl, Receivables: receivables, Replenishments: outcomes}
		return nil
	})
	if err != nil {
		metrics.SalesRejected.WithLabelValues(rejectReason(err)).Inc()
		s.logger.Warn("venda não registrada", "client_id", input.ClientID, "error", err)
		return nil, err
	}

	metrics.SalesTotal.WithLabelValues(string(result.Sale.PaymentType)).Inc()
	s.logger.Info("venda registrada",
		"sale_id", result.Sale.ID,
		"client_id", result.Sale.ClientID,
		"total_value", result.Sale.TotalValue.String(),
		"payment_type", string(result.Sale.PaymentType),
		"receivables", len(result.Receivables))
	return result, nil
}

// GetSale busca uma venda com seus itens
func (s *Service) GetSale(ctx context.Context, id string) (*sale.Sale, error) {
	return s.sales.FindByID(ctx, id)
}

// ListSales lista as vendas, mais recentes primeiro
func (s *Service) ListSales(ctx context.Context, limit, offset int) ([]*sale.Sale, error) {
	return s.sales.List(ctx, limit, offset)
}

func validateInput(input CreateSaleInput) error {
	if strings.TrimSpace(input.ClientID) == "" {
		return domain.NewValidationError(domain.ErrValidation, "cliente é obrigatório")
	}
	if len(input.Items) == 0 {
		return sale.ErrNoItems
	}
	for _, item := range input.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return domain.NewValidationError(domain.ErrValidation, "produto é obrigatório")
		}
		if item.Quantity <= 0 {
			return domain.NewValidationError(inventory.ErrInvalidQuantity,
				fmt.Sprintf("produto %s", item.ProductID))
		}
	}
	if !input.PaymentType.IsValid() {
		return domain.NewValidationError(sale.ErrInvalidPaymentType, string(input.PaymentType))
	}
	if input.Installments < 1 {
		return finance.ErrInvalidInstallmentCount
	}
	return nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrCreditLimitExceeded):
		return "credit_limit"
	case errors.Is(err, domain.ErrInvalidInstallmentCount), errors.Is(err, domain.ErrValidation):
		return "validation"
	default:
		return "persistence"
	}
}
