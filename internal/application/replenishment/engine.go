package replenishment

import (
	"context"
	"time"

	"github.com/hugohenrick/mercadinho/internal/application/inventory"
	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/hugohenrick/mercadinho/internal/domain/finance"
	"github.com/hugohenrick/mercadinho/internal/domain/order"
	"github.com/hugohenrick/mercadinho/internal/domain/product"
	"github.com/hugohenrick/mercadinho/internal/domain/supplier"
	"github.com/hugohenrick/mercadinho/internal/infrastructure/metrics"
	"github.com/hugohenrick/mercadinho/pkg/logger"
	"github.com/shopspring/decimal"
)

var (
	ErrNoSupplier         = domain.Wrap(domain.ErrNotFound, "produto sem fornecedor")
	ErrNothingToReplenish = domain.Wrap(domain.ErrValidation, "estoque já está na quantidade máxima")
)

// Status é o resultado de um disparo automático de reposição
type Status string

const (
	StatusSkipped   Status = "skipped"   // Estoque acima do mínimo
	StatusRestocked Status = "restocked" // Pedido criado e estoque no máximo
	StatusFailed    Status = "failed"    // Erro registrado em log; nada foi gravado
)

// Outcome descreve o que o disparo automático fez. O erro serve apenas para
// observabilidade: a reposição automática nunca falha para quem a chamou.
type Outcome struct {
	ProductID       string
	Status          Status
	Order           *order.Order
	QuantityOrdered int
	Err             error
}

// ManualResult é o retorno da reposição manual com contas a pagar
type ManualResult struct {
	Product         *product.Product
	SupplierID      string
	QuantityOrdered int
	TotalCost       decimal.Decimal
	Payables        []*finance.Installment
}

// Engine gera reposições de estoque
type Engine struct {
	tx        domain.Transactor
	ledger    *inventory.Ledger
	suppliers supplier.Repository
	orders    order.Repository
	payables  finance.PayableRepository
	logger    logger.Logger
	now       func() time.Time
}

// NewEngine cria um novo Engine de reposição
func NewEngine(
	tx domain.Transactor,
	ledger *inventory.Ledger,
	suppliers supplier.Repository,
	orders order.Repository,
	payables finance.PayableRepository,
	log logger.Logger,
) *Engine {
	return &Engine{
		tx:        tx,
		ledger:    ledger,
		suppliers: suppliers,
		orders:    orders,
		payables:  payables,
		logger:    log.With("component", "replenishment"),
		now:       time.Now,
	}
}

// WithClock troca o relógio usado para vencimentos
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// CheckAndRestock verifica o estoque do produto e, se estiver no mínimo ou
// abaixo, cria um pedido ao fornecedor e devolve o estoque ao máximo.
//
// Pedido e ajuste de estoque rodam numa transação própria (um savepoint
// quando chamado dentro da venda): ou os dois são gravados ou nenhum.
// Falhas são registradas em log e métricas e nunca devolvidas como erro.
func (e *Engine) CheckAndRestock(ctx context.Context, productID string) Outcome {
	out := Outcome{ProductID: productID, Status: StatusSkipped}

	err := e.tx.Transaction(ctx, func(ctx context.Context) error {
		p, err := e.ledger.GetProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if !p.NeedsRestock() {
			return nil
		}
		if p.SupplierID == nil {
			return ErrNoSupplier
		}

		quantity, _ := p.RestockPlan()
		if quantity <= 0 {
			return nil
		}

		o, err := order.NewOrder(*p.SupplierID, order.Item{
			ProductID:     p.ID,
			Quantity:      quantity,
			UnitCostPrice: p.CostPrice,
		})
		if err != nil {
			return err
		}
		if err := e.orders.Create(ctx, o); err != nil {
			return err
		}
		if _, err := e.ledger.ResetToMax(ctx, p.ID); err != nil {
			return err
		}

		out.Status = StatusRestocked
		out.Order = o
		out.QuantityOrdered = quantity
		return nil
	})
	if err != nil {
		out = Outcome{ProductID: productID, Status: StatusFailed, Err: err}
		e.logger.Error("erro ao criar pedido de reabastecimento", "product_id", productID, "error", err)
	} else if out.Status == StatusRestocked {
		e.logger.Info("pedido de reabastecimento gerado",
			"product_id", productID,
			"order_id", out.Order.ID,
			"quantity", out.QuantityOrdered,
			"total_value", out.Order.TotalValue.String())
	}

	metrics.ReplenishmentTotal.WithLabelValues("automatic", string(out.Status)).Inc()
	return out
}

// GenerateAutomaticOrder é a reposição disparada manualmente: calcula a mesma
// quantidade e custo da reposição automática, mas em vez de criar um pedido
// gera as contas a pagar ao fornecedor, divididas no número máximo de
// parcelas dele, e devolve o estoque ao máximo.
func (e *Engine) GenerateAutomaticOrder(ctx context.Context, productID string) (*ManualResult, error) {
	var result *ManualResult

	err := e.tx.Transaction(ctx, func(ctx context.Context) error {
		p, err := e.ledger.GetProductForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p.SupplierID == nil {
			return supplier.ErrNotFound
		}
		sup, err := e.suppliers.FindByID(ctx, *p.SupplierID)
		if err != nil {
			return err
		}

		quantity, cost := p.RestockPlan()
		if quantity <= 0 {
			return ErrNothingToReplenish
		}

		payables, err := finance.ScheduleInstallments(cost, sup.MaxInstallments, e.now(), sup.ID, finance.KindPayable)
		if err != nil {
			return err
		}
		finance.WithSource(payables, p.ID)
		if err := e.payables.CreateBatch(ctx, payables); err != nil {
			return err
		}

		updated, err := e.ledger.ResetToMax(ctx, p.ID)
		if err != nil {
			return err
		}

		result = &ManualResult{
			Product:         updated,
			SupplierID:      sup.ID,
			QuantityOrdered: quantity,
			TotalCost:       cost,
			Payables:        payables,
		}
		return nil
	})
	if err != nil {
		metrics.ReplenishmentTotal.WithLabelValues("manual", string(StatusFailed)).Inc()
		return nil, err
	}

	metrics.ReplenishmentTotal.WithLabelValues("manual", string(StatusRestocked)).Inc()
	e.logger.Info("reabastecimento manual com contas a pagar",
		"product_id", productID,
		"quantity", result.QuantityOrdered,
		"installments", len(result.Payables))
	return result, nil
}

// ListOrders lista os pedidos de reposição
func (e *Engine) ListOrders(ctx context.Context, limit, offset int) ([]*order.Order, error) {
	return e.orders.List(ctx, limit, offset)
}
