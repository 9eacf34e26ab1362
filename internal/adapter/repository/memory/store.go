// Package memory guarda todas as entidades em memória, com transações que
// desfazem as alterações em caso de erro. Usado nos testes e com
// STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	"github.com/hugohenrick/mercadinho/internal/domain/client"
	"github.com/hugohenrick/mercadinho/internal/domain/finance"
	"github.com/hugohenrick/mercadinho/internal/domain/order"
	"github.com/hugohenrick/mercadinho/internal/domain/product"
	"github.com/hugohenrick/mercadinho/internal/domain/sale"
	"github.com/hugohenrick/mercadinho/internal/domain/supplier"
)

type txKey struct{}

// Linhas guardadas por valor; o fornecedor do produto é montado na leitura
type (
	productRow     = product.Product
	supplierRow    = supplier.Supplier
	clientRow      = client.Client
	orderRow       = order.Order
	saleRow        = sale.Sale
	installmentRow = finance.Installment
)

// state é tudo que uma transação precisa restaurar no rollback
type state struct {
	products    map[string]productRow
	suppliers   map[string]supplierRow
	clients     map[string]clientRow
	orders      []orderRow
	sales       []saleRow
	payables    []installmentRow
	receivables []installmentRow
}

// Store implementa os repositórios e o domain.Transactor em memória
type Store struct {
	txMu   sync.Mutex // serializa transações de nível externo
	mu     sync.RWMutex
	data   state
	faults map[string]error
}

// NewStore cria um store vazio
func NewStore() *Store {
	return &Store{
		data: state{
			products:  map[string]productRow{},
			suppliers: map[string]supplierRow{},
			clients:   map[string]clientRow{},
		},
		faults: map[string]error{},
	}
}

// Transaction implementa domain.Transactor. A transação externa segura um
// mutex até terminar; transações aninhadas funcionam como savepoints.
func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) == nil {
		s.txMu.Lock()
		defer s.txMu.Unlock()
		ctx = context.WithValue(ctx, txKey{}, true)
	}

	snapshot := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

// exclusive trava o mutex de transações para chamadas feitas fora de uma
// transação. Assim um rollback concorrente não apaga a escrita e a leitura
// não enxerga dados ainda não confirmados.
func (s *Store) exclusive(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		return func() {}
	}
	s.txMu.Lock()
	return s.txMu.Unlock
}

// InjectFault faz a operação nomeada falhar com err até ClearFaults.
// Operações: products.decrement, products.reset_stock, orders.create,
// sales.create, sales.add_item, payables.create, receivables.create.
func (s *Store) InjectFault(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

// ClearFaults remove todas as falhas injetadas
func (s *Store) ClearFaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = map[string]error{}
}

// fault deve ser chamado com s.mu travado
func (s *Store) fault(op string) error {
	return s.faults[op]
}

func (s *Store) snapshot() state {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := state{
		products:    make(map[string]productRow, len(s.data.products)),
		suppliers:   make(map[string]supplierRow, len(s.data.suppliers)),
		clients:     make(map[string]clientRow, len(s.data.clients)),
		orders:      make([]orderRow, len(s.data.orders)),
		sales:       make([]saleRow, len(s.data.sales)),
		payables:    append([]installmentRow(nil), s.data.payables...),
		receivables: append([]installmentRow(nil), s.data.receivables...),
	}
	for k, v := range s.data.products {
		cp.products[k] = v
	}
	for k, v := range s.data.suppliers {
		cp.suppliers[k] = v
	}
	for k, v := range s.data.clients {
		cp.clients[k] = v
	}
	for i, o := range s.data.orders {
		o.Items = append(o.Items[:0:0], o.Items...)
		cp.orders[i] = o
	}
	for i, sl := range s.data.sales {
		sl.Items = append(sl.Items[:0:0], sl.Items...)
		cp.sales[i] = sl
	}
	return cp
}

func (s *Store) restore(snapshot state) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = snapshot
}
