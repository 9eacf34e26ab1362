package memory

import (
	"context"
	"sort"
	"time"

	"github.com/hugohenrick/mercadinho/internal/domain/client"
	"github.com/hugohenrick/mercadinho/internal/domain/finance"
	"github.com/hugohenrick/mercadinho/internal/domain/order"
	"github.com/hugohenrick/mercadinho/internal/domain/product"
	"github.com/hugohenrick/mercadinho/internal/domain/sale"
	"github.com/hugohenrick/mercadinho/internal/domain/supplier"
)

// Products retorna o repositório de produtos
func (s *Store) Products() product.Repository { return &productRepo{s} }

// Suppliers retorna o repositório de fornecedores
func (s *Store) Suppliers() supplier.Repository { return &supplierRepo{s} }

// Clients retorna o repositório de clientes
func (s *Store) Clients() client.Repository { return &clientRepo{s} }

// Orders retorna o repositório de pedidos
func (s *Store) Orders() order.Repository { return &orderRepo{s} }

// Sales retorna o repositório de vendas
func (s *Store) Sales() sale.Repository { return &saleRepo{s} }

// Payables retorna o repositório de contas a pagar
func (s *Store) Payables() finance.PayableRepository {
	return &installmentRepo{s: s, kind: finance.KindPayable}
}

// Receivables retorna o repositório de contas a receber
func (s *Store) Receivables() finance.ReceivableRepository {
	return &installmentRepo{s: s, kind: finance.KindReceivable}
}

type productRepo struct{ s *Store }

func (r *productRepo) Create(ctx context.Context, p *product.Product) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p.SupplierID != nil {
		if _, ok := r.s.data.suppliers[*p.SupplierID]; !ok {
			return supplier.ErrNotFound
		}
	}
	row := *p
	row.Supplier = nil
	r.s.data.products[p.ID] = row
	return nil
}

func (r *productRepo) FindByID(ctx context.Context, id string) (*product.Product, error) {
	defer r.s.exclusive(ctx)()
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.load(id)
}

// Em memória a transação externa já é exclusiva; não há bloqueio de linha
func (r *productRepo) FindByIDForUpdate(ctx context.Context, id string) (*product.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *productRepo) DecrementStock(ctx context.Context, id string, quantity int) (*product.Product, bool, error) {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.fault("products.decrement"); err != nil {
		return nil, false, err
	}
	row, ok := r.s.data.products[id]
	if !ok || row.StockQuantity < quantity {
		return nil, false, nil
	}
	row.StockQuantity -= quantity
	row.UpdatedAt = time.Now()
	r.s.data.products[id] = row

	p, err := r.load(id)
	return p, err == nil, err
}

func (r *productRepo) ResetStockToMax(ctx context.Context, id string) (*product.Product, error) {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.fault("products.reset_stock"); err != nil {
		return nil, err
	}
	row, ok := r.s.data.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	row.StockQuantity = row.MaxQuantity
	row.UpdatedAt = time.Now()
	r.s.data.products[id] = row
	return r.load(id)
}

// load deve ser chamado com o mutex travado
func (r *productRepo) load(id string) (*product.Product, error) {
	row, ok := r.s.data.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	p := row
	if p.SupplierID != nil {
		if sup, ok := r.s.data.suppliers[*p.SupplierID]; ok {
			p.Supplier = &sup
		}
	}
	return &p, nil
}

type supplierRepo struct{ s *Store }

func (r *supplierRepo) Create(ctx context.Context, sup *supplier.Supplier) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.suppliers[sup.ID] = *sup
	return nil
}

func (r *supplierRepo) FindByID(ctx context.Context, id string) (*supplier.Supplier, error) {
	defer r.s.exclusive(ctx)()
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.data.suppliers[id]
	if !ok {
		return nil, supplier.ErrNotFound
	}
	return &row, nil
}

type clientRepo struct{ s *Store }

func (r *clientRepo) Create(ctx context.Context, c *client.Client) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.clients[c.ID] = *c
	return nil
}

func (r *clientRepo) FindByID(ctx context.Context, id string) (*client.Client, error) {
	defer r.s.exclusive(ctx)()
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.data.clients[id]
	if !ok {
		return nil, client.ErrNotFound
	}
	return &row, nil
}

type orderRepo struct{ s *Store }

func (r *orderRepo) Create(ctx context.Context, o *order.Order) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.fault("orders.create"); err != nil {
		return err
	}
	row := *o
	row.Items = append([]order.Item(nil), o.Items...)
	r.s.data.orders = append(r.s.data.orders, row)
	return nil
}

func (r *orderRepo) List(ctx context.Context, limit, offset int) ([]*order.Order, error) {
	defer r.s.exclusive(ctx)()
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]*order.Order, 0, len(r.s.data.orders))
	for i := len(r.s.data.orders) - 1; i >= 0; i-- {
		o := r.s.data.orders[i]
		o.Items = append([]order.Item{}, o.Items...)
		all = append(all, &o)
	}
	return page(all, limit, offset), nil
}

type saleRepo struct{ s *Store }

func (r *saleRepo) Create(ctx context.Context, sl *sale.Sale) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.fault("sales.create"); err != nil {
		return err
	}
	row := *sl
	row.Items = nil
	r.s.data.sales = append(r.s.data.sales, row)
	return nil
}

func (r *saleRepo) AddItem(ctx context.Context, it sale.Item) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.fault("sales.add_item"); err != nil {
		return err
	}
	for i := range r.s.data.sales {
		if r.s.data.sales[i].ID == it.SaleID {
			r.s.data.sales[i].Items = append(r.s.data.sales[i].Items, it)
			return nil
		}
	}
	return sale.ErrNotFound
}

func (r *saleRepo) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	defer r.s.exclusive(ctx)()
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, row := range r.s.data.sales {
		if row.ID == id {
			row.Items = append([]sale.Item{}, row.Items...)
			return &row, nil
		}
	}
	return nil, sale.ErrNotFound
}

func (r *saleRepo) List(ctx context.Context, limit, offset int) ([]*sale.Sale, error) {
	defer r.s.exclusive(ctx)()
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]*sale.Sale, 0, len(r.s.data.sales))
	for i := len(r.s.data.sales) - 1; i >= 0; i-- {
		row := r.s.data.sales[i]
		row.Items = append([]sale.Item{}, row.Items...)
		all = append(all, &row)
	}
	return page(all, limit, offset), nil
}

type installmentRepo struct {
	s    *Store
	kind finance.Kind
}

func (r *installmentRepo) CreateBatch(ctx context.Context, installments []*finance.Installment) error {
	defer r.s.exclusive(ctx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.fault(string(r.kind) + "s.create"); err != nil {
		return err
	}
	for _, in := range installments {
		if in.Kind != r.kind {
			return finance.ErrKindMismatch
		}
	}
	for _, in := range installments {
		if r.kind == finance.KindPayable {
			r.s.data.payables = append(r.s.data.payables, *in)
		} else {
			r.s.data.receivables = append(r.s.data.receivables, *in)
		}
	}
	return nil
}

func (r *installmentRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*finance.Installment, error) {
	return r.list(ctx, supplierID), nil
}

func (r *installmentRepo) ListByClient(ctx context.Context, clientID string) ([]*finance.Installment, error) {
	return r.list(ctx, clientID), nil
}

func (r *installmentRepo) list(ctx context.Context, ownerID string) []*finance.Installment {
	defer r.s.exclusive(ctx)()
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := r.s.data.receivables
	if r.kind == finance.KindPayable {
		rows = r.s.data.payables
	}

	result := []*finance.Installment{}
	for _, row := range rows {
		if row.OwnerID == ownerID {
			in := row
			result = append(result, &in)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DueDate.Before(result[j].DueDate)
	})
	return result
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}
