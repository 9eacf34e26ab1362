package repository

import (
	"context"
	"errors"

	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/hugohenrick/mercadinho/internal/domain/sale"
	"github.com/hugohenrick/mercadinho/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

const saleSelect = `
	SELECT id, client_id, total_value, payment_type, status,
		delivery_address, installments, created_at
	FROM sales`

// SaleRepository implementa a interface sale.Repository
type SaleRepository struct {
	db *database.PostgresDB
}

// NewSaleRepository cria uma nova instância de SaleRepository
func NewSaleRepository(db *database.PostgresDB) *SaleRepository {
	return &SaleRepository{db: db}
}

// Create implementa sale.Repository.Create
func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	_, err := r.db.Conn(ctx).Exec(ctx,
		`INSERT INTO sales (
			id, client_id, total_value, payment_type, status,
			delivery_address, installments, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.ClientID, s.TotalValue, s.PaymentType, s.Status,
		s.DeliveryAddress, s.Installments, s.CreatedAt)
	if err != nil {
		return domain.Persistence("criar venda", err)
	}
	return nil
}

// AddItem implementa sale.Repository.AddItem
func (r *SaleRepository) AddItem(ctx context.Context, it sale.Item) error {
	_, err := r.db.Conn(ctx).Exec(ctx,
		`INSERT INTO sale_products (sale_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)`,
		it.SaleID, it.ProductID, it.Quantity, it.UnitPrice)
	if err != nil {
		return domain.Persistence("criar item da venda", err)
	}
	return nil
}

// FindByID implementa sale.Repository.FindByID
func (r *SaleRepository) FindByID(ctx context.Context, id string) (*sale.Sale, error) {
	if !isUUID(id) {
		return nil, sale.ErrNotFound
	}

	s, err := scanSale(r.db.Conn(ctx).QueryRow(ctx, saleSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sale.ErrNotFound
		}
		return nil, domain.Persistence("buscar venda", err)
	}

	if err := r.loadItems(ctx, map[string]*sale.Sale{s.ID: s}); err != nil {
		return nil, err
	}
	return s, nil
}

// List implementa sale.Repository.List
func (r *SaleRepository) List(ctx context.Context, limit, offset int) ([]*sale.Sale, error) {
	rows, err := r.db.Conn(ctx).Query(ctx,
		saleSelect+` ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, domain.Persistence("listar vendas", err)
	}
	defer rows.Close()

	sales := []*sale.Sale{}
	byID := map[string]*sale.Sale{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, domain.Persistence("ler venda", err)
		}
		sales = append(sales, s)
		byID[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("listar vendas", err)
	}

	if err := r.loadItems(ctx, byID); err != nil {
		return nil, err
	}
	return sales, nil
}

func (r *SaleRepository) loadItems(ctx context.Context, byID map[string]*sale.Sale) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	rows, err := r.db.Conn(ctx).Query(ctx,
		`SELECT sale_id, product_id, quantity, unit_price
		FROM sale_products WHERE sale_id = ANY($1::uuid[])
		ORDER BY id`,
		ids)
	if err != nil {
		return domain.Persistence("listar itens da venda", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it sale.Item
		if err := rows.Scan(&it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return domain.Persistence("ler item da venda", err)
		}
		if s, ok := byID[it.SaleID]; ok {
			s.Items = append(s.Items, it)
		}
	}
	if err := rows.Err(); err != nil {
		return domain.Persistence("listar itens da venda", err)
	}
	return nil
}

func scanSale(row scanner) (*sale.Sale, error) {
	var s sale.Sale
	err := row.Scan(&s.ID, &s.ClientID, &s.TotalValue, &s.PaymentType, &s.Status,
		&s.DeliveryAddress, &s.Installments, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	s.Items = []sale.Item{}
	return &s, nil
}
