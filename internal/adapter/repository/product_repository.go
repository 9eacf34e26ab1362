package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/hugohenrick/mercadinho/internal/domain/product"
	"github.com/hugohenrick/mercadinho/internal/domain/supplier"
	"github.com/hugohenrick/mercadinho/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

const productSelect = `
	SELECT
		p.id, p.name, p.stock_quantity, p.min_quantity, p.max_quantity,
		p.cost_price, p.sale_price, p.supplier_id, p.created_at, p.updated_at,
		s.id, s.name, s.document, s.max_installments, s.created_at, s.updated_at
	FROM products p
	LEFT JOIN suppliers s ON s.id = p.supplier_id`

// scanner é satisfeito por pgx.Row e pgx.Rows
type scanner interface {
	Scan(dest ...any) error
}

// ProductRepository implementa a interface product.Repository
type ProductRepository struct {
	db *database.PostgresDB
}

// NewProductRepository cria uma nova instância de ProductRepository
func NewProductRepository(db *database.PostgresDB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create implementa product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	_, err := r.db.Conn(ctx).Exec(ctx,
		`INSERT INTO products (
			id, name, stock_quantity, min_quantity, max_quantity,
			cost_price, sale_price, supplier_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Name, p.StockQuantity, p.MinQuantity, p.MaxQuantity,
		p.CostPrice, p.SalePrice, p.SupplierID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return supplier.ErrNotFound
		}
		return domain.Persistence("criar produto", err)
	}
	return nil
}

// FindByID implementa product.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	return r.find(ctx, productSelect+` WHERE p.id = $1`, id)
}

// FindByIDForUpdate implementa product.Repository.FindByIDForUpdate
func (r *ProductRepository) FindByIDForUpdate(ctx context.Context, id string) (*product.Product, error) {
	// FOR UPDATE OF p: o lado do fornecedor no LEFT JOIN não pode ser bloqueado
	return r.find(ctx, productSelect+` WHERE p.id = $1 FOR UPDATE OF p`, id)
}

func (r *ProductRepository) find(ctx context.Context, query, id string) (*product.Product, error) {
	if !isUUID(id) {
		return nil, product.ErrNotFound
	}

	p, err := scanProduct(r.db.Conn(ctx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, domain.Persistence("buscar produto", err)
	}
	return p, nil
}

// DecrementStock implementa product.Repository.DecrementStock com um único
// UPDATE condicional, que nunca deixa o estoque negativo
func (r *ProductRepository) DecrementStock(ctx context.Context, id string, quantity int) (*product.Product, bool, error) {
	if !isUUID(id) {
		return nil, false, product.ErrNotFound
	}

	var updatedID string
	err := r.db.Conn(ctx).QueryRow(ctx,
		`UPDATE products
		SET stock_quantity = stock_quantity - $2, updated_at = $3
		WHERE id = $1 AND stock_quantity >= $2
		RETURNING id`,
		id, quantity, time.Now()).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, domain.Persistence("baixar estoque", err)
	}

	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// ResetStockToMax implementa product.Repository.ResetStockToMax
func (r *ProductRepository) ResetStockToMax(ctx context.Context, id string) (*product.Product, error) {
	if !isUUID(id) {
		return nil, product.ErrNotFound
	}

	var updatedID string
	err := r.db.Conn(ctx).QueryRow(ctx,
		`UPDATE products
		SET stock_quantity = max_quantity, updated_at = $2
		WHERE id = $1
		RETURNING id`,
		id, time.Now()).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, domain.Persistence("repor estoque", err)
	}

	return r.FindByID(ctx, id)
}

func scanProduct(row scanner) (*product.Product, error) {
	var (
		p    product.Product
		sID  *string
		sNm  *string
		sDoc *string
		sMax *int
		sCAt *time.Time
		sUAt *time.Time
	)

	err := row.Scan(
		&p.ID, &p.Name, &p.StockQuantity, &p.MinQuantity, &p.MaxQuantity,
		&p.CostPrice, &p.SalePrice, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt,
		&sID, &sNm, &sDoc, &sMax, &sCAt, &sUAt)
	if err != nil {
		return nil, err
	}

	if sID != nil {
		p.Supplier = &supplier.Supplier{
			ID:              *sID,
			Name:            deref(sNm),
			Document:        deref(sDoc),
			MaxInstallments: derefInt(sMax),
		}
		if sCAt != nil {
			p.Supplier.CreatedAt = *sCAt
		}
		if sUAt != nil {
			p.Supplier.UpdatedAt = *sUAt
		}
	}

	return &p, nil
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
