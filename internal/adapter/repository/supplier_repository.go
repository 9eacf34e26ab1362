package repository

import (
	"context"
	"errors"

	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/hugohenrick/mercadinho/internal/domain/supplier"
	"github.com/hugohenrick/mercadinho/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

// SupplierRepository implementa a interface supplier.Repository
type SupplierRepository struct {
	db *database.PostgresDB
}

// NewSupplierRepository cria uma nova instância de SupplierRepository
func NewSupplierRepository(db *database.PostgresDB) *SupplierRepository {
	return &SupplierRepository{db: db}
}

// Create implementa supplier.Repository.Create
func (r *SupplierRepository) Create(ctx context.Context, s *supplier.Supplier) error {
	_, err := r.db.Conn(ctx).Exec(ctx,
		`INSERT INTO suppliers (id, name, document, max_installments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.Name, s.Document, s.MaxInstallments, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return domain.Persistence("criar fornecedor", err)
	}
	return nil
}

// FindByID implementa supplier.Repository.FindByID
func (r *SupplierRepository) FindByID(ctx context.Context, id string) (*supplier.Supplier, error) {
	if !isUUID(id) {
		return nil, supplier.ErrNotFound
	}

	var s supplier.Supplier
	err := r.db.Conn(ctx).QueryRow(ctx,
		`SELECT id, name, COALESCE(document, ''), max_installments, created_at, updated_at
		FROM suppliers WHERE id = $1`,
		id).Scan(&s.ID, &s.Name, &s.Document, &s.MaxInstallments, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, supplier.ErrNotFound
		}
		return nil, domain.Persistence("buscar fornecedor", err)
	}
	return &s, nil
}
