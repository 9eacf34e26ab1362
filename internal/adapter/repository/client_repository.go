package repository

import (
	"context"
	"errors"

	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/hugohenrick/mercadinho/internal/domain/client"
	"github.com/hugohenrick/mercadinho/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

// ClientRepository implementa a interface client.Repository
type ClientRepository struct {
	db *database.PostgresDB
}

// NewClientRepository cria uma nova instância de ClientRepository
func NewClientRepository(db *database.PostgresDB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create implementa client.Repository.Create
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	_, err := r.db.Conn(ctx).Exec(ctx,
		`INSERT INTO clients (id, name, document, credit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.Document, c.Credit, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return domain.Persistence("criar cliente", err)
	}
	return nil
}

// FindByID implementa client.Repository.FindByID
func (r *ClientRepository) FindByID(ctx context.Context, id string) (*client.Client, error) {
	if !isUUID(id) {
		return nil, client.ErrNotFound
	}

	var c client.Client
	err := r.db.Conn(ctx).QueryRow(ctx,
		`SELECT id, name, COALESCE(document, ''), credit, created_at, updated_at
		FROM clients WHERE id = $1`,
		id).Scan(&c.ID, &c.Name, &c.Document, &c.Credit, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, client.ErrNotFound
		}
		return nil, domain.Persistence("buscar cliente", err)
	}
	return &c, nil
}
