package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/mercadinho/internal/domain"
	"github.com/hugohenrick/mercadinho/internal/domain/finance"
	"github.com/hugohenrick/mercadinho/internal/infrastructure/database"
)

// InstallmentRepository grava parcelas em payables ou receivables.
// Implementa finance.PayableRepository e finance.ReceivableRepository.
type InstallmentRepository struct {
	db          *database.PostgresDB
	kind        finance.Kind
	table       string
	ownerColumn string
}

// NewPayableRepository cria o repositório de contas a pagar
func NewPayableRepository(db *database.PostgresDB) *InstallmentRepository {
	return &InstallmentRepository{db: db, kind: finance.KindPayable, table: "payables", ownerColumn: "supplier_id"}
}

// NewReceivableRepository cria o repositório de contas a receber
func NewReceivableRepository(db *database.PostgresDB) *InstallmentRepository {
	return &InstallmentRepository{db: db, kind: finance.KindReceivable, table: "receivables", ownerColumn: "client_id"}
}

// CreateBatch grava as parcelas na transação corrente
func (r *InstallmentRepository) CreateBatch(ctx context.Context, installments []*finance.Installment) error {
	conn := r.db.Conn(ctx)
	query := fmt.Sprintf(
		`INSERT INTO %s (id, %s, source_id, number, count, amount, due_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.table, r.ownerColumn)

	for _, in := range installments {
		if in.Kind != r.kind {
			return finance.ErrKindMismatch
		}
		var source *string
		if in.SourceID != "" {
			source = &in.SourceID
		}
		_, err := conn.Exec(ctx, query,
			in.ID, in.OwnerID, source, in.Number, in.Count, in.Amount, in.DueDate, in.CreatedAt)
		if err != nil {
			return domain.Persistence("gravar parcela", err)
		}
	}
	return nil
}

// ListBySupplier implementa finance.PayableRepository.ListBySupplier
func (r *InstallmentRepository) ListBySupplier(ctx context.Context, supplierID string) ([]*finance.Installment, error) {
	return r.listByOwner(ctx, supplierID)
}

// ListByClient implementa finance.ReceivableRepository.ListByClient
func (r *InstallmentRepository) ListByClient(ctx context.Context, clientID string) ([]*finance.Installment, error) {
	return r.listByOwner(ctx, clientID)
}

func (r *InstallmentRepository) listByOwner(ctx context.Context, ownerID string) ([]*finance.Installment, error) {
	result := []*finance.Installment{}
	if !isUUID(ownerID) {
		return result, nil
	}

	rows, err := r.db.Conn(ctx).Query(ctx, fmt.Sprintf(
		`SELECT id, %s, COALESCE(source_id::text, ''), number, count, amount, due_date, created_at
		FROM %s WHERE %s = $1
		ORDER BY due_date, number`,
		r.ownerColumn, r.table, r.ownerColumn), ownerID)
	if err != nil {
		return nil, domain.Persistence("listar parcelas", err)
	}
	defer rows.Close()

	for rows.Next() {
		in := finance.Installment{Kind: r.kind}
		if err := rows.Scan(&in.ID, &in.OwnerID, &in.SourceID, &in.Number, &in.Count,
			&in.Amount, &in.DueDate, &in.CreatedAt); err != nil {
			return nil, domain.Persistence("ler parcela", err)
		}
		result = append(result, &in)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("listar parcelas", err)
	}
	return result, nil
}
