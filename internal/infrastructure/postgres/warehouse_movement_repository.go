package postgres

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.WarehouseMovementRepository = (*WarehouseMovementRepo)(nil)

const movementColumns = `id, product_id, date, type, quantity, reason, document_number, document_type, notes`

var movementSortable = map[string]string{
	"id":       "id",
	"date":     "date",
	"product":  "product_id",
	"type":     "type",
	"quantity": "quantity",
	"document": "document_number",
}

// WarehouseMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// No toca products.quantity: el ajuste de stock lo coordina el caso de uso en la misma tx.
type WarehouseMovementRepo struct {
	q Querier
}

// NewWarehouseMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWarehouseMovementRepository(q Querier) *WarehouseMovementRepo {
	return &WarehouseMovementRepo{q: q}
}

func scanMovement(row interface{ Scan(dest ...any) error }) (*entity.WarehouseMovement, error) {
	var m entity.WarehouseMovement
	err := row.Scan(&m.ID, &m.ProductID, &m.Date, &m.Type, &m.Quantity, &m.Reason,
		&m.DocumentNumber, &m.DocumentType, &m.Notes)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persiste un movimiento de almacén.
func (r *WarehouseMovementRepo) Create(ctx context.Context, m *entity.WarehouseMovement) (int64, error) {
	query := `
		INSERT INTO warehouse_movements (product_id, date, type, quantity, reason, document_number, document_type, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.ProductID, m.Date, m.Type, m.Quantity, m.Reason, m.DocumentNumber, m.DocumentType, m.Notes,
	).Scan(&m.ID)
	if err != nil {
		return 0, mapError("create warehouse movement", err)
	}
	return m.ID, nil
}

// GetByID obtiene un movimiento por ID.
func (r *WarehouseMovementRepo) GetByID(ctx context.Context, id int64) (*entity.WarehouseMovement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM warehouse_movements WHERE id = $1`, id))
	if err != nil {
		return nil, mapError("get warehouse movement", err)
	}
	return m, nil
}

func (r *WarehouseMovementRepo) Update(ctx context.Context, m *entity.WarehouseMovement) error {
	query := `
		UPDATE warehouse_movements
		SET product_id = $2, date = $3, type = $4, quantity = $5, reason = $6,
			document_number = $7, document_type = $8, notes = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, m.Date, m.Type, m.Quantity, m.Reason, m.DocumentNumber, m.DocumentType, m.Notes,
	)
	return expectOne("update warehouse movement", cmd, err)
}

func (r *WarehouseMovementRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM warehouse_movements WHERE id = $1`, id)
	return expectOne("delete warehouse movement", cmd, err)
}

// List lista movimientos filtrando por producto, tipo y rango de fechas.
func (r *WarehouseMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.WarehouseMovement, error) {
	var w whereBuilder
	if f.ProductID != nil {
		w.add("product_id = ?", *f.ProductID)
	}
	if f.Type != "" {
		w.add("type = ?", f.Type)
	}
	if f.From != nil {
		w.add("date >= ?", *f.From)
	}
	if f.To != nil {
		w.add("date <= ?", *f.To)
	}
	w.search(f.Search, "reason", "document_number", "notes")
	query := `SELECT ` + movementColumns + ` FROM warehouse_movements` + w.sql() + w.page(f.ListFilter, movementSortable, "id")

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list warehouse movements", err)
	}
	defer rows.Close()
	var list []*entity.WarehouseMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, mapError("scan warehouse movement", err)
		}
		list = append(list, m)
	}
	return list, mapError("list warehouse movements", rows.Err())
}
