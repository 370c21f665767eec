package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.WarehouseMovementRepository = (*MovementRepo)(nil)

var movementSortable = map[string]string{
	"id":       "id",
	"date":     "date",
	"product":  "product_id",
	"type":     "type",
	"quantity": "quantity",
	"document": "document_number",
}

// MovementRepo movimientos de almacén sobre SQLite. No toca products.quantity:
// el ajuste de stock lo coordina el caso de uso en la misma transacción.
type MovementRepo struct {
	db *gorm.DB
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.WarehouseMovement) (int64, error) {
	row := newMovementRow(m)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, mapError("insert movement", err)
	}
	m.ID = row.ID
	return row.ID, nil
}

func (r *MovementRepo) GetByID(ctx context.Context, id int64) (*entity.WarehouseMovement, error) {
	var row movementRow
	if err := r.db.WithContext(ctx).Take(&row, "id = ?", id).Error; err != nil {
		return nil, mapError("get movement", err)
	}
	return row.entity(), nil
}

func (r *MovementRepo) Update(ctx context.Context, m *entity.WarehouseMovement) error {
	row := newMovementRow(m)
	res := r.db.WithContext(ctx).Model(&movementRow{}).Where("id = ?", m.ID).Updates(map[string]any{
		"product_id":      row.ProductID,
		"date":            row.Date,
		"type":            row.Type,
		"quantity":        row.Quantity,
		"reason":          row.Reason,
		"document_number": row.DocumentNumber,
		"document_type":   row.DocumentType,
		"notes":           row.Notes,
	})
	return expectOne("update movement", res)
}

func (r *MovementRepo) Delete(ctx context.Context, id int64) error {
	return expectOne("delete movement", r.db.WithContext(ctx).Where("id = ?", id).Delete(&movementRow{}))
}

// List lista movimientos filtrando por producto, tipo y rango de fechas.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.WarehouseMovement, error) {
	q := r.db.WithContext(ctx).Model(&movementRow{})
	if f.ProductID != nil {
		q = q.Where("product_id = ?", *f.ProductID)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.From != nil {
		q = q.Where("date >= ?", utc(*f.From))
	}
	if f.To != nil {
		q = q.Where("date <= ?", utc(*f.To))
	}
	q = search(q, f.Search, "reason", "document_number", "notes")
	var rows []movementRow
	if err := page(q, f.ListFilter, movementSortable, "id").Find(&rows).Error; err != nil {
		return nil, mapError("list movements", err)
	}
	out := make([]*entity.WarehouseMovement, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.entity())
	}
	return out, nil
}
