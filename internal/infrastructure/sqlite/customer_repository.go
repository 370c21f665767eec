package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

var customerSortable = map[string]string{
	"id":         "id",
	"first_name": "first_name",
	"last_name":  "last_name",
	"email":      "email",
	"phone":      "phone",
	"address":    "address",
}

// CustomerRepo clientes sobre SQLite.
type CustomerRepo struct {
	db *gorm.DB
}

func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) (int64, error) {
	row := newCustomerRow(c)
	row.ID = 0
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, mapError("insert customer", err)
	}
	c.ID = row.ID
	return row.ID, nil
}

func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	var row customerRow
	if err := r.db.WithContext(ctx).Take(&row, "id = ?", id).Error; err != nil {
		return nil, mapError("get customer", err)
	}
	return row.entity(), nil
}

func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	res := r.db.WithContext(ctx).Model(&customerRow{}).Where("id = ?", c.ID).Updates(map[string]any{
		"first_name": c.FirstName,
		"last_name":  c.LastName,
		"email":      c.Email,
		"phone":      c.Phone,
		"address":    c.Address,
	})
	return expectOne("update customer", res)
}

// Delete falla con ErrConstraintViolation si el cliente tiene pedidos o facturas.
func (r *CustomerRepo) Delete(ctx context.Context, id int64) error {
	return expectOne("delete customer", r.db.WithContext(ctx).Where("id = ?", id).Delete(&customerRow{}))
}

func (r *CustomerRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Customer, error) {
	q := search(r.db.WithContext(ctx).Model(&customerRow{}), f.Search, "first_name", "last_name", "email")
	var rows []customerRow
	if err := page(q, f, customerSortable, "id").Find(&rows).Error; err != nil {
		return nil, mapError("list customers", err)
	}
	out := make([]*entity.Customer, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.entity())
	}
	return out, nil
}
