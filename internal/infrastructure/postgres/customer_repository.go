package postgres

import (
	"context"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, first_name, last_name, email, phone, address`

var customerSortable = map[string]string{
	"id":         "id",
	"first_name": "first_name",
	"last_name":  "last_name",
	"email":      "email",
	"phone":      "phone",
	"address":    "address",
}

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente y asigna el ID generado.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) (int64, error) {
	query := `
		INSERT INTO customers (first_name, last_name, email, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, c.FirstName, c.LastName, c.Email, c.Phone, c.Address).Scan(&c.ID)
	if err != nil {
		return 0, mapError("insert customer", err)
	}
	return c.ID, nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Address)
	if err != nil {
		return nil, mapError("get customer", err)
	}
	return &c, nil
}

// Update actualiza todos los campos del cliente.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers SET first_name = $2, last_name = $3, email = $4, phone = $5, address = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.Address)
	return expectOne("update customer", cmd, err)
}

// Delete elimina un cliente por ID. Falla con ErrConstraintViolation si tiene pedidos o facturas.
func (r *CustomerRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	return expectOne("delete customer", cmd, err)
}

// List lista clientes con búsqueda por nombre/email y paginación.
func (r *CustomerRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Customer, error) {
	var w whereBuilder
	w.search(f.Search, "first_name", "last_name", "email")
	query := `SELECT ` + customerColumns + ` FROM customers` + w.sql()
	query += w.page(f, customerSortable, "id")

	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, mapError("list customers", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Address); err != nil {
			return nil, mapError("scan customer", err)
		}
		list = append(list, &c)
	}
	return list, mapError("list customers", rows.Err())
}
