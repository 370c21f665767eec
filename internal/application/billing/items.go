package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/internal/domain/entity"
	"github.com/jhoicas/gestionale-api/internal/domain/repository"
)

// lineRef datos mínimos de una línea para validarla contra el catálogo.
type lineRef struct {
	ProductID int64
	Quantity  int
}

// checkCustomer marca customer_id si el cliente no existe.
func checkCustomer(ctx context.Context, repo repository.CustomerRepository, id int64, v *domain.ValidationError) error {
	if id <= 0 {
		v.Add("customer_id", domain.ViolationRequired)
		return nil
	}
	if _, err := repo.GetByID(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		v.Add("customer_id", domain.ViolationNotFound)
	}
	return nil
}

// loadLineProducts valida las líneas y devuelve los productos referenciados por ID.
// Los productos inactivos solo se aceptan si ya figuraban en el documento (keep).
func loadLineProducts(ctx context.Context, repo repository.ProductRepository, lines []lineRef, keep map[int64]bool, v *domain.ValidationError) (map[int64]*entity.Product, error) {
	if len(lines) == 0 {
		v.Add("items", domain.ViolationRequired)
		return nil, nil
	}
	products := make(map[int64]*entity.Product, len(lines))
	for i, l := range lines {
		field := fmt.Sprintf("items[%d]", i)
		if l.Quantity <= 0 {
			v.Add(field+".quantity", domain.ViolationPositive)
		}
		if l.ProductID <= 0 {
			v.Add(field+".product_id", domain.ViolationRequired)
			continue
		}
		p, ok := products[l.ProductID]
		if !ok {
			var err error
			p, err = repo.GetByID(ctx, l.ProductID)
			if err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					return nil, err
				}
				v.Add(field+".product_id", domain.ViolationNotFound)
				continue
			}
			products[l.ProductID] = p
		}
		if !p.Active && !keep[p.ID] {
			v.Add(field+".product_id", domain.ViolationInactive)
		}
	}
	return products, nil
}

func validStatus(status string, allowed ...string) bool {
	for _, s := range allowed {
		if status == s {
			return true
		}
	}
	return false
}

var hundred = decimal.NewFromInt(100)
