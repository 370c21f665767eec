package sqlite

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestionale-api/internal/domain/entity"
)

// Filas gorm. Los importes viajan como decimal.Decimal (Valuer/Scanner sobre TEXT) y las
// columnas derivadas de joins son de solo lectura ("->").

type customerRow struct {
	ID        int64 `gorm:"primaryKey"`
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
}

func (customerRow) TableName() string { return "customers" }

func newCustomerRow(c *entity.Customer) customerRow {
	return customerRow{ID: c.ID, FirstName: c.FirstName, LastName: c.LastName, Email: c.Email, Phone: c.Phone, Address: c.Address}
}

func (r customerRow) entity() *entity.Customer {
	return &entity.Customer{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName, Email: r.Email, Phone: r.Phone, Address: r.Address}
}

type supplierRow struct {
	ID             int64 `gorm:"primaryKey"`
	CompanyName    string
	VATNumber      string `gorm:"column:vat_number"`
	TaxCode        string
	Address        string
	Phone          string
	Email          string
	CertifiedEmail string
	Website        string
	Notes          string
}

func (supplierRow) TableName() string { return "suppliers" }

func newSupplierRow(s *entity.Supplier) supplierRow {
	return supplierRow{
		ID: s.ID, CompanyName: s.CompanyName, VATNumber: s.VATNumber, TaxCode: s.TaxCode, Address: s.Address,
		Phone: s.Phone, Email: s.Email, CertifiedEmail: s.CertifiedEmail, Website: s.Website, Notes: s.Notes,
	}
}

func (r supplierRow) entity() *entity.Supplier {
	return &entity.Supplier{
		ID: r.ID, CompanyName: r.CompanyName, VATNumber: r.VATNumber, TaxCode: r.TaxCode, Address: r.Address,
		Phone: r.Phone, Email: r.Email, CertifiedEmail: r.CertifiedEmail, Website: r.Website, Notes: r.Notes,
	}
}

type productRow struct {
	ID                int64 `gorm:"primaryKey"`
	Code              string
	Name              string
	Description       string
	Price             decimal.Decimal
	Quantity          int
	Category          string
	AlternativeSKU    string `gorm:"column:alternative_sku"`
	Weight            decimal.Decimal
	UnitOfMeasure     string
	MinimumQuantity   int
	AcquisitionCost   decimal.Decimal
	Active            bool
	SupplierID        *int64
	WarehousePosition string
	VATRate           decimal.Decimal `gorm:"column:vat_rate"`
}

func (productRow) TableName() string { return "products" }

func newProductRow(p *entity.Product) productRow {
	return productRow{
		ID: p.ID, Code: p.Code, Name: p.Name, Description: p.Description, Price: p.Price, Quantity: p.Quantity,
		Category: p.Category, AlternativeSKU: p.AlternativeSKU, Weight: p.Weight, UnitOfMeasure: p.UnitOfMeasure,
		MinimumQuantity: p.MinimumQuantity, AcquisitionCost: p.AcquisitionCost, Active: p.Active,
		SupplierID: p.SupplierID, WarehousePosition: p.WarehousePosition, VATRate: p.VATRate,
	}
}

// updates columnas de UPDATE; un mapa escribe también los valores cero.
func (r productRow) updates() map[string]any {
	return map[string]any{
		"code": r.Code, "name": r.Name, "description": r.Description, "price": r.Price, "quantity": r.Quantity,
		"category": r.Category, "alternative_sku": r.AlternativeSKU, "weight": r.Weight,
		"unit_of_measure": r.UnitOfMeasure, "minimum_quantity": r.MinimumQuantity,
		"acquisition_cost": r.AcquisitionCost, "active": r.Active, "supplier_id": r.SupplierID,
		"warehouse_position": r.WarehousePosition, "vat_rate": r.VATRate,
	}
}

func (r productRow) entity() *entity.Product {
	return &entity.Product{
		ID: r.ID, Code: r.Code, Name: r.Name, Description: r.Description, Price: r.Price, Quantity: r.Quantity,
		Category: r.Category, AlternativeSKU: r.AlternativeSKU, Weight: r.Weight, UnitOfMeasure: r.UnitOfMeasure,
		MinimumQuantity: r.MinimumQuantity, AcquisitionCost: r.AcquisitionCost, Active: r.Active,
		SupplierID: r.SupplierID, WarehousePosition: r.WarehousePosition, VATRate: r.VATRate,
	}
}

type orderRow struct {
	ID           int64 `gorm:"primaryKey"`
	CustomerID   int64
	OrderDate    time.Time
	Status       string
	Total        decimal.Decimal
	CustomerName string `gorm:"->"`
}

func (orderRow) TableName() string { return "orders" }

func (r orderRow) entity() *entity.Order {
	return &entity.Order{ID: r.ID, CustomerID: r.CustomerID, CustomerName: r.CustomerName, OrderDate: r.OrderDate, Status: r.Status, Total: r.Total}
}

type orderItemRow struct {
	ID          int64 `gorm:"primaryKey"`
	OrderID     int64
	ProductID   int64
	Quantity    int
	UnitPrice   decimal.Decimal
	ProductName string `gorm:"->"`
}

func (orderItemRow) TableName() string { return "order_items" }

func (r orderItemRow) entity() entity.OrderItem {
	return entity.OrderItem{ID: r.ID, OrderID: r.OrderID, ProductID: r.ProductID, ProductName: r.ProductName, Quantity: r.Quantity, UnitPrice: r.UnitPrice}
}

type invoiceRow struct {
	ID            int64 `gorm:"primaryKey"`
	Number        string
	Date          time.Time
	CustomerID    int64
	TaxableAmount decimal.Decimal
	VAT           decimal.Decimal `gorm:"column:vat"`
	Total         decimal.Decimal
	Status        string
	CustomerName  string `gorm:"->"`
}

func (invoiceRow) TableName() string { return "invoices" }

func (r invoiceRow) entity() *entity.Invoice {
	return &entity.Invoice{
		ID: r.ID, Number: r.Number, Date: r.Date, CustomerID: r.CustomerID, CustomerName: r.CustomerName,
		TaxableAmount: r.TaxableAmount, VAT: r.VAT, Total: r.Total, Status: r.Status,
	}
}

type invoiceItemRow struct {
	ID          int64 `gorm:"primaryKey"`
	InvoiceID   int64
	ProductID   int64
	Quantity    int
	UnitPrice   decimal.Decimal
	VATRate     decimal.Decimal `gorm:"column:vat_rate"`
	Total       decimal.Decimal
	ProductCode string `gorm:"->"`
	ProductName string `gorm:"->"`
}

func (invoiceItemRow) TableName() string { return "invoice_items" }

func (r invoiceItemRow) entity() entity.InvoiceItem {
	return entity.InvoiceItem{
		ID: r.ID, InvoiceID: r.InvoiceID, ProductID: r.ProductID, ProductCode: r.ProductCode, ProductName: r.ProductName,
		Quantity: r.Quantity, UnitPrice: r.UnitPrice, VATRate: r.VATRate, Total: r.Total,
	}
}

type supplierOrderRow struct {
	ID           int64 `gorm:"primaryKey"`
	SupplierID   int64
	OrderDate    time.Time
	Status       string
	Total        decimal.Decimal
	Notes        string
	SupplierName string `gorm:"->"`
}

func (supplierOrderRow) TableName() string { return "supplier_orders" }

func (r supplierOrderRow) entity() *entity.SupplierOrder {
	return &entity.SupplierOrder{
		ID: r.ID, SupplierID: r.SupplierID, SupplierName: r.SupplierName, OrderDate: r.OrderDate,
		Status: r.Status, Total: r.Total, Notes: r.Notes,
	}
}

type supplierOrderItemRow struct {
	ID              int64 `gorm:"primaryKey"`
	SupplierOrderID int64
	ProductID       int64
	Quantity        int
	UnitPrice       decimal.Decimal
	Total           decimal.Decimal
	ProductCode     string `gorm:"->"`
	ProductName     string `gorm:"->"`
}

func (supplierOrderItemRow) TableName() string { return "supplier_order_items" }

func (r supplierOrderItemRow) entity() entity.SupplierOrderItem {
	return entity.SupplierOrderItem{
		ID: r.ID, SupplierOrderID: r.SupplierOrderID, ProductID: r.ProductID, ProductCode: r.ProductCode,
		ProductName: r.ProductName, Quantity: r.Quantity, UnitPrice: r.UnitPrice, Total: r.Total,
	}
}

type priceListRow struct {
	ID                  int64 `gorm:"primaryKey"`
	SupplierID          int64
	ProductID           int64
	SupplierProductCode string
	Price               decimal.Decimal
	MinimumQuantity     int
	ValidityStart       time.Time
	ValidityEnd         *time.Time
	Notes               string
}

func (priceListRow) TableName() string { return "supplier_price_lists" }

func newPriceListRow(p *entity.SupplierPriceList) priceListRow {
	return priceListRow{
		ID: p.ID, SupplierID: p.SupplierID, ProductID: p.ProductID, SupplierProductCode: p.SupplierProductCode,
		Price: p.Price, MinimumQuantity: p.MinimumQuantity, ValidityStart: utc(p.ValidityStart),
		ValidityEnd: utcPtr(p.ValidityEnd), Notes: p.Notes,
	}
}

func (r priceListRow) entity() *entity.SupplierPriceList {
	return &entity.SupplierPriceList{
		ID: r.ID, SupplierID: r.SupplierID, ProductID: r.ProductID, SupplierProductCode: r.SupplierProductCode,
		Price: r.Price, MinimumQuantity: r.MinimumQuantity, ValidityStart: r.ValidityStart,
		ValidityEnd: r.ValidityEnd, Notes: r.Notes,
	}
}

type minimumStockRow struct {
	ProductID         int64 `gorm:"primaryKey;autoIncrement:false"`
	MinimumQuantity   int
	ReorderQuantity   int
	LeadTimeDays      int
	PreferredSupplier *int64
	Notes             string
}

func (minimumStockRow) TableName() string { return "minimum_stock" }

func (r minimumStockRow) entity() *entity.MinimumStock {
	return &entity.MinimumStock{
		ProductID: r.ProductID, MinimumQuantity: r.MinimumQuantity, ReorderQuantity: r.ReorderQuantity,
		LeadTimeDays: r.LeadTimeDays, PreferredSupplier: r.PreferredSupplier, Notes: r.Notes,
	}
}

type movementRow struct {
	ID             int64 `gorm:"primaryKey"`
	ProductID      int64
	Date           time.Time
	Type           string
	Quantity       int
	Reason         string
	DocumentNumber string
	DocumentType   string
	Notes          string
}

func (movementRow) TableName() string { return "warehouse_movements" }

func newMovementRow(m *entity.WarehouseMovement) movementRow {
	return movementRow{
		ID: m.ID, ProductID: m.ProductID, Date: utc(m.Date), Type: m.Type, Quantity: m.Quantity,
		Reason: m.Reason, DocumentNumber: m.DocumentNumber, DocumentType: m.DocumentType, Notes: m.Notes,
	}
}

func (r movementRow) entity() *entity.WarehouseMovement {
	return &entity.WarehouseMovement{
		ID: r.ID, ProductID: r.ProductID, Date: r.Date, Type: r.Type, Quantity: r.Quantity,
		Reason: r.Reason, DocumentNumber: r.DocumentNumber, DocumentType: r.DocumentType, Notes: r.Notes,
	}
}

type notificationRow struct {
	ID        int64 `gorm:"primaryKey"`
	ProductID int64
	Date      time.Time
	Type      string
	Message   string
	Status    string
}

func (notificationRow) TableName() string { return "warehouse_notifications" }

func newNotificationRow(n *entity.WarehouseNotification) notificationRow {
	return notificationRow{ID: n.ID, ProductID: n.ProductID, Date: utc(n.Date), Type: n.Type, Message: n.Message, Status: n.Status}
}

func (r notificationRow) entity() *entity.WarehouseNotification {
	return &entity.WarehouseNotification{ID: r.ID, ProductID: r.ProductID, Date: r.Date, Type: r.Type, Message: r.Message, Status: r.Status}
}
