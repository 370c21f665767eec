package dto

// SupplierRequest entrada para crear o reemplazar un proveedor.
type SupplierRequest struct {
	CompanyName    string `json:"company_name"`
	VATNumber      string `json:"vat_number"`
	TaxCode        string `json:"tax_code"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	CertifiedEmail string `json:"certified_email"`
	Website        string `json:"website"`
	Notes          string `json:"notes"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID             int64  `json:"id"`
	CompanyName    string `json:"company_name"`
	VATNumber      string `json:"vat_number"`
	TaxCode        string `json:"tax_code"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	CertifiedEmail string `json:"certified_email"`
	Website        string `json:"website"`
	Notes          string `json:"notes"`
}
