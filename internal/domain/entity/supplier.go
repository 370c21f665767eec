package entity

// Supplier representa un proveedor.
type Supplier struct {
	ID             int64
	CompanyName    string
	VATNumber      string
	TaxCode        string
	Address        string
	Phone          string
	Email          string
	CertifiedEmail string // correo certificado (PEC)
	Website        string
	Notes          string
}
