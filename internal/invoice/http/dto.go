package http

// GenerateInvoiceRequest identifies one school and one billing month.
type GenerateInvoiceRequest struct {
	Year         int    `json:"year" binding:"required,min=2000,max=2100"`
	Month        int    `json:"month" binding:"required,min=1,max=12"`
	SchoolSystem string `json:"school_system" binding:"required"`
	SchoolName   string `json:"school_name" binding:"required"`
}

// InvoiceNotFoundResponse is the 404 body when no qualifying bookings exist.
// schools_in_range lists the school identities that do have bookings in the
// month, so a name mismatch can be spotted without database access.
type InvoiceNotFoundResponse struct {
	Error          string   `json:"error"`
	SchoolSystem   string   `json:"school_system"`
	SchoolName     string   `json:"school_name"`
	DateFrom       string   `json:"date_from"`
	DateTo         string   `json:"date_to"`
	SchoolsInRange []string `json:"schools_in_range"`
}
