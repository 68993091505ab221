package http

// CheckoutRequest starts dues checkout for one member. Amount is in cents.
type CheckoutRequest struct {
	MemberID       string `json:"member_id" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Name           string `json:"name" binding:"required"`
	Amount         int64  `json:"amount" binding:"required"`
	MembershipYear int    `json:"membership_year" binding:"required,min=2000,max=2100"`
}

type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}
