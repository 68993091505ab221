package http

import (
	"time"

	"github.com/prairiesport/association-backend/internal/expense"
)

type CreateExpenseRequest struct {
	Date     string `json:"date" binding:"required"`
	Payee    string `json:"payee" binding:"required"`
	Category string `json:"category"`
	Amount   int64  `json:"amount" binding:"required"`
	Note     string `json:"note"`
}

type UpdateExpenseRequest struct {
	Date     *string `json:"date"`
	Payee    *string `json:"payee"`
	Category *string `json:"category"`
	Amount   *int64  `json:"amount"`
	Note     *string `json:"note"`
}

type ListExpensesRequest struct {
	Category string `form:"category"`
	Payee    string `form:"payee"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`

	Page      int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=expense_date payee amount_cents created_at"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}

type ExpenseResponse struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	Payee     string  `json:"payee"`
	Category  string  `json:"category"`
	Amount    int64   `json:"amount"`
	Note      *string `json:"note,omitempty"`
	CreatedAt string  `json:"created_at"`
}

func NewExpenseResponse(e *expense.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:        e.ID,
		Date:      e.Date.Format("2006-01-02"),
		Payee:     e.Payee,
		Category:  e.Category,
		Amount:    e.AmountCents,
		Note:      e.Note,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
}
