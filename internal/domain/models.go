package domain

import "github.com/shopspring/decimal"

func init() {
	// API consumers read UnitPrice as a JSON number.
	decimal.MarshalJSONWithoutQuotes = true
}

type Category struct {
	ID          int     `json:"CategoryID" db:"CategoryID"`
	Name        string  `json:"CategoryName" db:"CategoryName"`
	Description *string `json:"Description,omitempty" db:"Description"`
}

type Product struct {
	ID           int             `json:"ProductID" db:"ProductID"`
	Name         string          `json:"ProductName" db:"ProductName"`
	Description  *string         `json:"Description" db:"Description"`
	UnitPrice    decimal.Decimal `json:"UnitPrice" db:"UnitPrice"`
	CategoryID   *int            `json:"CategoryID" db:"CategoryID"`
	CategoryName *string         `json:"CategoryName,omitempty" db:"CategoryName"`
	ImageURL     *string         `json:"ImageURL" db:"ImageURL"`
	DateAdded    string          `json:"DateAdded" db:"DateAdded"`
	LastUpdated  *string         `json:"LastUpdated,omitempty" db:"LastUpdated"`
}

// NewProduct is the body of a create request. Blank category and image are sent as null.
type NewProduct struct {
	Name        string          `json:"ProductName"`
	Description string          `json:"Description"`
	UnitPrice   decimal.Decimal `json:"UnitPrice"`
	CategoryID  *int            `json:"CategoryID"`
	ImageURL    *string         `json:"ImageURL"`
}

// CreatedProduct is what the client needs back from a create call.
type CreatedProduct struct {
	ID      int    `json:"ProductID"`
	Message string `json:"message,omitempty"`
}

type DeleteResult struct {
	Message string `json:"message,omitempty"`
}

// ErrorBody is the shape of non-success API responses.
type ErrorBody struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
