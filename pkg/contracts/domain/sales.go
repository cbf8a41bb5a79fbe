// Package domain contains the shared data contracts for the sales analytics
// engine: raw transaction records and the reference dictionaries used for
// name resolution. These types are the boundary with the upstream sync layer;
// the engine never mutates them.
package domain

// OrderHeader is one sales transaction. Dates are calendar dates in ISO-8601
// YYYY-MM-DD form; lexical ordering of Date is chronological ordering.
type OrderHeader struct {
	ID         string  `json:"id" validate:"required"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	CustomerID string  `json:"customer_id"`
	SalesRepID string  `json:"sales_rep_id"`
	Total      float64 `json:"total"`
}

// OrderLine is one product line inside an order. OrderID references an
// OrderHeader; lines whose header is missing are still usable for product
// level aggregation.
type OrderLine struct {
	OrderID   string  `json:"order_id" validate:"required"`
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// CustomerRef is a reference dictionary entry for a customer. Name is the
// preferred display name; TradeName and LegalName are fallbacks tried in
// that order.
type CustomerRef struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name"`
	TradeName string `json:"trade_name"`
	LegalName string `json:"legal_name"`
}

// ProductRef is a reference dictionary entry for a product. Description is
// preferred, then Name, then Code.
type ProductRef struct {
	ID          string `json:"id" validate:"required"`
	Description string `json:"description"`
	Name        string `json:"name"`
	Code        string `json:"code"`
}

// SalesRepRef is a reference dictionary entry for a sales representative.
// Name is preferred, then Alias, then Login.
type SalesRepRef struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name"`
	Alias string `json:"alias"`
	Login string `json:"login"`
}
