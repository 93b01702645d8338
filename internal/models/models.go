package models

import "strings"

// OrderType - how the order is priced: per-volume sizes or per-unit hampers
type OrderType string

const (
	OrderTypeSingle  OrderType = "single"
	OrderTypeHampers OrderType = "hampers"
)

// Label returns the human label stored in the Orders sheet
func (t OrderType) Label() string {
	if t == OrderTypeHampers {
		return "Hampers"
	}
	return "Single (Satuan)"
}

// OrderTypeFromLabel parses a stored label back into an OrderType.
// Anything that doesn't mention "single" is treated as hampers, matching
// how legacy rows were resolved.
func OrderTypeFromLabel(label string) OrderType {
	if strings.Contains(strings.ToLower(label), "single") {
		return OrderTypeSingle
	}
	return OrderTypeHampers
}

// SizeUnit is the per-unit size used by hampers products
const SizeUnit = "Satuan"

// SizeOptions lists every size a line item can carry
var SizeOptions = []string{"400ml", "600ml", "800ml", SizeUnit}

// Customer - the person placing the order
type Customer struct {
	Name     string `json:"name"`
	WhatsApp string `json:"whatsapp"`
	Address  string `json:"address"`
	Note     string `json:"note"`
	Sales    string `json:"sales,omitempty"` // optional salesperson tag
}

// Product - one cookie (or hampers pack) in the catalog
type Product struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Image      string           `json:"image"`
	OrderType  OrderType        `json:"orderType,omitempty"`
	BasePrice  int64            `json:"basePrice"`
	SizePrices map[string]int64 `json:"sizePrices"`
}

// OrderItem - one line of the in-progress order.
// Price is a snapshot of the unit price at add-time; Subtotal is always
// Price * Quantity and is recomputed on every mutation.
type OrderItem struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Size      string `json:"size"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

// Order - the full order snapshot as submitted or edited
type Order struct {
	OrderID   string      `json:"orderId"`
	OrderDate string      `json:"orderDate"` // DD/MM/YYYY
	Customer  Customer    `json:"customer"`
	OrderType OrderType   `json:"orderType"`
	Items     []OrderItem `json:"items"`
	Total     int64       `json:"total"`
}

// SumItems recomputes the order total from its line items
func (o *Order) SumItems() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Subtotal
	}
	return total
}
