package invoice

import (
	"fmt"
	"strconv"

	"go-cookie-shop/internal/store"
	"go-cookie-shop/internal/utils"

	"github.com/shopspring/decimal"
)

// ExtraItem is an ad-hoc invoice line not present on the order
// (packaging, delivery and the like).
type ExtraItem struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// Discount applies either a percentage or a fixed rupiah amount to the
// invoice subtotal.
type Discount struct {
	Type  string  `json:"type"` // "percent" or "fixed"
	Value float64 `json:"value"`
}

// Totals summarizes the computed invoice amounts
type Totals struct {
	Subtotal       int64 `json:"subtotal"`
	DiscountAmount int64 `json:"discountAmount"`
	Total          int64 `json:"total"`
}

// ComputeTotals sums the order items and extras, then applies the
// discount. Percentages go through decimal arithmetic so 2.5% of an odd
// subtotal doesn't pick up float dust; the result rounds to whole
// rupiah. The discount never pushes the total below zero.
func ComputeTotals(items []store.ItemRecord, extras []ExtraItem, disc *Discount) Totals {
	var subtotal int64
	for _, item := range items {
		subtotal += item.Subtotal
	}
	for _, extra := range extras {
		subtotal += int64(extra.Quantity) * extra.UnitPrice
	}

	var discountAmount int64
	if disc != nil {
		switch disc.Type {
		case "percent":
			discountAmount = decimal.NewFromInt(subtotal).
				Mul(decimal.NewFromFloat(disc.Value)).
				Div(decimal.NewFromInt(100)).
				Round(0).IntPart()
		case "fixed":
			discountAmount = decimal.NewFromFloat(disc.Value).Round(0).IntPart()
		}
	}
	if discountAmount > subtotal {
		discountAmount = subtotal
	}
	if discountAmount < 0 {
		discountAmount = 0
	}

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          subtotal - discountAmount,
	}
}

// BuildGrid renders the invoice as the 4-column grid persisted by the
// store: header block, item table, then totals.
func BuildGrid(rec *store.OrderRecord, items []store.ItemRecord, extras []ExtraItem, disc *Discount, totals Totals) [][]string {
	grid := [][]string{
		{"INVOICE", "", "", ""},
		{"Order ID", rec.OrderID, "", ""},
		{"Date", rec.OrderDate, "", ""},
		{"Customer", rec.CustomerName, "", ""},
		{"WhatsApp", rec.WhatsApp, "", ""},
		{"Address", rec.Address, "", ""},
	}
	if rec.Note != "" {
		grid = append(grid, []string{"Note", rec.Note, "", ""})
	}
	grid = append(grid,
		[]string{"", "", "", ""},
		[]string{"Item", "Size", "Qty", "Subtotal"},
	)

	for _, item := range items {
		grid = append(grid, []string{
			item.CookieName,
			item.Size,
			strconv.Itoa(item.Quantity),
			utils.FormatRupiah(item.Subtotal),
		})
	}
	for _, extra := range extras {
		grid = append(grid, []string{
			extra.Name,
			"-",
			strconv.Itoa(extra.Quantity),
			utils.FormatRupiah(int64(extra.Quantity) * extra.UnitPrice),
		})
	}

	grid = append(grid,
		[]string{"", "", "", ""},
		[]string{"Subtotal", "", "", utils.FormatRupiah(totals.Subtotal)},
	)
	if totals.DiscountAmount > 0 {
		label := ""
		if disc != nil && disc.Type == "percent" {
			label = fmt.Sprintf("%g%%", disc.Value)
		}
		grid = append(grid, []string{"Diskon", label, "", utils.FormatRupiah(totals.DiscountAmount)})
	}
	grid = append(grid, []string{"Total", "", "", utils.FormatRupiah(totals.Total)})

	return grid
}
