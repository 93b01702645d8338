package store

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go-cookie-shop/internal/models"
	"go-cookie-shop/internal/spin"
	"go-cookie-shop/internal/utils"
)

// Sheet tab names
const (
	SheetOrders      = "Orders"
	SheetCookieRows  = "Cookie Details"
	SheetSpinRewards = "Spin Rewards"
	SheetTodos       = "Todos"
	SheetTodoStatus  = "TodoStatus"
)

// Column headers of the Orders sheet, in write order
var orderHeaders = []string{
	"Order ID", "Order Date", "Customer Name", "WhatsApp", "Address",
	"Note", "Sales", "Order Type", "Items", "Total",
	"Eligible for Gift", "Spins Used", "Spin Completed",
}

// Column headers of the Cookie Details sheet
var itemHeaders = []string{
	"Order ID", "Customer Name", "Cookie Name", "Size", "Quantity", "Subtotal",
}

// Column headers of the Spin Rewards sheet
var rewardHeaders = []string{"Order ID", "Customer Name", "Gift"}

// Column headers of the Todos and TodoStatus sheets
var (
	todoHeaders       = []string{"Task", "Order"}
	todoStatusHeaders = []string{"Date", "Index", "Done"}
)

// OrderRecord is the typed form of one Orders row. Incoming rows are
// parsed into it at the read boundary so the rest of the service never
// touches stringly-typed sheet data.
type OrderRecord struct {
	ID              uint   `gorm:"primaryKey" json:"-"`
	OrderID         string `gorm:"index;size:64" json:"orderId"`
	OrderDate       string `gorm:"size:10" json:"orderDate"`
	CustomerName    string `json:"customerName"`
	WhatsApp        string `gorm:"size:20" json:"whatsapp"`
	Address         string `json:"address"`
	Note            string `json:"note"`
	Sales           string `json:"sales"`
	OrderTypeLabel  string `gorm:"size:32" json:"orderType"`
	ItemsSummary    string `json:"items"`
	Total           int64  `json:"total"`
	EligibleForGift string `gorm:"size:8" json:"eligibleForGift"`
	SpinsUsed       int    `json:"spinsUsed"`
	SpinCompleted   string `gorm:"size:8" json:"spinCompleted"`
}

// ItemRecord is one Cookie Details child row
type ItemRecord struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	OrderID      string `gorm:"index;size:64" json:"orderId"`
	CustomerName string `json:"customerName"`
	CookieName   string `json:"cookieName"`
	Size         string `gorm:"size:16" json:"size"`
	Quantity     int    `json:"quantity"`
	Subtotal     int64  `json:"subtotal"`
}

// SpinRewardRecord is one Spin Rewards row, appended per winning spin
type SpinRewardRecord struct {
	ID           string `gorm:"primaryKey;size:36" json:"id"`
	OrderID      string `gorm:"index;size:64" json:"orderId"`
	CustomerName string `json:"customerName"`
	Gift         string `json:"gift"`
}

// TodoRecord is one entry of the staff daily checklist for the gorm
// backend; the sheets backend reads the Todos tab instead.
type TodoRecord struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	Label    string `json:"label"`
	Position int    `json:"position"`
}

// TodoStatusRecord marks one checklist task done for one day. The row
// existing is the done mark; unchecking deletes it.
type TodoStatusRecord struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	Date      string `gorm:"index;size:10" json:"date"`
	TaskIndex int    `json:"taskIndex"`
}

// InvoiceRecord holds a saved invoice grid for the gorm backend; the
// sheets backend writes the grid to a per-order tab instead.
type InvoiceRecord struct {
	ID      uint   `gorm:"primaryKey" json:"-"`
	OrderID string `gorm:"index;size:64" json:"orderId"`
	Body    string `json:"body"` // JSON-encoded [][]string
}

// SpinFields carries the three spin columns written at order-save time
// and preserved across edits.
type SpinFields struct {
	EligibleForGift string
	SpinsUsed       int
	SpinCompleted   string
}

// DeriveSpinFields computes the save-time spin columns for a new order
func DeriveSpinFields(total, threshold int64) SpinFields {
	eligible := "Tidak"
	if spin.Chances(total, threshold) >= 1 {
		eligible = "Ya"
	}
	return SpinFields{
		EligibleForGift: eligible,
		SpinsUsed:       0,
		SpinCompleted:   string(spin.CompletedNo),
	}
}

// RecordFromOrder flattens an order snapshot into an Orders row
func RecordFromOrder(o *models.Order, fields SpinFields) *OrderRecord {
	return &OrderRecord{
		OrderID:         o.OrderID,
		OrderDate:       o.OrderDate,
		CustomerName:    o.Customer.Name,
		WhatsApp:        utils.NormalizeWhatsAppNumber(o.Customer.WhatsApp),
		Address:         o.Customer.Address,
		Note:            o.Customer.Note,
		Sales:           o.Customer.Sales,
		OrderTypeLabel:  o.OrderType.Label(),
		ItemsSummary:    BuildItemsSummary(o.Items),
		Total:           o.Total,
		EligibleForGift: fields.EligibleForGift,
		SpinsUsed:       fields.SpinsUsed,
		SpinCompleted:   fields.SpinCompleted,
	}
}

// ItemRecordsFromOrder produces the child rows for an order snapshot
func ItemRecordsFromOrder(o *models.Order) []ItemRecord {
	records := make([]ItemRecord, 0, len(o.Items))
	for _, item := range o.Items {
		records = append(records, ItemRecord{
			OrderID:      o.OrderID,
			CustomerName: o.Customer.Name,
			CookieName:   item.Name,
			Size:         item.Size,
			Quantity:     item.Quantity,
			Subtotal:     item.Subtotal,
		})
	}
	return records
}

// OrderFromRecord rebuilds an order snapshot from a row and its child
// rows, e.g. for the edit flow and diff notifications.
func OrderFromRecord(rec *OrderRecord, items []ItemRecord) *models.Order {
	o := &models.Order{
		OrderID:   rec.OrderID,
		OrderDate: rec.OrderDate,
		Customer: models.Customer{
			Name:     rec.CustomerName,
			WhatsApp: rec.WhatsApp,
			Address:  rec.Address,
			Note:     rec.Note,
			Sales:    rec.Sales,
		},
		OrderType: models.OrderTypeFromLabel(rec.OrderTypeLabel),
		Total:     rec.Total,
	}
	for _, item := range items {
		o.Items = append(o.Items, models.OrderItem{
			Name:     item.CookieName,
			Size:     item.Size,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal,
		})
	}
	return o
}

// BuildItemsSummary renders the pipe-delimited item summary stored on
// the order row, e.g. "Nastar Klasik 400ml x 2 = Rp 120.000".
func BuildItemsSummary(items []models.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s %s x %d = Rp %s",
			item.Name, item.Size, item.Quantity, utils.FormatRupiah(item.Subtotal)))
	}
	return strings.Join(parts, " | ")
}

var itemSummaryPattern = regexp.MustCompile(`^(.+) (\S+) x (\d+) = Rp ([\d.]+)$`)

// ParseItemsSummary parses a stored summary string back into items.
// Entries that don't match the expected pattern are skipped rather than
// failing the whole read; legacy rows carry all sorts of shapes.
func ParseItemsSummary(summary string) []models.OrderItem {
	var items []models.OrderItem
	for _, part := range strings.Split(summary, " | ") {
		m := itemSummaryPattern.FindStringSubmatch(strings.TrimSpace(part))
		if m == nil {
			continue
		}
		qty, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		subtotal, err := strconv.ParseInt(strings.ReplaceAll(m[4], ".", ""), 10, 64)
		if err != nil {
			continue
		}
		items = append(items, models.OrderItem{
			Name:     m[1],
			Size:     m[2],
			Quantity: qty,
			Subtotal: subtotal,
		})
	}
	return items
}

// --- Sheet row mapping -------------------------------------------------

func (r *OrderRecord) toRow() []interface{} {
	return []interface{}{
		r.OrderID, r.OrderDate, r.CustomerName, r.WhatsApp, r.Address,
		r.Note, r.Sales, r.OrderTypeLabel, r.ItemsSummary, r.Total,
		r.EligibleForGift, r.SpinsUsed, r.SpinCompleted,
	}
}

func orderRecordFromCells(cells map[string]string) *OrderRecord {
	total, _ := strconv.ParseInt(strings.ReplaceAll(cells["Total"], ".", ""), 10, 64)
	spinsUsed, _ := strconv.Atoi(cells["Spins Used"])
	if spinsUsed < 0 {
		spinsUsed = 0
	}
	return &OrderRecord{
		OrderID:         cells["Order ID"],
		OrderDate:       cells["Order Date"],
		CustomerName:    cells["Customer Name"],
		WhatsApp:        cells["WhatsApp"],
		Address:         cells["Address"],
		Note:            cells["Note"],
		Sales:           cells["Sales"],
		OrderTypeLabel:  cells["Order Type"],
		ItemsSummary:    cells["Items"],
		Total:           total,
		EligibleForGift: cells["Eligible for Gift"],
		SpinsUsed:       spinsUsed,
		SpinCompleted:   string(spin.ParseCompleted(cells["Spin Completed"])),
	}
}

func (r *ItemRecord) toRow() []interface{} {
	return []interface{}{
		r.OrderID, r.CustomerName, r.CookieName, r.Size, r.Quantity, r.Subtotal,
	}
}

func itemRecordFromCells(cells map[string]string) ItemRecord {
	qty, _ := strconv.Atoi(cells["Quantity"])
	subtotal, _ := strconv.ParseInt(strings.ReplaceAll(cells["Subtotal"], ".", ""), 10, 64)
	return ItemRecord{
		OrderID:      cells["Order ID"],
		CustomerName: cells["Customer Name"],
		CookieName:   cells["Cookie Name"],
		Size:         cells["Size"],
		Quantity:     qty,
		Subtotal:     subtotal,
	}
}

func (r *SpinRewardRecord) toRow() []interface{} {
	return []interface{}{r.OrderID, r.CustomerName, r.Gift}
}
