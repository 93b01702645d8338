package store

import (
	"errors"
	"sort"
	"time"
)

// ErrOrderNotFound is returned when no row matches the order ID
var ErrOrderNotFound = errors.New("order not found")

// OrderWithItems pairs an order row with its child item rows
type OrderWithItems struct {
	Order OrderRecord  `json:"order"`
	Items []ItemRecord `json:"cookieDetails"`
}

// OrderStore is the persistence gateway. Two backends implement it: the
// Google Sheets store used in production and a gorm store for local
// deployments and tests. All calls are synchronous and can fail with a
// wrapped I/O error.
//
// SaveOrder appends; it does not check for an existing row with the
// same order ID. IDs are generated client-side and collisions resolve
// as last-write-wins on update.
type OrderStore interface {
	SaveOrder(rec *OrderRecord, items []ItemRecord) error
	GetOrder(orderID string) (*OrderRecord, []ItemRecord, error)
	ListOrders(sales string) ([]OrderWithItems, error)
	UpdateOrder(orderID string, rec *OrderRecord, items []ItemRecord) error
	UpdateSpinStatus(orderID string, spinsUsed int, spinCompleted string) error
	AppendSpinReward(rec *SpinRewardRecord) error
	SaveInvoice(orderID string, grid [][]string) error
}

// TodoTask is one entry of the staff daily checklist. ID is the task's
// position in the source list and is what TodoStatus rows refer to.
type TodoTask struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// TodoStore is the persistence gateway for the daily checklist. Done
// marks are per-day rows keyed by date and task index; marking a task
// not-done removes its row.
type TodoStore interface {
	ListTodos() ([]TodoTask, error)
	ListDoneTodos(date string) ([]int, error)
	SetTodoDone(date string, index int, done bool) error
}

// Store is the full persistence surface a backend provides
type Store interface {
	OrderStore
	TodoStore
}

// TodoDateKey formats the per-day key the checklist status rows use
func TodoDateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseOrderDate parses the DD/MM/YYYY dates stored on order rows
func ParseOrderDate(s string) (time.Time, error) {
	return time.Parse("02/01/2006", s)
}

// SortNewestFirst orders a listing by order date, newest first. Rows
// with unparsable dates sink to the end instead of failing the read.
func SortNewestFirst(orders []OrderWithItems) {
	sort.SliceStable(orders, func(i, j int) bool {
		di, erri := ParseOrderDate(orders[i].Order.OrderDate)
		dj, errj := ParseOrderDate(orders[j].Order.OrderDate)
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return di.After(dj)
	})
}
