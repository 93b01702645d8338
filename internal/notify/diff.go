package notify

import (
	"fmt"

	"go-cookie-shop/internal/models"
	"go-cookie-shop/internal/utils"
)

// emptyPlaceholder replaces blank old/new values in change lines
const emptyPlaceholder = "(kosong)"

// NoChangesLine is emitted when two snapshots are identical
const NoChangesLine = "Tidak ada perubahan yang terdeteksi."

// DiffOrders compares two order snapshots and produces the ordered,
// human-readable change list used in update notifications:
// scalar fields first, then added, removed and updated items. Items are
// matched on name|size, so a quantity edit is an update while a size
// change reads as remove+add. Price-only changes on an unchanged
// quantity are not reported.
//
// The markup renderer only decorates values; rich and plain renderings
// carry the same content.
func DiffOrders(oldOrder, newOrder *models.Order, m Markup) []string {
	var changes []string

	oldWA := utils.NormalizeWhatsAppNumber(oldOrder.Customer.WhatsApp)
	newWA := utils.NormalizeWhatsAppNumber(newOrder.Customer.WhatsApp)

	if oldOrder.Customer.Name != newOrder.Customer.Name {
		changes = append(changes, fmt.Sprintf("Nama: %q → %q", oldOrder.Customer.Name, newOrder.Customer.Name))
	}
	if oldWA != newWA {
		changes = append(changes, fmt.Sprintf("WhatsApp: %s → %s", m.Code(oldWA), m.Code(newWA)))
	}
	if oldOrder.Customer.Address != newOrder.Customer.Address {
		changes = append(changes, fmt.Sprintf("Alamat: %q → %q", oldOrder.Customer.Address, newOrder.Customer.Address))
	}
	if oldOrder.Customer.Note != newOrder.Customer.Note {
		changes = append(changes, fmt.Sprintf("Catatan: %q → %q",
			orPlaceholder(oldOrder.Customer.Note), orPlaceholder(newOrder.Customer.Note)))
	}
	if oldOrder.Customer.Sales != newOrder.Customer.Sales {
		changes = append(changes, fmt.Sprintf("Sales: %q → %q",
			orPlaceholder(oldOrder.Customer.Sales), orPlaceholder(newOrder.Customer.Sales)))
	}
	if oldOrder.OrderType != newOrder.OrderType {
		changes = append(changes, fmt.Sprintf("Tipe Pesanan: %q → %q",
			oldOrder.OrderType.Label(), newOrder.OrderType.Label()))
	}

	oldItems := itemsByKey(oldOrder.Items)
	newItems := itemsByKey(newOrder.Items)

	// Added, removed, updated - in the order the items appear in each
	// snapshot so runs are stable.
	for _, item := range newOrder.Items {
		if _, ok := oldItems[itemKey(item)]; !ok {
			changes = append(changes, fmt.Sprintf("Ditambahkan: %s %s x%d", item.Name, item.Size, item.Quantity))
		}
	}
	for _, item := range oldOrder.Items {
		if _, ok := newItems[itemKey(item)]; !ok {
			changes = append(changes, fmt.Sprintf("Dihapus: %s %s x%d", item.Name, item.Size, item.Quantity))
		}
	}
	for _, item := range newOrder.Items {
		old, ok := oldItems[itemKey(item)]
		if ok && old.Quantity != item.Quantity {
			changes = append(changes, fmt.Sprintf("Diperbarui: %s %s x%d → x%d",
				item.Name, item.Size, old.Quantity, item.Quantity))
		}
	}

	if len(changes) == 0 {
		return []string{NoChangesLine}
	}
	return changes
}

func itemKey(item models.OrderItem) string {
	return item.Name + "|" + item.Size
}

func itemsByKey(items []models.OrderItem) map[string]models.OrderItem {
	byKey := make(map[string]models.OrderItem, len(items))
	for _, item := range items {
		byKey[itemKey(item)] = item
	}
	return byKey
}

func orPlaceholder(s string) string {
	if s == "" {
		return emptyPlaceholder
	}
	return s
}
