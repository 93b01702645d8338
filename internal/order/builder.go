package order

import (
	"fmt"
	"math/rand"
	"time"

	"go-cookie-shop/internal/catalog"
	"go-cookie-shop/internal/models"

	"github.com/google/uuid"
)

const orderIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateOrderID produces a time+random order ID like
// "ORD-1735689600000-k3f9a2c". IDs are generated before any write and
// uniqueness is not enforced by the stores.
func GenerateOrderID() string {
	suffix := make([]byte, 7)
	for i := range suffix {
		suffix[i] = orderIDAlphabet[rand.Intn(len(orderIDAlphabet))]
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

// FormatOrderDate renders the DD/MM/YYYY date stored in the Orders sheet
func FormatOrderDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// Builder accumulates line items for one order and keeps Total equal to
// the sum of item subtotals after every mutation.
//
// The two flows clamp quantities differently: a new order never drops a
// line below 1, while the edit flow allows 0 (staff zero out a line
// instead of deleting it). Kept as two policies on purpose.
type Builder struct {
	Order  *models.Order
	minQty int
}

// NewBuilder starts a fresh order (new-order flow, quantities >= 1)
func NewBuilder() *Builder {
	return &Builder{
		Order: &models.Order{
			OrderID:   GenerateOrderID(),
			OrderDate: FormatOrderDate(time.Now()),
			OrderType: models.OrderTypeSingle,
			Items:     []models.OrderItem{},
		},
		minQty: 1,
	}
}

// EditBuilder wraps an existing order (edit flow, quantities >= 0)
func EditBuilder(o *models.Order) *Builder {
	return &Builder{Order: o, minQty: 0}
}

// AddItem appends a line item priced from the catalog. Unknown products
// and products with no usable price are ignored.
func (b *Builder) AddItem(productID, size string, quantity int) {
	product := catalog.Find(productID)
	if product == nil {
		return
	}
	price, ok := catalog.UnitPrice(product, size)
	if !ok {
		return
	}
	if quantity < b.minQty {
		quantity = b.minQty
	}

	item := models.OrderItem{
		ID:        fmt.Sprintf("%s-%s-%s", productID, size, uuid.NewString()[:8]),
		ProductID: productID,
		Name:      product.Name,
		Image:     product.Image,
		Size:      size,
		Price:     price,
		Quantity:  quantity,
		Subtotal:  price * int64(quantity),
	}
	b.Order.Items = append(b.Order.Items, item)
	b.recompute()
}

// UpdateItemSize changes a line's size and reprices it from the current
// catalog price for the new size, not the original snapshot.
func (b *Builder) UpdateItemSize(itemID, size string) {
	for i := range b.Order.Items {
		item := &b.Order.Items[i]
		if item.ID != itemID {
			continue
		}
		product := catalog.Find(item.ProductID)
		if product == nil {
			return
		}
		price, ok := catalog.UnitPrice(product, size)
		if !ok {
			return
		}
		item.Size = size
		item.Price = price
		item.Subtotal = price * int64(item.Quantity)
		b.recompute()
		return
	}
}

// UpdateItemQuantity sets a line's quantity, clamped to the flow's
// minimum, and recomputes its subtotal from the snapshotted unit price.
func (b *Builder) UpdateItemQuantity(itemID string, quantity int) {
	if quantity < b.minQty {
		quantity = b.minQty
	}
	for i := range b.Order.Items {
		item := &b.Order.Items[i]
		if item.ID != itemID {
			continue
		}
		item.Quantity = quantity
		item.Subtotal = item.Price * int64(quantity)
		b.recompute()
		return
	}
}

// RemoveItem drops a line item
func (b *Builder) RemoveItem(itemID string) {
	items := b.Order.Items[:0]
	for _, item := range b.Order.Items {
		if item.ID != itemID {
			items = append(items, item)
		}
	}
	b.Order.Items = items
	b.recompute()
}

func (b *Builder) recompute() {
	b.Order.Total = b.Order.SumItems()
}
