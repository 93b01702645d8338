package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"go-cookie-shop/internal/models"
	"go-cookie-shop/internal/notify"
	"go-cookie-shop/internal/order"
	"go-cookie-shop/internal/spin"
	"go-cookie-shop/internal/store"
	"go-cookie-shop/internal/utils"

	"github.com/gin-gonic/gin"
)

// OrderItemRequest is one cart line as the frontend sends it
type OrderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// OrderRequest defines what the frontend sends us for a new order
type OrderRequest struct {
	OrderID   string             `json:"orderId"`
	OrderDate string             `json:"orderDate"`
	Customer  models.Customer    `json:"customer"`
	OrderType string             `json:"orderType"`
	Items     []OrderItemRequest `json:"items"`
}

// OrderHandler owns the order lifecycle: submit, read, list, edit
type OrderHandler struct {
	Store     store.OrderStore
	Notifier  notify.Notifier
	Threshold int64
}

func (h *OrderHandler) validate(req *OrderRequest) string {
	if strings.TrimSpace(req.Customer.Name) == "" {
		return "Customer name is required"
	}
	if !utils.ValidateIndonesianPhone(req.Customer.WhatsApp) {
		return "WhatsApp number is not a valid Indonesian mobile number"
	}
	if strings.TrimSpace(req.Customer.Address) == "" {
		return "Customer address is required"
	}
	if len(req.Items) == 0 {
		return "Order must contain at least one item"
	}
	return ""
}

// Submit creates a new order: prices the cart from the catalog, saves
// the row and its item rows, then either offers the prize wheel or
// sends the notification right away.
func (h *OrderHandler) Submit(c *gin.Context) {
	var req OrderRequest
	// 1. Parse JSON Input
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if msg := h.validate(&req); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	// 2. Build the order, pricing every line from the catalog
	b := order.NewBuilder()
	if req.OrderID != "" {
		b.Order.OrderID = req.OrderID
	}
	if req.OrderDate != "" {
		b.Order.OrderDate = req.OrderDate
	}
	b.Order.Customer = req.Customer
	b.Order.OrderType = models.OrderTypeFromLabel(req.OrderType)
	for _, item := range req.Items {
		size := item.Size
		if size == "" {
			size = "400ml"
		}
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		b.AddItem(item.ProductID, size, qty)
	}
	if len(b.Order.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid items in order"})
		return
	}

	// 3. Save to the store with the spin columns derived from the total
	fields := store.DeriveSpinFields(b.Order.Total, h.Threshold)
	rec := store.RecordFromOrder(b.Order, fields)
	if err := h.Store.SaveOrder(rec, store.ItemRecordsFromOrder(b.Order)); err != nil {
		log.Printf("save order %s: %v", b.Order.OrderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save order"})
		return
	}

	// 4. Ineligible orders are announced immediately; eligible ones wait
	// for the spin session to close so the message can carry the gifts
	chances := spin.Chances(b.Order.Total, h.Threshold)
	if chances == 0 {
		html, _ := notify.BuildOrderMessages(notify.OrderMessage{Order: *b.Order})
		if err := h.Notifier.SendText(html); err != nil {
			log.Printf("notify order %s: %v", b.Order.OrderID, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"orderId":         b.Order.OrderID,
		"total":           b.Order.Total,
		"eligibleForGift": fields.EligibleForGift,
		"spinChances":     chances,
	})
}

// Get returns one order with its item rows
func (h *OrderHandler) Get(c *gin.Context) {
	orderID := c.Param("orderId")

	rec, items, err := h.Store.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Printf("get order %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	c.JSON(http.StatusOK, store.OrderWithItems{Order: *rec, Items: items})
}

// List returns all orders, newest first. The X-Sales-Name header
// narrows the listing to one salesperson's orders.
func (h *OrderHandler) List(c *gin.Context) {
	sales := c.GetHeader("X-Sales-Name")

	orders, err := h.Store.ListOrders(sales)
	if err != nil {
		log.Printf("list orders: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}
	store.SortNewestFirst(orders)

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

// Update replaces an order's customer data and cart, keeps the spin
// columns the row already carries, and sends a diff notification.
func (h *OrderHandler) Update(c *gin.Context) {
	orderID := c.Param("orderId")

	var req OrderRequest
	// 1. Parse JSON Input
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if msg := h.validate(&req); msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	// 2. Load the existing row; its snapshot is the diff baseline
	oldRec, oldItems, err := h.Store.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Printf("get order %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}
	oldOrder := store.OrderFromRecord(oldRec, oldItems)

	// 3. Rebuild the cart under edit rules (quantity 0 is allowed here)
	edited := &models.Order{
		OrderID:   orderID,
		OrderDate: oldRec.OrderDate,
		Customer:  req.Customer,
		OrderType: models.OrderTypeFromLabel(req.OrderType),
		Items:     []models.OrderItem{},
	}
	b := order.EditBuilder(edited)
	for _, item := range req.Items {
		size := item.Size
		if size == "" {
			size = "400ml"
		}
		b.AddItem(item.ProductID, size, item.Quantity)
	}
	if req.OrderDate != "" {
		edited.OrderDate = req.OrderDate
	}

	// 4. Carry the spin columns over unchanged; only eligibility is
	// re-derived when a legacy row never had it filled in
	fields := store.SpinFields{
		EligibleForGift: oldRec.EligibleForGift,
		SpinsUsed:       oldRec.SpinsUsed,
		SpinCompleted:   oldRec.SpinCompleted,
	}
	if fields.EligibleForGift == "" {
		fields = store.DeriveSpinFields(edited.Total, h.Threshold)
		fields.SpinsUsed = oldRec.SpinsUsed
		fields.SpinCompleted = oldRec.SpinCompleted
	}

	rec := store.RecordFromOrder(edited, fields)
	if err := h.Store.UpdateOrder(orderID, rec, store.ItemRecordsFromOrder(edited)); err != nil {
		log.Printf("update order %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	// 5. Announce the edit. A notification failure does not undo the
	// write, it only gets logged.
	html, _ := notify.BuildUpdateMessages(orderID, oldOrder, edited)
	if err := h.Notifier.SendText(html); err != nil {
		log.Printf("notify order update %s: %v", orderID, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order updated successfully",
		"orderId": orderID,
		"total":   edited.Total,
	})
}
