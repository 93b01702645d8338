package handlers

import (
	"errors"
	"log"
	"net/http"

	"go-cookie-shop/internal/invoice"
	"go-cookie-shop/internal/store"

	"github.com/gin-gonic/gin"
)

type InvoiceRequest struct {
	ExtraItems []invoice.ExtraItem `json:"extraItems"`
	Discount   *invoice.Discount   `json:"discount"`
}

// InvoiceHandler renders an order into an invoice grid and saves it
// through the store (a per-order sheet tab in production).
type InvoiceHandler struct {
	Store store.OrderStore
}

func (h *InvoiceHandler) Create(c *gin.Context) {
	orderID := c.Param("orderId")

	var req InvoiceRequest
	// Body is optional; an empty invoice is just the order's own items
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

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

	totals := invoice.ComputeTotals(items, req.ExtraItems, req.Discount)
	grid := invoice.BuildGrid(rec, items, req.ExtraItems, req.Discount, totals)

	if err := h.Store.SaveInvoice(orderID, grid); err != nil {
		log.Printf("save invoice %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save invoice"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"orderId":        orderID,
		"subtotal":       totals.Subtotal,
		"discountAmount": totals.DiscountAmount,
		"total":          totals.Total,
	})
}
