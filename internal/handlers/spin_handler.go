package handlers

import (
	"errors"
	"log"
	"net/http"
	"sync"

	"go-cookie-shop/internal/notify"
	"go-cookie-shop/internal/spin"
	"go-cookie-shop/internal/store"

	"github.com/gin-gonic/gin"
)

// SpinHandler drives the prize wheel for eligible orders. Open sessions
// live in memory keyed by order ID; the order row is only patched when
// a session closes, each winning draw is appended to the reward log as
// it happens.
type SpinHandler struct {
	Store     store.OrderStore
	Notifier  notify.Notifier
	Threshold int64

	mu       sync.Mutex
	sessions map[string]*spin.Session
}

func NewSpinHandler(s store.OrderStore, n notify.Notifier, threshold int64) *SpinHandler {
	return &SpinHandler{
		Store:     s,
		Notifier:  n,
		Threshold: threshold,
		sessions:  make(map[string]*spin.Session),
	}
}

func (h *SpinHandler) session(orderID string) *spin.Session {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sessions[orderID]
}

// Open starts (or resumes) a spin session for an order. The persisted
// spin columns decide whether the wheel is still available.
func (h *SpinHandler) Open(c *gin.Context) {
	orderID := c.Param("orderId")

	// 1. An already-open session just reports its state
	if s := h.session(orderID); s != nil {
		c.JSON(http.StatusOK, gin.H{
			"orderId":        orderID,
			"customerName":   s.CustomerName,
			"spinsRemaining": s.Remaining(),
			"spinsUsed":      s.SpinsUsed(),
			"gifts":          s.Gifts(),
			"prizes":         spin.Prizes,
		})
		return
	}

	// 2. Load the order and open a session from its spin columns
	rec, _, err := h.Store.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Printf("get order %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	s, err := spin.NewSession(orderID, rec.CustomerName, rec.Total, h.Threshold,
		rec.SpinsUsed, spin.ParseCompleted(rec.SpinCompleted))
	if err != nil {
		switch {
		case errors.Is(err, spin.ErrNotEligible):
			c.JSON(http.StatusConflict, gin.H{"error": "Order is not eligible for the prize wheel"})
		case errors.Is(err, spin.ErrAlreadyCompleted):
			c.JSON(http.StatusConflict, gin.H{"error": "Spins for this order have already been completed"})
		case errors.Is(err, spin.ErrNoSpinsLeft):
			c.JSON(http.StatusConflict, gin.H{"error": "No spins remaining for this order"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open spin session"})
		}
		return
	}

	h.mu.Lock()
	h.sessions[orderID] = s
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"orderId":        orderID,
		"customerName":   s.CustomerName,
		"spinsRemaining": s.Remaining(),
		"spinsUsed":      s.SpinsUsed(),
		"gifts":          s.Gifts(),
		"prizes":         spin.Prizes,
	})
}

// Spin draws one prize from an open session. Winning draws land in the
// reward log immediately so a crashed session never loses a prize.
func (h *SpinHandler) Spin(c *gin.Context) {
	orderID := c.Param("orderId")

	s := h.session(orderID)
	if s == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "No open spin session for this order"})
		return
	}

	prize, err := s.Spin()
	if err != nil {
		if errors.Is(err, spin.ErrNoSpinsLeft) {
			c.JSON(http.StatusConflict, gin.H{"error": "No spins remaining for this order"})
			return
		}
		c.JSON(http.StatusConflict, gin.H{"error": "Spin session is closed"})
		return
	}

	if prize.Label != spin.TryAgainLabel {
		reward := &store.SpinRewardRecord{
			OrderID:      orderID,
			CustomerName: s.CustomerName,
			Gift:         prize.Label,
		}
		if err := h.Store.AppendSpinReward(reward); err != nil {
			log.Printf("append spin reward %s: %v", orderID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"prize":          prize,
		"spinsRemaining": s.Remaining(),
		"spinsUsed":      s.SpinsUsed(),
		"gifts":          s.Gifts(),
	})
}

// Close ends the session, writes the final spin columns, and sends the
// deferred new-order notification with whatever was won.
func (h *SpinHandler) Close(c *gin.Context) {
	orderID := c.Param("orderId")

	s := h.session(orderID)
	if s == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "No open spin session for this order"})
		return
	}

	// 1. Resolve the terminal state and patch the order row
	completed := s.Close()
	if err := h.Store.UpdateSpinStatus(orderID, s.SpinsUsed(), string(completed)); err != nil {
		log.Printf("update spin status %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update spin status"})
		return
	}

	// 2. The new-order announcement was held back for eligible orders;
	// send it now whether the customer spun or walked away
	if rec, items, err := h.Store.GetOrder(orderID); err == nil {
		msg := notify.OrderMessage{
			Order:          *store.OrderFromRecord(rec, items),
			Gifts:          s.Gifts(),
			HasSpinInfo:    true,
			SpinsUsed:      s.SpinsUsed(),
			SpinsRemaining: s.Remaining(),
		}
		html, _ := notify.BuildOrderMessages(msg)
		if err := h.Notifier.SendText(html); err != nil {
			log.Printf("notify order %s: %v", orderID, err)
		}
	} else {
		log.Printf("get order %s for notification: %v", orderID, err)
	}

	h.mu.Lock()
	delete(h.sessions, orderID)
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"orderId":       orderID,
		"spinCompleted": string(completed),
		"spinsUsed":     s.SpinsUsed(),
		"gifts":         s.Gifts(),
	})
}

// SpinStatusRequest is the manual spin-column patch used by staff
type SpinStatusRequest struct {
	SpinsUsed     *int   `json:"spinsUsed" binding:"required"`
	SpinCompleted string `json:"spinCompleted" binding:"required"`
}

// PatchStatus overwrites an order's spin columns directly
func (h *SpinHandler) PatchStatus(c *gin.Context) {
	orderID := c.Param("orderId")

	var req SpinStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	completed := spin.ParseCompleted(req.SpinCompleted)
	if err := h.Store.UpdateSpinStatus(orderID, *req.SpinsUsed, string(completed)); err != nil {
		if errors.Is(err, store.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Printf("update spin status %s: %v", orderID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update spin status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orderId":       orderID,
		"spinsUsed":     *req.SpinsUsed,
		"spinCompleted": string(completed),
	})
}
