package handlers

import (
	"log"
	"net/http"
	"time"

	"go-cookie-shop/internal/store"

	"github.com/gin-gonic/gin"
)

type TodoStatusRequest struct {
	Index *int   `json:"index" binding:"required"`
	Done  *bool  `json:"done" binding:"required"`
	Date  string `json:"date"`
}

// TodoHandler serves the staff daily checklist: the task list plus
// per-day done marks. Omitting the date means today.
type TodoHandler struct {
	Store store.TodoStore
}

func (h *TodoHandler) List(c *gin.Context) {
	tasks, err := h.Store.ListTodos()
	if err != nil {
		log.Printf("list todos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todos"})
		return
	}

	done, err := h.Store.ListDoneTodos(store.TodoDateKey(time.Now()))
	if err != nil {
		log.Printf("read todo status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch todo status"})
		return
	}

	if tasks == nil {
		tasks = []store.TodoTask{}
	}
	if done == nil {
		done = []int{}
	}
	c.JSON(http.StatusOK, gin.H{"data": tasks, "done": done})
}

func (h *TodoHandler) SetStatus(c *gin.Context) {
	var req TodoStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Index and done are required"})
		return
	}

	date := req.Date
	if date == "" {
		date = store.TodoDateKey(time.Now())
	}

	if err := h.Store.SetTodoDone(date, *req.Index, *req.Done); err != nil {
		log.Printf("set todo status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update todo status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
