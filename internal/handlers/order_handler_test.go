package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-cookie-shop/internal/models"
	"go-cookie-shop/internal/spin"
	"go-cookie-shop/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupOrderTest(mockStore *MockOrderStore, mockNotifier *MockNotifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := &OrderHandler{Store: mockStore, Notifier: mockNotifier, Threshold: spin.DefaultThreshold}
	router.POST("/api/orders", handler.Submit)
	router.GET("/api/orders", handler.List)
	router.GET("/api/orders/:orderId", handler.Get)
	router.PUT("/api/orders/:orderId", handler.Update)

	return router
}

func postJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	bodyJSON, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(bodyJSON))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func orderRequest() OrderRequest {
	return OrderRequest{
		Customer: models.Customer{
			Name:     "Budi Santoso",
			WhatsApp: "081234567890",
			Address:  "Jl. Melati No. 5, Bandung",
			Sales:    "Rina",
		},
		OrderType: "Single (Satuan)",
		Items: []OrderItemRequest{
			{ProductID: "nastar-klasik", Size: "400ml", Quantity: 2},
		},
	}
}

func TestSubmitOrder_IneligibleNotifiesImmediately(t *testing.T) {
	mockStore := new(MockOrderStore)
	mockNotifier := new(MockNotifier)
	router := setupOrderTest(mockStore, mockNotifier)

	// 1. Arrange: a 120.000 order earns no spins, so the notification
	// goes out right after the save
	mockStore.On("SaveOrder", mock.Anything, mock.Anything).Return(nil).Once()
	mockNotifier.On("SendText", mock.Anything).Return(nil).Once()

	// 2. Act
	w := postJSON(router, "POST", "/api/orders", orderRequest())

	// 3. Assert
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(120000), resp["total"])
	assert.Equal(t, "Tidak", resp["eligibleForGift"])
	assert.Equal(t, float64(0), resp["spinChances"])

	savedRec := mockStore.Calls[0].Arguments.Get(0).(*store.OrderRecord)
	assert.Equal(t, "+6281234567890", savedRec.WhatsApp)
	assert.Equal(t, "Tidak", savedRec.SpinCompleted)

	sentMessage := mockNotifier.Calls[0].Arguments.String(0)
	assert.Contains(t, sentMessage, "Pesanan Kue Baru")
	assert.Contains(t, sentMessage, "Budi Santoso")

	mockStore.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestSubmitOrder_EligibleDefersNotification(t *testing.T) {
	mockStore := new(MockOrderStore)
	mockNotifier := new(MockNotifier)
	router := setupOrderTest(mockStore, mockNotifier)

	// 10 jars of Kastengel 600ml = 950.000, one spin earned
	req := orderRequest()
	req.Items = []OrderItemRequest{{ProductID: "kastengel", Size: "600ml", Quantity: 10}}

	mockStore.On("SaveOrder", mock.Anything, mock.Anything).Return(nil).Once()

	w := postJSON(router, "POST", "/api/orders", req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Ya", resp["eligibleForGift"])
	assert.Equal(t, float64(1), resp["spinChances"])

	// The announcement waits for the spin session to close
	mockNotifier.AssertNotCalled(t, "SendText", mock.Anything)
	mockStore.AssertExpectations(t)
}

func TestSubmitOrder_InvalidPhone(t *testing.T) {
	mockStore := new(MockOrderStore)
	mockNotifier := new(MockNotifier)
	router := setupOrderTest(mockStore, mockNotifier)

	req := orderRequest()
	req.Customer.WhatsApp = "12345"

	w := postJSON(router, "POST", "/api/orders", req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockStore.AssertNotCalled(t, "SaveOrder", mock.Anything, mock.Anything)
}

func TestSubmitOrder_NoItems(t *testing.T) {
	mockStore := new(MockOrderStore)
	mockNotifier := new(MockNotifier)
	router := setupOrderTest(mockStore, mockNotifier)

	req := orderRequest()
	req.Items = nil

	w := postJSON(router, "POST", "/api/orders", req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubmitOrder_UnknownProductsOnly(t *testing.T) {
	mockStore := new(MockOrderStore)
	mockNotifier := new(MockNotifier)
	router := setupOrderTest(mockStore, mockNotifier)

	req := orderRequest()
	req.Items = []OrderItemRequest{{ProductID: "no-such-cookie", Quantity: 1}}

	w := postJSON(router, "POST", "/api/orders", req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockStore.AssertNotCalled(t, "SaveOrder", mock.Anything, mock.Anything)
}

func TestSubmitOrder_StoreFailure(t *testing.T) {
	mockStore := new(MockOrderStore)
	mockNotifier := new(MockNotifier)
	router := setupOrderTest(mockStore, mockNotifier)

	mockStore.On("SaveOrder", mock.Anything, mock.Anything).Return(assert.AnError).Once()

	w := postJSON(router, "POST", "/api/orders", orderRequest())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	mockNotifier.AssertNotCalled(t, "SendText", mock.Anything)
}

func TestGetOrder(t *testing.T) {
	mockStore := new(MockOrderStore)
	mockNotifier := new(MockNotifier)
	router := setupOrderTest(mockStore, mockNotifier)

	rec := &store.OrderRecord{OrderID: "ORD-1", CustomerName: "Budi Santoso"}
	items := []store.ItemRecord{{OrderID: "ORD-1", CookieName: "Nastar Klasik"}}
	mockStore.On("GetOrder", "ORD-1").Return(rec, items, nil).Once()

	w := postJSON(router, "GET", "/api/orders/ORD-1", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp store.OrderWithItems
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Budi Santoso", resp.Order.CustomerName)
	assert.Len(t, resp.Items, 1)
}

func TestGetOrder_NotFound(t *testing.T) {
	mockStore := new(MockOrderStore)
	mockNotifier := new(MockNotifier)
	router := setupOrderTest(mockStore, mockNotifier)

	mockStore.On("GetOrder", "ORD-missing").Return(nil, nil, store.ErrOrderNotFound).Once()

	w := postJSON(router, "GET", "/api/orders/ORD-missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOrders_SalesHeaderFilter(t *testing.T) {
	mockStore := new(MockOrderStore)
	mockNotifier := new(MockNotifier)
	router := setupOrderTest(mockStore, mockNotifier)

	orders := []store.OrderWithItems{
		{Order: store.OrderRecord{OrderID: "ORD-1", Sales: "Rina", OrderDate: "01/12/2025"}},
	}
	mockStore.On("ListOrders", "Rina").Return(orders, nil).Once()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/orders", nil)
	req.Header.Set("X-Sales-Name", "Rina")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["count"])

	mockStore.AssertExpectations(t)
}

func TestUpdateOrder_SendsDiffNotification(t *testing.T) {
	mockStore := new(MockOrderStore)
	mockNotifier := new(MockNotifier)
	router := setupOrderTest(mockStore, mockNotifier)

	// Existing row: 2x Nastar Klasik 400ml, spin columns already resolved
	oldRec := &store.OrderRecord{
		OrderID:         "ORD-1",
		OrderDate:       "01/12/2025",
		CustomerName:    "Budi Santoso",
		WhatsApp:        "+6281234567890",
		Address:         "Jl. Melati No. 5, Bandung",
		Sales:           "Rina",
		OrderTypeLabel:  "Single (Satuan)",
		Total:           120000,
		EligibleForGift: "Tidak",
		SpinsUsed:       0,
		SpinCompleted:   "Skipped",
	}
	oldItems := []store.ItemRecord{
		{OrderID: "ORD-1", CookieName: "Nastar Klasik", Size: "400ml", Quantity: 2, Subtotal: 120000},
	}
	mockStore.On("GetOrder", "ORD-1").Return(oldRec, oldItems, nil).Once()
	mockStore.On("UpdateOrder", "ORD-1", mock.Anything, mock.Anything).Return(nil).Once()
	mockNotifier.On("SendText", mock.Anything).Return(nil).Once()

	// Edit bumps the quantity to 3
	req := orderRequest()
	req.Items[0].Quantity = 3

	w := postJSON(router, "PUT", "/api/orders/ORD-1", req)

	assert.Equal(t, http.StatusOK, w.Code)

	// Spin columns survive the edit untouched
	updatedRec := mockStore.Calls[1].Arguments.Get(1).(*store.OrderRecord)
	assert.Equal(t, "Skipped", updatedRec.SpinCompleted)
	assert.Equal(t, "Tidak", updatedRec.EligibleForGift)
	assert.Equal(t, int64(180000), updatedRec.Total)

	sentMessage := mockNotifier.Calls[0].Arguments.String(0)
	assert.Contains(t, sentMessage, "Pesanan Diperbarui - ORD-1")
	assert.Contains(t, sentMessage, "Diperbarui: Nastar Klasik 400ml x2 → x3")

	mockStore.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestUpdateOrder_NotificationFailureDoesNotFailRequest(t *testing.T) {
	mockStore := new(MockOrderStore)
	mockNotifier := new(MockNotifier)
	router := setupOrderTest(mockStore, mockNotifier)

	oldRec := &store.OrderRecord{
		OrderID: "ORD-1", OrderDate: "01/12/2025", CustomerName: "Budi Santoso",
		WhatsApp: "+6281234567890", Address: "Jl. Melati No. 5, Bandung",
		OrderTypeLabel: "Single (Satuan)", EligibleForGift: "Tidak",
	}
	mockStore.On("GetOrder", "ORD-1").Return(oldRec, []store.ItemRecord{}, nil).Once()
	mockStore.On("UpdateOrder", "ORD-1", mock.Anything, mock.Anything).Return(nil).Once()
	mockNotifier.On("SendText", mock.Anything).Return(assert.AnError).Once()

	w := postJSON(router, "PUT", "/api/orders/ORD-1", orderRequest())

	assert.Equal(t, http.StatusOK, w.Code)
	mockNotifier.AssertExpectations(t)
}

func TestUpdateOrder_NotFound(t *testing.T) {
	mockStore := new(MockOrderStore)
	mockNotifier := new(MockNotifier)
	router := setupOrderTest(mockStore, mockNotifier)

	mockStore.On("GetOrder", "ORD-missing").Return(nil, nil, store.ErrOrderNotFound).Once()

	w := postJSON(router, "PUT", "/api/orders/ORD-missing", orderRequest())

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockStore.AssertNotCalled(t, "UpdateOrder", mock.Anything, mock.Anything, mock.Anything)
}
