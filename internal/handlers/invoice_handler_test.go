package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"go-cookie-shop/internal/invoice"
	"go-cookie-shop/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupInvoiceTest(mockStore *MockOrderStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handler := &InvoiceHandler{Store: mockStore}
	router.POST("/api/orders/:orderId/invoice", handler.Create)
	return router
}

func TestCreateInvoice(t *testing.T) {
	mockStore := new(MockOrderStore)
	router := setupInvoiceTest(mockStore)

	rec := &store.OrderRecord{OrderID: "ORD-1", OrderDate: "01/12/2025", CustomerName: "Budi Santoso"}
	items := []store.ItemRecord{
		{OrderID: "ORD-1", CookieName: "Nastar Klasik", Size: "400ml", Quantity: 2, Subtotal: 120000},
	}
	mockStore.On("GetOrder", "ORD-1").Return(rec, items, nil).Once()
	mockStore.On("SaveInvoice", "ORD-1", mock.Anything).Return(nil).Once()

	w := postJSON(router, "POST", "/api/orders/ORD-1/invoice", InvoiceRequest{
		ExtraItems: []invoice.ExtraItem{{Name: "Ongkir", Quantity: 1, UnitPrice: 15000}},
		Discount:   &invoice.Discount{Type: "percent", Value: 10},
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(135000), resp["subtotal"])
	assert.Equal(t, float64(13500), resp["discountAmount"])
	assert.Equal(t, float64(121500), resp["total"])

	grid := mockStore.Calls[1].Arguments.Get(1).([][]string)
	assert.Equal(t, []string{"INVOICE", "", "", ""}, grid[0])
	assert.Contains(t, grid, []string{"Ongkir", "-", "1", "15.000"})

	mockStore.AssertExpectations(t)
}

func TestCreateInvoiceOrderNotFound(t *testing.T) {
	mockStore := new(MockOrderStore)
	router := setupInvoiceTest(mockStore)

	mockStore.On("GetOrder", "ORD-missing").Return(nil, nil, store.ErrOrderNotFound).Once()

	w := postJSON(router, "POST", "/api/orders/ORD-missing/invoice", InvoiceRequest{})
	assert.Equal(t, http.StatusNotFound, w.Code)
	mockStore.AssertNotCalled(t, "SaveInvoice", mock.Anything, mock.Anything)
}
