package handlers

import (
	"go-cookie-shop/internal/store"

	"github.com/stretchr/testify/mock"
)

// MockOrderStore mocks store.OrderStore for handler tests
type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) SaveOrder(rec *store.OrderRecord, items []store.ItemRecord) error {
	args := m.Called(rec, items)
	return args.Error(0)
}

func (m *MockOrderStore) GetOrder(orderID string) (*store.OrderRecord, []store.ItemRecord, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*store.OrderRecord), args.Get(1).([]store.ItemRecord), args.Error(2)
}

func (m *MockOrderStore) ListOrders(sales string) ([]store.OrderWithItems, error) {
	args := m.Called(sales)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.OrderWithItems), args.Error(1)
}

func (m *MockOrderStore) UpdateOrder(orderID string, rec *store.OrderRecord, items []store.ItemRecord) error {
	args := m.Called(orderID, rec, items)
	return args.Error(0)
}

func (m *MockOrderStore) UpdateSpinStatus(orderID string, spinsUsed int, spinCompleted string) error {
	args := m.Called(orderID, spinsUsed, spinCompleted)
	return args.Error(0)
}

func (m *MockOrderStore) AppendSpinReward(rec *store.SpinRewardRecord) error {
	args := m.Called(rec)
	return args.Error(0)
}

func (m *MockOrderStore) SaveInvoice(orderID string, grid [][]string) error {
	args := m.Called(orderID, grid)
	return args.Error(0)
}

// MockTodoStore mocks store.TodoStore for handler tests
type MockTodoStore struct {
	mock.Mock
}

func (m *MockTodoStore) ListTodos() ([]store.TodoTask, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.TodoTask), args.Error(1)
}

func (m *MockTodoStore) ListDoneTodos(date string) ([]int, error) {
	args := m.Called(date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockTodoStore) SetTodoDone(date string, index int, done bool) error {
	args := m.Called(date, index, done)
	return args.Error(0)
}

// MockNotifier records sent messages instead of hitting Telegram
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendText(message string) error {
	args := m.Called(message)
	return args.Error(0)
}
