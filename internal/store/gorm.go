package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// GormStore is the relational backend: MySQL in production, SQLite
// in-memory in tests. It mirrors the sheet layout with one table per
// tab.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open gorm connection and syncs the schema
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	err := db.AutoMigrate(
		&OrderRecord{},
		&ItemRecord{},
		&SpinRewardRecord{},
		&InvoiceRecord{},
		&TodoRecord{},
		&TodoStatusRecord{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

// ConnectMySQL opens the production database, waiting for it to come up
func ConnectMySQL(dsn string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error
	for i := 0; i < 5; i++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err == nil {
			return db, nil
		}
		log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to database after 5 attempts: %w", err)
}

// SaveOrder appends the order row and its child item rows
func (s *GormStore) SaveOrder(rec *OrderRecord, items []ItemRecord) error {
	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("failed to write order row: %w", err)
	}
	if len(items) > 0 {
		if err := s.db.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to write item rows: %w", err)
		}
	}
	return nil
}

// GetOrder finds one order row and its child rows by order ID
func (s *GormStore) GetOrder(orderID string) (*OrderRecord, []ItemRecord, error) {
	var rec OrderRecord
	err := s.db.Where("order_id = ?", orderID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read order: %w", err)
	}

	var items []ItemRecord
	if err := s.db.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to read item rows: %w", err)
	}
	return &rec, items, nil
}

// ListOrders returns every order with its items, newest first
func (s *GormStore) ListOrders(sales string) ([]OrderWithItems, error) {
	query := s.db.Model(&OrderRecord{})
	if sales != "" {
		query = query.Where("sales = ?", sales)
	}

	var records []OrderRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	var items []ItemRecord
	if err := s.db.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to read item rows: %w", err)
	}
	itemsByOrder := make(map[string][]ItemRecord)
	for _, item := range items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	out := make([]OrderWithItems, 0, len(records))
	for _, rec := range records {
		out = append(out, OrderWithItems{Order: rec, Items: itemsByOrder[rec.OrderID]})
	}
	SortNewestFirst(out)
	return out, nil
}

// UpdateOrder overwrites the order row and replaces its child rows in
// one transaction.
func (s *GormStore) UpdateOrder(orderID string, rec *OrderRecord, items []ItemRecord) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing OrderRecord
		err := tx.Where("order_id = ?", orderID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to read order: %w", err)
		}

		rec.ID = existing.ID
		if err := tx.Save(rec).Error; err != nil {
			return fmt.Errorf("failed to update order row: %w", err)
		}

		if err := tx.Where("order_id = ?", orderID).Delete(&ItemRecord{}).Error; err != nil {
			return fmt.Errorf("failed to delete item rows: %w", err)
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to write item rows: %w", err)
			}
		}
		return nil
	})
}

// UpdateSpinStatus patches only the two spin columns
func (s *GormStore) UpdateSpinStatus(orderID string, spinsUsed int, spinCompleted string) error {
	result := s.db.Model(&OrderRecord{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"spins_used":     spinsUsed,
			"spin_completed": spinCompleted,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update spin status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// AppendSpinReward logs one winning spin
func (s *GormStore) AppendSpinReward(rec *SpinRewardRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("failed to write spin reward: %w", err)
	}
	return nil
}

// ListTodos reads the staff checklist, sorted by position
func (s *GormStore) ListTodos() ([]TodoTask, error) {
	var records []TodoRecord
	if err := s.db.Order("position asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	tasks := make([]TodoTask, 0, len(records))
	for _, rec := range records {
		tasks = append(tasks, TodoTask{ID: int(rec.ID), Label: rec.Label})
	}
	return tasks, nil
}

// ListDoneTodos returns the task IDs marked done on the given day
func (s *GormStore) ListDoneTodos(date string) ([]int, error) {
	var records []TodoStatusRecord
	if err := s.db.Where("date = ?", date).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to read todo status: %w", err)
	}
	var done []int
	for _, rec := range records {
		done = append(done, rec.TaskIndex)
	}
	return done, nil
}

// SetTodoDone marks a task done or not-done for the day. The status row
// existing is the done mark, so both directions are idempotent.
func (s *GormStore) SetTodoDone(date string, index int, done bool) error {
	if !done {
		err := s.db.Where("date = ? AND task_index = ?", date, index).
			Delete(&TodoStatusRecord{}).Error
		if err != nil {
			return fmt.Errorf("failed to clear todo status: %w", err)
		}
		return nil
	}

	var existing TodoStatusRecord
	err := s.db.Where("date = ? AND task_index = ?", date, index).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to read todo status: %w", err)
	}
	if err := s.db.Create(&TodoStatusRecord{Date: date, TaskIndex: index}).Error; err != nil {
		return fmt.Errorf("failed to write todo status: %w", err)
	}
	return nil
}

// SaveInvoice stores the invoice grid as JSON, replacing any previous
// invoice for the order.
func (s *GormStore) SaveInvoice(orderID string, grid [][]string) error {
	body, err := json.Marshal(grid)
	if err != nil {
		return fmt.Errorf("failed to serialize invoice: %w", err)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&InvoiceRecord{}).Error; err != nil {
			return fmt.Errorf("failed to replace invoice: %w", err)
		}
		if err := tx.Create(&InvoiceRecord{OrderID: orderID, Body: string(body)}).Error; err != nil {
			return fmt.Errorf("failed to write invoice: %w", err)
		}
		return nil
	})
}
