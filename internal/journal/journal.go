// Package journal keeps a local record of everything this terminal
// submitted upstream: completed transactions and shift open/close events.
// The journal is the terminal's own audit trail; the POS API remains the
// source of truth.
package journal

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type TransactionRecord struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	TransactionID  int       `gorm:"index;not null"           json:"transaction_id"`
	UserID         int       `gorm:"index;not null"           json:"user_id"`
	ReceiptNumber  string    `gorm:"not null"                 json:"receipt_number"`
	Subtotal       float64   `gorm:"not null"                 json:"subtotal"`
	TypeDiscount   int       `json:"type_discount"`
	AmountDiscount float64   `json:"amount_discount"`
	Tax            float64   `json:"tax"`
	Total          float64   `gorm:"not null"                 json:"total"`
	TotalPayment   float64   `gorm:"not null"                 json:"total_payment"`
	Change         float64   `json:"change"`
	PaymentMethod  string    `json:"payment_method"`
	CreatedAt      time.Time `json:"created_at"`
}

type ShiftRecord struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ShiftID     int       `gorm:"index;not null"           json:"shift_id"`
	UserID      int       `gorm:"index;not null"           json:"user_id"`
	Event       string    `gorm:"not null"                 json:"event"`
	CashBalance float64   `json:"cash_balance"`
	CreatedAt   time.Time `json:"created_at"`
}

type Journal struct {
	db *gorm.DB
}

// Open connects to the journal database and migrates the schema.
func Open(dsn string) (*Journal, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	return FromDB(db)
}

// FromDB wraps an already-open gorm connection; tests use this with an
// in-memory sqlite database.
func FromDB(db *gorm.DB) (*Journal, error) {
	if err := db.AutoMigrate(&TransactionRecord{}, &ShiftRecord{}); err != nil {
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return &Journal{db: db}, nil
}

func (j *Journal) RecordTransaction(ctx context.Context, record *TransactionRecord) error {
	if err := j.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("record transaction: %w", err)
	}
	return nil
}

func (j *Journal) RecordShift(ctx context.Context, record *ShiftRecord) error {
	if err := j.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("record shift: %w", err)
	}
	return nil
}

// Transactions lists the locally journaled transactions for one cashier,
// newest first.
func (j *Journal) Transactions(ctx context.Context, userID, limit int) ([]TransactionRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var records []TransactionRecord
	err := j.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return records, nil
}

func (j *Journal) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
