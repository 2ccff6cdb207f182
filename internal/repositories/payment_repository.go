package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/forum-server/internal/models"
	"gorm.io/gorm"
)

// PaymentRepository defines the interface for the payment ledger
type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *models.Payment) error
	GetPaymentsByEmail(ctx context.Context, email string) ([]models.Payment, error)
}

// PostgresPaymentRepository implements PaymentRepository for PostgreSQL
type PostgresPaymentRepository struct {
	db *gorm.DB
}

// NewPostgresPaymentRepository creates a new PostgresPaymentRepository
func NewPostgresPaymentRepository(db *gorm.DB) *PostgresPaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

// CreatePayment records a completed payment; a repeated transaction id is a duplicate
func (r *PostgresPaymentRepository) CreatePayment(ctx context.Context, payment *models.Payment) error {
	err := r.db.WithContext(ctx).Create(payment).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) || (err != nil && strings.Contains(err.Error(), "SQLSTATE 23505")) {
		return ErrDuplicate
	}
	return err
}

// GetPaymentsByEmail lists a user's payments, newest first
func (r *PostgresPaymentRepository) GetPaymentsByEmail(ctx context.Context, email string) ([]models.Payment, error) {
	payments := []models.Payment{}
	if err := r.db.WithContext(ctx).Where("email = ?", email).Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
