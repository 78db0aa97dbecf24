// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"fmt"

	"tpecflowers/internal/models"

	"gorm.io/gorm"
)

// InquiryRepository defines the interface for inquiry data operations
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *models.Inquiry) error
	List(ctx context.Context) ([]*models.Inquiry, error)
	GetByID(ctx context.Context, id uint) (*models.Inquiry, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

// inquiryRepository implements InquiryRepository
type inquiryRepository struct {
	db *gorm.DB
}

// NewInquiryRepository creates a new inquiry repository
func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *models.Inquiry) error {
	// Status and CreatedAt are forced in the model's BeforeCreate hook;
	// setting them here as well keeps the write correct even if the hook
	// set changes.
	inquiry.Status = models.StatusNew
	return r.db.WithContext(ctx).Create(inquiry).Error
}

func (r *inquiryRepository) List(ctx context.Context) ([]*models.Inquiry, error) {
	var inquiries []*models.Inquiry
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&inquiries).Error
	if err != nil {
		return nil, err
	}
	return inquiries, nil
}

func (r *inquiryRepository) GetByID(ctx context.Context, id uint) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	if err := r.db.WithContext(ctx).First(&inquiry, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("Inquiry", id)
		}
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if !models.ValidStatus(status) {
		return models.NewValidationError(fmt.Sprintf("Invalid status %q", status))
	}

	// Single-column update so no other field can be touched.
	res := r.db.WithContext(ctx).
		Model(&models.Inquiry{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Inquiry", id)
	}
	return nil
}

func (r *inquiryRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Inquiry{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Inquiry", id)
	}
	return nil
}

func (r *inquiryRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	if !models.ValidStatus(status) {
		return 0, models.NewValidationError(fmt.Sprintf("Invalid status %q", status))
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Inquiry{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
