// Package service contains the application's business logic.
package service

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"tpecflowers/internal/mail"
	"tpecflowers/internal/middleware"
	"tpecflowers/internal/models"
	"tpecflowers/internal/notifications"
	"tpecflowers/internal/observability"
	"tpecflowers/internal/repository"
	"tpecflowers/internal/validation"
)

// notifyTimeout bounds the background delivery of a single inquiry
// notification (email plus change event).
const notifyTimeout = 30 * time.Second

type InquiryService struct {
	inquiryRepo repository.InquiryRepository
	mailer      mail.Mailer
	notifier    *notifications.Notifier
}

func NewInquiryService(
	inquiryRepo repository.InquiryRepository,
	mailer mail.Mailer,
	notifier *notifications.Notifier,
) *InquiryService {
	return &InquiryService{
		inquiryRepo: inquiryRepo,
		mailer:      mailer,
		notifier:    notifier,
	}
}

// Submit validates and persists a visitor inquiry, then dispatches the
// operator notification in the background. Notification failures never
// affect the submission outcome.
func (s *InquiryService) Submit(
	ctx context.Context, in validation.InquiryInput, variant validation.Variant,
) (*models.Inquiry, error) {
	inquiry, fieldErr := validation.ValidateInquiry(in, variant)
	if fieldErr != nil {
		return nil, fieldErr
	}

	if err := s.inquiryRepo.Create(ctx, inquiry); err != nil {
		return nil, err
	}

	observability.InquirySubmissions.WithLabelValues(string(variant)).Inc()

	go s.notify(inquiry)

	return inquiry, nil
}

// notify sends the operator email and publishes the change event. Runs
// detached from the request that created the inquiry.
func (s *InquiryService) notify(inquiry *models.Inquiry) {
	defer func() {
		if r := recover(); r != nil {
			middleware.Logger.Error("PANIC in inquiry notification",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if s.mailer != nil {
		if err := s.mailer.SendInquiryNotification(inquiry); err != nil {
			observability.NotificationFailures.Inc()
			middleware.Logger.Error("failed to send inquiry notification email",
				slog.Uint64("inquiry_id", uint64(inquiry.ID)),
				slog.String("error", err.Error()),
			)
		}
	}

	if s.notifier != nil {
		event := notifications.InquiryEvent{
			Type:      notifications.EventInsert,
			InquiryID: inquiry.ID,
			Status:    inquiry.Status,
		}
		if err := s.notifier.PublishInquiryEvent(ctx, event); err != nil {
			middleware.Logger.Error("failed to publish inquiry event",
				slog.Uint64("inquiry_id", uint64(inquiry.ID)),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (s *InquiryService) List(ctx context.Context) ([]*models.Inquiry, error) {
	return s.inquiryRepo.List(ctx)
}

func (s *InquiryService) Get(ctx context.Context, id uint) (*models.Inquiry, error) {
	return s.inquiryRepo.GetByID(ctx, id)
}

// UpdateStatus moves an inquiry to a new workflow status. Any valid status
// may follow any other; the workflow is a label, not a state machine.
func (s *InquiryService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Inquiry, error) {
	if !models.ValidStatus(status) {
		return nil, models.NewValidationError("Invalid status value")
	}

	if err := s.inquiryRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	observability.InquiryStatusTransitions.WithLabelValues(status).Inc()

	if s.notifier != nil {
		event := notifications.InquiryEvent{
			Type:      notifications.EventUpdate,
			InquiryID: id,
			Status:    status,
		}
		if err := s.notifier.PublishInquiryEvent(ctx, event); err != nil {
			middleware.Logger.Error("failed to publish inquiry event",
				slog.Uint64("inquiry_id", uint64(id)),
				slog.String("error", err.Error()),
			)
		}
	}

	return s.inquiryRepo.GetByID(ctx, id)
}

func (s *InquiryService) Delete(ctx context.Context, id uint) error {
	if err := s.inquiryRepo.Delete(ctx, id); err != nil {
		return err
	}

	if s.notifier != nil {
		event := notifications.InquiryEvent{
			Type:      notifications.EventDelete,
			InquiryID: id,
		}
		if err := s.notifier.PublishInquiryEvent(ctx, event); err != nil {
			middleware.Logger.Error("failed to publish inquiry event",
				slog.Uint64("inquiry_id", uint64(id)),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

// CountByStatus returns the number of inquiries in the given status. The
// dashboard uses this for its "new inquiries" badge.
func (s *InquiryService) CountByStatus(ctx context.Context, status string) (int64, error) {
	return s.inquiryRepo.CountByStatus(ctx, status)
}
