package server

import (
	"tpecflowers/internal/models"
	"tpecflowers/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// inquiryRequest is the wire form of both intake variants.
type inquiryRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	EventType      string `json:"event_type"`
	EventDate      string `json:"event_date"`
	Location       string `json:"location"`
	Vision         string `json:"vision"`
	BudgetRange    string `json:"budget_range"`
	ReferralSource string `json:"referral_source"`
}

func (r inquiryRequest) toInput() validation.InquiryInput {
	return validation.InquiryInput{
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		EventType:      r.EventType,
		EventDate:      r.EventDate,
		Location:       r.Location,
		Vision:         r.Vision,
		BudgetRange:    r.BudgetRange,
		ReferralSource: r.ReferralSource,
	}
}

// SubmitInquiry handles POST /api/inquiries
func (s *Server) SubmitInquiry(c *fiber.Ctx) error {
	return s.submitInquiry(c, validation.VariantFull,
		"Thank you for your inquiry! We will be in touch soon.")
}

// RequestCallback handles POST /api/inquiries/callback
func (s *Server) RequestCallback(c *fiber.Ctx) error {
	return s.submitInquiry(c, validation.VariantCallback,
		"Thank you! We will call you back soon.")
}

func (s *Server) submitInquiry(c *fiber.Ctx, variant validation.Variant, thankYou string) error {
	var req inquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	inquiry, err := s.inquiryService.Submit(c.Context(), req.toInput(), variant)
	if err != nil {
		if fieldErr, ok := err.(*validation.FieldError); ok {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError(fieldErr.Message))
		}
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":      inquiry.ID,
		"message": thankYou,
	})
}

// ListInquiries handles GET /api/admin/inquiries
func (s *Server) ListInquiries(c *fiber.Ctx) error {
	inquiries, err := s.inquiryService.List(c.Context())
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"inquiries": inquiries,
		"count":     len(inquiries),
	})
}

// CountInquiries handles GET /api/admin/inquiries/count?status=new
func (s *Server) CountInquiries(c *fiber.Ctx) error {
	status := c.Query("status", models.StatusNew)

	count, err := s.inquiryService.CountByStatus(c.Context(), status)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"status": status,
		"count":  count,
	})
}

// GetInquiry handles GET /api/admin/inquiries/:id
func (s *Server) GetInquiry(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	inquiry, err := s.inquiryService.Get(c.Context(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(inquiry)
}

// UpdateInquiryStatus handles PATCH /api/admin/inquiries/:id/status
func (s *Server) UpdateInquiryStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	inquiry, err := s.inquiryService.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(inquiry)
}

// DeleteInquiry handles DELETE /api/admin/inquiries/:id
func (s *Server) DeleteInquiry(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.inquiryService.Delete(c.Context(), id); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Inquiry deleted",
	})
}
