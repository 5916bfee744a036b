package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"devdeck/internal/domain"
	"devdeck/internal/repository"
)

const maxContactMessageLength = 5000

// ContactService accepts submissions from the public contact form.
type ContactService interface {
	Submit(ctx context.Context, inquiry domain.ContactInquiry) (*domain.ContactInquiry, error)
}

type contactService struct {
	inquiries repository.ContactRepository
}

func NewContactService(inquiries repository.ContactRepository) ContactService {
	return &contactService{inquiries: inquiries}
}

func (s *contactService) Submit(ctx context.Context, in domain.ContactInquiry) (*domain.ContactInquiry, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)

	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(in.Email)
	if err != nil || addr.Address != in.Email {
		return nil, fmt.Errorf("%w: email address is not valid", ErrInvalidInput)
	}
	if in.Message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if len(in.Message) > maxContactMessageLength {
		return nil, fmt.Errorf("%w: message is too long", ErrInvalidInput)
	}

	inquiry := &domain.ContactInquiry{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	}
	if _, err := s.inquiries.Create(ctx, inquiry); err != nil {
		return nil, err
	}
	return inquiry, nil
}
