package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipeshare/backend/internal/models"
)

// MockEmailService records outgoing mail.
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendEmail(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

func (m *MockEmailService) SendActivationEmail(ctx context.Context, user *models.User, link string) error {
	args := m.Called(ctx, user, link)
	return args.Error(0)
}
