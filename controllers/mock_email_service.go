//go:build unit
// +build unit

package controllers

import (
	"github.com/stretchr/testify/mock"
)

// MockEmailService implements services.EmailServiceInterface for testing.
type MockEmailService struct {
	mock.Mock
}

// SendConfirmationEmail records the recipient and returns the configured error.
func (m *MockEmailService) SendConfirmationEmail(recipient string) error {
	args := m.Called(recipient)
	return args.Error(0)
}
