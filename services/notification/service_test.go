package notification

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/customeros/mailtickets/dto"
	"github.com/customeros/mailtickets/internal/logger"
	"github.com/customeros/mailtickets/internal/metrics"
	"github.com/customeros/mailtickets/internal/mocks"
	"github.com/customeros/mailtickets/internal/models"
)

func newTestService(provider *mocks.EmailProvider) *Service {
	return NewService(provider, logger.NewNopLogger(), metrics.NewMetrics(prometheus.NewRegistry()))
}

func TestNotifyCustomerOfReply(t *testing.T) {
	// Arrange
	provider := new(mocks.EmailProvider)
	ticket := &models.Ticket{ID: 42, Subject: "Printer broken", CustomerEmail: "alice@example.com"}
	provider.On("SendNotification", mock.Anything,
		"alice@example.com",
		`[Ticket #42] Your support ticket "Printer broken" has a new reply`,
		"Hello,\n\nYou have a new reply to your ticket:\n\nTry turning it off and on.\n\nBest regards,\nBob",
	).Return(true)

	// Act
	sent := newTestService(provider).NotifyCustomerOfReply(context.Background(), ticket, "Try turning it off and on.", "Bob")

	// Assert
	assert.True(t, sent)
	provider.AssertExpectations(t)
}

func TestNotifyCustomerOfReply_DefaultAgentName(t *testing.T) {
	provider := new(mocks.EmailProvider)
	ticket := &models.Ticket{ID: 1, Subject: "s", CustomerEmail: "a@example.com"}
	provider.On("SendNotification", mock.Anything, "a@example.com", mock.Anything,
		"Hello,\n\nYou have a new reply to your ticket:\n\nhi\n\nBest regards,\nSupport Agent",
	).Return(true)

	assert.True(t, newTestService(provider).NotifyCustomerOfReply(context.Background(), ticket, "hi", ""))
	provider.AssertExpectations(t)
}

func TestNotifyCustomerOfReply_NoCustomerEmail(t *testing.T) {
	provider := new(mocks.EmailProvider)

	sent := newTestService(provider).NotifyCustomerOfReply(context.Background(), &models.Ticket{ID: 1}, "hi", "Bob")

	assert.False(t, sent)
	provider.AssertNotCalled(t, "SendNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotifyCustomerOfReply_SendFailureIsSwallowed(t *testing.T) {
	provider := new(mocks.EmailProvider)
	provider.On("SendNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false)

	sent := newTestService(provider).NotifyCustomerOfReply(context.Background(),
		&models.Ticket{ID: 1, CustomerEmail: "a@example.com"}, "hi", "Bob")

	assert.False(t, sent)
}

func TestReplyNotification_SubjectCarriesTicketReference(t *testing.T) {
	subject, _ := ReplyNotification(&models.Ticket{ID: 99, Subject: "x"}, "m", "a")

	id, ok := dto.ParseTicketReference(subject)
	assert.True(t, ok)
	assert.Equal(t, uint64(99), id)
}
