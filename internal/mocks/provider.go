package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/customeros/mailtickets/dto"
)

type EmailProvider struct {
	mock.Mock
}

func (m *EmailProvider) ParseIncoming(payload []byte) (*dto.EmailMessage, error) {
	args := m.Called(payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EmailMessage), args.Error(1)
}

func (m *EmailProvider) SendNotification(ctx context.Context, to, subject, body string) bool {
	args := m.Called(ctx, to, subject, body)
	return args.Bool(0)
}

type MessageDeduplicator struct {
	mock.Mock
}

func (m *MessageDeduplicator) FirstSeen(ctx context.Context, messageID string) bool {
	args := m.Called(ctx, messageID)
	return args.Bool(0)
}

func (m *MessageDeduplicator) Forget(ctx context.Context, messageID string) {
	m.Called(ctx, messageID)
}
