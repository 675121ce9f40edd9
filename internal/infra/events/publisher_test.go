package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/Raviram02/HostelBite/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ConnMock struct{ mock.Mock }

func (m *ConnMock) Publish(subject string, data []byte) error {
	args := m.Called(subject, data)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNATSPublisher_Publish(t *testing.T) {
	conn := new(ConnMock)
	p := NewNATSPublisher(conn, discardLogger())

	var sent []byte
	conn.On("Publish", SubjectOrderPaid, mock.Anything).
		Run(func(args mock.Arguments) { sent = args.Get(1).([]byte) }).
		Return(nil).Once()

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p.Publish(context.Background(), SubjectOrderPaid, NewOrderEvent(model.Order{
		ID: "o-1", UserID: "u-1", IsPaid: true, Status: model.OrderStatusPlaced, Amount: 214,
	}, at))

	conn.AssertExpectations(t)
	var got OrderEvent
	require.NoError(t, json.Unmarshal(sent, &got))
	assert.Equal(t, "o-1", got.OrderID)
	assert.True(t, got.IsPaid)
	assert.Equal(t, int64(214), got.Amount)
}

func TestNATSPublisher_PublishErrorIsSwallowed(t *testing.T) {
	conn := new(ConnMock)
	conn.On("Publish", mock.Anything, mock.Anything).Return(errors.New("nats: connection closed")).Once()

	NewNATSPublisher(conn, discardLogger()).Publish(context.Background(), SubjectOrderPlaced, OrderEvent{OrderID: "o-1"})
	conn.AssertExpectations(t)
}

func TestNATSPublisher_CancelledContext(t *testing.T) {
	conn := new(ConnMock)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	NewNATSPublisher(conn, discardLogger()).Publish(ctx, SubjectOrderPlaced, OrderEvent{OrderID: "o-1"})
	conn.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
