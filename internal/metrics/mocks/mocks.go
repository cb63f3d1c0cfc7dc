// Package mocks provides a testify mock of metrics.BusinessMetrics.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/fintrack/internal/metrics"
)

// MockBusinessMetrics is a mock implementation of metrics.BusinessMetrics.
type MockBusinessMetrics struct {
	mock.Mock
}

var _ metrics.BusinessMetrics = (*MockBusinessMetrics)(nil)

func (m *MockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *MockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

// ExpectObserve expects one counter increment and one duration sample for operation.
func (m *MockBusinessMetrics) ExpectObserve(ctx any, domain, operation, status string) {
	m.On("RecordOperation", ctx, domain, operation, status).Once()
	m.On("RecordDuration", ctx, domain, operation, mock.AnythingOfType("time.Duration"), status).Once()
}
