package tracking

import (
	"testing"

	"fireworks-storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep(t *testing.T) {
	tests := []struct {
		status domain.OrderStatus
		step   int
		known  bool
	}{
		{domain.OrderStatusPending, 1, true},
		{domain.OrderStatusProcessing, 2, true},
		{domain.OrderStatusShipped, 3, true},
		{domain.OrderStatusDelivered, 4, true},
		{"Cancelled", 1, false},
		{"", 1, false},
		{"shipped", 1, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			step, known := Step(tt.status)
			assert.Equal(t, tt.step, step)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0.0, Progress(1))
	assert.InDelta(t, 2.0/3.0, Progress(3), 1e-12)
	assert.Equal(t, 1.0, Progress(4))
	assert.Equal(t, 0.0, Progress(0))
	assert.Equal(t, 1.0, Progress(9))
}

func TestProject_Shipped(t *testing.T) {
	v := Project(domain.Order{ID: 42, Status: domain.OrderStatusShipped})
	assert.Equal(t, 3, v.Step)
	assert.True(t, v.KnownStatus)
	assert.InDelta(t, 2.0/3.0, v.Progress, 1e-12)
	assert.Equal(t, "/track/42", v.TrackingPath)

	require.Len(t, v.Stages, Steps)
	for _, st := range v.Stages {
		assert.Equal(t, st.Step <= 3, st.Reached, "stage %d", st.Step)
		assert.Equal(t, st.Step == 3, st.Current, "stage %d", st.Step)
	}
	assert.Equal(t, "Order Confirmed", v.Stages[0].Label)
}

func TestProject_UnknownStatus(t *testing.T) {
	v := Project(domain.Order{ID: 1, Status: "Returned"})
	assert.Equal(t, 1, v.Step)
	assert.False(t, v.KnownStatus)
	assert.True(t, v.Stages[0].Reached)
	assert.False(t, v.Stages[1].Reached)
}
