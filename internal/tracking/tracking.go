// Package tracking projects an order status onto the four-step delivery
// timeline.
package tracking

import (
	"fireworks-storefront/internal/domain"
)

// Steps is the number of stages in the timeline.
const Steps = 4

// Stage is one point on the timeline.
type Stage struct {
	Step        int                `json:"step"`
	Status      domain.OrderStatus `json:"status"`
	Label       string             `json:"label"`
	Description string             `json:"description"`
	Reached     bool               `json:"reached"`
	Current     bool               `json:"current"`
}

var stages = []Stage{
	{Step: 1, Status: domain.OrderStatusPending, Label: "Order Confirmed", Description: "Your order has been placed"},
	{Step: 2, Status: domain.OrderStatusProcessing, Label: "Processing", Description: "We are packing your fireworks"},
	{Step: 3, Status: domain.OrderStatusShipped, Label: "Shipped", Description: "Your order is on the way"},
	{Step: 4, Status: domain.OrderStatusDelivered, Label: "Delivered", Description: "Order delivered successfully"},
}

// Step maps a status label to its position. Unknown labels fall back to step 1
// with known=false.
func Step(status domain.OrderStatus) (step int, known bool) {
	for _, st := range stages {
		if st.Status == status {
			return st.Step, true
		}
	}
	return 1, false
}

// Progress is the fraction of the timeline covered at step, in [0, 1].
func Progress(step int) float64 {
	if step < 1 {
		step = 1
	}
	if step > Steps {
		step = Steps
	}
	return float64(step-1) / float64(Steps-1)
}

// View is what the tracking page renders for one order.
type View struct {
	Order        domain.Order `json:"order"`
	Step         int          `json:"step"`
	KnownStatus  bool         `json:"knownStatus"`
	Progress     float64      `json:"progress"`
	Stages       []Stage      `json:"stages"`
	TrackingPath string       `json:"trackingPath"`
}

// Project builds the timeline for o.
func Project(o domain.Order) View {
	step, known := Step(o.Status)
	out := make([]Stage, len(stages))
	for i, st := range stages {
		st.Reached = step >= st.Step
		st.Current = step == st.Step
		out[i] = st
	}
	return View{
		Order:        o,
		Step:         step,
		KnownStatus:  known,
		Progress:     Progress(step),
		Stages:       out,
		TrackingPath: Path(o.ID),
	}
}
