package order

import (
	"fmt"
	"strings"
	"time"

	"shipquote/internal/pkg/errs"

	"github.com/google/uuid"
)

// Order is the aggregate created once a shipper accepts a shipping
// option. The core only owns the price and the status state machine;
// persisting the record is the caller's responsibility.
//
// Invariants:
//   - Price is strictly positive
//   - Status transitions follow the state machine in status.go
//   - DeliveredAt is set exactly when the order reaches Delivered
type Order struct {
	id          uuid.UUID
	trackingNo  string
	status      Status
	price       float64
	createdAt   time.Time
	deliveredAt *time.Time
}

// NewOrder creates an order in status New with a fresh tracking
// number. Price is the final price of the accepted shipping option and
// must be strictly positive.
func NewOrder(price float64) (*Order, error) {
	if price <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%v is not greater than 0", price))
	}

	id := uuid.New()
	return &Order{
		id:         id,
		trackingNo: newTrackingNo(id),
		status:     StatusNew,
		price:      price,
		createdAt:  time.Now().UTC(),
	}, nil
}

// RestoreOrder reconstructs an order from persistence. It validates
// the stored status but performs no transition checks: the stored
// state is taken as authoritative.
func RestoreOrder(
	id uuid.UUID,
	trackingNo string,
	status Status,
	price float64,
	createdAt time.Time,
	deliveredAt *time.Time,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if trackingNo == "" {
		return nil, errs.NewValueIsRequiredError("trackingNo")
	}

	return &Order{
		id:          id,
		trackingNo:  trackingNo,
		status:      status,
		price:       price,
		createdAt:   createdAt,
		deliveredAt: deliveredAt,
	}, nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() uuid.UUID { return o.id }

// TrackingNo returns the order's tracking number.
func (o *Order) TrackingNo() string { return o.trackingNo }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// Price returns the accepted final price.
func (o *Order) Price() float64 { return o.price }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// DeliveredAt returns the delivery timestamp, or nil while the order
// has not reached Delivered.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// TransitionTo moves the order to the target status. A transition to
// Delivered stamps DeliveredAt. Disallowed transitions, including any
// transition out of a terminal state, fail with InvalidTransitionError
// and leave the order unchanged.
func (o *Order) TransitionTo(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	if newStatus == StatusDelivered {
		now := time.Now().UTC()
		o.deliveredAt = &now
	}
	return nil
}

// newTrackingNo derives a short human-readable tracking number from
// the order id.
func newTrackingNo(id uuid.UUID) string {
	compact := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return "SHP-" + compact[:12]
}
