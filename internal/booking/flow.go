package booking

import (
	"context"
	"sync"
	"time"
)

// FlowState is a step of the booking submission flow.
type FlowState string

const (
	FlowIdle                 FlowState = "idle"
	FlowCheckingAvailability FlowState = "checking-availability"
	FlowAvailable            FlowState = "available"
	FlowUnavailable          FlowState = "unavailable"
	FlowSubmitting           FlowState = "submitting"
	FlowSuccess              FlowState = "success"
	FlowError                FlowState = "error"
)

// Flow drives one booking attempt through availability check and submission.
//
//	idle -> checking-availability -> available | unavailable
//	available -> submitting -> success | error
//
// Submit from idle runs the check first. A Flow is safe for concurrent use but
// models a single attempt; call Reset to start over.
type Flow struct {
	svc Service

	mu      sync.Mutex
	state   FlowState
	quote   *Quote
	booking *Booking
	err     error
}

func NewFlow(svc Service) *Flow {
	return &Flow{svc: svc, state: FlowIdle}
}

func (f *Flow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Err returns the error that moved the flow into the error state, if any.
func (f *Flow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Flow) Quote() *Quote {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.quote
}

func (f *Flow) Booking() *Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.booking
}

func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state, f.quote, f.booking, f.err = FlowIdle, nil, nil, nil
}

// Check runs the availability step. Errors (bad range, unknown boat) move the
// flow to the error state.
func (f *Flow) Check(ctx context.Context, boatID int64, start, end time.Time) (*Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.check(ctx, boatID, start, end)
}

func (f *Flow) check(ctx context.Context, boatID int64, start, end time.Time) (*Quote, error) {
	f.state = FlowCheckingAvailability
	q, err := f.svc.CheckAvailability(ctx, boatID, start, end)
	if err != nil {
		f.state, f.err = FlowError, err
		return nil, err
	}
	f.quote = q
	if q.Available {
		f.state = FlowAvailable
	} else {
		f.state = FlowUnavailable
	}
	return q, nil
}

// Submit validates and stores the booking. It checks availability first when
// the flow has not checked these dates yet. An unavailable result stops the
// flow with ErrUnavailable and nothing is written.
func (f *Flow) Submit(ctx context.Context, req SubmitRequest) (*Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.checked(req) {
		if _, err := f.check(ctx, req.BoatID, req.StartDate, req.EndDate); err != nil {
			return nil, err
		}
	}
	if f.state == FlowUnavailable {
		return nil, ErrUnavailable
	}

	f.state = FlowSubmitting
	b, err := f.svc.Submit(ctx, req)
	if err != nil {
		f.state, f.err = FlowError, err
		return nil, err
	}
	f.state, f.booking = FlowSuccess, b
	return b, nil
}

func (f *Flow) checked(req SubmitRequest) bool {
	if f.state != FlowAvailable && f.state != FlowUnavailable {
		return false
	}
	q := f.quote
	return q != nil && q.BoatID == req.BoatID && q.StartDate.Equal(req.StartDate) && q.EndDate.Equal(req.EndDate)
}
