// Package audit records authorization decisions. Recording is best effort:
// a failing sink never changes a decision.
package audit

import (
	"context"
	"time"
)

// Record is one authorization decision. Resource and Policy are set
// depending on how the check was asked for; both may be empty when raw
// requirements were evaluated.
type Record struct {
	ID       string    `json:"id"`
	Time     time.Time `json:"time"`
	Subject  string    `json:"subject,omitempty"`
	Resource string    `json:"resource,omitempty"`
	Policy   string    `json:"policy,omitempty"`
	Allowed  bool      `json:"allowed"`
	Reason   string    `json:"reason,omitempty"`
}

type Sink interface {
	Write(ctx context.Context, record Record) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, record Record) error

func (f SinkFunc) Write(ctx context.Context, record Record) error {
	return f(ctx, record)
}

type NopSink struct{}

func (NopSink) Write(ctx context.Context, record Record) error {
	return nil
}

var _ Sink = SinkFunc(nil)
var _ Sink = NopSink{}
