package store

import (
	"context"

	"github.com/perpsignal/signal-engine/pkg/model"
)

// SignalSink persists and retrieves signal outputs: at-least-once
// durability is the sink's responsibility, not the core pipeline's.
type SignalSink interface {
	Store(ctx context.Context, out *model.SignalOutput) error
	Latest(ctx context.Context, symbol string) (*model.SignalOutput, error)
}

// MemorySink is an in-process SignalSink used by tests.
// It keeps only the most recent signal per symbol.
type MemorySink struct {
	latest map[string]*model.SignalOutput
}

func NewMemorySink() *MemorySink {
	return &MemorySink{latest: make(map[string]*model.SignalOutput)}
}

func (m *MemorySink) Store(_ context.Context, out *model.SignalOutput) error {
	m.latest[out.Symbol] = out
	return nil
}

func (m *MemorySink) Latest(_ context.Context, symbol string) (*model.SignalOutput, error) {
	out, ok := m.latest[symbol]
	if !ok {
		return nil, nil
	}
	return out, nil
}
