package audit

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingEmitter struct{ err error }

func (f failingEmitter) Emit(ctx context.Context, e Event) error { return f.err }

func TestNewEventMintsFreshIdentity(t *testing.T) {
	a := NewEvent(CategoryGovernance, ActionGateChecked)
	b := NewEvent(CategoryGovernance, ActionGateChecked)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
	assert.Equal(t, ActionGateChecked, a.Action)
}

func TestLogToleratesNilPorts(t *testing.T) {
	assert.NotPanics(t, func() {
		Log(context.Background(), nil, nil, NewEvent(CategoryOperations, ActionSiteResolved))
	})
}

func TestLogSwallowsEmitFailure(t *testing.T) {
	emitter := failingEmitter{err: errors.New("sink down")}
	assert.NotPanics(t, func() {
		Log(context.Background(), slog.Default(), emitter, NewEvent(CategoryGovernance, ActionSiteResolved))
	})
}
