package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStamp(t *testing.T) {
	stamped := Stamp(Event{Type: TypeCaseUpdated})
	assert.NotEmpty(t, stamped.ID)
	assert.False(t, stamped.Timestamp.IsZero())

	// Already-stamped events keep their identity.
	fixed := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	again := Stamp(Event{ID: "abc", Timestamp: fixed})
	assert.Equal(t, "abc", again.ID)
	assert.Equal(t, fixed, again.Timestamp)
}

type failingSink struct{ err error }

func (s failingSink) Emit(context.Context, Event) error { return s.err }

func TestMultiSink_DeliversToAllDespiteFailure(t *testing.T) {
	rec1 := &MemorySink{}
	rec2 := &MemorySink{}
	boom := errors.New("broker down")

	sink := MultiSink{rec1, failingSink{err: boom}, rec2}
	err := sink.Emit(context.Background(), Event{Type: TypeCaseUpdated})

	assert.ErrorIs(t, err, boom, "the first failure is reported")
	assert.Len(t, rec1.All(), 1)
	assert.Len(t, rec2.All(), 1, "a failing sink never blocks the others")
}

func TestMemorySink_OfType(t *testing.T) {
	sink := &MemorySink{}
	require.NoError(t, sink.Emit(context.Background(), Event{Type: TypeCaseUpdated, CaseNo: "1"}))
	require.NoError(t, sink.Emit(context.Background(), Event{Type: TypeCaseUpdateFailure, CaseNo: "2"}))
	require.NoError(t, sink.Emit(context.Background(), Event{Type: TypeCaseUpdated, CaseNo: "3"}))

	updated := sink.OfType(TypeCaseUpdated)
	require.Len(t, updated, 2)
	assert.Equal(t, "1", updated[0].CaseNo)
	assert.Equal(t, "3", updated[1].CaseNo)
	assert.Len(t, sink.All(), 3)
}
