package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingAcknowledger captures ack/reject decisions made by the handler.
type recordingAcknowledger struct {
	acks    int
	rejects []bool // requeue flag per reject
}

func (r *recordingAcknowledger) Ack(uint64, bool) error { r.acks++; return nil }

func (r *recordingAcknowledger) Nack(uint64, bool, bool) error { return nil }

func (r *recordingAcknowledger) Reject(_ uint64, requeue bool) error {
	r.rejects = append(r.rejects, requeue)
	return nil
}

type fakeReplenisher struct {
	err   error
	calls []int
}

func (f *fakeReplenisher) Replenish(_ context.Context, requested int) (int, error) {
	f.calls = append(f.calls, requested)
	if f.err != nil {
		return 0, f.err
	}
	return requested, nil
}

func delivery(ack amqp.Acknowledger, body string, redelivered bool) amqp.Delivery {
	return amqp.Delivery{Acknowledger: ack, Body: []byte(body), Redelivered: redelivered}
}

func newTestWorker(r Replenisher) *ReplenishWorker {
	return &ReplenishWorker{pool: r, log: zap.NewNop()}
}

func TestHandleAcksCompletedJob(t *testing.T) {
	ack := &recordingAcknowledger{}
	rep := &fakeReplenisher{}
	w := newTestWorker(rep)

	w.handle(delivery(ack, `{"count":3}`, false))

	require.Equal(t, []int{3}, rep.calls)
	require.Equal(t, 1, ack.acks)
	require.Empty(t, ack.rejects)
}

func TestHandleMalformedMessageGoesToDLQ(t *testing.T) {
	ack := &recordingAcknowledger{}
	rep := &fakeReplenisher{}
	w := newTestWorker(rep)

	w.handle(delivery(ack, `not json`, false))

	require.Empty(t, rep.calls)
	require.Equal(t, []bool{false}, ack.rejects)
}

func TestHandleNonPositiveCountGoesToDLQ(t *testing.T) {
	ack := &recordingAcknowledger{}
	rep := &fakeReplenisher{}
	w := newTestWorker(rep)

	w.handle(delivery(ack, `{"count":0}`, false))

	require.Empty(t, rep.calls)
	require.Equal(t, []bool{false}, ack.rejects)
}

func TestHandleTransientFailureRequeues(t *testing.T) {
	ack := &recordingAcknowledger{}
	rep := &fakeReplenisher{err: errors.New("connection refused")}
	w := newTestWorker(rep)

	// A first failure goes back on the queue so the top-up is not lost.
	w.handle(delivery(ack, `{"count":5}`, false))

	require.Equal(t, []int{5}, rep.calls)
	require.Equal(t, []bool{true}, ack.rejects)
	require.Zero(t, ack.acks)
}

func TestHandleRedeliveredFailureGoesToDLQ(t *testing.T) {
	ack := &recordingAcknowledger{}
	rep := &fakeReplenisher{err: errors.New("connection refused")}
	w := newTestWorker(rep)

	w.handle(delivery(ack, `{"count":5}`, true))

	require.Equal(t, []bool{false}, ack.rejects)
	require.Zero(t, ack.acks)
}
