// internal/worker/replenish.go
package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"demo-pool/internal/messaging"
)

// Replenisher is the slice of the pool service the worker drives.
type Replenisher interface {
	Replenish(ctx context.Context, requested int) (int, error)
}

// ReplenishWorker consumes replenish requests from the queue and tops up the
// pool. The pool service rechecks the live available count before creating
// anything, so redelivered messages are harmless.
type ReplenishWorker struct {
	rabbit      *messaging.RabbitClient
	pool        Replenisher
	log         *zap.Logger
	consumerTag string
	stopChan    chan struct{}
	doneChan    chan struct{}
}

// Start opens the delivery stream and runs the consume loop in a goroutine.
func Start(rabbit *messaging.RabbitClient, poolSvc Replenisher, log *zap.Logger) (*ReplenishWorker, error) {
	w := &ReplenishWorker{
		rabbit:      rabbit,
		pool:        poolSvc,
		log:         log,
		consumerTag: "replenish-worker",
		stopChan:    make(chan struct{}),
		doneChan:    make(chan struct{}),
	}

	msgs, err := rabbit.Consume(w.consumerTag)
	if err != nil {
		return nil, fmt.Errorf("start replenish worker: %w", err)
	}

	go w.consumeLoop(msgs)

	log.Info("replenish worker started")
	return w, nil
}

// consumeLoop processes messages until stopChan is closed.
func (w *ReplenishWorker) consumeLoop(msgs <-chan amqp.Delivery) {
	defer close(w.doneChan)

	for {
		select {
		case msg, ok := <-msgs:
			if !ok {
				w.log.Warn("replenish delivery channel closed")
				return
			}
			w.handle(msg)

		case <-w.stopChan:
			w.log.Info("stopping replenish worker")
			_ = w.rabbit.CancelConsumer(w.consumerTag)
			return
		}
	}
}

func (w *ReplenishWorker) handle(msg amqp.Delivery) {
	var req messaging.ReplenishRequest
	if err := json.Unmarshal(msg.Body, &req); err != nil {
		w.log.Warn("malformed replenish request, rejecting", zap.Error(err))
		_ = msg.Reject(false) // send to DLQ
		return
	}
	if req.Count < 1 {
		w.log.Warn("replenish request with non-positive count, rejecting",
			zap.Int("count", req.Count))
		_ = msg.Reject(false)
		return
	}

	created, err := w.pool.Replenish(context.Background(), req.Count)
	if err != nil {
		// Partial progress is already committed and the recheck-on-execute
		// rule makes a retry safe. First failure goes back on the queue;
		// a second failure parks the message in the DLQ so a poison
		// message cannot loop.
		if !msg.Redelivered {
			w.log.Warn("replenish job failed, requeueing",
				zap.Int("requested", req.Count),
				zap.Int("created", created),
				zap.Error(err))
			_ = msg.Reject(true)
			return
		}
		w.log.Error("replenish job failed after redelivery, sending to DLQ",
			zap.Int("requested", req.Count),
			zap.Int("created", created),
			zap.Error(err))
		_ = msg.Reject(false)
		return
	}

	w.log.Info("replenish job completed",
		zap.Int("requested", req.Count),
		zap.Int("created", created))
	_ = msg.Ack(false)
}

// Stop signals the consumer to stop and waits for the loop to drain.
func (w *ReplenishWorker) Stop() {
	close(w.stopChan)
	<-w.doneChan
	w.log.Info("replenish worker stopped")
}
