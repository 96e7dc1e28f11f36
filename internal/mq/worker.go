package mq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/FrederickAlmeida/Reserva-Hotel/internal/reservation"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/wire"
)

// Publisher é satisfeito por *amqp.Channel.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// DeclareQueue declara a fila de comandos (durável) usada por worker e cliente.
func DeclareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return amqp.Queue{}, fmt.Errorf("declare queue %s: %w", name, err)
	}
	return q, nil
}

type Worker struct {
	handler *Handler
	pub     Publisher
	logger  reservation.Logger
	timeout time.Duration
}

func NewWorker(handler *Handler, pub Publisher, logger reservation.Logger, timeout time.Duration) *Worker {
	return &Worker{handler: handler, pub: pub, logger: logger, timeout: timeout}
}

// Run consome entregas até o contexto acabar ou o canal fechar.
func (w *Worker) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				w.logger.Warn("delivery channel closed")
				return
			}
			w.handleDelivery(ctx, d)
		}
	}
}

func (w *Worker) handleDelivery(parentCtx context.Context, d amqp.Delivery) {
	defer func() {
		// sempre dá ack pra não ficar reentregando infinitamente
		if err := d.Ack(false); err != nil {
			w.logger.Error("failed to ack message", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(parentCtx, w.timeout)
	defer cancel()

	resp := w.handler.Handle(ctx, d.Body)
	if !resp.OK {
		w.logger.Info("command failed", "code", resp.Code, "error", resp.Error, "correlation_id", d.CorrelationId)
	}

	w.reply(ctx, d, resp)
}

func (w *Worker) reply(ctx context.Context, d amqp.Delivery, resp Response) {
	if d.ReplyTo == "" {
		// "fire-and-forget"
		return
	}

	body, err := wire.JSON.Marshal(resp)
	if err != nil {
		w.logger.Error("failed to marshal response", "error", err)
		return
	}

	err = w.pub.PublishWithContext(
		ctx,
		"",
		d.ReplyTo,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: d.CorrelationId,
			Body:          body,
		},
	)
	if err != nil {
		w.logger.Error("failed to publish response", "error", err, "reply_to", d.ReplyTo)
	}
}
