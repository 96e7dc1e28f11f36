package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/FrederickAlmeida/Reserva-Hotel/internal/reservation"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/wire"
)

var ErrClientClosed = errors.New("mq client closed")

// Client faz RPC sobre a fila de comandos: publica com ReplyTo/CorrelationId e
// espera a resposta na fila temporária. Pode ser usado por várias goroutines.
type Client struct {
	pub     Publisher
	queue   string
	replyTo string

	mu      sync.Mutex
	pending map[string]chan Response
	closed  bool

	closers []func() error
}

// Dial abre conexão, canal e fila de resposta exclusiva.
func Dial(amqpURL, queue string) (*Client, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// fila de resposta temporária
	replyQueue, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare reply queue: %w", err)
	}

	replies, err := ch.Consume(replyQueue.Name, "", true, true, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("register reply consumer: %w", err)
	}

	c := NewClient(ch, replies, queue, replyQueue.Name)
	c.closers = []func() error{ch.Close, conn.Close}
	return c, nil
}

// NewClient monta um cliente sobre um publisher e um canal de respostas já
// prontos.
func NewClient(pub Publisher, replies <-chan amqp.Delivery, queue, replyTo string) *Client {
	c := &Client{
		pub:     pub,
		queue:   queue,
		replyTo: replyTo,
		pending: make(map[string]chan Response),
	}
	go c.readReplies(replies)
	return c
}

func (c *Client) readReplies(replies <-chan amqp.Delivery) {
	for msg := range replies {
		var resp Response
		if err := wire.JSON.Unmarshal(msg.Body, &resp); err != nil {
			resp = errorResponse(reservation.CodeInternal, "failed to unmarshal response: "+err.Error())
		}

		c.mu.Lock()
		waiter, ok := c.pending[msg.CorrelationId]
		delete(c.pending, msg.CorrelationId)
		c.mu.Unlock()

		if ok {
			waiter <- resp
		}
	}

	c.mu.Lock()
	c.closed = true
	for id, waiter := range c.pending {
		close(waiter)
		delete(c.pending, id)
	}
	c.mu.Unlock()
}

func (c *Client) Close() error {
	var errs []error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Call envia o comando e decodifica o payload da resposta em out (pode ser nil).
func (c *Client) Call(ctx context.Context, cmd CommandType, payload, out any) error {
	body, err := wire.JSON.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	env, err := wire.JSON.Marshal(CommandEnvelope{Type: cmd, Payload: json.RawMessage(body)})
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	correlationID := uuid.NewString()
	waiter := make(chan Response, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClientClosed
	}
	c.pending[correlationID] = waiter
	c.mu.Unlock()

	forget := func() {
		c.mu.Lock()
		delete(c.pending, correlationID)
		c.mu.Unlock()
	}

	err = c.pub.PublishWithContext(ctx, "", c.queue, false, false, amqp.Publishing{
		ContentType:   "application/json",
		ReplyTo:       c.replyTo,
		CorrelationId: correlationID,
		Body:          env,
	})
	if err != nil {
		forget()
		return fmt.Errorf("failed to publish command: %w", err)
	}

	select {
	case resp, ok := <-waiter:
		if !ok {
			return ErrClientClosed
		}
		if !resp.OK {
			return &RemoteError{Code: resp.Code, Message: resp.Error}
		}
		if out == nil || len(resp.Payload) == 0 {
			return nil
		}
		if err := wire.JSON.Unmarshal(resp.Payload, out); err != nil {
			return fmt.Errorf("failed to decode response payload: %w", err)
		}
		return nil
	case <-ctx.Done():
		forget()
		return fmt.Errorf("timeout waiting for response: %w", ctx.Err())
	}
}

func (c *Client) AddResource(ctx context.Context, req wire.AddResourceRequest) (wire.Resource, error) {
	var out wire.Resource
	err := c.Call(ctx, CommandAddResource, req, &out)
	return out, err
}

func (c *Client) AddRequester(ctx context.Context, req wire.AddRequesterRequest) (wire.Requester, error) {
	var out wire.Requester
	err := c.Call(ctx, CommandAddRequester, req, &out)
	return out, err
}

func (c *Client) Book(ctx context.Context, req wire.BookRequest) (wire.Reservation, error) {
	var out wire.Reservation
	err := c.Call(ctx, CommandBook, req, &out)
	return out, err
}

func (c *Client) Cancel(ctx context.Context, req wire.CancelRequest) (wire.Reservation, error) {
	var out wire.Reservation
	err := c.Call(ctx, CommandCancel, req, &out)
	return out, err
}

func (c *Client) CancelReservation(ctx context.Context, req wire.CancelReservationRequest) (wire.Reservation, error) {
	var out wire.Reservation
	err := c.Call(ctx, CommandCancelReservation, req, &out)
	return out, err
}

func (c *Client) ListResources(ctx context.Context) (wire.ResourceList, error) {
	var out wire.ResourceList
	err := c.Call(ctx, CommandListResources, wire.Empty{}, &out)
	return out, err
}

func (c *Client) ListRequesters(ctx context.Context) (wire.RequesterList, error) {
	var out wire.RequesterList
	err := c.Call(ctx, CommandListRequesters, wire.Empty{}, &out)
	return out, err
}

func (c *Client) ListReservations(ctx context.Context) (wire.ReservationList, error) {
	var out wire.ReservationList
	err := c.Call(ctx, CommandListReservations, wire.Empty{}, &out)
	return out, err
}

func (c *Client) ListAvailable(ctx context.Context, req wire.AvailabilityRequest) (wire.ResourceList, error) {
	var out wire.ResourceList
	err := c.Call(ctx, CommandListAvailable, req, &out)
	return out, err
}
