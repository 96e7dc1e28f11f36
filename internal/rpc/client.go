package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/FrederickAlmeida/Reserva-Hotel/internal/wire"
)

// Dial abre uma conexão sem TLS com o servidor de reservas.
func Dial(addr string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	return grpc.NewClient(addr, opts...)
}

type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, in, out any) error {
	return c.cc.Invoke(ctx, fullMethod(method), in, out, grpc.CallContentSubtype(CodecName))
}

func (c *Client) AddResource(ctx context.Context, req wire.AddResourceRequest) (wire.Resource, error) {
	var out wire.Resource
	err := c.invoke(ctx, "AddResource", &req, &out)
	return out, err
}

func (c *Client) AddRequester(ctx context.Context, req wire.AddRequesterRequest) (wire.Requester, error) {
	var out wire.Requester
	err := c.invoke(ctx, "AddRequester", &req, &out)
	return out, err
}

func (c *Client) Book(ctx context.Context, req wire.BookRequest) (wire.Reservation, error) {
	var out wire.Reservation
	err := c.invoke(ctx, "Book", &req, &out)
	return out, err
}

func (c *Client) Cancel(ctx context.Context, req wire.CancelRequest) (wire.Reservation, error) {
	var out wire.Reservation
	err := c.invoke(ctx, "Cancel", &req, &out)
	return out, err
}

func (c *Client) CancelReservation(ctx context.Context, req wire.CancelReservationRequest) (wire.Reservation, error) {
	var out wire.Reservation
	err := c.invoke(ctx, "CancelReservation", &req, &out)
	return out, err
}

func (c *Client) ListResources(ctx context.Context) (wire.ResourceList, error) {
	var out wire.ResourceList
	err := c.invoke(ctx, "ListResources", &wire.Empty{}, &out)
	return out, err
}

func (c *Client) ListRequesters(ctx context.Context) (wire.RequesterList, error) {
	var out wire.RequesterList
	err := c.invoke(ctx, "ListRequesters", &wire.Empty{}, &out)
	return out, err
}

func (c *Client) ListReservations(ctx context.Context) (wire.ReservationList, error) {
	var out wire.ReservationList
	err := c.invoke(ctx, "ListReservations", &wire.Empty{}, &out)
	return out, err
}

func (c *Client) ListAvailable(ctx context.Context, req wire.AvailabilityRequest) (wire.ResourceList, error) {
	var out wire.ResourceList
	err := c.invoke(ctx, "ListAvailable", &req, &out)
	return out, err
}
