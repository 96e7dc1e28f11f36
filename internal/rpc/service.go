package rpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/FrederickAlmeida/Reserva-Hotel/internal/wire"
)

const ServiceName = "booking.ReservationService"

type ReservationServiceServer interface {
	AddResource(context.Context, *wire.AddResourceRequest) (*wire.Resource, error)
	AddRequester(context.Context, *wire.AddRequesterRequest) (*wire.Requester, error)
	Book(context.Context, *wire.BookRequest) (*wire.Reservation, error)
	Cancel(context.Context, *wire.CancelRequest) (*wire.Reservation, error)
	CancelReservation(context.Context, *wire.CancelReservationRequest) (*wire.Reservation, error)
	ListResources(context.Context, *wire.Empty) (*wire.ResourceList, error)
	ListRequesters(context.Context, *wire.Empty) (*wire.RequesterList, error)
	ListReservations(context.Context, *wire.Empty) (*wire.ReservationList, error)
	ListAvailable(context.Context, *wire.AvailabilityRequest) (*wire.ResourceList, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ReservationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AddResource", Handler: unary("AddResource", ReservationServiceServer.AddResource)},
		{MethodName: "AddRequester", Handler: unary("AddRequester", ReservationServiceServer.AddRequester)},
		{MethodName: "Book", Handler: unary("Book", ReservationServiceServer.Book)},
		{MethodName: "Cancel", Handler: unary("Cancel", ReservationServiceServer.Cancel)},
		{MethodName: "CancelReservation", Handler: unary("CancelReservation", ReservationServiceServer.CancelReservation)},
		{MethodName: "ListResources", Handler: unary("ListResources", ReservationServiceServer.ListResources)},
		{MethodName: "ListRequesters", Handler: unary("ListRequesters", ReservationServiceServer.ListRequesters)},
		{MethodName: "ListReservations", Handler: unary("ListReservations", ReservationServiceServer.ListReservations)},
		{MethodName: "ListAvailable", Handler: unary("ListAvailable", ReservationServiceServer.ListAvailable)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "booking",
}

func RegisterReservationServiceServer(s grpc.ServiceRegistrar, srv ReservationServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

func unary[Req, Resp any](method string, call func(ReservationServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ReservationServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ReservationServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
