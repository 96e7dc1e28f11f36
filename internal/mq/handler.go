package mq

import (
	"context"
	"encoding/json"

	"github.com/FrederickAlmeida/Reserva-Hotel/internal/reservation"
	"github.com/FrederickAlmeida/Reserva-Hotel/internal/wire"
)

// Handler decodifica um envelope, executa o comando e monta a resposta.
// Não conhece AMQP; o Worker cuida da entrega.
type Handler struct {
	svc *wire.Service
}

func NewHandler(svc *wire.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Handle(ctx context.Context, body []byte) Response {
	var env CommandEnvelope
	if err := wire.JSON.Unmarshal(body, &env); err != nil {
		return errorResponse(reservation.CodeInvalidArgument, "invalid command format: "+err.Error())
	}

	switch env.Type {
	case CommandAddResource:
		return dispatch(ctx, env, h.svc.AddResource)
	case CommandAddRequester:
		return dispatch(ctx, env, h.svc.AddRequester)
	case CommandBook:
		return dispatch(ctx, env, h.svc.Book)
	case CommandCancel:
		return dispatch(ctx, env, h.svc.Cancel)
	case CommandCancelReservation:
		return dispatch(ctx, env, h.svc.CancelReservation)
	case CommandListResources:
		return dispatch(ctx, env, h.svc.ListResources)
	case CommandListRequesters:
		return dispatch(ctx, env, h.svc.ListRequesters)
	case CommandListReservations:
		return dispatch(ctx, env, h.svc.ListReservations)
	case CommandListAvailable:
		return dispatch(ctx, env, h.svc.ListAvailable)
	default:
		return errorResponse(reservation.CodeInvalidArgument, "unknown command type: "+string(env.Type))
	}
}

func dispatch[Req, Resp any](ctx context.Context, env CommandEnvelope, fn func(context.Context, Req) (Resp, error)) Response {
	var req Req
	if len(env.Payload) > 0 {
		if err := wire.JSON.Unmarshal(env.Payload, &req); err != nil {
			return errorResponse(reservation.CodeInvalidArgument, "invalid payload: "+err.Error())
		}
	}

	out, err := fn(ctx, req)
	if err != nil {
		return errorResponse(reservation.ErrorKind(err), err.Error())
	}

	payload, err := wire.JSON.Marshal(out)
	if err != nil {
		return errorResponse(reservation.CodeInternal, "failed to marshal response: "+err.Error())
	}

	return Response{
		OK:      true,
		Type:    responseType(env.Type),
		Payload: json.RawMessage(payload),
	}
}

func errorResponse(code, message string) Response {
	return Response{
		OK:    false,
		Error: message,
		Code:  code,
		Type:  "Error",
	}
}
