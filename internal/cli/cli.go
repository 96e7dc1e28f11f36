// Package cli implementa os subcomandos comuns aos clientes gRPC e MQ.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/FrederickAlmeida/Reserva-Hotel/internal/wire"
)

// BookingClient é satisfeito por *rpc.Client e *mq.Client.
type BookingClient interface {
	AddResource(ctx context.Context, req wire.AddResourceRequest) (wire.Resource, error)
	AddRequester(ctx context.Context, req wire.AddRequesterRequest) (wire.Requester, error)
	Book(ctx context.Context, req wire.BookRequest) (wire.Reservation, error)
	Cancel(ctx context.Context, req wire.CancelRequest) (wire.Reservation, error)
	CancelReservation(ctx context.Context, req wire.CancelReservationRequest) (wire.Reservation, error)
	ListResources(ctx context.Context) (wire.ResourceList, error)
	ListRequesters(ctx context.Context) (wire.RequesterList, error)
	ListReservations(ctx context.Context) (wire.ReservationList, error)
	ListAvailable(ctx context.Context, req wire.AvailabilityRequest) (wire.ResourceList, error)
}

const Usage = "[add-room|add-customer|book|cancel|cancel-id|rooms|customers|reservations|available] [flags]"

var ErrUsage = errors.New("usage")

// Run executa o subcomando args[0] e escreve o resultado em out.
func Run(ctx context.Context, client BookingClient, args []string, out io.Writer) error {
	if len(args) == 0 {
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "add-room":
		return addRoom(ctx, client, rest, out)
	case "add-customer":
		return addCustomer(ctx, client, rest, out)
	case "book":
		return book(ctx, client, rest, out)
	case "cancel":
		return cancel(ctx, client, rest, out)
	case "cancel-id":
		return cancelID(ctx, client, rest, out)
	case "rooms":
		list, err := client.ListResources(ctx)
		if err != nil {
			return fmt.Errorf("ListResources error: %w", err)
		}
		printResources(out, list)
		return nil
	case "customers":
		list, err := client.ListRequesters(ctx)
		if err != nil {
			return fmt.Errorf("ListRequesters error: %w", err)
		}
		for _, c := range list.Requesters {
			fmt.Fprintf(out, "Cliente %d: %s\n", c.ID, c.Name)
		}
		return nil
	case "reservations":
		list, err := client.ListReservations(ctx)
		if err != nil {
			return fmt.Errorf("ListReservations error: %w", err)
		}
		if len(list.Reservations) == 0 {
			fmt.Fprintln(out, "(nenhuma reserva)")
		}
		for _, r := range list.Reservations {
			printReservation(out, "Reserva", r)
		}
		return nil
	case "available":
		return available(ctx, client, rest, out)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func addRoom(ctx context.Context, client BookingClient, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("add-room", flag.ContinueOnError)
	id := fs.Int("id", 0, "room number")
	kind := fs.String("kind", "", "room kind (single, double, suite or 1-3)")
	price := fs.Float64("price", 0, "nightly price")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 || *kind == "" {
		return errors.New("id and kind are required")
	}

	res, err := client.AddResource(ctx, wire.AddResourceRequest{ID: *id, Kind: *kind, Price: *price})
	if err != nil {
		return fmt.Errorf("AddResource error: %w", err)
	}
	fmt.Fprintf(out, "Quarto %d cadastrado (%s, %.2f)\n", res.ID, res.Kind, res.Price)
	return nil
}

func addCustomer(ctx context.Context, client BookingClient, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("add-customer", flag.ContinueOnError)
	id := fs.Int("id", 0, "customer id")
	name := fs.String("name", "", "customer name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 || *name == "" {
		return errors.New("id and name are required")
	}

	c, err := client.AddRequester(ctx, wire.AddRequesterRequest{ID: *id, Name: *name})
	if err != nil {
		return fmt.Errorf("AddRequester error: %w", err)
	}
	fmt.Fprintf(out, "Cliente %d cadastrado: %s\n", c.ID, c.Name)
	return nil
}

func book(ctx context.Context, client BookingClient, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("book", flag.ContinueOnError)
	room := fs.Int("room", 0, "room number")
	customer := fs.Int("customer", 0, "customer id")
	start := fs.String("start", "", "check-in date (YYYY-MM-DD)")
	end := fs.String("end", "", "check-out date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *room == 0 || *customer == 0 || *start == "" || *end == "" {
		return errors.New("room, customer, start and end are required")
	}

	r, err := client.Book(ctx, wire.BookRequest{ResourceID: *room, RequesterID: *customer, Start: *start, End: *end})
	if err != nil {
		return fmt.Errorf("Book error: %w", err)
	}
	printReservation(out, "Reserva criada", r)
	return nil
}

func cancel(ctx context.Context, client BookingClient, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("cancel", flag.ContinueOnError)
	room := fs.Int("room", 0, "room number")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *room == 0 {
		return errors.New("room is required")
	}

	r, err := client.Cancel(ctx, wire.CancelRequest{ResourceID: *room})
	if err != nil {
		return fmt.Errorf("Cancel error: %w", err)
	}
	printReservation(out, "Reserva cancelada", r)
	return nil
}

func cancelID(ctx context.Context, client BookingClient, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("cancel-id", flag.ContinueOnError)
	id := fs.String("id", "", "reservation id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("id is required")
	}

	r, err := client.CancelReservation(ctx, wire.CancelReservationRequest{ReservationID: *id})
	if err != nil {
		return fmt.Errorf("CancelReservation error: %w", err)
	}
	printReservation(out, "Reserva cancelada", r)
	return nil
}

func available(ctx context.Context, client BookingClient, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("available", flag.ContinueOnError)
	start := fs.String("start", "", "check-in date (YYYY-MM-DD)")
	end := fs.String("end", "", "check-out date (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *start == "" || *end == "" {
		return errors.New("start and end are required")
	}

	list, err := client.ListAvailable(ctx, wire.AvailabilityRequest{Start: *start, End: *end})
	if err != nil {
		return fmt.Errorf("ListAvailable error: %w", err)
	}
	fmt.Fprintf(out, "Quartos livres de %s a %s:\n", *start, *end)
	if len(list.Resources) == 0 {
		fmt.Fprintln(out, "  (nenhum quarto livre)")
	}
	printResources(out, list)
	return nil
}

func printResources(out io.Writer, list wire.ResourceList) {
	for _, r := range list.Resources {
		state := "livre"
		if !r.Available {
			state = "reservado"
		}
		fmt.Fprintf(out, "- Quarto %d | %s | %.2f | %s\n", r.ID, r.Kind, r.Price, state)
	}
}

func printReservation(out io.Writer, label string, r wire.Reservation) {
	fmt.Fprintf(out, "%s. ID: %s | Quarto: %d | Cliente: %d | %s a %s\n",
		label, r.ID, r.ResourceID, r.RequesterID, r.Start, r.End)
}
