package commands

import (
	"context"
	"time"

	"hotelbooking/models"
	"hotelbooking/storage"
)

// BookingCommand is one reversible step of a booking workflow.
type BookingCommand interface {
	Name() string
	Execute(ctx context.Context) error
	Undo(ctx context.Context) error
}

// ReserveRoomsCommand giữ phòng trong kho, Undo trả lại phòng
type ReserveRoomsCommand struct {
	inventory storage.InventoryStore
	hotelID   uint
	count     int
	Hotel     *models.Hotel
}

func NewReserveRoomsCommand(inventory storage.InventoryStore, hotelID uint, count int) *ReserveRoomsCommand {
	return &ReserveRoomsCommand{
		inventory: inventory,
		hotelID:   hotelID,
		count:     count,
	}
}

func (c *ReserveRoomsCommand) Name() string { return "reserve rooms" }

func (c *ReserveRoomsCommand) Execute(ctx context.Context) error {
	hotel, err := c.inventory.Reserve(ctx, c.hotelID, c.count)
	if err != nil {
		return err
	}
	c.Hotel = hotel
	return nil
}

func (c *ReserveRoomsCommand) Undo(ctx context.Context) error {
	_, err := c.inventory.Release(ctx, c.hotelID, c.count)
	return err
}

// CreateBookingCommand lưu booking mới, Undo xóa booking đó
type CreateBookingCommand struct {
	bookings storage.BookingStore
	booking  *models.Booking
}

func NewCreateBookingCommand(bookings storage.BookingStore, booking *models.Booking) *CreateBookingCommand {
	return &CreateBookingCommand{
		bookings: bookings,
		booking:  booking,
	}
}

func (c *CreateBookingCommand) Name() string { return "create booking" }

func (c *CreateBookingCommand) Execute(ctx context.Context) error {
	return c.bookings.Create(ctx, c.booking)
}

func (c *CreateBookingCommand) Undo(ctx context.Context) error {
	if c.booking.ID == 0 {
		return nil
	}
	_, err := c.bookings.Delete(ctx, c.booking.ID)
	return err
}

// FuncCommand adapts a pair of functions. A nil undo means the step has
// nothing to compensate.
type FuncCommand struct {
	name string
	do   func(ctx context.Context) error
	undo func(ctx context.Context) error
}

func Func(name string, do, undo func(ctx context.Context) error) *FuncCommand {
	return &FuncCommand{name: name, do: do, undo: undo}
}

func (c *FuncCommand) Name() string { return c.name }

func (c *FuncCommand) Execute(ctx context.Context) error { return c.do(ctx) }

func (c *FuncCommand) Undo(ctx context.Context) error {
	if c.undo == nil {
		return nil
	}
	return c.undo(ctx)
}

// Saga runs commands in order. When one fails, the ones already executed are
// undone in reverse order and the original error is returned.
type Saga struct {
	// UndoTimeout bounds the compensation. Undo runs on a context detached
	// from the request so an expired request still gets compensated.
	UndoTimeout time.Duration
	OnUndoError func(cmd BookingCommand, err error)
}

func (s Saga) Run(ctx context.Context, cmds ...BookingCommand) error {
	for i, cmd := range cmds {
		if err := cmd.Execute(ctx); err != nil {
			s.compensate(ctx, cmds[:i])
			return err
		}
	}
	return nil
}

func (s Saga) compensate(ctx context.Context, done []BookingCommand) {
	if len(done) == 0 {
		return
	}
	timeout := s.UndoTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	undoCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	for i := len(done) - 1; i >= 0; i-- {
		if err := done[i].Undo(undoCtx); err != nil && s.OnUndoError != nil {
			s.OnUndoError(done[i], err)
		}
	}
}
