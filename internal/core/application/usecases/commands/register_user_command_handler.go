package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/account"
	"marketplace/internal/core/domain/model/courier"
	"marketplace/internal/core/domain/model/customer"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/domain/model/restaurant"
	"marketplace/internal/pkg/errs"
)

// RegisterUserCommandHandler creates users of every role. Contact keys are
// reserved in the registry for the lifetime of the user; a failed registration
// releases them again.
//
// Example:
//
//	handler := NewRegisterUserCommandHandler(uowFactory, account.NewRegistry(), nil, logger)
//	cmd, _ := NewRegisterUserCommand(account.CustomerRole, "Ann", account.Contact{Username: "ann"}, home)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("registration failed: %w", err)
//	}
type RegisterUserCommandHandler struct {
	uowFactory UoWFactory
	registry   *account.Registry
	rates      *menu.DiscountRates
	logger     *slog.Logger
}

// NewRegisterUserCommandHandler creates the handler. Every new restaurant starts
// with its own copy of rates; nil means menu.DefaultDiscountRates.
func NewRegisterUserCommandHandler(
	uowFactory UoWFactory,
	registry *account.Registry,
	rates *menu.DiscountRates,
	logger *slog.Logger,
) RegisterUserCommandHandler {
	if rates == nil {
		rates = menu.DefaultDiscountRates()
	}
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
		rates:      rates,
		logger:     logger.With("component", "register_user_handler"),
	}
}

func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (err error) {
	if err = cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = h.registry.Reserve(cmd.Contact()); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			h.registry.Release(cmd.Contact())
		}
	}()

	if err = h.add(ctx, uow, cmd); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "user registered",
		"user_id", cmd.UserID().String(), "role", cmd.Role().String(), "username", cmd.Contact().Username)
	return nil
}

func (h RegisterUserCommandHandler) add(ctx context.Context, uow UoW, cmd RegisterUserCommand) error {
	id, name, username := cmd.UserID(), cmd.Name(), cmd.Contact().Username

	switch cmd.Role() {
	case account.CustomerRole:
		c, err := customer.NewCustomer(id, name, username, cmd.Location())
		if err != nil {
			return err
		}
		return uow.CustomerRepository().Add(ctx, c)

	case account.RestaurantRole:
		rates, err := menu.NewDiscountRates(h.rates.General(), h.rates.Special(), h.rates.Mode())
		if err != nil {
			return err
		}
		r, err := restaurant.NewRestaurant(id, name, username, cmd.Location(), rates)
		if err != nil {
			return err
		}
		return uow.RestaurantRepository().Add(ctx, r)

	case account.CourierRole:
		c, err := courier.NewCourier(id, name, username, cmd.Location())
		if err != nil {
			return err
		}
		return uow.CourierRepository().Add(ctx, c)

	case account.ManagerRole:
		m, err := account.NewManager(id, name, username)
		if err != nil {
			return err
		}
		return uow.ManagerRepository().Add(ctx, m)

	case account.UnknownRole:
	}
	return errs.NewValueIsInvalidError("role")
}
