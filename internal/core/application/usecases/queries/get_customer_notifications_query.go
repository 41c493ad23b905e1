package queries

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetCustomerNotificationsQueryIsNotConstructed = errors.New(
	"GetCustomerNotificationsQuery must be created via NewGetCustomerNotificationsQuery constructor",
)

// GetCustomerNotificationsQuery reads a customer's notification log, oldest first.
type GetCustomerNotificationsQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCustomerNotificationsQuery(customerID kernel.UUID) (GetCustomerNotificationsQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetCustomerNotificationsQuery{}, err
	}
	return GetCustomerNotificationsQuery{customerID: customerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCustomerNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomerNotificationsQueryIsNotConstructed)
}

func (q GetCustomerNotificationsQuery) CustomerID() kernel.UUID {
	return q.customerID
}

type GetCustomerNotificationsQueryResponse struct {
	Consent       bool
	Notifications []string
}

type GetCustomerNotificationsQueryHandler struct {
	uowFactory ReadUoWFactory
}

func NewGetCustomerNotificationsQueryHandler(uowFactory ReadUoWFactory) GetCustomerNotificationsQueryHandler {
	return GetCustomerNotificationsQueryHandler{uowFactory: uowFactory}
}

func (h GetCustomerNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerNotificationsQuery,
) (GetCustomerNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCustomerNotificationsQueryResponse{}, err
	}

	var response GetCustomerNotificationsQueryResponse
	err := read(ctx, h.uowFactory, func(uow ReadUoW) error {
		c, err := uow.CustomerRepository().Get(ctx, query.CustomerID())
		if err != nil {
			return err
		}
		response = GetCustomerNotificationsQueryResponse{
			Consent:       c.HasConsent(),
			Notifications: c.Notifications(),
		}
		return nil
	})
	return response, err
}
