package commands

import (
	"context"

	"marketplace/internal/core/domain/model/fidelity"
)

// CardIssuer creates a new card of the requested kind.
type CardIssuer func(kind fidelity.Kind) fidelity.Card

type SetFidelityCardCommandHandler struct {
	uowFactory UoWFactory
	issue      CardIssuer
}

// NewSetFidelityCardCommandHandler creates the handler. A nil issuer uses fidelity.New.
func NewSetFidelityCardCommandHandler(uowFactory UoWFactory, issue CardIssuer) SetFidelityCardCommandHandler {
	if issue == nil {
		issue = fidelity.New
	}
	return SetFidelityCardCommandHandler{uowFactory: uowFactory, issue: issue}
}

func (h SetFidelityCardCommandHandler) Handle(ctx context.Context, cmd SetFidelityCardCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customerRepo := uow.CustomerRepository()
	c, err := customerRepo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	if err = c.ReplaceCard(h.issue(cmd.Kind())); err != nil {
		return err
	}

	if err = customerRepo.Update(ctx, c); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
