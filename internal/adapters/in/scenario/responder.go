package scenario

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/services"
)

// respond answers the courier's offers one at a time until none is left.
// An accepted order is delivered straight away, which puts the courier back
// on duty for the next offer. A patient courier never refuses.
func (r *Runner) respond(ctx context.Context, c seededCourier, patient bool, counts *tally) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		query, err := queries.NewGetPendingOffersQuery(c.id)
		if err != nil {
			return err
		}
		offers, err := r.useCases.PendingOffers.Handle(ctx, query)
		if err != nil {
			return fmt.Errorf("pending offers of %s: %w", c.id, err)
		}
		if len(offers) == 0 {
			return nil
		}
		offer := offers[0]

		if !patient && c.rng.Float64() < r.config.RefuseProbability {
			refuse, cmdErr := commands.NewRefuseOfferCommand(c.id, offer.OrderID)
			if cmdErr != nil {
				return cmdErr
			}
			if _, err = r.useCases.RefuseOffer.Handle(ctx, refuse); err != nil {
				if errors.Is(err, services.ErrInvalidOfferState) {
					continue
				}
				return fmt.Errorf("refuse order %d: %w", offer.OrderID, err)
			}
			counts.refused.Add(1)
			continue
		}

		accept, err := commands.NewAcceptOfferCommand(c.id, offer.OrderID)
		if err != nil {
			return err
		}
		result, err := r.useCases.AcceptOffer.Handle(ctx, accept)
		if err != nil {
			if errors.Is(err, services.ErrInvalidOfferState) {
				continue
			}
			return fmt.Errorf("accept order %d: %w", offer.OrderID, err)
		}
		counts.accepted.Add(1)
		counts.cascaded.Add(int64(len(result.Cascaded)))

		complete, err := commands.NewCompleteDeliveryCommand(offer.OrderID)
		if err != nil {
			return err
		}
		if err = r.useCases.CompleteDelivery.Handle(ctx, complete); err != nil {
			return fmt.Errorf("complete order %d: %w", offer.OrderID, err)
		}
	}
}
