package commands

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/platform"
	"marketplace/internal/core/domain/model/profit"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrSetDeliveryPolicyCommandIsNotConstructed = errors.New(
		"SetDeliveryPolicyCommand must be created via NewSetDeliveryPolicyCommand constructor",
	)
	ErrRecomputeProfitCommandIsNotConstructed = errors.New(
		"RecomputeProfitCommand must be created via NewRecomputeProfitCommand constructor",
	)
)

// SetDeliveryPolicyCommand selects how couriers are ranked for new dispatches.
// Only managers may issue it.
type SetDeliveryPolicyCommand struct {
	managerID kernel.UUID
	policy    platform.DeliveryPolicy

	guard guard.ConstructorGuard
}

func NewSetDeliveryPolicyCommand(managerID kernel.UUID, policy platform.DeliveryPolicy) (SetDeliveryPolicyCommand, error) {
	if err := errors.Join(managerID.Validate(), policy.Validate()); err != nil {
		return SetDeliveryPolicyCommand{}, err
	}
	return SetDeliveryPolicyCommand{managerID: managerID, policy: policy, guard: guard.NewConstructorGuard()}, nil
}

func (c SetDeliveryPolicyCommand) Validate() error {
	return c.guard.Validate(ErrSetDeliveryPolicyCommandIsNotConstructed)
}

func (c SetDeliveryPolicyCommand) ManagerID() kernel.UUID {
	return c.managerID
}

func (c SetDeliveryPolicyCommand) Policy() platform.DeliveryPolicy {
	return c.policy
}

// RecomputeProfitCommand solves one profit field so that the orders completed in
// [from, to) would have produced the target profit. Only managers may issue it.
//
// Example:
//
//	cmd, err := NewRecomputeProfitCommand(managerID, profit.DeliveryCostOriented,
//	    weekAgo, now, kernel.MoneyFromInt(100))
type RecomputeProfitCommand struct {
	managerID kernel.UUID
	policy    profit.Kind
	from      time.Time
	to        time.Time
	target    kernel.Money

	guard guard.ConstructorGuard
}

func NewRecomputeProfitCommand(
	managerID kernel.UUID,
	policy profit.Kind,
	from time.Time,
	to time.Time,
	target kernel.Money,
) (RecomputeProfitCommand, error) {
	var windowErr, policyErr error
	if !from.Before(to) {
		windowErr = errs.NewValueIsInvalidErrorWithCause("profit window", fmt.Errorf("%s is not before %s", from, to))
	}
	if policy < profit.DeliveryCostOriented || policy > profit.MarkupPercentageOriented {
		policyErr = errs.NewValueIsInvalidErrorWithCause("profit policy", fmt.Errorf("%d is not a policy", policy))
	}
	if err := errors.Join(managerID.Validate(), policyErr, windowErr); err != nil {
		return RecomputeProfitCommand{}, err
	}

	return RecomputeProfitCommand{
		managerID: managerID,
		policy:    policy,
		from:      from,
		to:        to,
		target:    target,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RecomputeProfitCommand) Validate() error {
	return c.guard.Validate(ErrRecomputeProfitCommandIsNotConstructed)
}

func (c RecomputeProfitCommand) ManagerID() kernel.UUID {
	return c.managerID
}

func (c RecomputeProfitCommand) Policy() profit.Kind {
	return c.policy
}

func (c RecomputeProfitCommand) From() time.Time {
	return c.from
}

func (c RecomputeProfitCommand) To() time.Time {
	return c.to
}

func (c RecomputeProfitCommand) Target() kernel.Money {
	return c.target
}
