package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/profit"
)

type SetDeliveryPolicyCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewSetDeliveryPolicyCommandHandler(uowFactory UoWFactory, logger *slog.Logger) SetDeliveryPolicyCommandHandler {
	return SetDeliveryPolicyCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "set_delivery_policy_handler"),
	}
}

// Handle fails with errs.ErrObjectNotFound when the issuer is not a registered manager.
func (h SetDeliveryPolicyCommandHandler) Handle(ctx context.Context, cmd SetDeliveryPolicyCommand) error {
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

	if _, err := uow.ManagerRepository().Get(ctx, cmd.ManagerID()); err != nil {
		return err
	}

	settingsRepo := uow.SettingsRepository()
	settings, err := settingsRepo.Get(ctx)
	if err != nil {
		return err
	}

	if err = settings.SetDeliveryPolicy(cmd.Policy()); err != nil {
		return err
	}

	if err = settingsRepo.Update(ctx, settings); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "delivery policy changed", "policy", cmd.Policy().String())
	return nil
}

// RecomputeProfitCommandHandler reads the profit window from the history log,
// solves the chosen field and stores the new profit data and target.
type RecomputeProfitCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
}

func NewRecomputeProfitCommandHandler(uowFactory UoWFactory, logger *slog.Logger) RecomputeProfitCommandHandler {
	return RecomputeProfitCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "recompute_profit_handler"),
	}
}

// Handle returns the new profit data. An empty window fails with profit.ErrEmptyWindow
// and leaves the settings unchanged.
func (h RecomputeProfitCommandHandler) Handle(ctx context.Context, cmd RecomputeProfitCommand) (profit.Data, error) {
	if err := cmd.Validate(); err != nil {
		return profit.Data{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return profit.Data{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.ManagerRepository().Get(ctx, cmd.ManagerID()); err != nil {
		return profit.Data{}, err
	}

	settingsRepo := uow.SettingsRepository()
	settings, err := settingsRepo.Get(ctx)
	if err != nil {
		return profit.Data{}, err
	}

	completed, err := uow.HistoryRepository().GetCompletedBetween(ctx, cmd.From(), cmd.To())
	if err != nil {
		return profit.Data{}, err
	}
	window := make([]profit.Priced, 0, len(completed))
	for _, o := range completed {
		window = append(window, o)
	}

	data, err := profit.NewPolicy(cmd.Policy()).Recompute(settings.ProfitData(), window, cmd.Target())
	if err != nil {
		return profit.Data{}, err
	}

	settings.SetProfitData(data)
	settings.SetTargetProfit(cmd.Target())
	if err = settingsRepo.Update(ctx, settings); err != nil {
		return profit.Data{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return profit.Data{}, err
	}

	h.logger.InfoContext(ctx, "profit data recomputed",
		"policy", cmd.Policy().String(), "window", len(window), "data", data.String())
	return data, nil
}
