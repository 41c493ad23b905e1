package ports

import (
	"context"

	"marketplace/internal/core/domain/model/platform"
)

// SettingsRepository holds the single platform.Settings instance.
type SettingsRepository interface {
	Get(ctx context.Context) (*platform.Settings, error)
	Update(ctx context.Context, settings *platform.Settings) error
}
