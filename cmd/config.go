package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"marketplace/internal/adapters/in/scenario"
	"marketplace/internal/core/domain/model/fidelity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/menu"
	"marketplace/internal/core/domain/model/platform"
	"marketplace/internal/core/domain/model/profit"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. MARKETPLACE_PROFIT_MARKUP.
const EnvPrefix = "MARKETPLACE"

type DiscountConfig struct {
	General decimal.Decimal `mapstructure:"general"`
	Special decimal.Decimal `mapstructure:"special"`
	Mode    string          `mapstructure:"mode"`
}

type ProfitConfig struct {
	Markup       decimal.Decimal `mapstructure:"markup"`
	ServiceFee   decimal.Decimal `mapstructure:"service_fee"`
	DeliveryCost decimal.Decimal `mapstructure:"delivery_cost"`
	Target       decimal.Decimal `mapstructure:"target"`
}

type JobsConfig struct {
	RotationSchedule string        `mapstructure:"rotation_schedule"`
	ReportSchedule   string        `mapstructure:"report_schedule"`
	ReportWindow     time.Duration `mapstructure:"report_window"`
}

type Config struct {
	LogLevel       string          `mapstructure:"log_level"`
	DeliveryPolicy string          `mapstructure:"delivery_policy"`
	WinProbability float64         `mapstructure:"win_probability"`
	Discount       DiscountConfig  `mapstructure:"discount"`
	Profit         ProfitConfig    `mapstructure:"profit"`
	Jobs           JobsConfig      `mapstructure:"jobs"`
	Scenario       scenario.Config `mapstructure:"scenario"`
}

// SetDefaults registers every key, so environment variables can override
// values that no config file mentions.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("delivery_policy", platform.FastestDelivery.String())
	v.SetDefault("win_probability", fidelity.DefaultWinProbability)

	v.SetDefault("discount.general", menu.DefaultGeneralRate.String())
	v.SetDefault("discount.special", menu.DefaultSpecialRate.String())
	v.SetDefault("discount.mode", menu.Multiplicative.String())

	v.SetDefault("profit.markup", "0.1")
	v.SetDefault("profit.service_fee", "2")
	v.SetDefault("profit.delivery_cost", "5")
	v.SetDefault("profit.target", "0")

	v.SetDefault("jobs.rotation_schedule", "0 0 0 * * MON")
	v.SetDefault("jobs.report_schedule", "0 */5 * * * *")
	v.SetDefault("jobs.report_window", "24h")

	v.SetDefault("scenario.seed", 42)
	v.SetDefault("scenario.restaurants", 5)
	v.SetDefault("scenario.customers", 40)
	v.SetDefault("scenario.couriers", 10)
	v.SetDefault("scenario.orders", 200)
	v.SetDefault("scenario.max_items", 4)
	v.SetDefault("scenario.area", 100)
	v.SetDefault("scenario.refuse_probability", 0.2)
	v.SetDefault("scenario.patient_rounds", 3)
}

// LoadConfig reads the configuration from, in increasing precedence, the
// defaults, the config file (if any), a .env file in the working directory
// and the environment.
func LoadConfig(v *viper.Viper, cfgFile string) (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env file: %w", err)
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			dc.DecodeHook,
			StringToDecimalHookFunc(),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return config, config.Validate()
}

// StringToDecimalHookFunc decodes strings and numbers into decimal.Decimal.
func StringToDecimalHookFunc() mapstructure.DecodeHookFuncType {
	target := reflect.TypeOf(decimal.Decimal{})
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != target {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return decimal.NewFromString(strings.TrimSpace(v))
		case float64:
			return decimal.NewFromFloat(v), nil
		case float32:
			return decimal.NewFromFloat32(v), nil
		case int:
			return decimal.NewFromInt(int64(v)), nil
		case int64:
			return decimal.NewFromInt(v), nil
		}
		return data, nil
	}
}

// Validate parses every enumerated value once, so start-up fails early.
func (c Config) Validate() error {
	_, levelErr := c.Level()
	_, policyErr := platform.ParseDeliveryPolicy(c.DeliveryPolicy)
	_, ratesErr := c.DiscountRates()
	_, lotteryErr := fidelity.NewLotteryCardWithProbability(c.WinProbability)
	var windowErr error
	if c.Jobs.ReportWindow <= 0 {
		windowErr = fmt.Errorf("report window must be positive, got %s", c.Jobs.ReportWindow)
	}
	return errors.Join(levelErr, policyErr, ratesErr, lotteryErr, windowErr, c.Scenario.Validate())
}

// Level maps log_level onto a slog level.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func (c Config) Policy() platform.DeliveryPolicy {
	policy, _ := platform.ParseDeliveryPolicy(c.DeliveryPolicy)
	return policy
}

// DiscountRates builds the rates every new restaurant starts with.
func (c Config) DiscountRates() (*menu.DiscountRates, error) {
	mode, err := menu.ParseDiscountMode(c.Discount.Mode)
	if err != nil {
		return nil, err
	}
	return menu.NewDiscountRates(c.Discount.General, c.Discount.Special, mode)
}

func (c Config) ProfitData() profit.Data {
	return profit.NewData(c.Profit.Markup,
		kernel.NewMoney(c.Profit.ServiceFee), kernel.NewMoney(c.Profit.DeliveryCost))
}
