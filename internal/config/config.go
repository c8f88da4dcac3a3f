// Package config defines the data structures related to configuration and
// includes functions for loading, validating and resolving the scenarios.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/rent-or-buy/pkg/constants"
	"github.com/spf13/viper"
)

// DateTimeLayout is the format expected in config files and is also the output
// date format.
const DateTimeLayout = constants.DateTimeLayout

// Configuration holds all configuration for rent-or-buy.
type Configuration struct {
	StartDate string `yaml:"startDate,omitempty"`
	Common    Common
	Scenarios []Scenario
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format         string `yaml:"format,omitempty"` // pretty, csv, json
	CurrencySymbol string `yaml:"currencySymbol,omitempty"`
	ChartFile      string `yaml:"chartFile,omitempty"` // PNG of the net-worth trajectories
	Schedule       bool   `yaml:"schedule,omitempty"`  // include the amortization schedule
}

// Common holds the parameters shared by all scenarios.
type Common struct {
	HorizonYears  int
	HorizonMonths int
	Property      Property
	Loan          Loan
	Rent          Rent
	Investment    Investment
}

// Scenario holds the overrides for one comparison. Any value left unset
// falls back to Common.
type Scenario struct {
	Name              string
	Active            bool
	HorizonYears      int
	HorizonMonths     int
	Property          Property
	Loan              Loan
	Rent              Rent
	Investment        Investment
	CompareStrategies bool
	Optimizer         *OptimizerConfig
}

// Property holds the purchase section; rates are annual fractions.
type Property struct {
	PurchasePrice     *float64
	DownPayment       *float64
	RefurbishCost     *float64
	NebenkostRate     *float64
	MaintenanceRate   *float64
	PropertyTaxRate   *float64
	AnnualPropertyTax *float64
	AppreciationRate  *float64
}

// Rent holds the rent section.
type Rent struct {
	InitialMonthlyRent *float64
	RentInflationRate  *float64
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()

	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	for i := range configuration.Scenarios {
		if configuration.Scenarios[i].Optimizer != nil {
			configuration.Scenarios[i].Optimizer.Normalize()
		}
	}

	return &configuration, nil
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Parameter errors are reported when a scenario is resolved.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if c.StartDate != "" {
		if _, err := parseMonth(c.StartDate); err != nil {
			warnings = append(warnings, fmt.Sprintf("start date %q is invalid and will be ignored", c.StartDate))
		}
	}

	active := 0
	seen := make(map[string]bool)
	for _, scenario := range c.Scenarios {
		name := strings.TrimSpace(scenario.Name)
		if name == "" {
			warnings = append(warnings, "scenario without a name")
		} else if seen[name] {
			warnings = append(warnings, fmt.Sprintf("duplicate scenario name %q", name))
		}
		seen[name] = true

		if !scenario.Active {
			continue
		}
		active++

		horizon := c.HorizonMonths(scenario)
		if horizon <= 0 {
			warnings = append(warnings, fmt.Sprintf("scenario %q has no horizon", scenario.Name))
			continue
		}
		property := c.propertyFor(scenario)
		cash := property.PurchasePrice > 0 && property.CashPurchase()
		if term := c.loanFor(scenario).termMonths(); term > horizon && !cash {
			warnings = append(warnings, fmt.Sprintf(
				"scenario %q ends after %d months, before the %d-month loan is paid off", scenario.Name, horizon, term))
		}

		investment := c.investmentFor(scenario)
		if scenario.CompareStrategies && investment.Strategy != "" {
			warnings = append(warnings, fmt.Sprintf(
				"scenario %q compares strategies, the configured strategy %q only applies to the main projection",
				scenario.Name, investment.Strategy))
		}
	}

	if len(c.Scenarios) > 0 && active == 0 {
		warnings = append(warnings, "no active scenarios")
	}

	return warnings
}
