// Package constants provides shared constants for the rent-or-buy application.
package constants

// DateTimeLayout is the format expected in config files and is also the output
// date format.
const DateTimeLayout = "2006-01"

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// DecimalPlaces is the number of decimal places of the smallest currency unit
	DecimalPlaces = 2

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// MaxTermMonths bounds the loan term the solver will derive (100 years)
	MaxTermMonths = 1200

	// MaxHorizonMonths bounds the projection horizon (100 years)
	MaxHorizonMonths = 1200

	// HalfCent is the residual balance treated as paid off when solving for a term
	HalfCent = 0.005
)

// Allocation strategy constants; the renter's starting capital is split
// between a market account and a savings account.
const (
	// SavingsRateSpread is subtracted from the loan rate to model the savings rate
	SavingsRateSpread = 0.02

	// ConservativeSavingsRateCap caps the savings rate of the conservative strategy
	ConservativeSavingsRateCap = 0.01

	// BalancedSavingsShare is the savings share of the balanced strategy
	BalancedSavingsShare = 3.0 / 4.0

	// ConservativeSavingsShare is the savings share of the conservative strategy
	ConservativeSavingsShare = 7.0 / 8.0
)

// Payment curve defaults mirror the usual mortgage term range.
const (
	DefaultCurveMinYears = 10
	DefaultCurveMaxYears = 40
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (256 KB)
	DefaultMaxBodySizeBytes int64 = 256 * 1024

	// DefaultCacheTTLSeconds is how long cached projections stay valid
	DefaultCacheTTLSeconds = 600

	// DefaultHistoryLimit is the number of runs listed by default
	DefaultHistoryLimit = 50
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)
