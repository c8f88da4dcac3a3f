package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/iwvelando/rent-or-buy/internal/config"
	"github.com/iwvelando/rent-or-buy/internal/forecast"
	"github.com/iwvelando/rent-or-buy/internal/logging"
	"github.com/iwvelando/rent-or-buy/internal/optimizer"
	"github.com/iwvelando/rent-or-buy/pkg/constants"
	"github.com/iwvelando/rent-or-buy/pkg/output"
	"github.com/iwvelando/rent-or-buy/pkg/validation"
	"go.uber.org/zap"
)

// options are the resolved command line settings.
type options struct {
	configLocation string
	outputFormat   string
	logLevel       string
	chartFile      string
	schedule       bool
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	chartFile := flag.String("chart", "", "write a PNG chart of the net-worth trajectories to this path")
	schedule := flag.Bool("schedule", false, "include the amortization schedule in pretty output")
	flag.Parse()

	opts := options{
		configLocation: *configLocation,
		outputFormat:   *outputFormatFlag,
		logLevel:       *logLevel,
		chartFile:      *chartFile,
		schedule:       *schedule,
	}

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(opts.configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", opts.configLocation, err)
		if opts.configLocation == constants.DefaultConfigFile {
			fmt.Fprintf(os.Stderr, "hint: start from %s\n", constants.ExampleConfigFile)
		}
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, opts.logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(logger, conf, opts, time.Now()); err != nil {
		logger.Fatal("failed to produce forecast",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

// run computes every active scenario and writes the requested output.
func run(logger *zap.Logger, conf *config.Configuration, opts options, now time.Time) error {
	// CLI overrides take precedence over config
	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	chartFile := conf.Output.ChartFile
	if opts.chartFile != "" {
		chartFile = opts.chartFile
	}

	// Validate configuration and display any warnings
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	runner, err := optimizer.NewRunner(logger, conf)
	if err != nil {
		return fmt.Errorf("failed to initialize optimizer: %w", err)
	}
	optimizations, err := runner.Run()
	if err != nil {
		return fmt.Errorf("failed to run break-even search: %w", err)
	}

	results, err := forecast.GetForecastWithFixedTime(logger, *conf, now)
	if err != nil {
		return fmt.Errorf("failed to compute forecast: %w", err)
	}
	optimizations.Apply(results)

	if chartFile != "" {
		chart, err := output.NetWorthChart(results)
		if err != nil {
			return fmt.Errorf("failed to render chart: %w", err)
		}
		if err := os.WriteFile(chartFile, chart, 0644); err != nil {
			return fmt.Errorf("failed to write chart to %s: %w", chartFile, err)
		}
		logger.Info("wrote net-worth chart",
			zap.String("op", "main"),
			zap.String("path", chartFile),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results, output.Options{
			CurrencySymbol: conf.Output.CurrencySymbol,
			Schedule:       opts.schedule || conf.Output.Schedule,
		})
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	case constants.OutputFormatJSON:
		return output.JSONFormat(results)
	}
	return nil
}
