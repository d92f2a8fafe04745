package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"trebuchet/config"
	"trebuchet/logger"
	"trebuchet/processor"
	"trebuchet/reader"
	"trebuchet/writer"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// run decodes stdin to stdout and returns the process exit code: 0 once the
// tally is printed, 1 on any configuration, input or digit-less line error.
func run(args []string, stdin io.Reader, stdout io.Writer) int {
	log := logger.GetLogger()

	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Error loading .env file")
	}

	flags := flag.NewFlagSet("trebuchet", flag.ContinueOnError)
	configPath := flags.String("config", "", "Path to optional YAML configuration file")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	cfg, err := config.Load(config.ResolvePath(*configPath))
	if err != nil {
		log.WithError(err).Error("Failed to load configuration")
		return 1
	}

	if err := log.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.MaxAge); err != nil {
		log.WithError(err).Error("Failed to configure logger")
		return 1
	}
	reports := logger.IsReportLevel(logger.ResolveLevel(cfg.Logging.Level))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.WithEnv("APP_ENV", "LOG_LEVEL").WithFields(logger.Fields{
		"service":     cfg.Trebuchet.Name,
		"version":     cfg.Trebuchet.Version,
		"environment": config.AppEnvironment(),
	}).Info("starting trebuchet")

	if cw := cfg.Metrics.CloudWatch; cw.Enabled {
		logger.InitCloudWatch(ctx, logger.CloudWatchOptions{
			Region:          cw.Region,
			Namespace:       cw.Namespace,
			Dashboard:       cw.Dashboard,
			AccessKeyID:     cw.AccessKeyID,
			SecretAccessKey: cw.SecretAccessKey,
		})
	}

	if reports {
		logger.StartReport(ctx, log, cfg.Logging.ReportInterval)
	}

	lines := reader.NewLineReader(stdin, cfg.Reader.MaxLineBytes)
	values := writer.NewValueWriter(stdout)
	runner := processor.NewRunner(processor.NewExtractor(cfg.Extractor.SpelledWords), lines, values)

	summary, err := runner.Run(ctx)
	logger.PublishRunMetrics(context.Background(), runner.RunID(), summary.Lines, summary.Digits, summary.Tally, err != nil)
	if err != nil {
		log.WithFields(logger.Fields{
			"run_id":         runner.RunID(),
			"lines_read":     lines.Lines(),
			"values_written": values.Written(),
		}).WithError(err).Error("calibration run failed")
		return 1
	}

	if reports {
		logger.LogReport(context.Background(), log)
	}

	log.WithFields(logger.Fields{
		"run_id":         summary.RunID,
		"lines_read":     lines.Lines(),
		"values_written": values.Written(),
		"tally":          summary.Tally,
	}).Info("trebuchet stopped")
	return 0
}
