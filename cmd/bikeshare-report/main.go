// Command bikeshare-report prints the season and month summaries for a
// selection as JSON, optionally publishing them to AMQP.
//
// With -consume it instead prints every report published to the queue.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"bikeshare/internal/amqp"
	"bikeshare/internal/backend"
	"bikeshare/internal/cli"
	"bikeshare/internal/config"
	"bikeshare/internal/dataset"
	apphttp "bikeshare/internal/http"
	applog "bikeshare/internal/log"
	"bikeshare/internal/metrics"
	"bikeshare/internal/report"
	"bikeshare/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL")).WithComponent(applog.ComponentReport)
	cfg := cli.LoadAndValidateConfig(logger)

	year := flag.Int("year", 0, "calendar year to report (default: first year in the dataset)")
	months := flag.String("month", "", "comma separated months (default: all)")
	publish := flag.Bool("publish", cfg.PublishingEnabled(), "publish the report to AMQP")
	consume := flag.Bool("consume", false, "print reports received from AMQP until interrupted")
	flag.Parse()

	if *consume {
		if err := consumeReports(cfg, logger); err != nil {
			logger.Error("Report consumption failed", applog.FieldError, err)
			os.Exit(1)
		}
		return
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.FetchTimeout+time.Minute)
	defer cancel()

	source := cli.OpenSource(ctx, logger, backendCfg)
	defer source.Close()

	dashboard := services.NewDashboardService(dataset.NewLoader(source.Source, logger).WithTimeout(cfg.FetchTimeout))
	opts, err := dashboard.Options(ctx)
	if err != nil {
		logger.Error("Failed to load dataset", applog.FieldError, err)
		os.Exit(1)
	}

	query := url.Values{}
	if *year != 0 {
		query.Set("year", strconv.Itoa(*year))
	}
	if *months != "" {
		query.Set("month", *months)
	}
	sel, err := apphttp.ParseSelection(query, opts.DefaultYear)
	if err != nil {
		fmt.Fprintln(os.Stderr, "bikeshare-report:", err)
		os.Exit(2)
	}

	rep, err := dashboard.Report(ctx, sel)
	if err != nil {
		logger.Error("Failed to build report", applog.FieldError, err)
		os.Exit(1)
	}
	doc := report.FromReport(rep, time.Now())

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		logger.Error("Failed to write report", applog.FieldError, err)
		os.Exit(1)
	}

	if !*publish {
		return
	}
	if !cfg.PublishingEnabled() {
		logger.Error("Publishing requested but AMQP_URL is not set")
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	msg := amqp.NewReportMessage(source.Source.Backend()+":"+source.Source.Location(), doc)
	err = client.PublishReport(ctx, msg)
	metrics.RecordReportPublished(err)
	if err != nil {
		logger.Error("Failed to publish report", applog.FieldError, err, applog.FieldOperation, applog.OpPublish)
		os.Exit(1)
	}
	logger.Info("Report published",
		applog.FieldYear, doc.Year,
		"exchange", cfg.AMQPExchange,
		"routing_key", cfg.AMQPRoutingKey)
}

func consumeReports(cfg *config.Config, logger *applog.Logger) error {
	if !cfg.PublishingEnabled() {
		return errors.New("AMQP_URL is not set")
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
	if err != nil {
		return fmt.Errorf("initialize AMQP client: %w", err)
	}
	defer client.Close()

	ctx, done := cli.GracefulShutdown(logger, 5*time.Second, nil)

	enc := json.NewEncoder(os.Stdout)
	err = client.ConsumeReports(ctx, func(msg *amqp.ReportMessage) error {
		logger.Info("Report received",
			applog.FieldSource, msg.Source,
			applog.FieldYear, msg.Report.Year)
		return enc.Encode(msg)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	cli.WaitForShutdown(ctx, done)
	return nil
}
