package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/cohort/internal/adapters/render"
	app "github.com/okian/cohort/internal/app"
	"github.com/okian/cohort/internal/config"
	"github.com/okian/cohort/pkg/logger"
)

func main() {
	var (
		file   = flag.String("file", "", "Participant CSV file (default: data_file from config)")
		outDir = flag.String("out", "charts", "Directory for chart images")
		format = flag.String("format", "png", "Chart image format: png or svg")
		list   = flag.Bool("list", false, "Print the participant directory instead of charts")
		help   = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, *file, *outDir, *format, *list); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, file, outDir, format string, list bool) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.Init(logger.WithOutput(os.Stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		_ = logger.SetLevelString("info")
	}
	if file != "" {
		cfg.DataFile = file
	}

	svc := app.New(
		app.WithDataFile(cfg.DataFile),
		app.WithReferenceEthnicity(cfg.ReferenceEthnicity),
		app.WithConfidenceAllowList(cfg.ConfidenceAllowList),
		app.WithSkillAreas(cfg.SkillAreas),
	)

	if list {
		return printDirectory(ctx, out, svc)
	}

	f, err := render.ParseFormat(format)
	if err != nil {
		return err
	}
	report, err := svc.Build(ctx)
	if err != nil {
		return err
	}
	printReport(out, report)

	renderer := render.New(render.WithSize(cfg.ChartWidth, cfg.ChartHeight))
	paths, err := renderer.WriteFiles(ctx, outDir, f, report.Charts())
	for _, p := range paths {
		_, _ = fmt.Fprintf(out, "wrote %s\n", p)
	}
	if err != nil {
		return err
	}
	if n := report.Failures(); n > 0 {
		return fmt.Errorf("%d of %d sections failed", n, len(report.Sections))
	}
	return nil
}

func printDirectory(ctx context.Context, out io.Writer, svc *app.Service) error {
	entries, err := svc.Participants(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		_, _ = fmt.Fprintln(out, e.String())
	}
	return nil
}

func printReport(out io.Writer, report *app.Report) {
	_, _ = fmt.Fprintf(out, "%s: %d participants\n", report.Source, report.Rows)
	for _, sec := range report.Sections {
		_, _ = fmt.Fprintf(out, "\n%s\n", sec.Title)
		if sec.Failed() {
			_, _ = fmt.Fprintf(out, "  error (%s): %s\n", sec.ErrorKind, sec.Error)
			continue
		}
		for _, line := range sec.Narrative {
			_, _ = fmt.Fprintf(out, "  %s\n", line)
		}
	}
	_, _ = fmt.Fprintln(out)
}
