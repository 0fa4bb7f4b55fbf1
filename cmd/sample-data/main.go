package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/okian/cohort/internal/domain/aggregate"
	"github.com/okian/cohort/internal/domain/participant"
	"github.com/okian/cohort/internal/sampledata"
	"github.com/okian/cohort/pkg/logger"
)

const fileMode = 0o644

func main() {
	defaults := sampledata.DefaultConfig()
	var (
		out          = flag.String("out", "participants.csv", "Output CSV file (- for stdout)")
		participants = flag.Int("participants", defaults.Participants, "Number of participants to generate")
		workers      = flag.Int("workers", runtime.NumCPU(), "Number of concurrent generators")
		areas        = flag.String("areas", strings.Join(aggregate.DefaultSkillNames(), ","), "Comma-separated skill areas")
		blankRate    = flag.Float64("blank-rate", 0, "Share of categorical cells left blank (0-1)")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	// Logs go to stderr so "-out -" can stream the file.
	if err := logger.Init(logger.WithOutput(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := sampledata.Config{
		Participants: *participants,
		Workers:      *workers,
		SkillAreas:   splitList(*areas),
		BlankRate:    *blankRate,
	}
	records, err := sampledata.Generate(ctx, cfg)
	if err != nil {
		os.Stderr.WriteString("generation failed: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := write(*out, cfg.SkillAreas, records); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	logger.Get().Info(ctx, "wrote sample participants", logger.String("out", *out), logger.Int("rows", len(records)))
}

// write stores records at path, or on stdout for "-".
func write(path string, areas []string, records []participant.Record) error {
	if path == "-" {
		return sampledata.WriteCSV(os.Stdout, areas, records)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fileMode)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := sampledata.WriteCSV(f, areas, records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
