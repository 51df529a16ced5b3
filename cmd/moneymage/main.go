package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"moneymage/internal/backend"
	"moneymage/internal/cli"
	"moneymage/internal/core"
	"moneymage/internal/log"
	"moneymage/internal/match"
	"moneymage/internal/services"
	"moneymage/internal/sheets"
)

func main() {
	yearFlag := flag.Int("year", 0, "budget year to review (default: configured year)")
	importFlag := flag.String("import", "", "JSON lines file of transactions to import")
	recurringFlag := flag.String("recurring", "", "JSON file of recurring planned entries")
	flag.Parse()

	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	year := cfg.Year
	if *yearFlag != 0 {
		year = *yearFlag
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Backend configuration invalid", log.FieldError, err.Error())
		os.Exit(1)
	}
	if err := backendCfg.Validate(); err != nil {
		logger.Error("Backend configuration invalid", log.FieldError, err.Error())
		os.Exit(1)
	}

	ctx := context.Background()
	result, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend",
			log.FieldBackend, backendCfg.Type.String(),
			log.FieldError, err.Error())
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	var incoming []core.Transaction
	if *importFlag != "" {
		incoming, err = readImportFile(*importFlag, logger)
		if err != nil {
			logger.Error("Failed to read import file",
				"path", *importFlag,
				log.FieldError, err.Error())
			os.Exit(1)
		}
		logger.Info("Import file loaded", "path", *importFlag, log.FieldBatchSize, len(incoming))
	}

	var recurrences []services.Recurrence
	if *recurringFlag != "" {
		recurrences, err = readRecurringFile(*recurringFlag)
		if err != nil {
			logger.Error("Failed to read recurring entries",
				"path", *recurringFlag,
				log.FieldError, err.Error())
			os.Exit(1)
		}
	}

	matcher := match.New(nil, cfg.MatchThreshold)
	svc := services.NewReviewService(result.Backend, matcher, logger.WithComponent(log.ComponentReview))

	review, err := svc.Run(ctx, incoming, services.Options{
		Year:              year,
		Today:             core.Date{Time: nowUTC()},
		HorizonMonths:     cfg.HorizonMonths,
		ForecastYears:     cfg.ForecastYears,
		LoanToleranceDays: cfg.LoanToleranceDays,
		Recurrences:       recurrences,
	})
	if err != nil {
		logger.Error("Review failed", log.FieldYear, year, log.FieldError, err.Error())
		os.Exit(1)
	}

	printSummary(review)
}

// nowUTC returns today's date at UTC midnight.
func nowUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// readImportFile parses a file of JSON lines, one transaction record per
// line. Blank lines are skipped; a malformed line aborts the run so a bad
// export is caught before it pollutes the ledger.
func readImportFile(path string, logger *log.Logger) ([]core.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []sheets.TransactionRecord
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec sheets.TransactionRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	txns, report := sheets.ToCoreBatch(records)
	for _, recErr := range report.Errors {
		logger.Warn("Skipping malformed record", log.FieldError, recErr.Error())
	}
	return txns, nil
}

// recurringRecord is the wire form of one recurring planned entry.
type recurringRecord struct {
	Category    string `json:"category"`
	Start       string `json:"start"` // 2006-01-02
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description"`
	Note        string `json:"note,omitempty"`
	Frequency   string `json:"frequency"` // monthly, quarterly, yearly
}

func readRecurringFile(path string) ([]services.Recurrence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []recurringRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	out := make([]services.Recurrence, 0, len(records))
	for i, r := range records {
		start, err := core.ParseDate(r.Start)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%q): %w", i, r.Description, err)
		}
		out = append(out, services.Recurrence{
			Category:    r.Category,
			Start:       start,
			Amount:      core.Money{Cents: r.AmountCents},
			Description: r.Description,
			Note:        r.Note,
			Frequency:   services.Frequency(r.Frequency),
		})
	}
	return out, nil
}

func printSummary(res *services.Result) {
	fmt.Printf("Budget review %d\n", res.Year)
	fmt.Printf("  imported %d, duplicates %d\n", res.Imported, res.Duplicates)
	fmt.Println()

	for _, r := range res.Reviews {
		var actual, planned core.Money
		for _, b := range r.Buckets {
			actual = actual.Add(b.Actual)
			planned = planned.Add(b.Planned)
		}
		fmt.Printf("  %-24s %-10s actual %10s  planned %10s  diff %10s\n",
			r.Category, r.Type, actual, planned, actual.Sub(planned))
	}

	if len(res.OutOfBalance) > 0 {
		fmt.Println()
		fmt.Println("Out of balance:")
		names := make([]string, 0, len(res.OutOfBalance))
		for name := range res.OutOfBalance {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-24s %10s\n", name, res.OutOfBalance[name])
		}
	}

	fmt.Println()
	fmt.Printf("Starting balance %s, projected final balance %s (%d events)\n",
		res.StartingBalance, res.FinalBalance(), len(res.Projection))

	if !res.Report.Empty() {
		fmt.Println()
		for _, err := range res.Report.Errors {
			fmt.Printf("  error: %v\n", err)
		}
		for _, warn := range res.Report.Warnings {
			fmt.Printf("  warning: %v\n", warn)
		}
	}
}
