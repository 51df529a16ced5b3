// Package google implements the workbook backend on the Google Sheets API.
// The spreadsheet mirrors the budget workbook layout: a Categories sheet
// with one row per category, one sheet per category holding its planned
// entries, a year-prefixed Expenses sheet for the ledger, a Balances sheet
// and an AutoCategories sheet with the categorization rules.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"moneymage/internal/cache"
	"moneymage/internal/core"
	ports "moneymage/internal/sheets"

	"golang.org/x/sync/errgroup"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc             *gsheet.Service
	spreadsheetID   string
	ledgerBase      string
	categoriesSheet string
	balancesSheet   string
	rulesSheet      string

	specCache *cache.LRUCache[[]core.CategorySpec]
	ruleCache *cache.LRUCache[[]core.Rule]
}

// Ensure interface conformance
var (
	_ ports.LedgerReader  = (*Client)(nil)
	_ ports.LedgerWriter  = (*Client)(nil)
	_ ports.BudgetReader  = (*Client)(nil)
	_ ports.RuleReader    = (*Client)(nil)
	_ ports.BalanceReader = (*Client)(nil)
)

const cacheTTL = 5 * time.Minute

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Auth: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional sheet names: GOOGLE_LEDGER_SHEET_NAME (default "Expenses"),
// GOOGLE_CATEGORIES_SHEET_NAME (default "Categories"),
// GOOGLE_BALANCES_SHEET_NAME (default "Balances"),
// GOOGLE_RULES_SHEET_NAME (default "AutoCategories").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:             svc,
		spreadsheetID:   spreadsheetID,
		ledgerBase:      envOr("GOOGLE_LEDGER_SHEET_NAME", "Expenses"),
		categoriesSheet: envOr("GOOGLE_CATEGORIES_SHEET_NAME", "Categories"),
		balancesSheet:   envOr("GOOGLE_BALANCES_SHEET_NAME", "Balances"),
		rulesSheet:      envOr("GOOGLE_RULES_SHEET_NAME", "AutoCategories"),
		specCache:       cache.NewLRUCache[[]core.CategorySpec](4, cacheTTL),
		ruleCache:       cache.NewLRUCache[[]core.Rule](1, cacheTTL),
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// LoadTransactions reads the year's ledger sheet. Rows that do not parse
// are skipped; the ledger merge re-validates everything anyway.
func (c *Client) LoadTransactions(ctx context.Context, year int) ([]core.Transaction, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A2:G", c.ledgerSheetName(year))
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}

	var out []core.Transaction
	for i, row := range resp.Values {
		t, err := parseTransactionRow(toStrings(row))
		if err != nil {
			slog.WarnContext(ctx, "Skipping unparseable ledger row",
				"sheet", c.ledgerSheetName(year), "row", i+2, "error", err)
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// SaveTransactions replaces the year's ledger sheet below the header row.
func (c *Client) SaveTransactions(ctx context.Context, year int, txns []core.Transaction) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}
	sheet := c.ledgerSheetName(year)

	clearRng := fmt.Sprintf("%s!A2:G", sheet)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRng, &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear %s: %w", clearRng, err)
	}
	if len(txns) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, transactionRow(t))
	}
	rng := fmt.Sprintf("%s!A2:G%d", sheet, len(rows)+1)
	vr := &gsheet.ValueRange{Values: rows}
	if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return fmt.Errorf("write %s: %w", rng, err)
	}

	slog.InfoContext(ctx, "Ledger sheet written", "sheet", sheet, "rows", len(rows))
	return nil
}

// LoadSpecs reads the Categories sheet, then each category's own sheet for
// its planned entries. Per-category reads run concurrently. Results are
// cached per year for a few minutes.
func (c *Client) LoadSpecs(ctx context.Context, year int) ([]core.CategorySpec, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	cacheKey := strconv.Itoa(year)
	if specs, ok := c.specCache.Get(cacheKey); ok {
		return specs, nil
	}

	rng := fmt.Sprintf("%s!A2:D", c.categoriesSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}

	specs := make([]core.CategorySpec, 0, len(resp.Values))
	for i, row := range resp.Values {
		spec, err := parseSpecRow(toStrings(row))
		if err != nil {
			slog.WarnContext(ctx, "Skipping unparseable category row",
				"sheet", c.categoriesSheet, "row", i+2, "error", err)
			continue
		}
		specs = append(specs, spec)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i := range specs {
		i := i
		g.Go(func() error {
			planned, err := c.loadPlanned(gctx, specs[i].Name)
			if err != nil {
				// A category without its own sheet simply has no planned
				// entries; the calculator falls back to the even split.
				slog.WarnContext(gctx, "No planned entries sheet for category",
					"category", specs[i].Name, "error", err)
				return nil
			}
			specs[i].Planned = planned
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.specCache.Set(cacheKey, specs)
	return specs, nil
}

func (c *Client) loadPlanned(ctx context.Context, category string) ([]core.PlannedEntry, error) {
	rng := fmt.Sprintf("%s!A2:E", category)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	var out []core.PlannedEntry
	for _, row := range resp.Values {
		entry, err := parsePlannedRow(toStrings(row))
		if err != nil {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

// LoadRules reads the auto-categorization rules. Cached.
func (c *Client) LoadRules(ctx context.Context) ([]core.Rule, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	if rules, ok := c.ruleCache.Get("rules"); ok {
		return rules, nil
	}

	rng := fmt.Sprintf("%s!A2:B", c.rulesSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	var out []core.Rule
	for _, row := range resp.Values {
		cols := toStrings(row)
		pattern := safeGet(cols, 0)
		category := safeGet(cols, 1)
		if pattern == "" || category == "" {
			continue
		}
		out = append(out, core.Rule{Pattern: pattern, Category: category})
	}
	c.ruleCache.Set("rules", out)
	return out, nil
}

// LoadBalances reads the account balance history.
func (c *Client) LoadBalances(ctx context.Context) ([]core.AccountBalance, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	rng := fmt.Sprintf("%s!A2:C", c.balancesSheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	var out []core.AccountBalance
	for _, row := range resp.Values {
		b, err := parseBalanceRow(toStrings(row))
		if err != nil {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (c *Client) ledgerSheetName(year int) string {
	return yearPrefixedName(c.ledgerBase, year)
}

// yearPrefixedName returns "<year> <base>" unless base already starts with
// a 4-digit year.
func yearPrefixedName(base string, year int) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return base
	}
	if len(base) >= 5 {
		if y, err := strconv.Atoi(base[0:4]); err == nil && base[4] == ' ' && y > 1900 && y < 3000 {
			return base
		}
	}
	return fmt.Sprintf("%d %s", year, base)
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
