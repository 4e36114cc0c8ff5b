package render

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bilusteknoloji/playdetails/internal/period"
)

// Format selects an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// ErrUnknownFormat is returned for unsupported output formats.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatYAML, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q (want text, json, yaml or csv)", ErrUnknownFormat, s)
	}
}

// csvHeader lists the columns of the CSV output. Each row is one priced
// item: a one-time offer or a subscription pricing phase.
var csvHeader = []string{
	"name", "product_id", "product_type", "base_plan_id", "offer_id", "phase",
	"price_amount_micros", "price_currency_code", "formatted_price",
	"billing_period", "recurrence_mode", "billing_cycle_count",
}

// Render writes docs to w in the given format.
func Render(w io.Writer, f Format, docs []Document) error {
	switch f {
	case FormatText:
		return writeText(w, docs)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(docs); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}

		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(docs); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}

		return enc.Close()
	case FormatCSV:
		return writeCSV(w, docs)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, string(f))
	}
}

// writeCSV writes one row per priced item. Documents that failed to parse
// are skipped; products without prices get a single row of identity fields.
func writeCSV(w io.Writer, docs []Document) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, d := range docs {
		if d.Error != "" {
			continue
		}

		for _, row := range csvRows(d) {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing CSV row for %s: %w", d.Name, err)
			}
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}

	return nil
}

func csvRows(d Document) [][]string {
	row := func(basePlanID, offerID, phase string, tail ...string) []string {
		return append([]string{d.Name, d.ProductID, d.ProductType, basePlanID, offerID, phase}, tail...)
	}

	var rows [][]string

	if d.OneTime != nil {
		rows = append(rows, row("", "", "",
			strconv.FormatInt(d.OneTime.Micros, 10), d.OneTime.Currency, d.OneTime.Formatted,
			"", "", "",
		))
	}

	for _, o := range d.Offers {
		for i, p := range o.Phases {
			rows = append(rows, row(o.BasePlanID, o.OfferID, strconv.Itoa(i),
				strconv.FormatInt(p.Micros, 10), p.Currency, p.Formatted,
				p.BillingPeriod, p.RecurrenceMode, strconv.Itoa(p.BillingCycleCount),
			))
		}
	}

	if len(rows) == 0 {
		rows = append(rows, row("", "", "", "", "", "", "", "", ""))
	}

	return rows
}

func writeText(w io.Writer, docs []Document) error {
	var b strings.Builder

	for _, d := range docs {
		if d.Error != "" {
			fmt.Fprintf(&b, "%s: error: %s\n", d.Name, d.Error)

			continue
		}

		fmt.Fprintf(&b, "%s: %s (%s)", d.Name, d.ProductID, d.ProductType)
		if d.Title != "" {
			fmt.Fprintf(&b, " %q", d.Title)
		}

		b.WriteString("\n")

		if d.OneTime != nil {
			fmt.Fprintf(&b, "  one-time: %s (%d %s micros)\n",
				d.OneTime.Formatted, d.OneTime.Micros, d.OneTime.Currency)
		}

		for _, o := range d.Offers {
			label := o.BasePlanID
			if o.OfferID != "" {
				label += "/" + o.OfferID
			}

			fmt.Fprintf(&b, "  %s:\n", label)

			for _, p := range o.Phases {
				fmt.Fprintf(&b, "    %s\n", describePhase(p))
			}
		}
	}

	_, err := io.WriteString(w, b.String())

	return err
}

// describePhase renders a phase as e.g. "$4.99 every 1 month, infinite-recurring".
func describePhase(p Phase) string {
	every := p.BillingPeriod
	if parsed, err := period.Parse(p.BillingPeriod); err == nil {
		every = parsed.String()
	}

	s := fmt.Sprintf("%s every %s, %s", p.Formatted, every, p.RecurrenceMode)
	if p.BillingCycleCount > 0 {
		s += fmt.Sprintf(" x%d", p.BillingCycleCount)
	}

	return s
}
