package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bilusteknoloji/playdetails/internal/config"
	"github.com/bilusteknoloji/playdetails/internal/product"
)

func testConfig() config.Config {
	return config.Config{Output: "text", LogLevel: slog.LevelWarn, ProductType: "inapp"}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := newRootCmd(testConfig())
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.Execute()

	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing file %s: %v", path, err)
	}

	return path
}

func TestParseCommandStdin(t *testing.T) {
	in := `{"productId":"gem_100","title":"100 Gems","oneTimePurchaseOfferDetails":{"priceAmountMicros":990000,"priceCurrencyCode":"USD","formattedPrice":"$0.99"}}`

	out, err := execute(t, in, "parse")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	want := "<stdin>: gem_100 (inapp) \"100 Gems\"\n  one-time: $0.99 (990000 USD micros)\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestParseCommandFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `{"productId":"a","subscriptionOfferDetails":[{"basePlanId":"monthly","pricingPhases":[{"formattedPrice":"$1.00","billingPeriod":"P1M","recurrenceMode":1}]}]}`)
	b := writeFile(t, dir, "b.json", `{"productId":"b"}`)

	out, err := execute(t, "", "parse", "--type", "subs", "-o", "csv", a, b)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 CSV lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[1], "a.json,a,subs,monthly,,0,") {
		t.Errorf("unexpected row: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "b.json,b,subs,") {
		t.Errorf("unexpected row: %q", lines[2])
	}
}

func TestParseCommandMalformed(t *testing.T) {
	_, err := execute(t, "not json", "parse")
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	if !strings.Contains(err.Error(), "<stdin>") {
		t.Errorf("error %q does not name the input", err.Error())
	}
}

func TestParseCommandKeepGoing(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `{"productId":"good"}`)
	bad := writeFile(t, dir, "bad.json", `[1]`)

	out, err := execute(t, "", "parse", "--keep-going", good, bad)
	if err == nil {
		t.Fatal("expected error for the malformed document, got nil")
	}

	if !strings.Contains(out, "good.json: good (inapp)") {
		t.Errorf("missing good document in output:\n%s", out)
	}
	if !strings.Contains(out, "bad.json: error:") {
		t.Errorf("missing failure line in output:\n%s", out)
	}
}

func TestParseCommandMissingFile(t *testing.T) {
	_, err := execute(t, "", "parse", filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestParseCommandUnknownOutput(t *testing.T) {
	_, err := execute(t, `{}`, "parse", "-o", "xml")
	if err == nil {
		t.Fatal("expected error for unknown output format, got nil")
	}
}

func TestGenerateCommand(t *testing.T) {
	out, err := execute(t, "", "generate", "--price", "0.99", "gem_100", "gem_500")
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(lines))
	}

	d, err := product.Parse(product.TypeInApp, lines[0])
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	offer, ok := d.OneTimePurchaseOfferDetails()
	if !ok {
		t.Fatal("expected one-time offer, got none")
	}
	if offer.PriceAmountMicros != 990000 || offer.FormattedPrice != "$0.99" {
		t.Errorf("unexpected offer: %+v", offer)
	}
}

func TestGenerateCommandBadPrice(t *testing.T) {
	if _, err := execute(t, "", "generate", "--price", "free", "gem"); err == nil {
		t.Fatal("expected error for bad price, got nil")
	}
}
