// Command inkbill-render renders a single invoice JSON file to PDF
// without starting the HTTP server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/inkbill/inkbill/internal/invoice/calc"
	"github.com/inkbill/inkbill/internal/invoice/domain"
	"github.com/inkbill/inkbill/internal/invoice/layout"
	"github.com/inkbill/inkbill/internal/invoice/render"
)

func main() {
	var (
		inPath  = flag.String("in", "invoice.json", "path to the invoice JSON file")
		outPath = flag.String("out", "invoice.pdf", "path to write the PDF to")
		profile = flag.String("profile", "", "optional YAML page geometry profile")
	)
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(log, *inPath, *outPath, *profile); err != nil {
		log.Fatal("render failed", zap.Error(err))
	}
}

func run(log *zap.Logger, inPath, outPath, profile string) error {
	raw, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	var inv domain.Invoice
	if err := json.Unmarshal(raw, &inv); err != nil {
		return fmt.Errorf("decode invoice: %w", err)
	}

	geo, err := layout.LoadProfile(profile)
	if err != nil {
		return err
	}

	totals, err := calc.ComputeTotals(inv)
	if err != nil {
		return err
	}

	doc, err := layout.Paginate(inv, totals, geo)
	if err != nil {
		return err
	}
	for _, w := range doc.Warnings {
		log.Warn("row exceeds page capacity",
			zap.Int("item_index", w.ItemIndex),
			zap.Float64("row_height", w.RowHeight),
			zap.Float64("capacity", w.Capacity),
		)
	}

	pdf, err := render.NewPDFRenderer().Render(inv, doc, geo)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outPath, pdf, 0o644); err != nil {
		return err
	}

	log.Info("invoice rendered",
		zap.String("invoice_number", inv.Number),
		zap.String("out", outPath),
		zap.Int("pages", len(doc.Pages)),
		zap.String("total", totals.GrandTotal.String()),
	)
	return nil
}
