package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fireworks-storefront/internal/domain"
	"fireworks-storefront/internal/forms"
	"github.com/shopspring/decimal"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (domain.Product, error)
}

// CSVImporter reads catalog CSV exports and inserts/updates products by name.
type CSVImporter struct {
	reader  *csv.Reader
	catalog ProductWriter
}

func NewCSVImporter(r io.Reader, catalog ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:  csvr,
		catalog: catalog,
	}
}

type csvRow struct {
	line          int
	Name          string
	Desc          string
	Category      string
	Price         string
	OriginalPrice string
	Image         string
	Rating        string
	Reviews       string
	InStock       string
	Features      []string
}

// Run parses CSV rows and upserts products. A row without a name continues
// the previous product and contributes only its feature.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var (
		current  *csvRow
		imported int
		line     = 1
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		row := parseRow(record, index)
		if row == nil {
			continue
		}
		row.line = line

		if row.Name != "" {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			current = row
			continue
		}

		if current != nil && len(row.Features) > 0 {
			current.Features = append(current.Features, row.Features...)
		}
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	p, err := row.product()
	if err != nil {
		return fmt.Errorf("line %d (%q): %w", row.line, row.Name, err)
	}
	if err := forms.ValidateProduct(p); err != nil {
		return fmt.Errorf("line %d (%q): %w", row.line, row.Name, err)
	}
	if _, err := i.catalog.Upsert(ctx, p); err != nil {
		return fmt.Errorf("upsert product %q: %w", row.Name, err)
	}
	return nil
}

func (r *csvRow) product() (domain.Product, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid price %q", r.Price)
	}
	p := domain.Product{
		Name:        r.Name,
		Description: r.Desc,
		Category:    canonicalCategory(r.Category),
		Price:       price,
		Image:       r.Image,
		InStock:     true,
		Features:    r.Features,
	}
	if r.OriginalPrice != "" {
		orig, err := decimal.NewFromString(r.OriginalPrice)
		if err != nil {
			return domain.Product{}, fmt.Errorf("invalid originalPrice %q", r.OriginalPrice)
		}
		p.OriginalPrice = &orig
	}
	if r.Rating != "" {
		if p.Rating, err = strconv.ParseFloat(r.Rating, 64); err != nil {
			return domain.Product{}, fmt.Errorf("invalid rating %q", r.Rating)
		}
	}
	if r.Reviews != "" {
		if p.Reviews, err = strconv.Atoi(r.Reviews); err != nil {
			return domain.Product{}, fmt.Errorf("invalid reviews %q", r.Reviews)
		}
	}
	if r.InStock != "" {
		if p.InStock, err = strconv.ParseBool(r.InStock); err != nil {
			return domain.Product{}, fmt.Errorf("invalid inStock %q", r.InStock)
		}
	}
	return p, nil
}

// canonicalCategory restores the catalog's spelling of a known category.
func canonicalCategory(name string) string {
	for _, c := range domain.Categories {
		if strings.EqualFold(c, name) {
			return c
		}
	}
	return name
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	name := pick(record, index, "name")
	feature := pick(record, index, "features")

	if name == "" && feature == "" {
		return nil
	}

	row := &csvRow{
		Name:          name,
		Desc:          pick(record, index, "description"),
		Category:      pick(record, index, "category"),
		Price:         pick(record, index, "price"),
		OriginalPrice: pick(record, index, "originalPrice"),
		Image:         pick(record, index, "image"),
		Rating:        pick(record, index, "rating"),
		Reviews:       pick(record, index, "reviews"),
		InStock:       pick(record, index, "inStock"),
	}
	if feature != "" {
		row.Features = []string{feature}
	}
	return row
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
