// Package layout is the pagination engine. It decides which invoice rows
// land on which page, where continuation headers and the trailing summary
// and signature blocks go, and carries the running subtotal across page
// breaks. It never draws anything; the renderer consumes its output.
package layout

import "fmt"

// Geometry configures the packing decision. All vertical values are in the
// same unit the renderer draws in (millimetres for the PDF renderer).
type Geometry struct {
	UsablePageHeight       float64 `mapstructure:"usable_page_height" json:"usable_page_height"`
	HeaderHeight           float64 `mapstructure:"header_height" json:"header_height"`
	FooterHeight           float64 `mapstructure:"footer_height" json:"footer_height"`
	DescriptionColumnWidth float64 `mapstructure:"description_column_width" json:"description_column_width"`
	CharWidth              float64 `mapstructure:"char_width" json:"char_width"`
	LineHeight             float64 `mapstructure:"line_height" json:"line_height"`
	SummaryBlockHeight     float64 `mapstructure:"summary_block_height" json:"summary_block_height"`
	SignatureBlockHeight   float64 `mapstructure:"signature_block_height" json:"signature_block_height"`
	RowVerticalPadding     float64 `mapstructure:"row_vertical_padding" json:"row_vertical_padding"`
}

// Default returns an A4 profile matching the PDF renderer's grid: with
// 10mm side margins the content is 190mm wide, and the description
// occupies 5 of 12 grid columns.
func Default() Geometry {
	return Geometry{
		UsablePageHeight:       257,
		HeaderHeight:           58,
		FooterHeight:           12,
		DescriptionColumnWidth: 79.2,
		CharWidth:              1.9,
		LineHeight:             5,
		SummaryBlockHeight:     28,
		SignatureBlockHeight:   24,
		RowVerticalPadding:     2,
	}
}

// ConfigError reports a geometry that no pagination can satisfy.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("layout configuration: %s: %s", e.Field, e.Reason)
}

// Validate rejects geometries that leave no room for even a single row.
func (g Geometry) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"usable_page_height", g.UsablePageHeight},
		{"line_height", g.LineHeight},
		{"char_width", g.CharWidth},
		{"description_column_width", g.DescriptionColumnWidth},
	}
	for _, f := range positive {
		if f.value <= 0 {
			return &ConfigError{Field: f.name, Reason: "must be positive"}
		}
	}
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"header_height", g.HeaderHeight},
		{"footer_height", g.FooterHeight},
		{"summary_block_height", g.SummaryBlockHeight},
		{"signature_block_height", g.SignatureBlockHeight},
		{"row_vertical_padding", g.RowVerticalPadding},
	}
	for _, f := range nonNegative {
		if f.value < 0 {
			return &ConfigError{Field: f.name, Reason: "must not be negative"}
		}
	}
	if g.DescriptionColumnWidth < g.CharWidth {
		return &ConfigError{Field: "description_column_width", Reason: "narrower than a single character"}
	}
	if g.rowCapacity() <= 0 {
		return &ConfigError{Field: "usable_page_height", Reason: "header and footer leave no row capacity"}
	}
	return nil
}

// rowCapacity is the vertical space available for rows on every page.
func (g Geometry) rowCapacity() float64 {
	return g.UsablePageHeight - g.HeaderHeight - g.FooterHeight
}

// maxDescChars is the character budget of one wrapped description line.
func (g Geometry) maxDescChars() int {
	n := int(g.DescriptionColumnWidth / g.CharWidth)
	if n < 1 {
		n = 1
	}
	return n
}
