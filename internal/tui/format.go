package tui

import (
	"fmt"
	"strconv"

	"github.com/ErnestoTSantos/Topografia/internal/api"
	"github.com/ErnestoTSantos/Topografia/internal/geom"
)

// FormatMetric renders a metric with exactly 3 decimal places, or "-" when
// the backend did not provide a value.
func FormatMetric(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 3, 64)
}

// MetricsLine builds the aggregate totals display, area first.
func MetricsLine(md api.Metadata) string {
	return fmt.Sprintf("Área total: %s m² | Perímetro total: %s m",
		FormatMetric(md.Area), FormatMetric(md.Perimeter))
}

// FeatureAnnotation builds the popup text attached to one feature.
func FeatureAnnotation(f geom.Feature) string {
	return fmt.Sprintf("Área: %s m²\nPerímetro: %s m",
		FormatMetric(f.Area), FormatMetric(f.Perimeter))
}
