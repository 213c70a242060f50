package ui

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/streamdash/internal/sampler"
)

// Thresholds for metric severity levels. Values strictly above a threshold
// fall into the higher band.
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 90.0
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatBytes renders n with binary prefixes and one decimal place,
// e.g. 1536 -> "1.5 KB". PB is the largest unit; bigger values keep
// growing the mantissa.
func FormatBytes(n uint64) string {
	v := float64(n)
	unit := 0
	for v >= 1024 && unit < len(byteUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", v, byteUnits[unit])
}

// Band is a severity classification for a percentage.
type Band int

const (
	BandNominal Band = iota
	BandWarning
	BandCritical
)

func (b Band) String() string {
	switch b {
	case BandCritical:
		return "critical"
	case BandWarning:
		return "warning"
	default:
		return "nominal"
	}
}

// Paint styles s with the theme method matching the band.
func (b Band) Paint(t Theme, s string) string {
	switch b {
	case BandCritical:
		return t.Critical(s)
	case BandWarning:
		return t.Warning(s)
	default:
		return t.Nominal(s)
	}
}

// Classify returns the severity band for a percentage: above 90 is
// critical, above 70 warning, anything else nominal.
func Classify(p float64) Band {
	switch {
	case p > CriticalThreshold:
		return BandCritical
	case p > WarningThreshold:
		return BandWarning
	default:
		return BandNominal
	}
}

// FormatPercent renders p with one decimal place, styled by its band.
// Out-of-range input is clamped first.
func FormatPercent(p float64, t Theme) string {
	p = sampler.ClampPercent(p)
	return Classify(p).Paint(t, fmt.Sprintf("%.1f%%", p))
}

// FormatCount renders a count with thousands separators, e.g. "12,480".
func FormatCount(n uint64) string {
	if n > math.MaxInt64 {
		n = math.MaxInt64
	}
	return humanize.Comma(int64(n))
}
