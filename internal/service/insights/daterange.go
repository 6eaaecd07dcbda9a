package insights

import (
	"errors"
	"fmt"
	"time"

	"github.com/Spranc-Labs/heyho-sync-be-sub000/internal/entity"
)

var (
	// ErrInvalidDateRange is surfaced to the caller with the specific
	// violated condition. Unknown period presets are NOT an error; they
	// fall back to "week".
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidArgument marks programmer errors (unknown tier names).
	// Never caught internally.
	ErrInvalidArgument = errors.New("invalid argument")
)

const (
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"

	customDateLayout   = "2006-01-02"
	maxCustomRangeDays = 90
)

type DateRangeCalculator struct {
	now func() time.Time
}

func NewDateRangeCalculator() *DateRangeCalculator {
	return &DateRangeCalculator{now: time.Now}
}

// Parse resolves a period request into a concrete window. Explicit
// start/end dates take precedence over the period preset; presets are
// rolling windows ending now, so days-in-range for "today" is exactly 1.0.
func (c *DateRangeCalculator) Parse(period, startDate, endDate string) (entity.DateRange, error) {
	if startDate != "" || endDate != "" {
		return c.parseCustom(startDate, endDate)
	}

	now := c.now()
	switch period {
	case PeriodToday:
		return entity.DateRange{Start: now.Add(-24 * time.Hour), End: now, PeriodLabel: PeriodToday}, nil
	case PeriodMonth:
		return entity.DateRange{Start: now.AddDate(0, 0, -30), End: now, PeriodLabel: PeriodMonth}, nil
	default:
		// Unknown or missing period deterministically falls back to week.
		return entity.DateRange{Start: now.AddDate(0, 0, -7), End: now, PeriodLabel: PeriodWeek}, nil
	}
}

func (c *DateRangeCalculator) parseCustom(startDate, endDate string) (entity.DateRange, error) {
	start, err := time.Parse(customDateLayout, startDate)
	if err != nil {
		return entity.DateRange{}, fmt.Errorf("%w: unparsable start_date %q, expected YYYY-MM-DD", ErrInvalidDateRange, startDate)
	}

	end, err := time.Parse(customDateLayout, endDate)
	if err != nil {
		return entity.DateRange{}, fmt.Errorf("%w: unparsable end_date %q, expected YYYY-MM-DD", ErrInvalidDateRange, endDate)
	}

	if !start.Before(end) {
		return entity.DateRange{}, fmt.Errorf("%w: start_date %s must be before end_date %s", ErrInvalidDateRange, startDate, endDate)
	}

	if end.Sub(start) > maxCustomRangeDays*24*time.Hour {
		return entity.DateRange{}, fmt.Errorf("%w: span exceeds %d days", ErrInvalidDateRange, maxCustomRangeDays)
	}

	return entity.DateRange{Start: start, End: end, PeriodLabel: "custom", IsCustom: true}, nil
}

// PreviousPeriod returns the window of equal duration immediately preceding r.
func (c *DateRangeCalculator) PreviousPeriod(r entity.DateRange) entity.DateRange {
	d := r.End.Sub(r.Start)
	return entity.DateRange{
		Start:       r.Start.Add(-d),
		End:         r.Start,
		PeriodLabel: r.PeriodLabel,
		IsCustom:    r.IsCustom,
	}
}

// DaysInRange returns the fractional day count of the window.
func (c *DateRangeCalculator) DaysInRange(r entity.DateRange) float64 {
	return r.End.Sub(r.Start).Hours() / 24
}
