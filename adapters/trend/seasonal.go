package trend

import (
	"fmt"

	"buildpulse/domain/series"
	domtrend "buildpulse/domain/trend"
)

// analyzeSeasonal groups values by calendar month, measures how much of the
// total variance the monthly pattern explains, and produces the naive
// decomposition plus a 12-period month-replay forecast.
//
// When timestamps carry no calendar information the grouping falls back to
// index mod 12 + 1 as a pseudo-month. That fallback is inherited behavior:
// it is surfaced via month_source and a warning instead of being guessed at
// silently.
func (d *Detector) analyzeSeasonal(s *series.Series) *domtrend.SeasonalTrend {
	n := s.Len()
	if n < d.cfg.MinSeasonalPoints {
		return &domtrend.SeasonalTrend{
			Error: fmt.Sprintf("seasonal analysis requires at least %d data points, got %d",
				d.cfg.MinSeasonalPoints, n),
		}
	}

	values := s.Values()
	totalVariance := populationVariance(values)
	if totalVariance == 0 {
		return &domtrend.SeasonalTrend{Error: "seasonal analysis: zero variance in series"}
	}

	monthSource := domtrend.MonthSourceCalendar
	months := make([]int, n)
	if s.HasCalendarDates() {
		for i, p := range s.Points {
			months[i] = int(p.Timestamp.Month())
		}
	} else {
		monthSource = domtrend.MonthSourceFallback
		d.log.Warn("series lacks calendar dates; grouping by index mod 12 as pseudo-months")
		for i := range months {
			months[i] = i%12 + 1
		}
	}

	grouped := make(map[int][]float64)
	for i, m := range months {
		grouped[m] = append(grouped[m], values[i])
	}

	monthly := make(map[int]domtrend.MonthlyStat, len(grouped))
	var monthMeans []float64
	peakMonth, troughMonth := 0, 0
	peakMean, troughMean := 0.0, 0.0
	for m, vals := range grouped {
		stat := domtrend.MonthlyStat{
			Mean:  mean(vals),
			Std:   populationStd(vals),
			Count: len(vals),
		}
		monthly[m] = stat
		monthMeans = append(monthMeans, stat.Mean)
		if peakMonth == 0 || stat.Mean > peakMean {
			peakMonth, peakMean = m, stat.Mean
		}
		if troughMonth == 0 || stat.Mean < troughMean {
			troughMonth, troughMean = m, stat.Mean
		}
	}

	strength := populationVariance(monthMeans) / totalVariance

	return &domtrend.SeasonalTrend{
		SeasonalityStrength: strength,
		StrengthLevel:       d.classifyVarianceRatio(strength),
		MonthlyStatistics:   monthly,
		PeakMonth:           peakMonth,
		TroughMonth:         troughMonth,
		MonthSource:         monthSource,
		Decomposition:       naiveDecomposition(values),
		Forecast:            d.seasonalForecast(s, months, monthly, values),
	}
}

// naiveDecomposition splits the series into a 12-period moving-average trend,
// a seasonal component (value minus trend), and the residual of the two. The
// residual is zero by construction; the arrays keep the shape downstream
// reporting expects. The first 11 trend entries use an expanding-window mean
// so the arrays stay aligned and finite.
func naiveDecomposition(values []float64) domtrend.Decomposition {
	n := len(values)
	trend := make([]float64, n)
	seasonal := make([]float64, n)
	residual := make([]float64, n)

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= 12 {
			sum -= values[i-12]
		}
		window := i + 1
		if window > 12 {
			window = 12
		}
		trend[i] = sum / float64(window)
		seasonal[i] = v - trend[i]
		residual[i] = v - trend[i] - seasonal[i]
	}

	return domtrend.Decomposition{Trend: trend, Seasonal: seasonal, Residual: residual}
}

// seasonalForecast replays each upcoming calendar month's historical average
// for the next 12 periods. Months never observed fall back to the overall
// mean.
func (d *Detector) seasonalForecast(s *series.Series, months []int, monthly map[int]domtrend.MonthlyStat, values []float64) []float64 {
	lastMonth := months[len(months)-1]
	overall := mean(values)

	forecast := make([]float64, d.cfg.ForecastPeriods)
	for i := range forecast {
		m := (lastMonth+i)%12 + 1
		if stat, ok := monthly[m]; ok {
			forecast[i] = stat.Mean
		} else {
			forecast[i] = overall
		}
	}
	return forecast
}
