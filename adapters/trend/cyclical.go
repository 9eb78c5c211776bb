package trend

import (
	"fmt"
	"math"

	domtrend "buildpulse/domain/trend"
)

// analyzeCyclical isolates the cyclical residual by first-order differencing
// (trend removal) and 12-lag differencing (seasonality removal, when enough
// points remain), then searches the autocorrelation function for repeating
// cycle lengths and pairs troughs with peaks on the raw values.
func (d *Detector) analyzeCyclical(values []float64) *domtrend.CyclicalTrend {
	n := len(values)
	if n < d.cfg.MinCyclicalPoints {
		return &domtrend.CyclicalTrend{
			Error: fmt.Sprintf("cyclical analysis requires at least %d data points, got %d",
				d.cfg.MinCyclicalPoints, n),
		}
	}

	residual := difference(values, 1)
	if len(residual) >= 12 {
		residual = difference(residual, 12)
	}

	maxLag := d.cfg.MaxAutocorrelationLag
	if half := n / 2; half < maxLag {
		maxLag = half
	}
	if maxLag > len(residual)-1 {
		maxLag = len(residual) - 1
	}

	acf := autocorrelation(residual, maxLag)
	if acf == nil {
		return &domtrend.CyclicalTrend{Error: "cyclical analysis: zero variance in differenced series"}
	}

	var candidates, significant []int
	for k := 1; k < len(acf); k++ {
		if acf[k] <= d.cfg.ACFCandidateThreshold {
			continue
		}
		// Candidate cycle lengths are local peaks of the ACF.
		if acf[k] < acf[k-1] {
			continue
		}
		if k+1 < len(acf) && acf[k] < acf[k+1] {
			continue
		}
		candidates = append(candidates, k)
		if acf[k] > d.cfg.ACFSignificantThreshold {
			significant = append(significant, k)
		}
	}

	strength := 0.0
	if len(acf) > 1 {
		sum := 0.0
		for _, v := range acf[1:] {
			sum += math.Abs(v)
		}
		strength = sum / float64(len(acf)-1)
	}

	return &domtrend.CyclicalTrend{
		Autocorrelations:  acf,
		CandidateCycles:   candidates,
		SignificantCycles: significant,
		BusinessCycles:    detectBusinessCycles(values),
		CyclicalStrength:  strength,
		StrengthLevel:     d.classifyVarianceRatio(strength),
	}
}

// difference applies lagged differencing: out[i] = values[i+lag] - values[i].
func difference(values []float64, lag int) []float64 {
	if len(values) <= lag {
		return nil
	}
	out := make([]float64, len(values)-lag)
	for i := range out {
		out[i] = values[i+lag] - values[i]
	}
	return out
}

// autocorrelation computes ACF values for lags 0..maxLag. Returns nil when
// the series has no variance.
func autocorrelation(values []float64, maxLag int) []float64 {
	n := len(values)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	m := mean(values)
	variance := 0.0
	for _, v := range values {
		diff := v - m
		variance += diff * diff
	}
	if variance == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (values[i] - m) * (values[i-k] - m)
		}
		acf[k] = sum / variance
	}
	return acf
}

// detectBusinessCycles pairs each trough with the next peak (expansion) and
// each peak with the next trough (contraction) on the raw values.
func detectBusinessCycles(values []float64) []domtrend.BusinessCycle {
	type extremum struct {
		index  int
		isPeak bool
	}

	var extrema []extremum
	for i := 1; i < len(values)-1; i++ {
		if values[i] > values[i-1] && values[i] > values[i+1] {
			extrema = append(extrema, extremum{i, true})
		} else if values[i] < values[i-1] && values[i] < values[i+1] {
			extrema = append(extrema, extremum{i, false})
		}
	}

	var cycles []domtrend.BusinessCycle
	for i := 0; i+1 < len(extrema); i++ {
		from, to := extrema[i], extrema[i+1]
		if from.isPeak == to.isPeak {
			continue
		}

		kind := "expansion"
		if from.isPeak {
			kind = "contraction"
		}
		cycles = append(cycles, domtrend.BusinessCycle{
			Type:       kind,
			StartIndex: from.index,
			EndIndex:   to.index,
			Duration:   to.index - from.index,
			Amplitude:  math.Abs(values[to.index] - values[from.index]),
		})
	}
	return cycles
}
