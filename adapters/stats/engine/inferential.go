package engine

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	domstats "buildpulse/domain/stats"
	"buildpulse/internal/errors"
)

// PerformHypothesisTest dispatches on testType and applies the decision rule
// p < alpha => reject. sample2 may be nil only for the one-sample test.
func (e *StatsEngine) PerformHypothesisTest(sample1, sample2 []float64, testType string, alpha float64) (*domstats.TestResult, error) {
	if len(sample1) == 0 {
		return nil, errors.ValidationError("sample1 must not be empty")
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, errors.ValidationError("alpha must be strictly between 0 and 1")
	}

	var (
		statistic float64
		pValue    float64
		df        float64
		err       error
	)

	switch testType {
	case domstats.TestTTestOneSample:
		statistic, pValue, df, err = e.oneSampleTTest(sample1)
	case domstats.TestTTest:
		if len(sample2) == 0 {
			return nil, errors.ValidationError("t_test requires a second sample")
		}
		statistic, pValue, df, err = e.twoSampleTTest(sample1, sample2)
	case domstats.TestANOVA:
		if len(sample2) == 0 {
			return nil, errors.ValidationError("anova requires a second sample")
		}
		statistic, pValue, df, err = e.oneWayANOVA(sample1, sample2)
	default:
		return nil, errors.ValidationError("unsupported test type: " + testType)
	}
	if err != nil {
		return nil, err
	}

	result := domstats.DecisionFailToReject
	if pValue < alpha {
		result = domstats.DecisionReject
	}

	return &domstats.TestResult{
		TestType:         testType,
		Statistic:        statistic,
		PValue:           pValue,
		DegreesOfFreedom: df,
		Alpha:            alpha,
		Result:           result,
	}, nil
}

// oneSampleTTest tests the sample mean against zero.
func (e *StatsEngine) oneSampleTTest(sample []float64) (float64, float64, float64, error) {
	n := len(sample)
	if n < 2 {
		return 0, 0, 0, errors.InsufficientDataf("one-sample t-test", 2, n)
	}

	s := sampleStd(sample)
	if s == 0 {
		return 0, 0, 0, errors.NumericDegeneracy("one-sample t-test: zero standard deviation")
	}

	t := mean(sample) / (s / math.Sqrt(float64(n)))
	df := float64(n - 1)
	return t, twoTailedT(t, df), df, nil
}

// twoSampleTTest is the independent two-sample test with pooled variance.
func (e *StatsEngine) twoSampleTTest(sample1, sample2 []float64) (float64, float64, float64, error) {
	n1, n2 := len(sample1), len(sample2)
	if n1 < 2 || n2 < 2 {
		return 0, 0, 0, errors.InsufficientDataf("two-sample t-test", 2, min(n1, n2))
	}

	v1 := sampleVariance(sample1)
	v2 := sampleVariance(sample2)
	fn1, fn2 := float64(n1), float64(n2)

	pooled := ((fn1-1)*v1 + (fn2-1)*v2) / (fn1 + fn2 - 2)
	se := math.Sqrt(pooled) * math.Sqrt(1/fn1+1/fn2)
	if se == 0 {
		return 0, 0, 0, errors.NumericDegeneracy("two-sample t-test: zero pooled standard error")
	}

	t := (mean(sample1) - mean(sample2)) / se
	df := fn1 + fn2 - 2
	return t, twoTailedT(t, df), df, nil
}

// oneWayANOVA runs the one-way F test across the two supplied groups.
func (e *StatsEngine) oneWayANOVA(sample1, sample2 []float64) (float64, float64, float64, error) {
	groups := [][]float64{sample1, sample2}
	total := 0
	grandSum := 0.0
	for _, g := range groups {
		if len(g) < 2 {
			return 0, 0, 0, errors.InsufficientDataf("anova group", 2, len(g))
		}
		total += len(g)
		for _, v := range g {
			grandSum += v
		}
	}

	grandMean := grandSum / float64(total)
	k := float64(len(groups))

	ssBetween := 0.0
	ssWithin := 0.0
	for _, g := range groups {
		gm := mean(g)
		ssBetween += float64(len(g)) * (gm - grandMean) * (gm - grandMean)
		for _, v := range g {
			ssWithin += (v - gm) * (v - gm)
		}
	}

	dfBetween := k - 1
	dfWithin := float64(total) - k
	if ssWithin == 0 {
		return 0, 0, 0, errors.NumericDegeneracy("anova: zero within-group variance")
	}

	f := (ssBetween / dfBetween) / (ssWithin / dfWithin)
	fDist := distuv.F{D1: dfBetween, D2: dfWithin}
	pValue := 1 - fDist.CDF(f)
	return f, pValue, dfBetween, nil
}

// CalculateConfidenceIntervals builds the mean confidence interval, using
// Student's t below the normal-approximation cutoff and the normal
// distribution above it.
func (e *StatsEngine) CalculateConfidenceIntervals(data []float64, confidenceLevel float64) (*domstats.CIResult, error) {
	if confidenceLevel <= 0 || confidenceLevel >= 1 {
		return nil, errors.ValidationError("confidence level must be strictly between 0 and 1")
	}
	n := len(data)
	if n < 2 {
		return nil, errors.InsufficientDataf("confidence interval", 2, n)
	}

	m := mean(data)
	s := sampleStd(data)
	p := 1 - (1-confidenceLevel)/2

	var critical float64
	method := "t"
	if n < e.cfg.NormalApproxMinN {
		t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
		critical = t.Quantile(p)
	} else {
		method = "normal"
		critical = distuv.UnitNormal.Quantile(p)
	}

	margin := critical * (s / math.Sqrt(float64(n)))
	return &domstats.CIResult{
		Mean:            m,
		MarginOfError:   margin,
		LowerBound:      m - margin,
		UpperBound:      m + margin,
		ConfidenceLevel: confidenceLevel,
		CriticalValue:   critical,
		Method:          method,
		SampleSize:      n,
	}, nil
}

// PerformCorrelationAnalysis computes Pearson and Spearman coefficients with
// p-values and buckets the strength on |pearson|.
func (e *StatsEngine) PerformCorrelationAnalysis(data1, data2 []float64) (*domstats.CorrelationResult, error) {
	if len(data1) == 0 || len(data2) == 0 {
		return nil, errors.ValidationError("correlation requires two non-empty series")
	}
	if len(data1) != len(data2) {
		return nil, errors.ValidationError("correlation requires series of equal length")
	}

	n := len(data1)
	if populationStd(data1) == 0 || populationStd(data2) == 0 {
		return nil, errors.NumericDegeneracy("correlation: zero variance in input series")
	}

	pearson := stat.Correlation(data1, data2, nil)
	spearman := stat.Correlation(rankValues(data1), rankValues(data2), nil)

	direction := "positive"
	if pearson < 0 {
		direction = "negative"
	}

	return &domstats.CorrelationResult{
		Pearson: domstats.CorrelationCoefficient{
			Coefficient: pearson,
			PValue:      correlationPValue(pearson, n),
		},
		Spearman: domstats.CorrelationCoefficient{
			Coefficient: spearman,
			PValue:      correlationPValue(spearman, n),
		},
		Strength:   e.classifyStrength(pearson),
		Direction:  direction,
		SampleSize: n,
	}, nil
}

// rankValues converts values to ranks, averaging ties.
func rankValues(data []float64) []float64 {
	n := len(data)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return data[idx[a]] < data[idx[b]] })

	ranks := make([]float64, n)
	i := 0
	for i < n {
		j := i + 1
		for j < n && data[idx[j]] == data[idx[i]] {
			j++
		}
		avgRank := float64(i+1) + float64(j-i-1)/2.0
		for k := i; k < j; k++ {
			ranks[idx[k]] = avgRank
		}
		i = j
	}
	return ranks
}

// correlationPValue is the two-tailed p-value of a correlation coefficient
// via the t transform with n-2 degrees of freedom.
func correlationPValue(r float64, n int) float64 {
	if n < 3 {
		return 1
	}
	if math.Abs(r) >= 1 {
		return 0
	}
	t := r * math.Sqrt(float64(n-2)/(1-r*r))
	return twoTailedT(t, float64(n-2))
}

// twoTailedT returns the two-tailed p-value of a t statistic.
func twoTailedT(t, df float64) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * (1 - dist.CDF(math.Abs(t)))
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
