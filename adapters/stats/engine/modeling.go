package engine

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	domstats "buildpulse/domain/stats"
	"buildpulse/internal/errors"
)

// PerformRegression fits ordinary least squares of y on x and reports the
// fit, residual summary, and fitted predictions.
func (e *StatsEngine) PerformRegression(x, y []float64) (*domstats.RegressionResult, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, errors.ValidationError("regression requires two non-empty series")
	}
	if len(x) != len(y) {
		return nil, errors.ValidationError("regression requires series of equal length")
	}
	n := len(x)
	if n < 3 {
		return nil, errors.InsufficientDataf("regression", 3, n)
	}
	if populationStd(x) == 0 {
		return nil, errors.NumericDegeneracy("regression: zero variance in predictor")
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)
	r := stat.Correlation(x, y, nil)

	predictions := make([]float64, n)
	residuals := make([]float64, n)
	rss := 0.0
	for i := range x {
		predictions[i] = intercept + slope*x[i]
		residuals[i] = y[i] - predictions[i]
		rss += residuals[i] * residuals[i]
	}

	xMean := mean(x)
	sxx := 0.0
	for _, v := range x {
		sxx += (v - xMean) * (v - xMean)
	}

	// Standard error of the slope and its two-tailed p-value.
	stdErr := math.Sqrt(rss / float64(n-2) / sxx)
	pValue := 1.0
	if stdErr > 0 {
		pValue = twoTailedT(slope/stdErr, float64(n-2))
	} else if slope != 0 {
		pValue = 0
	}

	resMin, resMax := residuals[0], residuals[0]
	for _, v := range residuals {
		if v < resMin {
			resMin = v
		}
		if v > resMax {
			resMax = v
		}
	}

	return &domstats.RegressionResult{
		Slope:     slope,
		Intercept: intercept,
		R:         r,
		RSquared:  r * r,
		PValue:    pValue,
		StdError:  stdErr,
		Residuals: domstats.ResidualStats{
			Mean: mean(residuals),
			Std:  populationStd(residuals),
			Min:  resMin,
			Max:  resMax,
		},
		Predictions: predictions,
	}, nil
}

// PerformClusterAnalysis standardizes the feature matrix and runs k-means
// with an explicit seed so repeated calls reproduce the same clustering.
func (e *StatsEngine) PerformClusterAnalysis(data [][]float64, nClusters int, seed int64) (*domstats.ClusterResult, error) {
	n := len(data)
	if n == 0 {
		return nil, errors.ValidationError("cluster analysis requires a non-empty feature matrix")
	}
	nFeatures := len(data[0])
	for _, row := range data {
		if len(row) != nFeatures {
			return nil, errors.ValidationError("cluster analysis requires rectangular feature matrix")
		}
	}
	if nClusters < 2 {
		return nil, errors.ValidationError("cluster analysis requires at least 2 clusters")
	}
	if nClusters > n {
		return nil, errors.InsufficientDataf("cluster analysis", nClusters, n)
	}

	standardized := standardizeMatrix(data)
	rng := rand.New(rand.NewSource(seed))

	centers := initialCenters(standardized, nClusters, rng)
	assignments := make([]int, n)

	// Lloyd iterations until assignments stabilize.
	for iter := 0; iter < 100; iter++ {
		changed := false
		for i, point := range standardized {
			best := nearestCenter(point, centers)
			if best != assignments[i] {
				assignments[i] = best
				changed = true
			}
		}

		for c := range centers {
			members := 0
			sums := make([]float64, nFeatures)
			for i, a := range assignments {
				if a != c {
					continue
				}
				members++
				for f := range sums {
					sums[f] += standardized[i][f]
				}
			}
			if members == 0 {
				// Reseed an empty cluster from a random point.
				centers[c] = append([]float64(nil), standardized[rng.Intn(n)]...)
				continue
			}
			for f := range sums {
				centers[c][f] = sums[f] / float64(members)
			}
		}

		if !changed && iter > 0 {
			break
		}
	}

	inertia := 0.0
	for i, point := range standardized {
		inertia += squaredDistance(point, centers[assignments[i]])
	}

	clusters := make([]domstats.ClusterStats, nClusters)
	for c := 0; c < nClusters; c++ {
		means := make([]float64, nFeatures)
		stds := make([]float64, nFeatures)
		for f := 0; f < nFeatures; f++ {
			var col []float64
			for i, a := range assignments {
				if a == c {
					col = append(col, data[i][f])
				}
			}
			if len(col) > 0 {
				means[f] = mean(col)
				stds[f] = populationStd(col)
			}
		}
		size := 0
		for _, a := range assignments {
			if a == c {
				size++
			}
		}
		clusters[c] = domstats.ClusterStats{Cluster: c, Size: size, Means: means, Stds: stds}
	}

	return &domstats.ClusterResult{
		NClusters:       nClusters,
		Clusters:        clusters,
		Centers:         centers,
		SilhouetteScore: silhouetteScore(standardized, assignments, nClusters),
		Inertia:         inertia,
		Seed:            seed,
	}, nil
}

// PerformPCA standardizes the features and extracts up to nComponents
// principal components. nComponents <= 0 means min(n_samples, n_features).
func (e *StatsEngine) PerformPCA(data [][]float64, nComponents int) (*domstats.PCAResult, error) {
	n := len(data)
	if n < 2 {
		return nil, errors.InsufficientDataf("pca", 2, n)
	}
	nFeatures := len(data[0])
	if nFeatures == 0 {
		return nil, errors.ValidationError("pca requires at least one feature")
	}
	for _, row := range data {
		if len(row) != nFeatures {
			return nil, errors.ValidationError("pca requires rectangular feature matrix")
		}
	}

	maxComponents := n
	if nFeatures < maxComponents {
		maxComponents = nFeatures
	}
	if nComponents <= 0 || nComponents > maxComponents {
		nComponents = maxComponents
	}

	standardized := standardizeMatrix(data)
	m := mat.NewDense(n, nFeatures, nil)
	for i, row := range standardized {
		m.SetRow(i, row)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(m, nil); !ok {
		return nil, errors.NumericDegeneracy("pca decomposition failed")
	}

	vars := pc.VarsTo(nil)
	totalVar := 0.0
	for _, v := range vars {
		totalVar += v
	}
	if totalVar == 0 {
		return nil, errors.NumericDegeneracy("pca: zero total variance")
	}

	ratios := make([]float64, nComponents)
	cumulative := make([]float64, nComponents)
	running := 0.0
	for i := 0; i < nComponents; i++ {
		ratios[i] = vars[i] / totalVar
		running += ratios[i]
		cumulative[i] = running
	}

	var vectors mat.Dense
	pc.VectorsTo(&vectors)
	loadings := make([]float64, nFeatures)
	for f := 0; f < nFeatures; f++ {
		loadings[f] = vectors.At(f, 0)
	}

	return &domstats.PCAResult{
		NComponents:             nComponents,
		ExplainedVarianceRatio:  ratios,
		CumulativeVarianceRatio: cumulative,
		FirstComponentLoadings:  loadings,
	}, nil
}

// CalculateStatisticalPower solves the two-sided t-test power equation for
// whichever of sampleSize/power was not supplied. Exactly one must be nil.
func (e *StatsEngine) CalculateStatisticalPower(effectSize, alpha float64, sampleSize *int, power *float64) (*domstats.PowerResult, error) {
	if (sampleSize == nil) == (power == nil) {
		return nil, errors.ValidationError("exactly one of sample_size and power must be provided")
	}
	if effectSize <= 0 {
		return nil, errors.ValidationError("effect size must be positive")
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, errors.ValidationError("alpha must be strictly between 0 and 1")
	}

	if sampleSize != nil {
		n := *sampleSize
		if n < 2 {
			return nil, errors.InsufficientDataf("power analysis", 2, n)
		}
		return &domstats.PowerResult{
			EffectSize: effectSize,
			Alpha:      alpha,
			SampleSize: n,
			Power:      tTestPower(effectSize, alpha, n),
			SolvedFor:  "power",
		}, nil
	}

	target := *power
	if target <= 0 || target >= 1 {
		return nil, errors.ValidationError("power must be strictly between 0 and 1")
	}
	for n := 2; n <= 1_000_000; n++ {
		if tTestPower(effectSize, alpha, n) >= target {
			return &domstats.PowerResult{
				EffectSize: effectSize,
				Alpha:      alpha,
				SampleSize: n,
				Power:      tTestPower(effectSize, alpha, n),
				SolvedFor:  "sample_size",
			}, nil
		}
	}
	return nil, errors.ValidationError("required sample size exceeds solver bound")
}

// tTestPower approximates two-sample two-sided t-test power with the normal
// approximation to the noncentral t (n per group).
func tTestPower(effectSize, alpha float64, n int) float64 {
	df := float64(2*n - 2)
	tCrit := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}.Quantile(1 - alpha/2)
	ncp := effectSize * math.Sqrt(float64(n)/2)

	power := 1 - distuv.UnitNormal.CDF(tCrit-ncp) + distuv.UnitNormal.CDF(-tCrit-ncp)
	if power < 0 {
		return 0
	}
	if power > 1 {
		return 1
	}
	return power
}

// standardizeMatrix z-scores each column. Zero-variance columns become all
// zeros rather than NaN.
func standardizeMatrix(data [][]float64) [][]float64 {
	n := len(data)
	nFeatures := len(data[0])

	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, nFeatures)
	}

	col := make([]float64, n)
	for f := 0; f < nFeatures; f++ {
		for i := range data {
			col[i] = data[i][f]
		}
		m := mean(col)
		s := populationStd(col)
		for i := range data {
			if s > 0 {
				out[i][f] = (data[i][f] - m) / s
			}
		}
	}
	return out
}

func initialCenters(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	perm := rng.Perm(len(points))
	centers := make([][]float64, k)
	for i := 0; i < k; i++ {
		centers[i] = append([]float64(nil), points[perm[i]]...)
	}
	return centers
}

func nearestCenter(point []float64, centers [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, center := range centers {
		d := squaredDistance(point, center)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}

// silhouetteScore computes the mean silhouette over all points in
// standardized space.
func silhouetteScore(points [][]float64, assignments []int, k int) float64 {
	n := len(points)
	if n <= k || k < 2 {
		return 0
	}

	total := 0.0
	counted := 0
	for i := range points {
		own := assignments[i]

		// Mean distance to own cluster (excluding self) and the nearest
		// other cluster.
		ownSum, ownCount := 0.0, 0
		otherSums := make([]float64, k)
		otherCounts := make([]int, k)
		for j := range points {
			if i == j {
				continue
			}
			d := math.Sqrt(squaredDistance(points[i], points[j]))
			if assignments[j] == own {
				ownSum += d
				ownCount++
			} else {
				otherSums[assignments[j]] += d
				otherCounts[assignments[j]]++
			}
		}
		if ownCount == 0 {
			continue
		}

		a := ownSum / float64(ownCount)
		b := math.Inf(1)
		for c := 0; c < k; c++ {
			if c == own || otherCounts[c] == 0 {
				continue
			}
			avg := otherSums[c] / float64(otherCounts[c])
			if avg < b {
				b = avg
			}
		}
		if math.IsInf(b, 1) {
			continue
		}

		denom := math.Max(a, b)
		if denom > 0 {
			total += (b - a) / denom
			counted++
		}
	}

	if counted == 0 {
		return 0
	}
	return total / float64(counted)
}
