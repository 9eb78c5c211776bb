package stats

// ============================================================================
// DESCRIPTIVE RESULTS
// ============================================================================

// Percentiles holds the standard reporting percentiles, computed with the
// type-7 linear-interpolation quantile method.
type Percentiles struct {
	P25 float64 `json:"25"`
	P50 float64 `json:"50"`
	P75 float64 `json:"75"`
	P90 float64 `json:"90"`
	P95 float64 `json:"95"`
	P99 float64 `json:"99"`
}

// StatisticalSummary is the immutable result bag of single-series scalar
// statistics. Built fresh per call, never mutated.
type StatisticalSummary struct {
	Count       int         `json:"count"`
	Mean        float64     `json:"mean"`
	Median      float64     `json:"median"`
	Mode        float64     `json:"mode"`
	Std         float64     `json:"std"`
	Variance    float64     `json:"variance"`
	Min         float64     `json:"min"`
	Max         float64     `json:"max"`
	Range       float64     `json:"range"`
	Percentiles Percentiles `json:"percentiles"`
	Skewness    float64     `json:"skewness"`
	Kurtosis    float64     `json:"kurtosis"`
	Q1          float64     `json:"q1"`
	Q3          float64     `json:"q3"`
	IQR         float64     `json:"iqr"`
}

// ============================================================================
// INFERENTIAL RESULTS
// ============================================================================

// Test type identifiers accepted by the hypothesis test dispatcher.
const (
	TestTTestOneSample = "t_test_one_sample"
	TestTTest          = "t_test"
	TestANOVA          = "anova"
)

// Decision outcomes of a hypothesis test at the given alpha.
const (
	DecisionReject       = "reject"
	DecisionFailToReject = "fail_to_reject"
)

// TestResult reports a hypothesis test outcome.
type TestResult struct {
	TestType         string  `json:"test_type"`
	Statistic        float64 `json:"statistic"`
	PValue           float64 `json:"p_value"`
	DegreesOfFreedom float64 `json:"degrees_of_freedom"`
	Alpha            float64 `json:"alpha"`
	Result           string  `json:"test_result"`
}

// CIResult reports a confidence interval for a sample mean.
type CIResult struct {
	Mean            float64 `json:"mean"`
	MarginOfError   float64 `json:"margin_of_error"`
	LowerBound      float64 `json:"lower_bound"`
	UpperBound      float64 `json:"upper_bound"`
	ConfidenceLevel float64 `json:"confidence_level"`
	CriticalValue   float64 `json:"critical_value"`
	Method          string  `json:"method"` // "t" below the normal-approximation cutoff, "normal" above
	SampleSize      int     `json:"sample_size"`
}

// CorrelationCoefficient pairs a coefficient with its p-value.
type CorrelationCoefficient struct {
	Coefficient float64 `json:"coefficient"`
	PValue      float64 `json:"p_value"`
}

// CorrelationResult reports Pearson and Spearman correlation with a bucketed
// strength label on |pearson|.
type CorrelationResult struct {
	Pearson    CorrelationCoefficient `json:"pearson"`
	Spearman   CorrelationCoefficient `json:"spearman"`
	Strength   string                 `json:"strength"`
	Direction  string                 `json:"direction"`
	SampleSize int                    `json:"sample_size"`
}

// ============================================================================
// MODELING RESULTS
// ============================================================================

// ResidualStats summarizes regression residuals.
type ResidualStats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// RegressionResult reports an ordinary least-squares fit.
type RegressionResult struct {
	Slope       float64       `json:"slope"`
	Intercept   float64       `json:"intercept"`
	R           float64       `json:"r"`
	RSquared    float64       `json:"r_squared"`
	PValue      float64       `json:"p_value"`
	StdError    float64       `json:"std_error"`
	Residuals   ResidualStats `json:"residuals"`
	Predictions []float64     `json:"predictions"`
}

// ClusterStats summarizes one k-means cluster in original feature space.
type ClusterStats struct {
	Cluster int       `json:"cluster"`
	Size    int       `json:"size"`
	Means   []float64 `json:"means"`
	Stds    []float64 `json:"stds"`
}

// ClusterResult reports a seeded k-means run. Centers are in standardized
// feature space; per-cluster stats are in original units.
type ClusterResult struct {
	NClusters       int            `json:"n_clusters"`
	Clusters        []ClusterStats `json:"clusters"`
	Centers         [][]float64    `json:"centers"`
	SilhouetteScore float64        `json:"silhouette_score"`
	Inertia         float64        `json:"inertia"`
	Seed            int64          `json:"seed"`
}

// PCAResult reports a principal component analysis over standardized features.
type PCAResult struct {
	NComponents             int       `json:"n_components"`
	ExplainedVarianceRatio  []float64 `json:"explained_variance_ratio"`
	CumulativeVarianceRatio []float64 `json:"cumulative_variance_ratio"`
	FirstComponentLoadings  []float64 `json:"first_component_loadings"`
}

// PowerResult reports a statistical power computation. Exactly one of
// sample size / power was supplied; the other was solved for.
type PowerResult struct {
	EffectSize float64 `json:"effect_size"`
	Alpha      float64 `json:"alpha"`
	SampleSize int     `json:"sample_size"`
	Power      float64 `json:"power"`
	SolvedFor  string  `json:"solved_for"`
}
