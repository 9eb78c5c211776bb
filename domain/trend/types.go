package trend

// Trend kinds accepted by the detector.
const (
	KindLinear           = "linear"
	KindSeasonal         = "seasonal"
	KindCyclical         = "cyclical"
	KindStructuralBreaks = "structural_breaks"
)

// DefaultKinds is the full decomposition pipeline in run order.
var DefaultKinds = []string{KindLinear, KindSeasonal, KindCyclical, KindStructuralBreaks}

// Trend directions reported by the linear component.
const (
	DirectionIncreasing = "increasing"
	DirectionDecreasing = "decreasing"
	DirectionStable     = "stable"
)

// Coefficients holds the fitted line parameters.
type Coefficients struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// MovingAverages carries the short-window smoothers when enough points exist.
type MovingAverages struct {
	MA3 []float64 `json:"ma_3,omitempty"`
	MA5 []float64 `json:"ma_5,omitempty"`
}

// ReversalPoint marks an index where the local direction of motion flipped.
type ReversalPoint struct {
	Index int     `json:"index"`
	Type  string  `json:"type"` // "peak" or "trough"
	Value float64 `json:"value"`
}

// LinearTrend is the OLS component of a trend report. When Error is set the
// remaining fields are zero; callers check error first.
type LinearTrend struct {
	Error          string          `json:"error,omitempty"`
	TrendDirection string          `json:"trend_direction"`
	TrendStrength  string          `json:"trend_strength"`
	Coefficients   Coefficients    `json:"coefficients"`
	Correlation    float64         `json:"correlation"`
	PValue         float64         `json:"p_value"`
	StdError       float64         `json:"std_error"`
	MovingAverages MovingAverages  `json:"moving_averages"`
	ReversalPoints []ReversalPoint `json:"reversal_points"`
	Forecast       []float64       `json:"forecast"`
}

// MonthlyStat summarizes the observations assigned to one calendar month.
type MonthlyStat struct {
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Count int     `json:"count"`
}

// Decomposition is the naive trend/seasonal/residual split. The residual is
// identically zero by construction (residual = value - trend - (value - trend));
// the shape is kept for downstream compatibility.
type Decomposition struct {
	Trend    []float64 `json:"trend"`
	Seasonal []float64 `json:"seasonal"`
	Residual []float64 `json:"residual"`
}

// Month source tags for the seasonal component.
const (
	MonthSourceCalendar = "calendar"
	MonthSourceFallback = "index_fallback"
)

// SeasonalTrend is the calendar-month component of a trend report.
type SeasonalTrend struct {
	Error               string              `json:"error,omitempty"`
	SeasonalityStrength float64             `json:"seasonality_strength"`
	StrengthLevel       string              `json:"strength_level"`
	MonthlyStatistics   map[int]MonthlyStat `json:"monthly_statistics"`
	PeakMonth           int                 `json:"peak_month"`
	TroughMonth         int                 `json:"trough_month"`
	MonthSource         string              `json:"month_source"`
	Decomposition       Decomposition       `json:"decomposition"`
	Forecast            []float64           `json:"forecast"`
}

// BusinessCycle is one expansion or contraction phase found on raw values.
type BusinessCycle struct {
	Type       string  `json:"type"` // "expansion" or "contraction"
	StartIndex int     `json:"start_index"`
	EndIndex   int     `json:"end_index"`
	Duration   int     `json:"duration"`
	Amplitude  float64 `json:"amplitude"`
}

// CyclicalTrend is the autocorrelation-based component of a trend report.
type CyclicalTrend struct {
	Error             string          `json:"error,omitempty"`
	Autocorrelations  []float64       `json:"autocorrelations"`
	CandidateCycles   []int           `json:"candidate_cycles"`
	SignificantCycles []int           `json:"significant_cycles"`
	BusinessCycles    []BusinessCycle `json:"business_cycles"`
	CyclicalStrength  float64         `json:"cyclical_strength"`
	StrengthLevel     string          `json:"strength_level"`
}

// CUSUMResult reports the cumulative-sum control statistics.
type CUSUMResult struct {
	Statistics        []float64 `json:"statistics"`
	Threshold         float64   `json:"threshold"`
	BreakIndices      []int     `json:"break_indices"`
	SignificantBreaks int       `json:"significant_breaks"`
}

// ChowResult reports the midpoint Chow test.
type ChowResult struct {
	FStatistic    float64 `json:"f_statistic"`
	PValue        float64 `json:"p_value"`
	BreakPoint    int     `json:"break_point"`
	BreakDetected bool    `json:"break_detected"`
}

// Segment summarizes the series between consecutive change points.
type Segment struct {
	Start int     `json:"start"`
	End   int     `json:"end"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
}

// StructuralBreaksTrend is the break-detection component of a trend report.
type StructuralBreaksTrend struct {
	Error        string      `json:"error,omitempty"`
	CUSUM        CUSUMResult `json:"cusum"`
	ChowTest     ChowResult  `json:"chow_test"`
	ChangePoints []int       `json:"change_points"`
	Segments     []Segment   `json:"segments"`
}

// Trends groups whichever kind-specific results were requested.
type Trends struct {
	Linear           *LinearTrend           `json:"linear,omitempty"`
	Seasonal         *SeasonalTrend         `json:"seasonal,omitempty"`
	Cyclical         *CyclicalTrend         `json:"cyclical,omitempty"`
	StructuralBreaks *StructuralBreaksTrend `json:"structural_breaks,omitempty"`
}

// Pattern complexity levels by how many secondary patterns were computed.
const (
	ComplexitySimple   = "simple"
	ComplexityModerate = "moderate"
	ComplexityComplex  = "complex"
)

// OverallAssessment synthesizes the per-kind results into the headline view
// dashboards key into.
type OverallAssessment struct {
	PrimaryTrend        string  `json:"primary_trend"`
	TrendConfidence     float64 `json:"trend_confidence"`
	PatternComplexity   string  `json:"pattern_complexity"`
	ForecastReliability string  `json:"forecast_reliability"`
}

// TrendReport is the full detector output for one series.
type TrendReport struct {
	ValueField        string            `json:"value_field,omitempty"`
	DataPoints        int               `json:"data_points"`
	Trends            Trends            `json:"trends"`
	OverallAssessment OverallAssessment `json:"overall_assessment"`
}
