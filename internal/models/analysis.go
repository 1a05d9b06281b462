package models

// ScoreMetric names a statistical indicator.
type ScoreMetric string

const (
	MetricHealth    ScoreMetric = "health"
	MetricMigration ScoreMetric = "migration"
	MetricAbuse     ScoreMetric = "abuse"
)

// ScoreLevel is the aggregation level of a score board.
type ScoreLevel string

const (
	LevelNational     ScoreLevel = "national"
	LevelState        ScoreLevel = "state"
	LevelConstituency ScoreLevel = "constituency"
)

// ScoreItem is one ranked entity.
type ScoreItem struct {
	Rank   int     `json:"rank"`
	Entity string  `json:"entity"`
	Score  float64 `json:"score"`
}

// ScoreQuery selects one score board.
type ScoreQuery struct {
	Metric ScoreMetric
	Level  ScoreLevel
	State  string
}
