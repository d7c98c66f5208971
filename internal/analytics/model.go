package analytics

// QueryBucket counts one UTC day of dispatched queries
type QueryBucket struct {
	Date       string         `json:"date"`
	Total      int            `json:"total"`
	Categories map[string]int `json:"categories"`
}

// TokenBucket sums one UTC day of token flow
type TokenBucket struct {
	Date   string  `json:"date"`
	Earned float64 `json:"earned"`
	Spent  float64 `json:"spent"`
}

// CategoryCount is one row of the top-categories ranking
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// DailyPoint is one day of the trend
type DailyPoint struct {
	Date         string  `json:"date"`
	Queries      int     `json:"queries"`
	TokensEarned float64 `json:"tokens_earned"`
	TokensSpent  float64 `json:"tokens_spent"`
}

// Metrics is the rolled-up view over the last Days days
type Metrics struct {
	Days          int             `json:"days"`
	TotalQueries  int             `json:"total_queries"`
	TokensEarned  float64         `json:"tokens_earned"`
	TokensSpent   float64         `json:"tokens_spent"`
	UniqueUsers   int             `json:"unique_users"`
	TopCategories []CategoryCount `json:"top_categories"`
	DailyTrend    []DailyPoint    `json:"daily_trend"`
}
