// Package analyzer computes usage metrics, behavioral insights, and task
// groupings from session data. Every pass is a pure function of the
// session collection (plus, for cost and efficiency, the raw stats file);
// passes have no ordering dependency on each other.
package analyzer

// DayCount pairs a calendar date with a count.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// OpsTrendDay is one day of the writes-vs-edits trend.
type OpsTrendDay struct {
	Date   string `json:"date"`
	Writes int    `json:"writes"`
	Edits  int    `json:"edits"`
}

// VelocityMetrics captures output-volume indicators.
type VelocityMetrics struct {
	TotalWrites          int        `json:"totalWrites"`
	TotalEdits           int        `json:"totalEdits"`
	TotalCodeOperations  int        `json:"totalCodeOperations"`
	LinesChangedEstimate int        `json:"linesChangedEstimate"`
	FilesModifiedByDay   []DayCount `json:"filesModifiedByDay"`
	AverageOpsPerDay     float64    `json:"averageOpsPerDay"`

	// DailyTrend covers the trailing 14 local calendar days, zero-filled.
	DailyTrend []OpsTrendDay `json:"dailyTrend"`
}

// EfficiencyMetrics captures when and how densely work happens.
type EfficiencyMetrics struct {
	// PeakHoursHeatmap counts operations by [weekday][hour], with
	// weekday 0 = Sunday (Go convention).
	PeakHoursHeatmap [7][24]int `json:"peakHoursHeatmap"`

	// SessionDurations buckets session lengths in minutes:
	// "0-15", "15-30", "30-60", "60+".
	SessionDurations map[string]int `json:"sessionDurations"`

	OpsPerSession   float64 `json:"opsPerSession"`
	TokensPerCodeOp float64 `json:"tokensPerCodeOp"`
}

// WeekdayAverage is the mean code operations per active day for one
// day of the week.
type WeekdayAverage struct {
	Day    string  `json:"day"`
	AvgOps float64 `json:"avgOps"`
}

// FileEditCount pairs a file basename with its code-operation count.
type FileEditCount struct {
	FileName string `json:"fileName"`
	Count    int    `json:"count"`
}

// PatternMetrics captures working-habit indicators.
type PatternMetrics struct {
	ByDayOfWeek     []WeekdayAverage `json:"productivityByDayOfWeek"`
	CurrentStreak   int              `json:"currentStreak"`
	LongestStreak   int              `json:"longestStreak"`
	FocusSessions   int              `json:"focusSessions"`
	MostEditedFiles []FileEditCount  `json:"mostEditedFiles"`
	TotalActiveDays int              `json:"totalActiveDays"`
}

// ToolTrendDay is one day of the per-kind tool usage trend.
type ToolTrendDay struct {
	Date     string `json:"date"`
	Writes   int    `json:"writes"`
	Edits    int    `json:"edits"`
	Reads    int    `json:"reads"`
	Commands int    `json:"commands"`
}

// ToolUsageMetrics captures the operation-kind distribution.
type ToolUsageMetrics struct {
	Distribution   map[string]int `json:"distribution"`
	ReadWriteRatio float64        `json:"readWriteRatio"`
	RatioInsight   string         `json:"ratioInsight"`

	// DailyTrend covers the trailing 14 local calendar days, zero-filled.
	DailyTrend []ToolTrendDay `json:"trends"`
}

// TopicSummary is a merged topic group in a daily summary.
type TopicSummary struct {
	Topic          string   `json:"topic"`
	OperationCount int      `json:"operationCount"`
	Files          []string `json:"filesInvolved"`
}

// DailySummary aggregates one calendar day of activity.
type DailySummary struct {
	Date            string         `json:"date"`
	SessionCount    int            `json:"sessionCount"`
	ActiveMinutes   int            `json:"activeMinutes"`
	FilesModified   []string       `json:"filesModified"`
	OperationCounts map[string]int `json:"operationCounts"`
	Topics          []TopicSummary `json:"topics"`
}

// DateNavigation reports the neighboring active dates around a target
// date. Navigation skips inactive days entirely.
type DateNavigation struct {
	HasPrevious  bool   `json:"hasPrevious"`
	PreviousDate string `json:"previousDate,omitempty"`
	HasNext      bool   `json:"hasNext"`
	NextDate     string `json:"nextDate,omitempty"`
}

// StruggleFile flags a file that took repeated edits within one session.
type StruggleFile struct {
	FileName  string `json:"fileName"`
	FilePath  string `json:"filePath"`
	EditCount int    `json:"editCount"`
	Severity  string `json:"severity"`
	Date      string `json:"date"`
	SessionID string `json:"sessionId"`
}

// RepeatedCommand flags a run of consecutive identical shell commands.
type RepeatedCommand struct {
	Command     string `json:"command"`
	Occurrences int    `json:"occurrences"`
	Note        string `json:"note"`
	Date        string `json:"date"`
}

// ErrorMention tallies an error keyword found in user prompts.
type ErrorMention struct {
	Keyword string   `json:"keyword"`
	Count   int      `json:"count"`
	Samples []string `json:"samples"`
}

// ThrashingSession flags a burst of churn confined to a few files.
type ThrashingSession struct {
	SessionID       string   `json:"sessionId"`
	OperationCount  int      `json:"operationCount"`
	UniqueFileCount int      `json:"uniqueFilesCount"`
	DurationMinutes int      `json:"duration"`
	Date            string   `json:"date"`
	Files           []string `json:"files"`
}

// ErrorPatterns is the combined result of the anomaly detectors.
type ErrorPatterns struct {
	StruggleFiles     []StruggleFile     `json:"struggleFiles"`
	RepeatedCommands  []RepeatedCommand  `json:"repeatedCommands"`
	ErrorMentions     []ErrorMention     `json:"errorMentions"`
	ThrashingSessions []ThrashingSession `json:"thrashingSessions"`
}

// TaskDateRange is the inclusive date span of a task's sessions.
type TaskDateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Task is a cluster of related sessions inferred from similarity.
type Task struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	InferredFrom  string        `json:"inferredFrom"`
	SessionCount  int           `json:"sessionCount"`
	TotalMinutes  int           `json:"totalMinutes"`
	FilesInvolved []string      `json:"filesInvolved"`
	DateRange     TaskDateRange `json:"dateRange"`
}

// TaskSummary aggregates a task list.
type TaskSummary struct {
	TotalTasks        int `json:"totalTasks"`
	TotalTimeMinutes  int `json:"totalTimeMinutes"`
	AvgMinutesPerTask int `json:"avgMinutesPerTask"`
}
