package model

import "time"

// TimelineEvent is one row in the merged per-application history view.
type TimelineEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
}

type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
}

type WeekCount struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

type CompanyStats struct {
	CompanyID    int64  `json:"company_id"`
	Name         string `json:"name"`
	Applications int    `json:"applications"`
	Responses    int    `json:"responses"`
	Interviews   int    `json:"interviews"`
}

type ActivityItem struct {
	Date    time.Time `json:"date"`
	Type    string    `json:"type"`
	Company string    `json:"company"`
	Details string    `json:"details"`
}

// AnalyticsSummary is the dashboard payload assembled from the individual
// analytics computations.
type AnalyticsSummary struct {
	TotalApplications   int            `json:"total_applications"`
	StatusCounts        []StatusCount  `json:"status_counts"`
	ResponseRate        int            `json:"response_rate"`
	InterviewRate       int            `json:"interview_rate"`
	ApplicationsPerWeek float64        `json:"apps_per_week"`
	WeeklyGrowth        int            `json:"weekly_growth"`
	WeeklyApplications  []WeekCount    `json:"weekly_applications"`
	TopCompanies        []CompanyStats `json:"top_companies"`
	RecentActivity      []ActivityItem `json:"recent_activity"`
}
