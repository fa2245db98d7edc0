package engine

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/AN0DA/JobTrackr-sub000/internal/store"
	"github.com/AN0DA/JobTrackr-sub000/pkg"
	"github.com/AN0DA/JobTrackr-sub000/pkg/model"
)

// Analytics computes dashboard statistics over the full application set.
// Every method reads the store fresh at call time; there is no cached state,
// so identical data always produces identical output.
type Analytics struct {
	store store.Store
	now   func() time.Time
}

func NewAnalytics(s store.Store) *Analytics {
	return &Analytics{store: s, now: func() time.Time { return time.Now().UTC() }}
}

// SetClock overrides the reference time used for windowed computations.
func (a *Analytics) SetClock(now func() time.Time) { a.now = now }

func (a *Analytics) allApplications(ctx context.Context) ([]model.Application, error) {
	return a.store.ListApplications(ctx, store.ApplicationFilter{})
}

func (a *Analytics) TotalApplications(ctx context.Context) (int, error) {
	apps, err := a.allApplications(ctx)
	if err != nil {
		return 0, err
	}
	return len(apps), nil
}

// StatusBreakdown counts applications per status, including zero counts.
func (a *Analytics) StatusBreakdown(ctx context.Context) ([]model.StatusCount, error) {
	apps, err := a.allApplications(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[model.Status]int, len(model.AllStatuses))
	for _, app := range apps {
		counts[app.Status]++
	}
	out := make([]model.StatusCount, 0, len(model.AllStatuses))
	for _, s := range model.AllStatuses {
		out = append(out, model.StatusCount{Status: s, Count: counts[s]})
	}
	return out, nil
}

func rate(numerator, denominator int) int {
	if denominator == 0 {
		return 0
	}
	return numerator * 100 / denominator
}

// ResponseRate is the floor percentage of applications past SAVED that got
// any company response. Zero when nothing has been applied yet.
func (a *Analytics) ResponseRate(ctx context.Context) (int, error) {
	apps, err := a.allApplications(ctx)
	if err != nil {
		return 0, err
	}
	var applied, responded int
	for _, app := range apps {
		if app.Status == model.StatusSaved {
			continue
		}
		applied++
		if app.Status.Responded() {
			responded++
		}
	}
	return rate(responded, applied), nil
}

// InterviewRate uses the same applied denominator with the interview-stage
// numerator.
func (a *Analytics) InterviewRate(ctx context.Context) (int, error) {
	apps, err := a.allApplications(ctx)
	if err != nil {
		return 0, err
	}
	var applied, interviewed int
	for _, app := range apps {
		if app.Status == model.StatusSaved {
			continue
		}
		applied++
		if app.Status.ReachedInterview() {
			interviewed++
		}
	}
	return rate(interviewed, applied), nil
}

// ApplicationsPerWeek averages the total over the whole weeks spanned by the
// earliest and latest applied dates, with a minimum of one week.
func (a *Analytics) ApplicationsPerWeek(ctx context.Context) (float64, error) {
	apps, err := a.allApplications(ctx)
	if err != nil {
		return 0, err
	}
	if len(apps) == 0 {
		return 0, nil
	}
	earliest, latest := apps[0].AppliedDate, apps[0].AppliedDate
	for _, app := range apps[1:] {
		if app.AppliedDate.Before(earliest) {
			earliest = app.AppliedDate
		}
		if app.AppliedDate.After(latest) {
			latest = app.AppliedDate
		}
	}
	days := int(latest.Sub(earliest).Hours()/24) + 1
	weeks := float64(days) / 7
	if weeks < 1 {
		weeks = 1
	}
	return math.Round(float64(len(apps))/weeks*10) / 10, nil
}

// mondayOf aligns a date to the Monday starting its calendar week.
func mondayOf(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeeklyApplicationCounts buckets applications applied inside the trailing
// window by the Monday starting their week, ascending. Empty weeks are
// omitted, not zero-filled.
func (a *Analytics) WeeklyApplicationCounts(ctx context.Context, windowWeeks int) ([]model.WeekCount, error) {
	if windowWeeks <= 0 {
		windowWeeks = 8
	}
	apps, err := a.allApplications(ctx)
	if err != nil {
		return nil, err
	}
	start := a.now().AddDate(0, 0, -7*windowWeeks)
	buckets := make(map[time.Time]int)
	for _, app := range apps {
		if app.AppliedDate.Before(start) {
			continue
		}
		buckets[mondayOf(app.AppliedDate)]++
	}
	weeks := make([]time.Time, 0, len(buckets))
	for w := range buckets {
		weeks = append(weeks, w)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })
	out := make([]model.WeekCount, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, model.WeekCount{Week: w.Format("01/02"), Count: buckets[w]})
	}
	return out, nil
}

// WeeklyGrowth compares the current calendar week's application count to the
// previous week's, as a percent change.
func (a *Analytics) WeeklyGrowth(ctx context.Context) (int, error) {
	apps, err := a.allApplications(ctx)
	if err != nil {
		return 0, err
	}
	thisWeek := mondayOf(a.now())
	lastWeek := thisWeek.AddDate(0, 0, -7)
	var current, previous int
	for _, app := range apps {
		switch mondayOf(app.AppliedDate) {
		case thisWeek:
			current++
		case lastWeek:
			previous++
		}
	}
	return pkg.CalculateGrowth(current, previous), nil
}

// TopCompanies ranks companies by application count, annotated with their
// response and interview counts. Ties keep company insertion order.
func (a *Analytics) TopCompanies(ctx context.Context, limit int) ([]model.CompanyStats, error) {
	if limit <= 0 {
		limit = 5
	}
	companies, err := a.store.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	apps, err := a.allApplications(ctx)
	if err != nil {
		return nil, err
	}
	stats := make([]model.CompanyStats, 0, len(companies))
	index := make(map[int64]int, len(companies))
	for _, c := range companies {
		index[c.ID] = len(stats)
		stats = append(stats, model.CompanyStats{CompanyID: c.ID, Name: c.Name})
	}
	for _, app := range apps {
		i, ok := index[app.CompanyID]
		if !ok {
			continue
		}
		stats[i].Applications++
		if app.Status.Responded() {
			stats[i].Responses++
		}
		if app.Status.ReachedInterview() {
			stats[i].Interviews++
		}
	}
	filtered := stats[:0]
	for _, s := range stats {
		if s.Applications > 0 {
			filtered = append(filtered, s)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Applications > filtered[j].Applications
	})
	if limit < len(filtered) {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

const activitySourceCap = 5

// RecentActivity merges the most recent applications, the most recent
// interactions, and the soonest-due incomplete reminders. Each source is
// capped independently before the merge.
func (a *Analytics) RecentActivity(ctx context.Context, limit int) ([]model.ActivityItem, error) {
	if limit <= 0 {
		limit = 10
	}
	companies, err := a.store.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	companyNames := make(map[int64]string, len(companies))
	for _, c := range companies {
		companyNames[c.ID] = c.Name
	}
	apps, err := a.allApplications(ctx)
	if err != nil {
		return nil, err
	}
	appByID := make(map[int64]model.Application, len(apps))
	for _, app := range apps {
		appByID[app.ID] = app
	}
	companyOf := func(applicationID int64) string {
		app, ok := appByID[applicationID]
		if !ok {
			return "Unknown"
		}
		if name, ok := companyNames[app.CompanyID]; ok {
			return name
		}
		return "Unknown"
	}

	var items []model.ActivityItem

	recentApps := apps
	if len(recentApps) > activitySourceCap {
		recentApps = recentApps[:activitySourceCap]
	}
	for _, app := range recentApps {
		items = append(items, model.ActivityItem{
			Date:    app.AppliedDate,
			Type:    fmt.Sprintf("Applied (%s)", app.Status),
			Company: companyOf(app.ID),
			Details: fmt.Sprintf("%s - %s", app.JobTitle, app.Position),
		})
	}

	interactions, err := a.store.ListRecentInteractions(ctx, activitySourceCap)
	if err != nil {
		return nil, err
	}
	for _, in := range interactions {
		items = append(items, model.ActivityItem{
			Date:    in.Date,
			Type:    string(in.Type),
			Company: companyOf(in.ApplicationID),
			Details: truncateNote(deref(in.Notes)),
		})
	}

	incomplete := false
	reminders, err := a.store.ListReminders(ctx, store.ReminderFilter{Completed: &incomplete})
	if err != nil {
		return nil, err
	}
	now := a.now()
	var upcoming []model.ActivityItem
	for _, r := range reminders {
		if r.DueDate.Before(now) {
			continue
		}
		company := "Unknown"
		if r.ApplicationID != nil {
			company = companyOf(*r.ApplicationID)
		}
		upcoming = append(upcoming, model.ActivityItem{
			Date:    r.DueDate,
			Type:    "Reminder",
			Company: company,
			Details: r.Title,
		})
		if len(upcoming) == activitySourceCap {
			break
		}
	}
	items = append(items, upcoming...)

	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	if limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}

// Summary assembles the full dashboard payload.
func (a *Analytics) Summary(ctx context.Context) (*model.AnalyticsSummary, error) {
	total, err := a.TotalApplications(ctx)
	if err != nil {
		return nil, err
	}
	statusCounts, err := a.StatusBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	responseRate, err := a.ResponseRate(ctx)
	if err != nil {
		return nil, err
	}
	interviewRate, err := a.InterviewRate(ctx)
	if err != nil {
		return nil, err
	}
	perWeek, err := a.ApplicationsPerWeek(ctx)
	if err != nil {
		return nil, err
	}
	growth, err := a.WeeklyGrowth(ctx)
	if err != nil {
		return nil, err
	}
	weekly, err := a.WeeklyApplicationCounts(ctx, 0)
	if err != nil {
		return nil, err
	}
	top, err := a.TopCompanies(ctx, 0)
	if err != nil {
		return nil, err
	}
	recent, err := a.RecentActivity(ctx, 0)
	if err != nil {
		return nil, err
	}
	return &model.AnalyticsSummary{
		TotalApplications:   total,
		StatusCounts:        statusCounts,
		ResponseRate:        responseRate,
		InterviewRate:       interviewRate,
		ApplicationsPerWeek: perWeek,
		WeeklyGrowth:        growth,
		WeeklyApplications:  weekly,
		TopCompanies:        top,
		RecentActivity:      recent,
	}, nil
}
