package entity

import "time"

// Plain aggregation shapes. These endpoints are simple group-by queries with
// no adaptive logic behind them.

type DomainStats struct {
	Domain        string    `json:"domain" db:"domain"`
	VisitCount    int       `json:"visit_count" db:"visit_count"`
	ActiveMinutes float64   `json:"active_minutes" db:"active_minutes"`
	Percentage    float64   `json:"percentage" db:"-"`
	FirstVisit    time.Time `json:"first_visit" db:"first_visit"`
	LastVisit     time.Time `json:"last_visit" db:"last_visit"`
}

type TopDomainsResponse struct {
	UserID       string        `json:"user_id"`
	Period       string        `json:"period"`
	TotalDomains int           `json:"total_domains"`
	TotalVisits  int           `json:"total_visits"`
	Domains      []DomainStats `json:"domains"`
}

type DailySummary struct {
	Date          string  `json:"date" db:"date"`
	VisitCount    int     `json:"visit_count" db:"visit_count"`
	TotalMinutes  float64 `json:"total_minutes" db:"total_minutes"`
	ActiveMinutes float64 `json:"active_minutes" db:"active_minutes"`
	UniqueDomains int     `json:"unique_domains" db:"unique_domains"`
}

type WeeklySummary struct {
	WeekStart     string  `json:"week_start" db:"week_start"`
	VisitCount    int     `json:"visit_count" db:"visit_count"`
	TotalMinutes  float64 `json:"total_minutes" db:"total_minutes"`
	ActiveMinutes float64 `json:"active_minutes" db:"active_minutes"`
	UniqueDomains int     `json:"unique_domains" db:"unique_domains"`
}
