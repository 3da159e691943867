package subscription

import (
	"slices"
	"time"
)

// Plan is a subscription tier
type Plan string

const (
	PlanFree       Plan = "free"
	PlanBasic      Plan = "basic"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// Unlimited marks a quota without an upper bound.
const Unlimited = -1

const trialDays = 30

// PlanSpec describes what a plan grants
type PlanSpec struct {
	Name     string
	Price    float64
	Quota    int
	Features []string
}

var plans = map[Plan]PlanSpec{
	PlanFree: {
		Name:  "Free",
		Price: 0,
		Quota: 100,
		Features: []string{
			"100 product collections per month",
			"Shopify platform support",
			"Basic data export",
			"Product list management",
		},
	},
	PlanBasic: {
		Name:  "Basic",
		Price: 29,
		Quota: 1000,
		Features: []string{
			"1000 product collections per month",
			"All platforms supported",
			"Batch operations",
			"Multi-format export",
			"Email support",
		},
	},
	PlanPro: {
		Name:  "Pro",
		Price: 99,
		Quota: 10000,
		Features: []string{
			"10000 product collections per month",
			"All platforms supported",
			"Advanced batch operations",
			"API access",
			"Priority support",
			"Analytics reports",
		},
	},
	PlanEnterprise: {
		Name:  "Enterprise",
		Price: 299,
		Quota: Unlimited,
		Features: []string{
			"Unlimited product collections",
			"All platforms supported",
			"All advanced features",
			"API access",
			"Dedicated account manager",
			"Custom services",
			"SLA guarantee",
		},
	},
}

// SpecFor returns the catalog entry for plan.
func SpecFor(plan Plan) (PlanSpec, bool) {
	spec, ok := plans[plan]
	if !ok {
		return PlanSpec{}, false
	}
	spec.Features = slices.Clone(spec.Features)
	return spec, true
}

type Quota struct {
	Total int `json:"total"`
	Used  int `json:"used"`
}

func (q Quota) IsUnlimited() bool {
	return q.Total == Unlimited
}

// Allows reports whether n more units fit into the quota.
func (q Quota) Allows(n int) bool {
	return q.IsUnlimited() || q.Used+n <= q.Total
}

// Subscription is the plan and quota record of one user
type Subscription struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Plan      Plan      `json:"plan"`
	Quota     Quota     `json:"quota"`
	Features  []string  `json:"features"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	IsActive  bool      `json:"isActive"`
}

// NewFree builds the subscription every account starts with.
func NewFree(id, userID string, now time.Time) *Subscription {
	spec, _ := SpecFor(PlanFree)
	return &Subscription{
		ID:        id,
		UserID:    userID,
		Plan:      PlanFree,
		Quota:     Quota{Total: spec.Quota, Used: 0},
		Features:  spec.Features,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, trialDays),
		IsActive:  true,
	}
}

func (s *Subscription) Clone() *Subscription {
	if s == nil {
		return nil
	}
	c := *s
	c.Features = slices.Clone(s.Features)
	return &c
}
