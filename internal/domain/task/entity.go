package task

import "time"

// Platform is an e-commerce platform products can be collected from
type Platform string

const (
	PlatformShopify    Platform = "shopify"
	PlatformShoplazza  Platform = "shoplazza"
	PlatformAliExpress Platform = "aliexpress"
	PlatformShopline   Platform = "shopline"
	PlatformWordPress  Platform = "wordpress"
	PlatformAlibaba    Platform = "alibaba"
	PlatformAmazon     Platform = "amazon"
)

// Platforms lists every supported platform in display order.
var Platforms = []Platform{
	PlatformShopify,
	PlatformShoplazza,
	PlatformAliExpress,
	PlatformShopline,
	PlatformWordPress,
	PlatformAlibaba,
	PlatformAmazon,
}

func PlatformNames() []string {
	names := make([]string, len(Platforms))
	for i, p := range Platforms {
		names[i] = string(p)
	}
	return names
}

// CollectionType tells whether a task targets one product page or a category
type CollectionType string

const (
	TypeSingle   CollectionType = "single"
	TypeCategory CollectionType = "category"
)

// ProductCount is how many products a collection of type t yields.
func (t CollectionType) ProductCount() int {
	if t == TypeSingle {
		return 1
	}
	return 5
}

// Status represents the status of a collection task
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// Task is a collection request and its outcome
type Task struct {
	ID                string         `json:"id"`
	UserID            string         `json:"userId"`
	Platform          Platform       `json:"platform"`
	Type              CollectionType `json:"type"`
	URL               string         `json:"url"`
	Status            Status         `json:"status"`
	Progress          int            `json:"progress"`
	TotalProducts     int            `json:"totalProducts"`
	CollectedProducts int            `json:"collectedProducts"`
	Error             *string        `json:"error,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
	CompletedAt       *time.Time     `json:"completedAt,omitempty"`
}

func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	c := *t
	if t.Error != nil {
		e := *t.Error
		c.Error = &e
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}
