// Package schema turns canonical envelope rows into strongly-typed items.
// Each upstream endpoint maps to one item kind; rows that fail validation
// are dropped and logged, never fatal.
package schema

import (
	"fmt"
	"strings"
)

// Kind identifies the typed item shape of an endpoint.
type Kind int

const (
	// KindAnnouncement covers support-program announcement records.
	KindAnnouncement Kind = iota
	// KindBusiness covers business-information records.
	KindBusiness
	// KindContent covers editorial content records.
	KindContent
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAnnouncement:
		return "announcement"
	case KindBusiness:
		return "business"
	case KindContent:
		return "content"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// known reports whether k is a defined kind.
func (k Kind) known() bool {
	return k >= KindAnnouncement && k <= KindContent
}

// KindOf selects the kind for an endpoint by substring match. Unmatched
// endpoint names default to the announcement kind.
func KindOf(endpoint string) Kind {
	name := strings.ToLower(endpoint)
	switch {
	case strings.Contains(name, "announcement"):
		return KindAnnouncement
	case strings.Contains(name, "business"):
		return KindBusiness
	case strings.Contains(name, "content"):
		return KindContent
	default:
		return KindAnnouncement
	}
}

// Item is implemented by every typed record.
type Item interface {
	// ItemKind returns the kind the item belongs to.
	ItemKind() Kind
}

// Announcement is a support-program announcement record.
type Announcement struct {
	ID           string `mapstructure:"id" json:"id" validate:"required"`
	Title        string `mapstructure:"title" json:"title" validate:"required"`
	Organization string `mapstructure:"organizationName" json:"organizationName"`
	StartDate    string `mapstructure:"startDate" json:"startDate"`
	EndDate      string `mapstructure:"endDate" json:"endDate"`
	DetailURL    string `mapstructure:"detailUrl" json:"detailUrl"`
}

// ItemKind implements Item.
func (Announcement) ItemKind() Kind { return KindAnnouncement }

// Business is a business-information record.
type Business struct {
	ID            string `mapstructure:"id" json:"id" validate:"required"`
	BusinessName  string `mapstructure:"businessName" json:"businessName" validate:"required"`
	BusinessType  string `mapstructure:"businessType" json:"businessType"`
	BusinessField string `mapstructure:"businessField" json:"businessField"`
	SupportScale  string `mapstructure:"supportScale" json:"supportScale"`
}

// ItemKind implements Item.
func (Business) ItemKind() Kind { return KindBusiness }

// Content is an editorial content record.
type Content struct {
	ID           string `mapstructure:"id" json:"id" validate:"required"`
	ContentType  string `mapstructure:"contentType" json:"contentType"`
	Title        string `mapstructure:"title" json:"title" validate:"required"`
	Body         string `mapstructure:"body" json:"body"`
	ViewCount    int    `mapstructure:"viewCount" json:"viewCount"`
	RegisteredAt string `mapstructure:"registeredAt" json:"registeredAt"`
}

// ItemKind implements Item.
func (Content) ItemKind() Kind { return KindContent }
