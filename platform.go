package cdpsupport

import "strings"

// PlatformID identifies a supported Customer Data Platform.
type PlatformID string

// Supported platforms.
const (
	PlatformSegment   PlatformID = "segment"
	PlatformMParticle PlatformID = "mparticle"
	PlatformLytics    PlatformID = "lytics"
	PlatformZeotap    PlatformID = "zeotap"
)

// Platform is a documentation source for one Customer Data Platform.
type Platform struct {
	ID      PlatformID `json:"id" yaml:"id"`
	Name    string     `json:"name" yaml:"name"`
	SeedURL string     `json:"seedUrl" yaml:"seed_url"`

	// Description is built-in text used when no crawled documentation
	// is available for the platform.
	Description string `json:"description" yaml:"description"`
}

// Validate returns an error if the platform contains invalid fields.
func (p *Platform) Validate() error {
	if p.ID == "" {
		return Errorf(EINVALID, "platform ID required")
	}
	if p.SeedURL == "" {
		return Errorf(EINVALID, "platform %q seed URL required", p.ID)
	}
	return nil
}

// DisplayName returns the platform name, falling back to its ID.
func (p *Platform) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return string(p.ID)
}

// Catalog is the ordered list of supported platforms.
// Order matters: it drives identification tie-breaks and the
// cross-platform candidate set.
type Catalog []*Platform

// Find returns the platform with the given ID, or nil.
func (c Catalog) Find(id PlatformID) *Platform {
	for _, p := range c {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// IDs returns the platform IDs in catalog order.
func (c Catalog) IDs() []PlatformID {
	ids := make([]PlatformID, 0, len(c))
	for _, p := range c {
		ids = append(ids, p.ID)
	}
	return ids
}

// Validate returns an error if any platform is invalid or duplicated.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return Errorf(EINVALID, "at least one platform required")
	}
	seen := make(map[PlatformID]bool, len(c))
	for _, p := range c {
		if err := p.Validate(); err != nil {
			return err
		}
		if seen[p.ID] {
			return Errorf(ECONFLICT, "duplicate platform %q", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

// PlatformRule maps query terms to a platform.
type PlatformRule struct {
	Platform PlatformID `yaml:"platform"`
	Terms    []string   `yaml:"terms"`
}

// PlatformRules is an ordered rule list used to identify the platform a
// query is about. The first rule with a matching term wins.
type PlatformRules []PlatformRule

// Identify returns the platform named in the query.
// Terms are matched case-insensitively as substrings.
func (r PlatformRules) Identify(query string) (PlatformID, bool) {
	q := strings.ToLower(query)
	for _, rule := range r {
		for _, term := range rule.Terms {
			if term != "" && strings.Contains(q, strings.ToLower(term)) {
				return rule.Platform, true
			}
		}
	}
	return "", false
}

// RulesFor returns one rule per platform, matching on the platform ID,
// in catalog order.
func RulesFor(c Catalog) PlatformRules {
	rules := make(PlatformRules, 0, len(c))
	for _, p := range c {
		rules = append(rules, PlatformRule{Platform: p.ID, Terms: []string{string(p.ID)}})
	}
	return rules
}

// DefaultCatalog returns the four supported platforms.
func DefaultCatalog() Catalog {
	return Catalog{
		{
			ID:      PlatformSegment,
			Name:    "Segment",
			SeedURL: "https://segment.com/docs/?ref=nav",
			Description: `Segment is a customer data platform that helps businesses collect, clean, and control their customer data.
It allows companies to collect user events from any source (website, mobile apps, server, etc.),
and send that data to marketing, analytics, and data warehouse tools.

Key features include:
- Sources: Collect data from websites, mobile apps, servers, and cloud apps
- Connections: Route customer data to over 300+ tools with the flip of a switch
- Protocols: Standardize data collection and governance across the organization
- Personas: Build unified customer profiles and audiences
- Journeys: Create cross-channel campaigns with personalized messages`,
		},
		{
			ID:      PlatformMParticle,
			Name:    "mParticle",
			SeedURL: "https://docs.mparticle.com/",
			Description: `mParticle is a customer data platform that helps teams collect and connect their data.
It enables businesses to collect data from multiple sources and send it to various
analytics, marketing, and data warehouse platforms.

Key features include:
- Data collection from web, mobile, and server
- Identity resolution and user profiles
- Audience segmentation
- Real-time data filtering and forwarding
- Data governance and quality tools`,
		},
		{
			ID:      PlatformLytics,
			Name:    "Lytics",
			SeedURL: "https://docs.lytics.com/",
			Description: `Lytics is a customer data platform that uses machine learning to help marketers
and digital teams automate personalized marketing experiences. It focuses on
creating unified customer profiles and predictive insights.

Key features include:
- Behavioral scoring and segmentation
- Predictive marketing models
- Content affinity engine
- Unified customer profiles
- Cross-channel orchestration`,
		},
		{
			ID:      PlatformZeotap,
			Name:    "Zeotap",
			SeedURL: "https://docs.zeotap.com/home/en-us/",
			Description: `Zeotap is a customer intelligence platform (CDP) that helps brands better understand
their customers and predict behaviors. It specializes in identity resolution and
enrichment with high-quality data.

Key features include:
- Customer identity resolution
- Data enrichment
- Predictive audiences
- Privacy and consent management
- Cross-channel activation`,
		},
	}
}
