// Package content loads the curated hubs, pricing plans and quotes that ship
// with the binary.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"devdeck/internal/domain"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// ErrHubNotFound is returned for an unknown hub slug.
var ErrHubNotFound = errors.New("hub not found")

type Item struct {
	Title       string   `yaml:"title" json:"title"`
	URL         string   `yaml:"url,omitempty" json:"url,omitempty"`
	Description string   `yaml:"description" json:"description"`
	Body        string   `yaml:"body,omitempty" json:"body,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// HasTag reports whether the item carries tag, ignoring case.
func (i Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

type Hub struct {
	Slug        string `yaml:"slug" json:"slug"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Items       []Item `yaml:"items" json:"items"`
}

// Filter returns a copy of the hub holding only items tagged with tag.
// An empty tag keeps every item.
func (h Hub) Filter(tag string) Hub {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return h
	}
	out := h
	out.Items = make([]Item, 0, len(h.Items))
	for _, item := range h.Items {
		if item.HasTag(tag) {
			out.Items = append(out.Items, item)
		}
	}
	return out
}

// HubSummary is the listing view of a hub.
type HubSummary struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ItemCount   int    `json:"itemCount"`
}

type Plan struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	Tagline      string   `yaml:"tagline" json:"tagline"`
	MonthlyCents int      `yaml:"monthly_cents" json:"monthlyCents"`
	YearlyCents  int      `yaml:"yearly_cents" json:"yearlyCents"`
	Currency     string   `yaml:"currency" json:"currency"`
	Features     []string `yaml:"features" json:"features"`
	Highlighted  bool     `yaml:"highlighted,omitempty" json:"highlighted"`
	CallToAction string   `yaml:"cta" json:"cta"`
}

type quoteEntry struct {
	Text   string   `yaml:"text"`
	Author string   `yaml:"author"`
	Tags   []string `yaml:"tags,omitempty"`
}

type catalogFile struct {
	Hubs   []Hub        `yaml:"hubs"`
	Plans  []Plan       `yaml:"plans"`
	Quotes []quoteEntry `yaml:"quotes"`
}

// Catalog is the parsed, read-only content set. It is safe for concurrent use.
type Catalog struct {
	hubs   []Hub
	bySlug map[string]int
	plans  []Plan
	quotes []domain.Quote
}

// Load parses the catalog compiled into the binary.
func Load() (*Catalog, error) {
	return Parse(embeddedCatalog)
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		hubs:   file.Hubs,
		bySlug: make(map[string]int, len(file.Hubs)),
		plans:  file.Plans,
	}
	for i := range c.hubs {
		// Lookups are case-insensitive, so slugs are stored lowercased.
		slug := strings.ToLower(strings.TrimSpace(c.hubs[i].Slug))
		if slug == "" {
			return nil, fmt.Errorf("catalog hub %d: missing slug", i)
		}
		if _, dup := c.bySlug[slug]; dup {
			return nil, fmt.Errorf("catalog hub %q: duplicate slug", slug)
		}
		c.hubs[i].Slug = slug
		c.bySlug[slug] = i
	}
	seenPlans := make(map[string]struct{}, len(file.Plans))
	for i, plan := range file.Plans {
		if plan.ID == "" {
			return nil, fmt.Errorf("catalog plan %d: missing id", i)
		}
		if _, dup := seenPlans[plan.ID]; dup {
			return nil, fmt.Errorf("catalog plan %q: duplicate id", plan.ID)
		}
		seenPlans[plan.ID] = struct{}{}
	}
	for _, q := range file.Quotes {
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		c.quotes = append(c.quotes, domain.Quote{Text: q.Text, Author: q.Author, Tags: q.Tags})
	}
	return c, nil
}

func (c *Catalog) Hubs() []HubSummary {
	out := make([]HubSummary, 0, len(c.hubs))
	for _, hub := range c.hubs {
		out = append(out, HubSummary{
			Slug:        hub.Slug,
			Title:       hub.Title,
			Description: hub.Description,
			ItemCount:   len(hub.Items),
		})
	}
	return out
}

func (c *Catalog) Hub(slug string) (Hub, error) {
	i, ok := c.bySlug[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return Hub{}, fmt.Errorf("%w: %q", ErrHubNotFound, slug)
	}
	return c.hubs[i], nil
}

func (c *Catalog) Plans() []Plan {
	return append([]Plan(nil), c.plans...)
}

// Quotes returns the seed quotes for the quotes table.
func (c *Catalog) Quotes() []domain.Quote {
	return append([]domain.Quote(nil), c.quotes...)
}
