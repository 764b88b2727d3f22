// Package catalog loads and normalizes the AWS service reference data
// that lab editors pick services from. Read-only from the tree's point
// of view.
package catalog

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/golabz/cloudslice-editor/internal/models"
	"github.com/golabz/cloudslice-editor/internal/remote"
)

// Catalog is the grouped, searchable view of the service list
type Catalog struct {
	byCategory map[string][]models.Service
}

// Fetch pulls the raw rows and normalizes them into the grouped
// catalog. The raw rows name the service under a "services" column -
// that rename happens here, once, instead of in every editor.
func Fetch(ctx context.Context, client remote.Client, log *zap.Logger) (*Catalog, error) {
	if log == nil {
		log = zap.NewNop()
	}

	raw, err := client.GetAwsServices(ctx)
	if err != nil {
		return nil, err
	}

	c := &Catalog{byCategory: make(map[string][]models.Service)}
	for _, r := range raw {
		if r.Services == "" {
			log.Warn("skipping catalog row with empty service name",
				zap.String("category", r.Category))
			continue
		}
		c.byCategory[r.Category] = append(c.byCategory[r.Category], models.Service{
			Name:           r.Services,
			Category:       r.Category,
			Description:    r.Description,
			ServicesPrefix: r.ServicesPrefix,
		})
	}
	return c, nil
}

// Categories lists the category names, sorted for stable display
func (c *Catalog) Categories() []string {
	out := make([]string, 0, len(c.byCategory))
	for cat := range c.byCategory {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// FilterCategories returns category names matching the search text,
// case-insensitive
func (c *Catalog) FilterCategories(search string) []string {
	search = strings.ToLower(search)
	out := make([]string, 0)
	for _, cat := range c.Categories() {
		if strings.Contains(strings.ToLower(cat), search) {
			out = append(out, cat)
		}
	}
	return out
}

// Services returns the services within one category
func (c *Catalog) Services(category string) []models.Service {
	return append([]models.Service(nil), c.byCategory[category]...)
}

// FilterServices searches a category's services by name or
// description, case-insensitive
func (c *Catalog) FilterServices(category, search string) []models.Service {
	search = strings.ToLower(search)
	out := make([]models.Service, 0)
	for _, svc := range c.byCategory[category] {
		if strings.Contains(strings.ToLower(svc.Name), search) ||
			strings.Contains(strings.ToLower(svc.Description), search) {
			out = append(out, svc)
		}
	}
	return out
}

// Find looks a service up by name across all categories
func (c *Catalog) Find(name string) (models.Service, bool) {
	for _, services := range c.byCategory {
		for _, svc := range services {
			if svc.Name == name {
				return svc, true
			}
		}
	}
	return models.Service{}, false
}
