package catalog

import (
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"catalogview/internal/domain"
)

const (
	noDescription  = "N/A"
	uncategorized  = "Uncategorized"
	unknownAdded   = "Unknown"
	addedLayout    = "Jan 2, 2006 3:04 PM"
	categoryPrompt = "Select Category"
	categoryFailed = "Error loading categories"
)

// dateLayouts covers ISO timestamps with and without zone and sqlite's CURRENT_TIMESTAMP.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
}

func parseDate(s string) (time.Time, bool) {
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func renderProduct(p domain.Product, now time.Time) ProductBlock {
	b := ProductBlock{
		ID:          p.ID,
		Name:        p.Name,
		Description: noDescription,
		Price:       "$" + p.UnitPrice.StringFixed(2),
		Category:    uncategorized,
		Added:       unknownAdded,
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) != "" {
		b.Description = *p.Description
	}
	switch {
	case p.CategoryName != nil && *p.CategoryName != "":
		b.Category = *p.CategoryName
	case p.CategoryID != nil:
		b.Category = "ID: " + strconv.Itoa(*p.CategoryID)
	}
	if p.ImageURL != nil {
		b.ImageURL = strings.TrimSpace(*p.ImageURL)
	}
	if p.DateAdded != "" {
		if t, ok := parseDate(p.DateAdded); ok {
			b.Added = t.Format(addedLayout)
			b.AddedAgo = humanize.RelTime(t, now, "ago", "from now")
		} else {
			b.Added = p.DateAdded
		}
	}
	return b
}

func renderProducts(list []domain.Product, now time.Time) []ProductBlock {
	out := make([]ProductBlock, 0, len(list))
	for _, p := range list {
		out = append(out, renderProduct(p, now))
	}
	return out
}

func categoryOptions(cats []domain.Category) []CategoryOption {
	opts := make([]CategoryOption, 0, len(cats)+1)
	opts = append(opts, CategoryOption{Value: "", Label: categoryPrompt})
	for _, c := range cats {
		opts = append(opts, CategoryOption{Value: strconv.Itoa(c.ID), Label: c.Name})
	}
	return opts
}
