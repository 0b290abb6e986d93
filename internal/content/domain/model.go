package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Category is the closed set of project categories shown on the site.
type Category string

const (
	CategoryResidential Category = "Residential"
	CategoryCommercial  Category = "Commercial"
	CategorySteelPrefab Category = "Steel/Prefab"
	CategoryConsulting  Category = "Consulting"
	CategoryOther       Category = "Other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryResidential,
	CategoryCommercial,
	CategorySteelPrefab,
	CategoryConsulting,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Project is a portfolio entry. It is storage-agnostic and shared by the record
// store, the table backends and the HTTP layer.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Year        string   `json:"year"`
	Category    Category `json:"category"`
	Location    string   `json:"location"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
}

// Service is an offered service. Icon is a glyph token or an image URL; nil
// renders the default glyph.
type Service struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Icon        *string `json:"icon"`
}

// ProjectPatch carries the fields of a partial project update. Nil fields are
// left untouched.
type ProjectPatch struct {
	Title       *string   `json:"title,omitempty"`
	Year        *string   `json:"year,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Image       *string   `json:"image,omitempty"`
	Description *string   `json:"description,omitempty"`
}

func (p ProjectPatch) Empty() bool {
	return p.Title == nil && p.Year == nil && p.Category == nil &&
		p.Location == nil && p.Image == nil && p.Description == nil
}

// Apply merges the patch into dst and returns the result. The id never changes.
func (p ProjectPatch) Apply(dst Project) Project {
	if p.Title != nil {
		dst.Title = *p.Title
	}
	if p.Year != nil {
		dst.Year = *p.Year
	}
	if p.Category != nil {
		dst.Category = *p.Category
	}
	if p.Location != nil {
		dst.Location = *p.Location
	}
	if p.Image != nil {
		dst.Image = *p.Image
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	return dst
}

// ServicePatch carries the fields of a partial service update. An Icon pointing
// at an empty string clears the icon; in JSON, "icon": null and "icon": "" both
// clear it and an absent key leaves it unchanged.
type ServicePatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}

func (p *ServicePatch) UnmarshalJSON(data []byte) error {
	type fields ServicePatch
	var raw struct {
		fields
		Icon json.RawMessage `json:"icon"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = ServicePatch(raw.fields)
	p.Icon = nil
	if raw.Icon == nil {
		return nil
	}
	var icon string
	if !bytes.Equal(bytes.TrimSpace(raw.Icon), []byte("null")) {
		if err := json.Unmarshal(raw.Icon, &icon); err != nil {
			return err
		}
	}
	p.Icon = &icon
	return nil
}

func (p ServicePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Icon == nil
}

func (p ServicePatch) Apply(dst Service) Service {
	if p.Title != nil {
		dst.Title = *p.Title
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Icon != nil {
		dst.Icon = NormalizeIcon(*p.Icon)
	}
	return dst
}

// NormalizeIcon trims an icon value; blank becomes nil.
func NormalizeIcon(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Column is one column/value pair of a partial update, in table terms.
type Column struct {
	Name  string
	Value any
}

// Columns returns the table columns touched by the patch, in a stable order.
func (p ProjectPatch) Columns() []Column {
	var cols []Column
	if p.Title != nil {
		cols = append(cols, Column{"title", *p.Title})
	}
	if p.Year != nil {
		cols = append(cols, Column{"year", *p.Year})
	}
	if p.Category != nil {
		cols = append(cols, Column{"category", string(*p.Category)})
	}
	if p.Location != nil {
		cols = append(cols, Column{"location", *p.Location})
	}
	if p.Image != nil {
		cols = append(cols, Column{"image", *p.Image})
	}
	if p.Description != nil {
		cols = append(cols, Column{"description", *p.Description})
	}
	return cols
}

// Columns returns the table columns touched by the patch. A cleared icon maps to
// a nil value (SQL NULL / JSON null).
func (p ServicePatch) Columns() []Column {
	var cols []Column
	if p.Title != nil {
		cols = append(cols, Column{"title", *p.Title})
	}
	if p.Description != nil {
		cols = append(cols, Column{"description", *p.Description})
	}
	if p.Icon != nil {
		if icon := NormalizeIcon(*p.Icon); icon != nil {
			cols = append(cols, Column{"icon", *icon})
		} else {
			cols = append(cols, Column{"icon", nil})
		}
	}
	return cols
}

// Clone returns a copy that shares no pointers with s.
func (s Service) Clone() Service {
	if s.Icon != nil {
		v := *s.Icon
		s.Icon = &v
	}
	return s
}
