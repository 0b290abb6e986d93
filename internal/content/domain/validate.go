package domain

import "strings"

// ValidateProject checks the fields required before a project may be persisted.
func ValidateProject(p Project) error {
	if strings.TrimSpace(p.Title) == "" {
		return invalid("Please enter a project title")
	}
	if strings.TrimSpace(p.Image) == "" {
		return invalid("Please upload or enter an image URL")
	}
	if p.Category == "" {
		return invalid("Please select a category")
	}
	if !p.Category.Valid() {
		return invalid("Unknown project category: " + string(p.Category))
	}
	return nil
}

// ValidateService checks the fields required before a service may be persisted.
func ValidateService(s Service) error {
	if strings.TrimSpace(s.Title) == "" {
		return invalid("Please enter a service title")
	}
	if strings.TrimSpace(s.Description) == "" {
		return invalid("Please enter a service description")
	}
	return nil
}

// ValidateProjectPatch rejects patches that would blank a required field.
func ValidateProjectPatch(p ProjectPatch) error {
	if p.Empty() {
		return invalid("Nothing to update")
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalid("Please enter a project title")
	}
	if p.Image != nil && strings.TrimSpace(*p.Image) == "" {
		return invalid("Please upload or enter an image URL")
	}
	if p.Category != nil && !p.Category.Valid() {
		return invalid("Unknown project category: " + string(*p.Category))
	}
	return nil
}

func ValidateServicePatch(p ServicePatch) error {
	if p.Empty() {
		return invalid("Nothing to update")
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalid("Please enter a service title")
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return invalid("Please enter a service description")
	}
	return nil
}
