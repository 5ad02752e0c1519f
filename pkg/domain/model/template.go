package model

// IssueTemplate is a reusable issue template, either from the predefined
// catalog or saved by a user.
type IssueTemplate struct {
	Name        string          `json:"name"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Body        string          `json:"body"`
	Fields      []TemplateField `json:"fields,omitempty"`
	Labels      []string        `json:"labels,omitempty"`
	IsPublic    bool            `json:"is_public"`
}

// TemplateField describes one input field of a template.
type TemplateField struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Type        string `json:"type"`
	Placeholder string `json:"placeholder,omitempty"`
	Required    bool   `json:"required"`
}

// PredefinedTemplates returns the built-in template catalog, keyed by
// template name.
func PredefinedTemplates() map[string]*IssueTemplate {
	return map[string]*IssueTemplate{
		"bug_report": {
			Name:        "bug_report",
			Title:       "Bug Report: ",
			Description: "Standard bug report template",
			Body: `## Bug Description

**What happened?**
[Clear and concise description of the bug]

**Steps to Reproduce**
1. Go to '...'
2. Click on '....'
3. Scroll down to '....'
4. See error

**Expected Behavior**
[What you expected to happen]

**Actual Behavior**
[What actually happened]

**Environment**
- OS: [e.g., Windows 10, macOS 11.0]
- Browser: [e.g., Chrome 90, Safari 14]
- Version: [e.g., 1.2.3]

**Additional Context**
[Add any other context about the problem here]`,
			Fields: []TemplateField{
				{
					Name:        "bug_description",
					Label:       "Bug Description",
					Type:        "textarea",
					Placeholder: "Describe the bug in detail",
					Required:    true,
				},
				{
					Name:        "environment",
					Label:       "Environment",
					Type:        "text",
					Placeholder: "Windows 10, Chrome 90",
					Required:    false,
				},
			},
			Labels:   []string{"bug", "needs-triage"},
			IsPublic: true,
		},

		"feature_request": {
			Name:        "feature_request",
			Title:       "Feature Request: ",
			Description: "Template for requesting new features",
			Body: `## Feature Request

**Feature Description**
[Clear and concise description of the feature]

**Problem Statement**
[What problem does this feature solve?]

**Proposed Solution**
[How should this feature work?]

**Alternatives Considered**
[Any alternative solutions or features considered]

**Use Cases**
1. [Use case 1]
2. [Use case 2]

**Additional Context**
[Add any other context, mockups, or references here]`,
			Fields: []TemplateField{
				{
					Name:     "feature_description",
					Label:    "Feature Description",
					Type:     "textarea",
					Required: true,
				},
				{
					Name:        "use_cases",
					Label:       "Use Cases",
					Type:        "textarea",
					Placeholder: "List the main use cases",
					Required:    false,
				},
			},
			Labels:   []string{"enhancement", "feature-request"},
			IsPublic: true,
		},

		"documentation": {
			Name:        "documentation",
			Title:       "Documentation: ",
			Description: "Documentation improvement request",
			Body: `## Documentation Update

**Section to Update**
[Which part of documentation needs updating?]

**Current Documentation Issue**
[What's wrong with the current documentation?]

**Suggested Changes**
[Proposed documentation changes]

**Related Files/Sections**
[List related files or documentation sections]`,
			Fields: []TemplateField{
				{
					Name:     "section",
					Label:    "Section to Update",
					Type:     "text",
					Required: true,
				},
			},
			Labels:   []string{"documentation"},
			IsPublic: true,
		},
	}
}
