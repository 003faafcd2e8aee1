package generator

import (
	"context"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

type projectTemplate struct {
	projectType  string
	keywords     *regexp.Regexp
	items        []PricedItem
	deliverables []string
}

func item(desc string, amount int64) PricedItem {
	return PricedItem{Description: desc, Amount: decimal.NewFromInt(amount)}
}

// Checked in order; the first match wins.
var projectTemplates = []projectTemplate{
	{
		projectType: "Web Development",
		keywords:    regexp.MustCompile(`\b(web|website|websites)\b`),
		items: []PricedItem{
			item("UI/UX Design & Prototyping", 15000),
			item("Frontend Development (React/HTML5)", 25000),
			item("Backend Setup & API Integration", 20000),
			item("SEO Optimization & Performance Tuning", 8000),
			item("Deployment & Server Setup", 5000),
		},
		deliverables: []string{"Responsive Website", "Admin Dashboard", "Source Code", "Documentation"},
	},
	{
		projectType: "Mobile App Development",
		keywords:    regexp.MustCompile(`\b(app|apps|mobile)\b`),
		items: []PricedItem{
			item("Mobile App UI/UX Design", 25000),
			item("Native App Development (iOS/Android)", 45000),
			item("API Development", 30000),
			item("App Store Submission", 10000),
		},
		deliverables: []string{"iOS App", "Android App", "Admin Panel", "API Documentation"},
	},
	{
		projectType: "AI Solution",
		keywords:    regexp.MustCompile(`\b(ai|intelligence)\b`),
		items: []PricedItem{
			item("Data Analysis & Preparation", 30000),
			item("Model Training & Fine-tuning", 50000),
			item("AI Integration API", 25000),
			item("Testing & Validation", 15000),
		},
		deliverables: []string{"Trained Model", "Inference API", "Performance Report"},
	},
}

var customProject = projectTemplate{
	projectType: "Custom Project",
	items: []PricedItem{
		item("Project Planning & Strategy", 10000),
		item("Core Development Phase", 30000),
		item("Quality Assurance", 10000),
		item("Final Delivery & Handover", 5000),
	},
	deliverables: []string{"Project Plan", "Completed Solution", "Documentation"},
}

var budgetMultipliers = map[string]decimal.Decimal{
	BudgetMicro:      decimal.RequireFromString("0.2"),
	BudgetSmall:      decimal.RequireFromString("0.4"),
	BudgetMedium:     decimal.RequireFromString("0.8"),
	BudgetLarge:      decimal.RequireFromString("1.2"),
	BudgetEnterprise: decimal.NewFromInt(2),
}

// DefaultTerms are attached to every drafted quotation.
var DefaultTerms = []string{
	"50% Advance Payment Required",
	"Valid for 15 days from date of issue",
	"Additional changes will be charged separately",
}

// SimulatedGenerator drafts content from keyword matching and fixed price
// tables. It never fails and needs no network.
type SimulatedGenerator struct{}

// NewSimulatedGenerator returns the offline generator.
func NewSimulatedGenerator() *SimulatedGenerator {
	return &SimulatedGenerator{}
}

var _ ContentGenerator = (*SimulatedGenerator)(nil)

// Generate implements ContentGenerator.
func (g *SimulatedGenerator) Generate(ctx context.Context, req Request) (Content, error) {
	if err := ctx.Err(); err != nil {
		return Content{}, err
	}
	req = ApplyPreset(req)
	tpl := matchTemplate(req.Description)

	multiplier, ok := budgetMultipliers[req.Budget]
	if !ok {
		multiplier = decimal.NewFromInt(1)
	}
	items := make([]PricedItem, len(tpl.items))
	for i, it := range tpl.items {
		items[i] = PricedItem{Description: it.Description, Amount: it.Amount.Mul(multiplier).Round(0)}
	}

	client := strings.TrimSpace(req.ClientName)
	if client == "" {
		client = "Client"
	}
	return Content{
		ProjectType:  tpl.projectType,
		ProjectName:  tpl.projectType + " for " + client,
		Summary:      "A comprehensive " + tpl.projectType + " tailored to specific business requirements. This solution includes all necessary components for a successful deployment.",
		Deliverables: append([]string(nil), tpl.deliverables...),
		Timeline:     "4-6 Weeks",
		LineItems:    items,
		Terms:        append([]string(nil), DefaultTerms...),
	}, nil
}

func matchTemplate(description string) projectTemplate {
	lower := strings.ToLower(description)
	for _, tpl := range projectTemplates {
		if tpl.keywords.MatchString(lower) {
			return tpl
		}
	}
	return customProject
}
