package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/core/generator"
	"github.com/SscSPs/invoice_generator_app/internal/core/render"
	"github.com/SscSPs/invoice_generator_app/internal/core/workspace"
	"github.com/SscSPs/invoice_generator_app/internal/localstore"
)

// quoteCmd drafts a quotation with the offline generator and issues it.
type quoteCmd struct {
	Description string `short:"d" long:"description" description:"Project description"`
	Budget      string `short:"b" long:"budget" description:"Budget range, e.g. 25000-50000"`
	Template    string `short:"t" long:"template" description:"Preset: web-dev, mobile-app, ai-solution or consulting"`
	Client      string `short:"c" long:"client" description:"Client name"`
	Company     string `long:"company" description:"Client company"`
	Email       string `long:"email" description:"Client email"`
}

// Execute satisfies the go-flags Commander interface.
func (c *quoteCmd) Execute(args []string) error {
	req := generator.ApplyPreset(generator.Request{
		Description:   c.Description,
		Budget:        c.Budget,
		Template:      c.Template,
		ClientName:    c.Client,
		ClientCompany: c.Company,
		ClientEmail:   c.Email,
	})
	if strings.TrimSpace(req.Description) == "" {
		return errors.New("a --description or --template is required")
	}
	if req.Budget == "" {
		req.Budget = generator.BudgetMedium
	}

	content, err := generator.NewSimulatedGenerator().Generate(context.Background(), req)
	if err != nil {
		return err
	}
	return withWorkspace(domain.KindQuotation, func(ws *workspace.Workspace, _ *localstore.Store) error {
		now := time.Now()
		draft := generator.ToDocument(content, req, ws.History().NextNumber(domain.KindQuotation, now.Year()), now)
		draft.Company = workspace.DefaultCompany
		ws.Load(draft)
		doc, err := ws.Generate()
		if err != nil {
			return err
		}
		return printDocument(doc)
	})
}

// invoiceCmd issues an itemized invoice.
type invoiceCmd struct {
	Client       string   `short:"c" long:"client" description:"Client name" required:"true"`
	Company      string   `long:"company" description:"Client company"`
	Email        string   `long:"email" description:"Client email"`
	Project      string   `short:"p" long:"project" description:"Project name"`
	Number       string   `short:"n" long:"number" description:"Invoice number (defaults to the next free one)"`
	Items        []string `short:"i" long:"item" description:"Line item as description:quantity:rate, repeatable"`
	Tax          string   `long:"tax" description:"Tax rate in percent" default:"0"`
	Discount     string   `long:"discount" description:"Discount rate in percent" default:"0"`
	PaymentTerms string   `long:"terms" description:"immediate, net15, net30 or net60" default:"net15"`
	Notes        string   `long:"notes" description:"Notes printed under the totals"`
}

// parseItem splits "description:quantity:rate". The description may itself
// contain colons.
func parseItem(raw string) (description, quantity, rate string, err error) {
	last := strings.LastIndex(raw, ":")
	if last < 0 {
		return "", "", "", fmt.Errorf("item %q: expected description:quantity:rate", raw)
	}
	mid := strings.LastIndex(raw[:last], ":")
	if mid < 0 {
		return "", "", "", fmt.Errorf("item %q: expected description:quantity:rate", raw)
	}
	return raw[:mid], raw[mid+1 : last], raw[last+1:], nil
}

// Execute satisfies the go-flags Commander interface.
func (c *invoiceCmd) Execute(args []string) error {
	if len(c.Items) == 0 {
		return errors.New("at least one --item is required")
	}
	return withWorkspace(domain.KindInvoice, func(ws *workspace.Workspace, _ *localstore.Store) error {
		ws.SetClient(domain.Party{Name: c.Client, Company: c.Company, Email: c.Email})
		if c.Project != "" {
			ws.SetProject(domain.Project{Name: c.Project})
		}
		if c.Number != "" {
			ws.SetNumber(c.Number)
		}
		for i, raw := range c.Items {
			desc, qty, rate, err := parseItem(raw)
			if err != nil {
				return err
			}
			if i > 0 {
				ws.AddLineItem()
			}
			if err := ws.SetLineItem(i, desc, qty, rate); err != nil {
				return err
			}
		}
		ws.SetTaxRate(c.Tax)
		ws.SetDiscountRate(c.Discount)
		if err := ws.SetPaymentTerms(domain.PaymentTerms(c.PaymentTerms)); err != nil {
			return err
		}
		ws.SetNotes(c.Notes)

		doc, err := ws.Generate()
		if err != nil {
			return err
		}
		return printDocument(doc)
	})
}

// convertCmd issues an invoice from a quotation.
type convertCmd struct {
	Args struct {
		ID string `positional-arg-name:"quotation-id"`
	} `positional-args:"true" required:"true"`
}

// Execute satisfies the go-flags Commander interface.
func (c *convertCmd) Execute(args []string) error {
	return withWorkspace(domain.KindInvoice, func(ws *workspace.Workspace, _ *localstore.Store) error {
		if _, err := ws.Convert(c.Args.ID); err != nil {
			return err
		}
		doc, err := ws.Generate()
		if err != nil {
			return err
		}
		return printDocument(doc)
	})
}

// renderCmd prints the preview of a document, or writes it as HTML.
type renderCmd struct {
	HTML string `long:"html" description:"Write an HTML page to this file instead of printing"`
	Args struct {
		ID string `positional-arg-name:"id"`
	} `positional-args:"true" required:"true"`
}

// Execute satisfies the go-flags Commander interface.
func (c *renderCmd) Execute(args []string) error {
	return withWorkspace(domain.KindInvoice, func(ws *workspace.Workspace, _ *localstore.Store) error {
		doc, err := ws.History().Get(c.Args.ID)
		if err != nil {
			return fmt.Errorf("document %s: %w", c.Args.ID, err)
		}
		if c.HTML == "" {
			return printDocument(doc)
		}
		f, err := os.Create(c.HTML)
		if err != nil {
			return err
		}
		if err := render.WriteHTML(f, render.Render(doc)); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote %s\n", c.HTML)
		return nil
	})
}
