package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/core/render"
	"github.com/SscSPs/invoice_generator_app/internal/utils"
)

func printDocuments(docs []domain.Document) error {
	if cfg.JSON {
		return printJSON(docs)
	}
	if len(docs) == 0 {
		fmt.Fprintln(stdout, "No documents found")
		return nil
	}
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNUMBER\tDATE\tCLIENT\tSTATUS\tTOTAL")
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			d.DocumentID, d.Number, d.Date.Format("2006-01-02"), d.Client.Name, d.Status,
			utils.FormatCurrency(d.Pricing.GrandTotal))
	}
	return tw.Flush()
}

// printDocument prints the rendered preview of doc.
func printDocument(doc domain.Document) error {
	rd := render.Render(doc)
	if cfg.JSON {
		return printJSON(struct {
			ID string `json:"id"`
			render.RenderedDocument
		}{doc.DocumentID, rd})
	}

	h := rd.Header
	fmt.Fprintf(stdout, "%s %s (%s)  id %s\n", h.Title, h.Number, h.Status, doc.DocumentID)
	fmt.Fprintf(stdout, "Date: %s", h.Date)
	if h.Deadline != "" {
		fmt.Fprintf(stdout, "  %s: %s", h.DeadlineLabel, h.Deadline)
	}
	fmt.Fprintln(stdout)
	for _, p := range rd.Parties {
		fmt.Fprintf(stdout, "%s: %s\n", p.Label, strings.Join(p.Lines, ", "))
	}
	if rd.Project != nil {
		fmt.Fprintf(stdout, "Project: %s\n", rd.Project.Name)
	}

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tDESCRIPTION\tQTY\tRATE\tAMOUNT\t")
	for _, r := range rd.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n", r.Index, r.Description, r.Quantity, r.Rate, r.Amount)
	}
	for _, t := range rd.Totals {
		fmt.Fprintf(tw, "\t%s\t\t\t%s\t\n", t.Label, t.Amount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s\n", rd.AmountInWords)
	return nil
}
