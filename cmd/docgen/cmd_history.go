package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/core/workspace"
	"github.com/SscSPs/invoice_generator_app/internal/dto"
	"github.com/SscSPs/invoice_generator_app/internal/localstore"
	"github.com/SscSPs/invoice_generator_app/internal/utils"
)

// historyCmd lists issued documents, newest first.
type historyCmd struct {
	Filter string `short:"f" long:"filter" description:"all, quotations or invoices" default:"all" choice:"all" choice:"quotations" choice:"invoices"`
}

// Execute satisfies the go-flags Commander interface.
func (c *historyCmd) Execute(args []string) error {
	return withWorkspace(domain.KindInvoice, func(ws *workspace.Workspace, _ *localstore.Store) error {
		return printDocuments(ws.History().List(domain.DocumentFilter(c.Filter)))
	})
}

// searchCmd matches number, client and project names.
type searchCmd struct {
	Args struct {
		Query string `positional-arg-name:"query"`
	} `positional-args:"true" required:"true"`
}

// Execute satisfies the go-flags Commander interface.
func (c *searchCmd) Execute(args []string) error {
	return withWorkspace(domain.KindInvoice, func(ws *workspace.Workspace, _ *localstore.Store) error {
		return printDocuments(ws.History().Search(c.Args.Query))
	})
}

// statsCmd prints per status counts and totals.
type statsCmd struct{}

// Execute satisfies the go-flags Commander interface.
func (c *statsCmd) Execute(args []string) error {
	return withWorkspace(domain.KindInvoice, func(ws *workspace.Workspace, _ *localstore.Store) error {
		stats := dto.ToStatsResponse(ws.History().Stats())
		if cfg.JSON {
			return printJSON(stats)
		}
		tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "STATUS\tCOUNT\tTOTAL")
		for _, s := range stats.StatusStats {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", s.ID, s.Count, utils.FormatCurrency(s.Total))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Documents: %d\nRevenue: %s\n", stats.TotalInvoices, utils.FormatCurrency(stats.TotalRevenue))
		return nil
	})
}
