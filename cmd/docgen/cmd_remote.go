package main

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/core/workspace"
	"github.com/SscSPs/invoice_generator_app/internal/localstore"
)

const requestTimeout = 30 * time.Second

// loginCmd authenticates and remembers the token.
type loginCmd struct {
	Email    string `short:"e" long:"email" required:"true" description:"Account email"`
	Password string `short:"p" long:"password" required:"true" description:"Account password"`
}

// Execute satisfies the go-flags Commander interface.
func (c *loginCmd) Execute(args []string) error {
	return withWorkspace(domain.KindInvoice, func(_ *workspace.Workspace, store *localstore.Store) error {
		client, err := newClient(store)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		resp, err := client.Login(ctx, c.Email, c.Password)
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		server := cfg.Server
		if server == "" {
			session, _, _ := store.LoadSession()
			server = session.BaseURL
		}
		if server == "" {
			server = defaultServer
		}
		if err := store.SaveSession(localstore.Session{BaseURL: server, Token: resp.Token, Email: resp.User.Email}); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Logged in as %s\n", resp.User.Name)
		return nil
	})
}

// pushCmd saves a document from history to the server. The history entry
// is replaced by the server copy.
type pushCmd struct {
	Args struct {
		ID string `positional-arg-name:"id"`
	} `positional-args:"true" required:"true"`
}

// Execute satisfies the go-flags Commander interface.
func (c *pushCmd) Execute(args []string) error {
	return withWorkspace(domain.KindInvoice, func(ws *workspace.Workspace, store *localstore.Store) error {
		client, err := newClient(store)
		if err != nil {
			return err
		}
		if client.Token() == "" {
			return fmt.Errorf("not logged in, run docgen login first")
		}
		doc, err := ws.Open(c.Args.ID)
		if err != nil {
			return fmt.Errorf("document %s: %w", c.Args.ID, err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		saved, err := ws.Save(ctx, client)
		if err != nil {
			return fmt.Errorf("push %s: %w", doc.Number, err)
		}
		fmt.Fprintf(stdout, "Pushed %s as %s\n", saved.Number, saved.DocumentID)
		return nil
	})
}
