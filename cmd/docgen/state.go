package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/core/workspace"
	"github.com/SscSPs/invoice_generator_app/internal/gateway"
	"github.com/SscSPs/invoice_generator_app/internal/localstore"
)

// withWorkspace opens the local store, restores history into a workspace and
// runs fn. History is written back only when fn succeeds.
func withWorkspace(kind domain.DocumentKind, fn func(ws *workspace.Workspace, store *localstore.Store) error) error {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	store, err := localstore.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	history, err := store.LoadHistory()
	if err != nil {
		return err
	}
	ws := workspace.New(kind, workspace.WithHistory(history))
	if err := fn(ws, store); err != nil {
		return err
	}
	if err := store.SaveHistory(ws.History()); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	working := ws.Working()
	return store.SaveWorking(localstore.Working{Document: working, PersistedID: ws.PersistedID()})
}

// newClient builds a gateway client for the configured or logged in server.
func newClient(store *localstore.Store) (*gateway.Client, error) {
	session, _, err := store.LoadSession()
	if err != nil {
		return nil, err
	}
	server := cfg.Server
	if server == "" {
		server = session.BaseURL
	}
	if server == "" {
		server = defaultServer
	}
	var opts []gateway.Option
	if session.Token != "" && session.BaseURL == server {
		opts = append(opts, gateway.WithToken(session.Token))
	}
	return gateway.New(server, opts...), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
