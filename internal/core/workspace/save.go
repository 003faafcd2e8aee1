package workspace

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/invoice_generator_app/internal/apperrors"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/core/pricing"
)

// Saver persists documents remotely. gateway.Client satisfies it.
type Saver interface {
	CreateDocument(ctx context.Context, doc domain.Document, idempotencyKey string) (domain.Document, error)
	UpdateDocument(ctx context.Context, doc domain.Document) (domain.Document, error)
}

// Save validates the working document and persists it through s. The first
// save creates the document; later saves update it. Only one save may be in
// flight at a time; a second call fails with apperrors.ErrInFlight.
//
// A failed create keeps its idempotency key so that retrying cannot create a
// second copy. On failure the workspace is left as it was.
func (w *Workspace) Save(ctx context.Context, s Saver) (domain.Document, error) {
	w.mu.Lock()
	if w.saving {
		w.mu.Unlock()
		return domain.Document{}, apperrors.NewAppError(http.StatusConflict, "A save is already in progress", apperrors.ErrInFlight)
	}
	doc, err := pricing.Finalize(w.working)
	if err != nil {
		w.mu.Unlock()
		return domain.Document{}, err
	}
	persistedID := w.persistedID
	if persistedID == "" && w.saveKey == "" {
		w.saveKey = w.newID()
	}
	key := w.saveKey
	localID := w.working.DocumentID
	w.saving = true
	w.mu.Unlock()

	var saved domain.Document
	if persistedID == "" {
		doc.DocumentID = ""
		saved, err = s.CreateDocument(ctx, doc, key)
	} else {
		doc.DocumentID = persistedID
		saved, err = s.UpdateDocument(ctx, doc)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.saving = false
	if err != nil {
		return domain.Document{}, err
	}
	if saved.DocumentID == "" {
		return domain.Document{}, apperrors.NewAppError(http.StatusBadGateway, "Server returned a document without an id", apperrors.ErrUnavailable)
	}

	w.persistedID = saved.DocumentID
	w.saveKey = ""
	w.working.DocumentID = saved.DocumentID
	w.working.AuditFields = saved.AuditFields

	if err := w.record(localID, saved); err != nil {
		return saved.Clone(), fmt.Errorf("document %s saved but history not updated: %w", saved.DocumentID, err)
	}
	return saved.Clone(), nil
}

// record stores saved in history in place of the local entry localID.
func (w *Workspace) record(localID string, saved domain.Document) error {
	if localID != "" && localID != saved.DocumentID {
		if err := w.history.Remove(localID); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
	}
	err := w.history.Replace(saved)
	if errors.Is(err, apperrors.ErrNotFound) {
		err = w.history.Add(saved)
	}
	return err
}

// Saving reports whether a save is in flight.
func (w *Workspace) Saving() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.saving
}

// PersistedID is the server id of the working document, empty until the first
// successful save.
func (w *Workspace) PersistedID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.persistedID
}
