package localstore_test

import (
	"testing"
	"time"

	"github.com/SscSPs/invoice_generator_app/internal/core/catalog"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"
	"github.com/SscSPs/invoice_generator_app/internal/localstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) (*localstore.Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := localstore.Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, dir
}

func doc(id, number string, date time.Time) domain.Document {
	return domain.Document{
		DocumentID: id,
		Kind:       domain.KindInvoice,
		Number:     number,
		Date:       date,
		Client:     domain.Party{Name: "Client " + id},
		LineItems:  []domain.LineItem{{Description: "Work", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(100)}},
		Status:     domain.StatusDraft,
	}
}

func TestHistory_RoundTripKeepsInsertionOrder(t *testing.T) {
	s, dir := openStore(t)
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	c := catalog.New()
	for _, d := range []domain.Document{doc("a", "INV-2025-001", day), doc("b", "INV-2025-002", day), doc("c", "INV-2025-003", day)} {
		require.NoError(t, c.Add(d))
	}
	require.NoError(t, s.SaveHistory(c))
	require.NoError(t, s.Close())

	reopened, err := localstore.Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.LoadHistory()
	require.NoError(t, err)
	require.Equal(t, 3, loaded.Len())

	var ids []string
	for _, d := range loaded.All() {
		ids = append(ids, d.DocumentID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)

	got, err := loaded.Get("b")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(got.LineItems[0].Rate))
}

func TestHistory_SaveReplacesPreviousContents(t *testing.T) {
	s, _ := openStore(t)
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	c := catalog.New()
	require.NoError(t, c.Add(doc("a", "INV-2025-001", day)))
	require.NoError(t, c.Add(doc("b", "INV-2025-002", day)))
	require.NoError(t, s.SaveHistory(c))

	require.NoError(t, c.Remove("a"))
	require.NoError(t, s.SaveHistory(c))

	loaded, err := s.LoadHistory()
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
	_, err = loaded.Get("a")
	assert.Error(t, err)
}

func TestHistory_EmptyStore(t *testing.T) {
	s, _ := openStore(t)
	loaded, err := s.LoadHistory()
	require.NoError(t, err)
	assert.Equal(t, 0, loaded.Len())
}

func TestWorkingAndSession(t *testing.T) {
	s, _ := openStore(t)

	_, ok, err := s.LoadWorking()
	require.NoError(t, err)
	assert.False(t, ok)

	w := localstore.Working{Document: doc("w", "INV-2025-009", time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)), PersistedID: "srv-9"}
	require.NoError(t, s.SaveWorking(w))
	got, ok, err := s.LoadWorking()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "srv-9", got.PersistedID)
	assert.Equal(t, "INV-2025-009", got.Document.Number)

	require.NoError(t, s.SaveSession(localstore.Session{BaseURL: "http://localhost:8080/api", Token: "t"}))
	session, ok, err := s.LoadSession()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "t", session.Token)

	require.NoError(t, s.ClearSession())
	_, ok, err = s.LoadSession()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClosedStore(t *testing.T) {
	s, _ := openStore(t)
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.SaveSession(localstore.Session{}), localstore.ErrClosed)
	_, err := s.LoadHistory()
	assert.ErrorIs(t, err, localstore.ErrClosed)
}
