// Package localstore keeps the client's document history, working document
// and session on disk in a LevelDB database.
package localstore

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/SscSPs/invoice_generator_app/internal/core/catalog"
	"github.com/SscSPs/invoice_generator_app/internal/core/domain"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const (
	historyPrefix = "history/"
	workingKey    = "working"
	sessionKey    = "session"
	versionKey    = "version"

	storeVersion uint32 = 1
)

// ErrClosed is returned by every call after Close.
var ErrClosed = errors.New("localstore is closed")

// Session is the signed in server and its token.
type Session struct {
	BaseURL string `json:"baseUrl"`
	Token   string `json:"token"`
	Email   string `json:"email,omitempty"`
}

// Working is the document being edited, with the server id it was saved
// under, if any.
type Working struct {
	Document    domain.Document `json:"document"`
	PersistedID string          `json:"persistedId,omitempty"`
}

// Store is a LevelDB backed key value store.
type Store struct {
	sync.RWMutex

	closed bool
	db     *leveldb.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.checkVersion(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) checkVersion() error {
	b, err := s.db.Get([]byte(versionKey), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		v := make([]byte, 4)
		binary.BigEndian.PutUint32(v, storeVersion)
		return s.db.Put([]byte(versionKey), v, nil)
	}
	if err != nil {
		return err
	}
	if len(b) != 4 || binary.BigEndian.Uint32(b) != storeVersion {
		return fmt.Errorf("unsupported local store version %x", b)
	}
	return nil
}

// Close releases the database.
func (s *Store) Close() error {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// historyKey orders entries by their position in the catalog.
func historyKey(seq uint64) []byte {
	key := make([]byte, len(historyPrefix)+8)
	copy(key, historyPrefix)
	binary.BigEndian.PutUint64(key[len(historyPrefix):], seq)
	return key
}

// SaveHistory replaces the stored history with the contents of c.
func (s *Store) SaveHistory(c *catalog.Catalog) error {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return ErrClosed
	}

	batch := new(leveldb.Batch)
	iter := s.db.NewIterator(util.BytesPrefix([]byte(historyPrefix)), nil)
	for iter.Next() {
		batch.Delete(append([]byte(nil), iter.Key()...))
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return err
	}

	for i, doc := range c.All() {
		payload, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", doc.DocumentID, err)
		}
		batch.Put(historyKey(uint64(i)), payload)
	}
	return s.db.Write(batch, nil)
}

// LoadHistory rebuilds the catalog in its saved order. An empty store yields
// an empty catalog.
func (s *Store) LoadHistory() (*catalog.Catalog, error) {
	s.RLock()
	defer s.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	c := catalog.New()
	iter := s.db.NewIterator(util.BytesPrefix([]byte(historyPrefix)), nil)
	defer iter.Release()
	for iter.Next() {
		var doc domain.Document
		if err := json.Unmarshal(iter.Value(), &doc); err != nil {
			return nil, fmt.Errorf("corrupt history entry: %w", err)
		}
		if err := c.Add(doc); err != nil {
			return nil, err
		}
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) put(key string, v any) error {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return ErrClosed
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Put([]byte(key), payload, nil)
}

// get decodes key into v and reports whether it existed.
func (s *Store) get(key string, v any) (bool, error) {
	s.RLock()
	defer s.RUnlock()
	if s.closed {
		return false, ErrClosed
	}
	payload, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return false, fmt.Errorf("corrupt %s entry: %w", key, err)
	}
	return true, nil
}

// SaveWorking stores the working document.
func (s *Store) SaveWorking(w Working) error {
	return s.put(workingKey, w)
}

// LoadWorking returns the stored working document, if any.
func (s *Store) LoadWorking() (Working, bool, error) {
	var w Working
	ok, err := s.get(workingKey, &w)
	return w, ok, err
}

// SaveSession stores the signed in session.
func (s *Store) SaveSession(session Session) error {
	return s.put(sessionKey, session)
}

// LoadSession returns the stored session, if any.
func (s *Store) LoadSession() (Session, bool, error) {
	var session Session
	ok, err := s.get(sessionKey, &session)
	return session, ok, err
}

// ClearSession signs out.
func (s *Store) ClearSession() error {
	s.Lock()
	defer s.Unlock()
	if s.closed {
		return ErrClosed
	}
	return s.db.Delete([]byte(sessionKey), nil)
}
