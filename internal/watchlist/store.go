package watchlist

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// Entry is one saved watchlist position: the symbol plus the user-owned
// extras (held quantity, custom info links).
type Entry struct {
	Symbol   string  `json:"symbol"`
	Qty      float64 `json:"qty"`
	URL      string  `json:"url"`
	ExtraURL string  `json:"extra_url,omitempty"`
}

// Store persists the watchlist to a JSON file. Every mutation is written
// through immediately. Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	filePath string
	entries  []Entry
}

// NewStore loads the watchlist from filePath, creating an empty one if the
// file does not exist. Older files that stored bare symbol strings are
// migrated to the entry format on load.
func NewStore(filePath string) (*Store, error) {
	s := &Store{filePath: filePath}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read watchlist: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}

	entries, migrated, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("parse watchlist: %w", err)
	}
	s.entries = entries
	if migrated {
		if err := s.save(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// decode parses either the current entry format or the legacy format where
// items were bare symbol strings.
func decode(data []byte) (entries []Entry, migrated bool, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false, err
	}
	for _, item := range raw {
		var symbol string
		if json.Unmarshal(item, &symbol) == nil {
			entries = append(entries, Entry{Symbol: strings.ToUpper(symbol)})
			migrated = true
			continue
		}
		var e Entry
		if err := json.Unmarshal(item, &e); err != nil {
			return nil, false, err
		}
		e.Symbol = strings.ToUpper(e.Symbol)
		entries = append(entries, e)
	}
	return entries, migrated, nil
}

// Symbols returns the watched symbols in saved order.
func (s *Store) Symbols() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Symbol
	}
	return out
}

// Entries returns a copy of all entries.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Quantities returns held quantities keyed by symbol.
func (s *Store) Quantities() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]float64, len(s.entries))
	for _, e := range s.entries {
		out[e.Symbol] = e.Qty
	}
	return out
}

// Add appends a symbol (uppercased) unless it is already present.
// Reports whether the watchlist changed.
func (s *Store) Add(symbol string) bool {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index(symbol) >= 0 {
		return false
	}
	s.entries = append(s.entries, Entry{Symbol: symbol})
	s.persist()
	return true
}

// Remove deletes a symbol. Reports whether it was present.
func (s *Store) Remove(symbol string) bool {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(symbol)
	if i < 0 {
		return false
	}
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	s.persist()
	return true
}

// SetQuantity updates the held quantity for a symbol.
func (s *Store) SetQuantity(symbol string, qty float64) bool {
	return s.update(symbol, func(e *Entry) { e.Qty = qty })
}

// SetURL updates the primary custom link for a symbol.
func (s *Store) SetURL(symbol, url string) bool {
	return s.update(symbol, func(e *Entry) { e.URL = strings.TrimSpace(url) })
}

// SetExtraURL updates the secondary custom link for a symbol.
func (s *Store) SetExtraURL(symbol, url string) bool {
	return s.update(symbol, func(e *Entry) { e.ExtraURL = strings.TrimSpace(url) })
}

func (s *Store) update(symbol string, fn func(*Entry)) bool {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(symbol)
	if i < 0 {
		return false
	}
	fn(&s.entries[i])
	s.persist()
	return true
}

// index assumes the lock is held.
func (s *Store) index(symbol string) int {
	for i, e := range s.entries {
		if e.Symbol == symbol {
			return i
		}
	}
	return -1
}

func (s *Store) persist() {
	if err := s.save(); err != nil {
		// Keep serving the in-memory list; surface the write failure.
		log.Printf("[ERROR] save watchlist: %v", err)
	}
}

func (s *Store) save() error {
	entries := s.entries
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0644)
}
