package history

import (
	"time"

	"github.com/mzaleski/jobscout/internal/model"
)

// NopStore is the fallback when the log database cannot be opened: discovery
// degrades to "nothing is already-seen" and appends are dropped.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) Entries() ([]model.ApplicationEntry, error) { return nil, nil }
func (s *NopStore) Append(url string, _ time.Time) error       { return nil }
