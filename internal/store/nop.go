package store

import "github.com/amishk599/jobping/internal/model"

// NopStore is used by `check`. It never remembers anything, so every posting
// looks new on each pass and nothing is written.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) Load() (model.SeenSet, error) { return model.NewSeenSet(), nil }
func (s *NopStore) Save(model.SeenSet) error     { return nil }
