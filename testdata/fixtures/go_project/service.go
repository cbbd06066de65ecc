package fixture

import "example.com/fixture/store"

// Service wraps a store with a trivial API.
type Service struct {
	store *store.Store
}

func NewService() *Service {
	return &Service{store: store.New()}
}

func (s *Service) Save(key, value string) {
	s.store.Put(key, value)
}
