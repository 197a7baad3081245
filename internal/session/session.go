// Sessões por token: cada token autenticado tem no máximo um snapshot de
// ingestão vigente mais o estado da cascata de seleção. Re-ingestão
// substitui o snapshot inteiro de uma vez (disciplina single-writer).
package session

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"mixvision-service/internal/opportunity/model"
	"mixvision-service/internal/opportunity/service"
)

type State struct {
	Snapshot  *model.Snapshot
	Selection service.Selection
}

type Store struct {
	c *gocache.Cache
}

func NewStore(ttl time.Duration) *Store {
	return &Store{c: gocache.New(ttl, 2*ttl)}
}

func (s *Store) Get(token string) *State {
	if v, ok := s.c.Get(token); ok {
		return v.(*State)
	}
	return nil
}

// PutSnapshot descarta o estado anterior por inteiro: snapshot antigo e
// seleção antiga deixam de ser observáveis.
func (s *Store) PutSnapshot(token string, snap *model.Snapshot) *State {
	st := &State{Snapshot: snap}
	s.c.Set(token, st, gocache.DefaultExpiration)
	return st
}

func (s *Store) PutSelection(token string, sel service.Selection) *State {
	st := s.Get(token)
	if st == nil {
		return nil
	}
	st.Selection = sel
	s.c.Set(token, st, gocache.DefaultExpiration)
	return st
}

func (s *Store) Clear(token string) {
	s.c.Delete(token)
}
