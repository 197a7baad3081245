package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User é o documento da coleção de usuários: esquema de token plano
// compartilhado, sem senha.
type User struct {
	ID        string    `json:"id" firestore:"-"`
	Name      string    `json:"name" firestore:"name"`
	Token     string    `json:"token" firestore:"token"`
	Role      Role      `json:"role" firestore:"role"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

var (
	ErrInvalidToken = errors.New("token inválido ou usuário não encontrado")
	ErrEmptyName    = errors.New("nome do vendedor é obrigatório")
)

// Store é a consulta externa de usuários (Firestore em produção, memória nos
// testes e em execuções sem credencial).
type Store interface {
	FindByToken(ctx context.Context, token string) (*User, error)
	Create(ctx context.Context, u *User) error
	ListSellers(ctx context.Context) ([]*User, error)
	HasAdmin(ctx context.Context) (bool, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Login resolve o token plano para {id, name, role}.
func (s *Service) Login(ctx context.Context, token string) (*User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}
	return s.store.FindByToken(ctx, token)
}

// CreateSeller gera token de 8 caracteres maiúsculos para um vendedor novo.
func (s *Service) CreateSeller(ctx context.Context, name string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	u := &User{
		ID:        uuid.NewString(),
		Name:      name,
		Token:     newToken(),
		Role:      RoleUser,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) ListSellers(ctx context.Context) ([]*User, error) {
	return s.store.ListSellers(ctx)
}

// EnsureAdmin cria o administrador padrão quando a coleção ainda não tem um.
func (s *Service) EnsureAdmin(ctx context.Context, adminToken string) error {
	has, err := s.store.HasAdmin(ctx)
	if err != nil || has {
		return err
	}
	return s.store.Create(ctx, &User{
		ID:        uuid.NewString(),
		Name:      "Administrador",
		Token:     adminToken,
		Role:      RoleAdmin,
		CreatedAt: time.Now().UTC(),
	})
}

func newToken() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:8])
}
