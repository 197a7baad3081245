package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())

	seller, err := svc.CreateSeller(ctx, "  Ana  ")
	require.NoError(t, err)
	assert.Equal(t, "Ana", seller.Name)
	assert.Equal(t, RoleUser, seller.Role)
	assert.Len(t, seller.Token, 8)
	assert.Equal(t, strings.ToUpper(seller.Token), seller.Token)

	got, err := svc.Login(ctx, seller.Token)
	require.NoError(t, err)
	assert.Equal(t, seller.Name, got.Name)

	_, err = svc.Login(ctx, "nao-existe")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Login(ctx, "   ")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCreateSellerRequiresName(t *testing.T) {
	svc := NewService(NewMemoryStore())
	_, err := svc.CreateSeller(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	svc := NewService(store)

	require.NoError(t, svc.EnsureAdmin(ctx, "admin-123"))
	admin, err := svc.Login(ctx, "admin-123")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, admin.Role)
	assert.Equal(t, "Administrador", admin.Name)

	// segunda chamada não duplica nem troca o token
	require.NoError(t, svc.EnsureAdmin(ctx, "outro-token"))
	_, err = svc.Login(ctx, "outro-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestListSellersNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())
	require.NoError(t, svc.EnsureAdmin(ctx, "admin-123"))

	a, err := svc.CreateSeller(ctx, "Primeiro")
	require.NoError(t, err)
	b, err := svc.CreateSeller(ctx, "Segundo")
	require.NoError(t, err)
	// garante ordem estável mesmo com relógio de baixa resolução
	require.False(t, b.CreatedAt.Before(a.CreatedAt))

	sellers, err := svc.ListSellers(ctx)
	require.NoError(t, err)
	require.Len(t, sellers, 2, "admin não entra na listagem")
	for _, s := range sellers {
		assert.Equal(t, RoleUser, s.Role)
	}
}
