package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/mp-classroom/classroom-gateway/internal/models"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client, time.Hour), mr
}

func testUser() *models.User {
	return &models.User{
		ID:      7,
		Name:    "Иван",
		Surname: "Иванов",
		Github:  "ivanov",
		Group:   "222-222",
		Role:    "студент",
	}
}

func TestSetAndGetUser(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.SetUser(ctx, "tok1", testUser()); err != nil {
		t.Fatalf("SetUser: %v", err)
	}

	got, err := store.GetUser(ctx, "tok1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.ID != 7 || got.Github != "ivanov" || got.Role != "студент" {
		t.Errorf("GetUser = %+v, want stored user", got)
	}
}

func TestLastWriteWins(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first := testUser()
	if err := store.SetUser(ctx, "tok1", first); err != nil {
		t.Fatalf("SetUser: %v", err)
	}

	second := testUser()
	second.Name = "Пётр"
	second.Github = "petrov"
	if err := store.SetUser(ctx, "tok1", second); err != nil {
		t.Fatalf("SetUser: %v", err)
	}

	got, err := store.GetUser(ctx, "tok1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.Name != "Пётр" || got.Github != "petrov" {
		t.Errorf("GetUser = %+v, want second write", got)
	}
}

func TestGetUserMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.GetUser(context.Background(), "absent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUser err = %v, want ErrNotFound", err)
	}
}

func TestLogoutPurgesRecord(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.SetUser(ctx, "tok1", testUser()); err != nil {
		t.Fatalf("SetUser: %v", err)
	}
	if err := store.Logout(ctx, "tok1"); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	_, err := store.GetUser(ctx, "tok1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUser after logout err = %v, want ErrNotFound", err)
	}
}

func TestSessionExpiresWithTTL(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.SetUser(ctx, "tok1", testUser()); err != nil {
		t.Fatalf("SetUser: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	_, err := store.GetUser(ctx, "tok1")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUser after expiry err = %v, want ErrNotFound", err)
	}
}

func TestNilClientDegradesGracefully(t *testing.T) {
	store := NewStore(nil, time.Hour)
	ctx := context.Background()

	if err := store.SetUser(ctx, "tok1", testUser()); err != nil {
		t.Errorf("SetUser with nil client: %v", err)
	}
	if err := store.Logout(ctx, "tok1"); err != nil {
		t.Errorf("Logout with nil client: %v", err)
	}
	if _, err := store.GetUser(ctx, "tok1"); !errors.Is(err, ErrNotAvailable) {
		t.Errorf("GetUser err = %v, want ErrNotAvailable", err)
	}
}
