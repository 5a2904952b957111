package remote

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := NewRedis(context.Background(), RedisOptions{Addr: mr.Addr(), Key: "focusflow:user_data:test"})
	if err != nil {
		t.Fatalf("NewRedis failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func TestRedisStore_LoadEmpty(t *testing.T) {
	s, _ := newRedisStore(t)

	snap, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if snap != nil {
		t.Errorf("expected no snapshot, got %+v", snap)
	}
}

func TestRedisStore_SaveLoad(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	want := Snapshot{
		Timestamp:   1700000000000,
		Data:        json.RawMessage(`{"tasks":[{"id":"t1","title":"Algebra"}]}`),
		Device:      "laptop",
		LastUpdated: "2023-11-14T22:13:20Z",
	}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !mr.Exists("focusflow:user_data:test") {
		t.Fatal("expected snapshot key in redis")
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected snapshot")
	}
	if got.Timestamp != want.Timestamp || got.Device != want.Device || got.LastUpdated != want.LastUpdated {
		t.Errorf("snapshot mismatch: %+v", got)
	}
	if string(got.Data) != string(want.Data) {
		t.Errorf("data mismatch: %s", got.Data)
	}

	want.Timestamp++
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	got, _ = s.Load(ctx)
	if got.Timestamp != want.Timestamp {
		t.Errorf("expected last write to win, got %d", got.Timestamp)
	}
}

func TestRedisStore_RejectsEmptyData(t *testing.T) {
	s, _ := newRedisStore(t)
	if err := s.Save(context.Background(), Snapshot{Timestamp: 1}); err != ErrEmptySnapshot {
		t.Errorf("expected ErrEmptySnapshot, got %v", err)
	}
}

func TestRedisStore_CorruptValue(t *testing.T) {
	s, mr := newRedisStore(t)
	mr.Set("focusflow:user_data:test", "not json")

	if _, err := s.Load(context.Background()); err == nil {
		t.Error("expected decode error")
	}
}

func TestRedisStore_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	addr := mr.Addr()
	mr.Close()

	if _, err := NewRedis(context.Background(), RedisOptions{Addr: addr, Key: "k"}); err == nil {
		t.Error("expected ping failure")
	}
}

func TestNewRedis_Validation(t *testing.T) {
	ctx := context.Background()
	if _, err := NewRedis(ctx, RedisOptions{Key: "k"}); err == nil {
		t.Error("expected error for missing address")
	}
	if _, err := NewRedis(ctx, RedisOptions{Addr: "127.0.0.1:6379"}); err == nil {
		t.Error("expected error for missing key")
	}
}
