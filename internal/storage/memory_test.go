package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing: err = %v, want ErrNotFound", err)
	}

	if err := s.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "v1" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	got[0] = 'x'
	again, _ := s.Get(ctx, "k")
	if string(again) != "v1" {
		t.Fatal("Get returned a shared buffer")
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete: err = %v", err)
	}
}

func TestMemoryStore_WithinTx(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Set(ctx, "a", []byte("1"))

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(ctx context.Context, kv KV) error {
		_ = kv.Set(ctx, "a", []byte("2"))
		_ = kv.Set(ctx, "b", []byte("2"))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if v, _ := s.Get(ctx, "a"); string(v) != "1" {
		t.Fatalf("rolled back tx leaked a = %q", v)
	}
	if _, err := s.Get(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Fatal("rolled back tx leaked b")
	}

	err = s.WithinTx(ctx, func(ctx context.Context, kv KV) error {
		if err := kv.Delete(ctx, "a"); err != nil {
			return err
		}
		return kv.Set(ctx, "b", []byte("3"))
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if _, err := s.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Fatal("committed delete not applied")
	}
	if v, _ := s.Get(ctx, "b"); string(v) != "3" {
		t.Fatalf("b = %q, want 3", v)
	}
}
