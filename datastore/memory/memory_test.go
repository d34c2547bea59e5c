/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/suparena/cfstress/config"
	"github.com/suparena/cfstress/datastore/memory"
	"github.com/suparena/cfstress/registry"
	"github.com/suparena/cfstress/storagemodels"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	full := storagemodels.ColumnRange{Start: "a", End: "z", Limit: 100}

	t.Run("WriteAndRead", func(t *testing.T) {
		store := memory.New()
		err := store.Write(ctx, "DATACF", "r1",
			storagemodels.Column{Name: "hello1", Value: "world"},
			storagemodels.Column{Name: "hello0", Value: "world"},
		)
		if err != nil {
			t.Fatalf("Write failed: %v", err)
		}

		cols, err := store.ReadRange(ctx, "DATACF", "r1", full)
		if err != nil {
			t.Fatalf("ReadRange failed: %v", err)
		}
		if len(cols) != 2 || cols[0].Name != "hello0" || cols[1].Name != "hello1" {
			t.Fatalf("unexpected columns: %+v", cols)
		}
	})

	t.Run("MissingRowIsEmpty", func(t *testing.T) {
		store := memory.New()
		cols, err := store.ReadRange(ctx, "DATACF", "nope", full)
		if err != nil {
			t.Fatalf("ReadRange failed: %v", err)
		}
		if len(cols) != 0 {
			t.Fatalf("expected no columns, got %+v", cols)
		}
	})

	t.Run("WriteMerges", func(t *testing.T) {
		store := memory.New()
		_ = store.Write(ctx, "INDEXCF", "index", storagemodels.Column{Name: "col0", Value: "a"})
		_ = store.Write(ctx, "INDEXCF", "index",
			storagemodels.Column{Name: "col0", Value: "b"},
			storagemodels.Column{Name: "col1", Value: "c"},
		)
		row := store.Row("INDEXCF", "index")
		if len(row) != 2 || row["col0"] != "b" || row["col1"] != "c" {
			t.Fatalf("unexpected row: %v", row)
		}
	})

	t.Run("RangeLimitAndOrder", func(t *testing.T) {
		store := memory.New()
		for i := 0; i < 12; i++ {
			_ = store.Write(ctx, "INDEXCF", "index", storagemodels.Column{Name: fmt.Sprintf("col%d", i), Value: "v"})
		}

		// Byte-wise order puts col10 and col11 between col1 and col2.
		cols, _ := store.ReadRange(ctx, "INDEXCF", "index", storagemodels.ColumnRange{Start: "a", End: "z", Limit: 4})
		want := []string{"col0", "col1", "col10", "col11"}
		for i, c := range cols {
			if c.Name != want[i] {
				t.Fatalf("position %d: got %s, want %s", i, c.Name, want[i])
			}
		}

		cols, _ = store.ReadRange(ctx, "INDEXCF", "index", storagemodels.ColumnRange{Start: "a", End: "z", Limit: 2, Reversed: true})
		if len(cols) != 2 || cols[0].Name != "col9" || cols[1].Name != "col8" {
			t.Fatalf("unexpected reversed columns: %+v", cols)
		}

		cols, _ = store.ReadRange(ctx, "INDEXCF", "index", storagemodels.ColumnRange{Start: "col2", End: "col3", Limit: 100})
		if len(cols) != 2 || cols[0].Name != "col2" || cols[1].Name != "col3" {
			t.Fatalf("expected inclusive bounds, got %+v", cols)
		}

		cols, _ = store.ReadRange(ctx, "INDEXCF", "index", storagemodels.ColumnRange{Start: "a", End: "z", Limit: 0})
		if len(cols) != 0 {
			t.Fatalf("expected no columns for zero limit, got %+v", cols)
		}
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		writeErr := errors.New("write refused")
		store := memory.New().WithWriteError(writeErr)
		if err := store.Write(ctx, "DATACF", "r1"); err != writeErr {
			t.Fatalf("expected write error, got: %v", err)
		}
		if store.Count("DATACF") != 0 {
			t.Fatal("failed write must not store anything")
		}

		readErr := errors.New("read refused")
		store = memory.New().WithReadError(readErr)
		if _, err := store.ReadRange(ctx, "DATACF", "r1", full); err != readErr {
			t.Fatalf("expected read error, got: %v", err)
		}
	})

	t.Run("ReadFunc", func(t *testing.T) {
		store := memory.New().WithReadFunc(func(_ context.Context, collection, rowKey string, _ storagemodels.ColumnRange) ([]storagemodels.Column, bool, error) {
			if rowKey == "bad" {
				return nil, true, errors.New("boom")
			}
			return nil, false, nil
		})
		_ = store.Write(ctx, "DATACF", "good", storagemodels.Column{Name: "hello0", Value: "world"})

		if _, err := store.ReadRange(ctx, "DATACF", "bad", full); err == nil {
			t.Fatal("expected intercepted error")
		}
		cols, err := store.ReadRange(ctx, "DATACF", "good", full)
		if err != nil || len(cols) != 1 {
			t.Fatalf("expected fall-through read, got %v %v", cols, err)
		}
	})

	t.Run("CanceledContext", func(t *testing.T) {
		store := memory.New()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if err := store.Write(cctx, "DATACF", "r1"); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})

	t.Run("Close", func(t *testing.T) {
		store := memory.New()
		if err := store.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if !store.Closed() {
			t.Fatal("expected store to report closed")
		}
	})
}

func TestMemoryBackendRegistered(t *testing.T) {
	cfg := config.Default().Store
	cfg.Backend = config.BackendMemory

	client, err := registry.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if _, ok := client.(*memory.Store); !ok {
		t.Fatalf("expected *memory.Store, got %T", client)
	}
}
