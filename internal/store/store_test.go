package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/seantiz/proposalgw/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// stores returns one instance of every Store implementation.
func stores(t *testing.T) map[string]Store {
	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": newTestSQLiteStore(t),
	}
}

func makeCompletedRecord() *model.Record {
	pid := uuid.New()
	net := decimal.RequireFromString("9800.00")
	return &model.Record{
		ID:          model.NewRecordID(),
		ProposalID:  &pid,
		CustomerID:  uuid.New(),
		Subject:     "lucas",
		Plan:        "PRO",
		GrossAmount: decimal.RequireFromString("10000.00"),
		NetAmount:   &net,
		Status:      model.StatusCompleted,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

func makeDeferredRecord() *model.Record {
	return &model.Record{
		ID:          model.NewRecordID(),
		CustomerID:  uuid.New(),
		Subject:     "ana",
		Plan:        "VIP",
		GrossAmount: decimal.RequireFromString("500"),
		Status:      model.StatusDeferred,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

func TestSaveAndGet(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			r := makeCompletedRecord()

			if err := s.Save(ctx, r); err != nil {
				t.Fatalf("Save: %v", err)
			}

			got, err := s.Get(ctx, r.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.ID != r.ID || got.Subject != r.Subject || got.Plan != r.Plan || got.Status != r.Status {
				t.Errorf("got %+v, want %+v", got, r)
			}
			if got.CustomerID != r.CustomerID {
				t.Errorf("CustomerID = %s, want %s", got.CustomerID, r.CustomerID)
			}
			if got.ProposalID == nil || *got.ProposalID != *r.ProposalID {
				t.Errorf("ProposalID = %v, want %s", got.ProposalID, r.ProposalID)
			}
			if !got.GrossAmount.Equal(r.GrossAmount) {
				t.Errorf("GrossAmount = %s, want %s", got.GrossAmount, r.GrossAmount)
			}
			if got.NetAmount == nil || !got.NetAmount.Equal(*r.NetAmount) {
				t.Errorf("NetAmount = %v, want %s", got.NetAmount, r.NetAmount)
			}
			if !got.CreatedAt.Equal(r.CreatedAt) {
				t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, r.CreatedAt)
			}
		})
	}
}

func TestDeferredRecordHasNoProposal(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			r := makeDeferredRecord()

			if err := s.Save(ctx, r); err != nil {
				t.Fatalf("Save: %v", err)
			}
			got, err := s.Get(ctx, r.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.ProposalID != nil {
				t.Errorf("ProposalID = %v, want nil", got.ProposalID)
			}
			if got.NetAmount != nil {
				t.Errorf("NetAmount = %v, want nil", got.NetAmount)
			}
			if got.Status != model.StatusDeferred {
				t.Errorf("Status = %q, want %q", got.Status, model.StatusDeferred)
			}
		})
	}
}

func TestGetNotFound(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(context.Background(), "missing")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestListAllInsertionOrder(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			empty, err := s.ListAll(ctx)
			if err != nil {
				t.Fatalf("ListAll: %v", err)
			}
			if len(empty) != 0 {
				t.Fatalf("len = %d, want 0", len(empty))
			}

			var ids []string
			for i := 0; i < 5; i++ {
				r := makeCompletedRecord()
				if i%2 == 1 {
					r = makeDeferredRecord()
				}
				if err := s.Save(ctx, r); err != nil {
					t.Fatalf("Save: %v", err)
				}
				ids = append(ids, r.ID)
			}

			got, err := s.ListAll(ctx)
			if err != nil {
				t.Fatalf("ListAll: %v", err)
			}
			if len(got) != len(ids) {
				t.Fatalf("len = %d, want %d", len(got), len(ids))
			}
			for i, r := range got {
				if r.ID != ids[i] {
					t.Errorf("record %d ID = %s, want %s", i, r.ID, ids[i])
				}
			}
		})
	}
}

func TestConcurrentSave(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Go(func() {
					if err := s.Save(ctx, makeCompletedRecord()); err != nil {
						t.Errorf("Save: %v", err)
					}
				})
			}
			wg.Wait()

			got, err := s.ListAll(ctx)
			if err != nil {
				t.Fatalf("ListAll: %v", err)
			}
			if len(got) != 20 {
				t.Errorf("len = %d, want 20", len(got))
			}
		})
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	r := makeCompletedRecord()
	s.Save(ctx, r)

	r.Subject = "mutated"
	got, _ := s.Get(ctx, r.ID)
	if got.Subject != "lucas" {
		t.Errorf("Subject = %q, stored record was mutated through caller pointer", got.Subject)
	}
}
