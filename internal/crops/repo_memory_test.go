package crops

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestMemoryRepoRoundTrip(t *testing.T) {
	repo := NewMemoryRepo()
	record := testRecord(t)

	if err := repo.Create(context.Background(), record); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(context.Background(), record.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ID != record.ID || got.Source != record.Source {
		t.Fatalf("expected stored record, got %+v", got)
	}
}

func TestMemoryRepoGetByIDNotFound(t *testing.T) {
	repo := NewMemoryRepo()
	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoListByUserPagination(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		record := testRecord(t)
		record.ID = fmt.Sprintf("rec-%d", i)
		record.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if err := repo.Create(context.Background(), record); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	records, err := repo.ListByUser(context.Background(), "user-1", 2, 1)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].ID != "rec-3" || records[1].ID != "rec-2" {
		t.Fatalf("expected rec-3 then rec-2, got %s then %s", records[0].ID, records[1].ID)
	}
}

func TestMemoryRepoListByUserDefaultLimit(t *testing.T) {
	repo := NewMemoryRepo()
	base := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		record := testRecord(t)
		record.ID = fmt.Sprintf("rec-%d", i)
		record.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := repo.Create(context.Background(), record); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	// Zero limit pages with the same default as the Postgres repo.
	records, err := repo.ListByUser(context.Background(), "user-1", 0, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(records) != 20 {
		t.Fatalf("expected default page of 20, got %d", len(records))
	}
	if records[0].ID != "rec-24" {
		t.Fatalf("expected newest record first, got %s", records[0].ID)
	}
}

func TestMemoryRepoListByUserEmpty(t *testing.T) {
	repo := NewMemoryRepo()
	records, err := repo.ListByUser(context.Background(), "nobody", 10, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty slice, got %+v", records)
	}
}

func TestMemoryRepoHonorsCanceledContext(t *testing.T) {
	repo := NewMemoryRepo()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := repo.Create(ctx, testRecord(t)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
