package store

import (
	"testing"

	"gorm.io/gorm"
)

// seedMessages inserts a fixed set used by the list tests.
func seedMessages(t *testing.T, conn *gorm.DB) {
	t.Helper()
	mustInsert(t, conn, "m2", "+919876543210", "2025-01-15T09:00:00Z", "Earlier")
	mustInsert(t, conn, "m1", "+919876543210", "2025-01-15T10:00:00Z", "Hello")
	mustInsert(t, conn, "m3", "+911234567890", "2025-01-15T11:00:00Z", "Later")
}

func TestList_OrderedByTsThenID(t *testing.T) {
	conn := openTestDB(t)
	seedMessages(t, conn)

	msgs, total, err := List(conn, ListFilter{}, DefaultLimit, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	wantOrder := []string{"m2", "m1", "m3"}
	if len(msgs) != len(wantOrder) {
		t.Fatalf("len(msgs) = %d, want %d", len(msgs), len(wantOrder))
	}
	for i, want := range wantOrder {
		if msgs[i].MessageID != want {
			t.Errorf("msgs[%d].MessageID = %q, want %q", i, msgs[i].MessageID, want)
		}
	}
}

func TestList_TieBreakOnMessageID(t *testing.T) {
	conn := openTestDB(t)
	// All rows share one timestamp; order must still be total and stable.
	mustInsert(t, conn, "c", "+15550000001", "2025-01-15T10:00:00Z", "third")
	mustInsert(t, conn, "a", "+15550000002", "2025-01-15T10:00:00Z", "first")
	mustInsert(t, conn, "b", "+15550000003", "2025-01-15T10:00:00Z", "second")

	for run := 0; run < 3; run++ {
		msgs, _, err := List(conn, ListFilter{}, DefaultLimit, 0)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		want := []string{"a", "b", "c"}
		for i := range want {
			if msgs[i].MessageID != want[i] {
				t.Fatalf("run %d: msgs[%d].MessageID = %q, want %q", run, i, msgs[i].MessageID, want[i])
			}
		}
	}
}

func TestList_Pagination(t *testing.T) {
	conn := openTestDB(t)
	seedMessages(t, conn)

	page1, total1, err := List(conn, ListFilter{}, 2, 0)
	if err != nil {
		t.Fatalf("List page 1: %v", err)
	}
	if total1 != 3 {
		t.Errorf("page 1 total = %d, want 3", total1)
	}
	if len(page1) != 2 {
		t.Fatalf("page 1 rows = %d, want 2", len(page1))
	}
	if page1[0].MessageID != "m2" || page1[1].MessageID != "m1" {
		t.Errorf("page 1 = [%s %s], want [m2 m1]", page1[0].MessageID, page1[1].MessageID)
	}

	page2, total2, err := List(conn, ListFilter{}, 2, 2)
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if total2 != total1 {
		t.Errorf("total changed across pages: %d vs %d", total2, total1)
	}
	if len(page2) != 1 || page2[0].MessageID != "m3" {
		t.Errorf("page 2 = %v, want [m3]", page2)
	}
}

func TestList_TotalIgnoresLimit(t *testing.T) {
	conn := openTestDB(t)
	seedMessages(t, conn)

	_, totalSmall, err := List(conn, ListFilter{}, 1, 0)
	if err != nil {
		t.Fatalf("List limit 1: %v", err)
	}
	_, totalLarge, err := List(conn, ListFilter{}, MaxLimit, 0)
	if err != nil {
		t.Fatalf("List limit 100: %v", err)
	}
	if totalSmall != totalLarge {
		t.Errorf("total varies with limit: %d vs %d", totalSmall, totalLarge)
	}
}

func TestList_Filters(t *testing.T) {
	conn := openTestDB(t)
	seedMessages(t, conn)

	tests := []struct {
		name    string
		filter  ListFilter
		wantIDs []string
	}{
		{
			name:    "from exact match",
			filter:  ListFilter{From: "+911234567890"},
			wantIDs: []string{"m3"},
		},
		{
			name:    "since inclusive lower bound",
			filter:  ListFilter{Since: "2025-01-15T10:00:00Z"},
			wantIDs: []string{"m1", "m3"},
		},
		{
			name:    "q case-insensitive substring",
			filter:  ListFilter{Q: "hello"},
			wantIDs: []string{"m1"},
		},
		{
			name:    "q matches mixed case",
			filter:  ListFilter{Q: "EARL"},
			wantIDs: []string{"m2"},
		},
		{
			name:    "conjunctive filters",
			filter:  ListFilter{From: "+919876543210", Since: "2025-01-15T10:00:00Z"},
			wantIDs: []string{"m1"},
		},
		{
			name:    "no match",
			filter:  ListFilter{From: "+10000000000"},
			wantIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, total, err := List(conn, tt.filter, DefaultLimit, 0)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if int(total) != len(tt.wantIDs) {
				t.Errorf("total = %d, want %d", total, len(tt.wantIDs))
			}
			if len(msgs) != len(tt.wantIDs) {
				t.Fatalf("rows = %d, want %d", len(msgs), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if msgs[i].MessageID != want {
					t.Errorf("msgs[%d].MessageID = %q, want %q", i, msgs[i].MessageID, want)
				}
			}
		})
	}
}

func TestList_EmptyStoreReturnsEmptySlice(t *testing.T) {
	conn := openTestDB(t)

	msgs, total, err := List(conn, ListFilter{}, DefaultLimit, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
	if msgs == nil {
		t.Error("msgs is nil, want empty slice")
	}
	if len(msgs) != 0 {
		t.Errorf("rows = %d, want 0", len(msgs))
	}
}
