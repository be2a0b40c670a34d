package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/msto63/argtree/foundation/cmdtree/executor"
)

type namedSender struct{ name string }

func (s namedSender) String() string { return s.name }

func outcome(id, sender, input, kind string, started time.Time) *executor.Outcome {
	o := &executor.Outcome{
		ID:       id,
		Sender:   sender,
		Input:    input,
		Path:     []string{"tp", "x", "y", "z"},
		Started:  started,
		Finished: started.Add(1500 * time.Microsecond),
	}
	if kind != "success" {
		k, _ := executor.ParseKind(kind)
		o.Path = nil
		o.Failure = &executor.Failure{Kind: k, Message: kind + " failed", Path: []string{"tp"}, Token: "q", Position: 1}
	}
	return o
}

func stores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := NewSQLiteStore(SQLiteConfig{Path: filepath.Join(t.TempDir(), "nested", "audit.db")})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })
	return map[string]Store{"sqlite": sqlite, "memory": NewMemoryStore()}
}

func TestStoreRecordAndQuery(t *testing.T) {
	now := time.Now()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			inputs := []*executor.Outcome{
				outcome("a", "alice", "tp 1 2 3", "success", now.Add(-3*time.Minute)),
				outcome("b", "bob", "tp", "syntax", now.Add(-2*time.Minute)),
				outcome("c", "alice", "tp q", "argument_parse", now.Add(-time.Minute)),
			}
			for _, o := range inputs {
				if err := store.Record(ctx, o); err != nil {
					t.Fatalf("Record() error = %v", err)
				}
			}

			all, err := store.Query(ctx, Filter{})
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			var ids []string
			for _, r := range all {
				ids = append(ids, r.ID)
			}
			if diff := cmp.Diff([]string{"c", "b", "a"}, ids); diff != "" {
				t.Errorf("Query() order mismatch (-want +got):\n%s", diff)
			}

			first := all[2]
			if first.Path != "tp x y z" || first.Kind != "success" || first.DurationMS != 1.5 {
				t.Errorf("success record = %+v", first)
			}
			failed := all[0]
			if failed.Path != "tp" || failed.Message != "argument_parse failed" || failed.Details["token"] != "q" {
				t.Errorf("failure record = %+v", failed)
			}

			byKind, _ := store.Query(ctx, Filter{Kind: "syntax"})
			if len(byKind) != 1 || byKind[0].ID != "b" {
				t.Errorf("Query(kind) = %v", byKind)
			}
			bySender, _ := store.Query(ctx, Filter{Sender: "alice", Limit: 1})
			if len(bySender) != 1 || bySender[0].ID != "c" {
				t.Errorf("Query(sender, limit) = %v", bySender)
			}
			recent, _ := store.Query(ctx, Filter{Since: now.Add(-90 * time.Second)})
			if len(recent) != 1 {
				t.Errorf("Query(since) = %d records, want 1", len(recent))
			}

			stats, err := store.Stats(ctx)
			if err != nil {
				t.Fatalf("Stats() error = %v", err)
			}
			if diff := cmp.Diff(map[string]int64{"success": 1, "syntax": 1, "argument_parse": 1}, stats); diff != "" {
				t.Errorf("Stats() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStorePrune(t *testing.T) {
	now := time.Now()

	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store.Record(ctx, outcome("old", "", "x", "lookup", now.Add(-48*time.Hour)))
			store.Record(ctx, outcome("new", "", "x", "lookup", now))

			deleted, err := store.Prune(ctx, 24*time.Hour)
			if err != nil {
				t.Fatalf("Prune() error = %v", err)
			}
			if deleted != 1 {
				t.Errorf("Prune() deleted %d, want 1", deleted)
			}
			left, _ := store.Query(ctx, Filter{})
			if len(left) != 1 || left[0].ID != "new" {
				t.Errorf("remaining records = %v", left)
			}
		})
	}
}

func TestSQLiteDuplicateID(t *testing.T) {
	store, err := NewSQLiteStore(SQLiteConfig{Path: filepath.Join(t.TempDir(), "audit.db")})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer store.Close()

	o := outcome("same", "", "x", "success", time.Now())
	if err := store.Record(context.Background(), o); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := store.Record(context.Background(), o); err == nil {
		t.Error("Record() with a duplicate id should fail")
	}
}

func TestNewRecordAssignsID(t *testing.T) {
	r := NewRecord(&executor.Outcome{Input: "x"})
	if r.ID == "" || r.Timestamp.IsZero() {
		t.Errorf("NewRecord() = %+v", r)
	}
}

func TestSenderName(t *testing.T) {
	tests := []struct {
		sender any
		want   string
	}{
		{nil, ""},
		{"console", "console"},
		{namedSender{"steve"}, "steve"},
		{42, "int"},
	}
	for _, tt := range tests {
		if got := SenderName(tt.sender); got != tt.want {
			t.Errorf("SenderName(%v) = %q, want %q", tt.sender, got, tt.want)
		}
	}
}

func TestPipelineIntegration(t *testing.T) {
	store := NewMemoryStore()
	p := executor.New(executor.Options{Auditor: store})

	o, err := p.ExecuteSync(context.Background(), "console", "missing")
	if err != nil {
		t.Fatalf("ExecuteSync() error = %v", err)
	}
	if o.Kind() != "lookup" {
		t.Fatalf("Kind() = %s, want lookup", o.Kind())
	}

	records, _ := store.Query(context.Background(), Filter{})
	if len(records) != 1 || records[0].ID != o.ID || records[0].Sender != "console" {
		t.Errorf("records = %+v", records)
	}
}
