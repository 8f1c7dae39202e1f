package db

import (
	"testing"
	"testing/fstest"

	"github.com/lead-studio/backend/migrations"
)

func TestUpMigrations_OrderAndFilter(t *testing.T) {
	fsys := fstest.MapFS{
		"002_leads.up.sql":  {Data: []byte("SELECT 1")},
		"001_init.up.sql":   {Data: []byte("SELECT 1")},
		"001_init.down.sql": {Data: []byte("SELECT 1")},
		"README.md":         {Data: []byte("docs")},
		"nested/003.up.sql": {Data: []byte("SELECT 1")},
	}

	got, err := upMigrations(fsys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"001_init.up.sql", "002_leads.up.sql"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestEmbeddedMigrationsPresent(t *testing.T) {
	got, err := upMigrations(migrations.FS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected embedded migrations")
	}
	if got[0] != "001_init.up.sql" {
		t.Errorf("first migration = %q", got[0])
	}
}
