package migration

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/golang-migrate/migrate/v4/database"
)

func TestPreviousVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/1_create_records_table.up.sql":   {Data: []byte("")},
		"migrations/1_create_records_table.down.sql": {Data: []byte("")},
		"migrations/3_add_index.up.sql":              {Data: []byte("")},
		"migrations/README.md":                       {Data: []byte("")},
	}

	tests := []struct {
		name    string
		dirty   int
		want    int
		wantErr bool
	}{
		{"first migration", 1, database.NilVersion, false},
		{"later migration", 3, 1, false},
		{"unknown version", 2, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := previousVersion(fsys, tc.dirty)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("previousVersion(%d) = %d; want %d", tc.dirty, got, tc.want)
			}
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	var up, down int
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			up++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			down++
		}
	}
	if up == 0 || up != down {
		t.Errorf("embedded migrations: %d up / %d down", up, down)
	}
}

func TestWithMultiStatements(t *testing.T) {
	got := WithMultiStatements("user:pw@tcp(127.0.0.1:3306)/trucks")
	if !strings.Contains(got, "multiStatements=true") {
		t.Errorf("dsn = %q; want multiStatements=true", got)
	}
	if got := WithMultiStatements("not a dsn"); got != "not a dsn" {
		t.Errorf("unparsable dsn changed to %q", got)
	}
}
