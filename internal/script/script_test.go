package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brunobrsr1/sales-project/internal/ledger"
)

func TestBuildLoadsEveryTableInOrder(t *testing.T) {
	out := Build("data")

	last := -1
	for _, table := range ledger.TableOrder {
		stanza := fmt.Sprintf("LOAD DATA LOCAL INFILE 'data/%s.csv'\nINTO TABLE %s\n", table, table)
		idx := strings.Index(out, stanza)
		if idx < 0 {
			t.Fatalf("missing load stanza for %s", table)
		}
		if idx < last {
			t.Errorf("%s loaded out of dependency order", table)
		}
		last = idx

		cols := "(" + strings.Join(ledger.TableColumns[table], ", ") + ");"
		if !strings.Contains(out, cols) {
			t.Errorf("missing column list for %s", table)
		}
	}
}

func TestBuildTogglesForeignKeyChecks(t *testing.T) {
	out := Build("data")

	off := strings.Index(out, "SET FOREIGN_KEY_CHECKS = 0;")
	on := strings.Index(out, "SET FOREIGN_KEY_CHECKS = 1;")
	load := strings.Index(out, "LOAD DATA LOCAL INFILE")
	if off < 0 || on < 0 {
		t.Fatal("foreign key toggles missing")
	}
	if !(off < load && load < on) {
		t.Error("loads are not bracketed by the foreign key toggles")
	}
	if !strings.Contains(out, "COMMIT;") {
		t.Error("missing COMMIT")
	}
}

func TestBuildTruncatesInReverseOrder(t *testing.T) {
	out := Build("data")

	items := strings.Index(out, "TRUNCATE TABLE sale_items;")
	categories := strings.Index(out, "TRUNCATE TABLE categories;")
	if items < 0 || categories < 0 {
		t.Fatal("truncate statements missing")
	}
	if items > categories {
		t.Error("child tables must be truncated before their parents")
	}
}

func TestBuildReportsRevenue(t *testing.T) {
	out := Build("data")
	if !strings.Contains(out, "FROM sales WHERE payment_status = 'paid';") {
		t.Error("missing paid revenue query")
	}
	for _, table := range ledger.TableOrder {
		if !strings.Contains(out, fmt.Sprintf("COUNT(*) FROM %s", table)) &&
			!strings.Contains(out, fmt.Sprintf("COUNT(*) AS record_count FROM %s", table)) {
			t.Errorf("missing row count for %s", table)
		}
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import_data.sql")
	if err := Write(path, "out"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "LOAD DATA LOCAL INFILE 'out/categories.csv'") {
		t.Error("written script does not reference the data directory")
	}
}
