// Package script renders the SQL artifact that bulk-loads the generated CSV
// files into MySQL.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brunobrsr1/sales-project/internal/ledger"
)

// Build renders the import script. Files are loaded in dependency order with
// foreign key checks disabled around the whole batch, then per-table counts
// and aggregate paid revenue are reported.
func Build(dataDir string) string {
	var b strings.Builder

	b.WriteString("-- SQL script to bulk-load the generated CSV files.\n")
	b.WriteString("-- Usage: mysql --local-infile=1 -u <user> -p <database> < import_data.sql\n\n")
	b.WriteString("SET FOREIGN_KEY_CHECKS = 0;\n")
	b.WriteString("SET AUTOCOMMIT = 0;\n\n")

	b.WriteString("-- Clear existing data\n")
	for i := len(ledger.TableOrder) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "TRUNCATE TABLE %s;\n", ledger.TableOrder[i])
	}
	b.WriteString("\n")

	for _, table := range ledger.TableOrder {
		path := filepath.ToSlash(filepath.Join(dataDir, table+".csv"))
		fmt.Fprintf(&b, "LOAD DATA LOCAL INFILE '%s'\n", path)
		fmt.Fprintf(&b, "INTO TABLE %s\n", table)
		b.WriteString("FIELDS TERMINATED BY ','\n")
		b.WriteString("OPTIONALLY ENCLOSED BY '\"'\n")
		b.WriteString("LINES TERMINATED BY '\\n'\n")
		fmt.Fprintf(&b, "(%s);\n\n", strings.Join(ledger.TableColumns[table], ", "))
	}

	b.WriteString("COMMIT;\n")
	b.WriteString("SET FOREIGN_KEY_CHECKS = 1;\n")
	b.WriteString("SET AUTOCOMMIT = 1;\n\n")

	b.WriteString("-- Row counts per table\n")
	for i, table := range ledger.TableOrder {
		if i == 0 {
			fmt.Fprintf(&b, "SELECT '%s' AS table_name, COUNT(*) AS record_count FROM %s\n", table, table)
		} else {
			fmt.Fprintf(&b, "UNION ALL\nSELECT '%s', COUNT(*) FROM %s\n", table, table)
		}
	}
	b.WriteString(";\n\n")

	b.WriteString("SELECT 'Total Revenue (Paid Orders)' AS metric,\n")
	b.WriteString("       CONCAT('$', FORMAT(SUM(total_amount), 2)) AS value\n")
	b.WriteString("FROM sales WHERE payment_status = 'paid';\n")

	return b.String()
}

// Write renders the script against dataDir and saves it at path.
func Write(path, dataDir string) error {
	return os.WriteFile(path, []byte(Build(dataDir)), 0644)
}
