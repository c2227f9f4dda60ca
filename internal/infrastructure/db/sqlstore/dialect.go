package sqlstore

import (
	"fmt"
	"strings"
)

type dialect struct {
	name          string
	driverName    string
	gooseDialect  string
	migrationsDir string
	// singleWriter limits the pool to one connection; SQLite serialises
	// writers anyway and busy errors are avoided this way.
	singleWriter bool
}

var (
	postgresDialect = dialect{
		name:          DriverPostgres,
		driverName:    "pgx",
		gooseDialect:  "pgx",
		migrationsDir: "postgres",
	}
	sqliteDialect = dialect{
		name:          DriverSQLite,
		driverName:    "sqlite",
		gooseDialect:  "sqlite3",
		migrationsDir: "sqlite",
		singleWriter:  true,
	}
)

func dialectFor(driver string) (dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverPostgres, "pgx":
		return postgresDialect, nil
	case DriverSQLite, "sqlite3":
		return sqliteDialect, nil
	default:
		return dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// dsn enables foreign-key enforcement on every SQLite connection; SQLite
// leaves it off by default.
func (d dialect) dsn(raw string) string {
	if d.name != DriverSQLite || strings.Contains(raw, "_pragma=foreign_keys") {
		return raw
	}
	sep := "?"
	if strings.Contains(raw, "?") {
		sep = "&"
	}
	return raw + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// rebind turns $N placeholders into SQLite's ?N form.
func (d dialect) rebind(q string) string {
	if d.name != DriverSQLite {
		return q
	}
	return strings.ReplaceAll(q, "$", "?")
}
