package archive

import "fmt"

// Open opens a store for the named driver: "sqlite", "postgres" or "json".
func Open(driver, dsn string) (Store, error) {
	var (
		store Store
		err   error
	)
	switch driver {
	case "sqlite":
		store, err = OpenSQLite(dsn)
	case "postgres":
		store, err = OpenPostgres(dsn)
	case "json":
		store, err = OpenJSON(dsn)
	default:
		return nil, fmt.Errorf("unknown archive driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}
