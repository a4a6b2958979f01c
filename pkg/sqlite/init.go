package sqlite

import (
	"database/sql"

	vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	"github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver carrying the sqlite-vec extension.
const DriverName = "sqlite3_vec"

func init() {
	// vec.Auto registers sqlite-vec as an auto-loaded extension, so every
	// connection opened through this driver can create vec0 tables.
	vec.Auto()

	sql.Register(DriverName, &sqlite3.SQLiteDriver{})
}
