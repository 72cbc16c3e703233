// Package store persists serialized Protocol IR snapshots for local
// debugging: saving one version's lifted IR and diffing it against
// another without re-lifting the source page. It does not participate
// in extract.Build itself, which stays a pure function of its inputs.
package store

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	glebarezsqlite "github.com/glebarez/sqlite"
	libsql "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/oxhq/protoir/ir"
)

// Snapshot is one persisted (game_version, protocol_number) lift. IR
// is stored as a native JSON column (gorm.io/datatypes.JSON) rather
// than an opaque blob, so the cache can be queried or indexed by a
// database that supports JSON columns, not just round-tripped.
type Snapshot struct {
	GameVersion    string         `gorm:"primaryKey;type:varchar(32)"`
	ProtocolNumber int            `gorm:"primaryKey"`
	IR             datatypes.JSON `gorm:"type:json"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
}

// Store is a handle onto the snapshot database.
type Store struct {
	db *gorm.DB
}

// Open establishes a connection and runs migrations. dsn is either a
// local sqlite file path (opened with the pure-Go glebarez/sqlite
// dialector, no cgo) or a libsql:// URL (opened over the database/sql
// connection the libsql client driver provides), and runs migrations
// either way.
func Open(dsn string) (*Store, error) {
	var (
		dialector gorm.Dialector
		conn      *sql.DB
	)

	if isURL(dsn) {
		token := os.Getenv("PROTOIR_LIBSQL_AUTH_TOKEN")
		var (
			connector driver.Connector
			err       error
		)
		if token != "" {
			connector, err = libsql.NewConnector(dsn, libsql.WithAuthToken(token))
		} else {
			connector, err = libsql.NewConnector(dsn)
		}
		if err != nil {
			return nil, fmt.Errorf("store: create libsql connector: %w", err)
		}
		conn = sql.OpenDB(connector)
		dialector = sqlite.New(sqlite.Config{DriverName: "libsql", Conn: conn, DSN: dsn})
	} else {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: create database directory: %w", err)
		}
		dialector = glebarezsqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		if conn != nil {
			conn.Close()
		}
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	if err := db.AutoMigrate(&Snapshot{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

func isURL(dsn string) bool {
	return strings.HasPrefix(dsn, "http://") || strings.HasPrefix(dsn, "https://") || strings.HasPrefix(dsn, "libsql")
}

// Save serializes p to its dataType-tagged JSON form and upserts it
// keyed by (GameVersion, ProtocolNumber).
func (s *Store) Save(p *ir.Protocol) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("store: marshal protocol: %w", err)
	}
	snap := Snapshot{GameVersion: p.GameVersion, ProtocolNumber: p.ProtocolNumber, IR: body}
	return s.db.Save(&snap).Error
}

// Load returns the raw JSON IR for a version key of the form
// "gameVersion/protocolNumber" or bare gameVersion (latest protocol
// number on record for that version).
func (s *Store) Load(version string) ([]byte, error) {
	gameVersion, protocolNumber, hasNumber := splitVersionKey(version)

	q := s.db.Where("game_version = ?", gameVersion)
	var snap Snapshot
	var err error
	if hasNumber {
		err = q.Where("protocol_number = ?", protocolNumber).First(&snap).Error
	} else {
		err = q.Order("protocol_number desc").First(&snap).Error
	}
	if err != nil {
		return nil, fmt.Errorf("store: load %q: %w", version, err)
	}
	return snap.IR, nil
}

func splitVersionKey(version string) (gameVersion string, protocolNumber int, hasNumber bool) {
	idx := strings.LastIndex(version, "/")
	if idx < 0 {
		return version, 0, false
	}
	n, err := strconv.Atoi(version[idx+1:])
	if err != nil {
		return version, 0, false
	}
	return version[:idx], n, true
}

// List returns every cached snapshot, ordered by game version and then
// by protocol number (highest first), for the debug CLI's "cache list"
// subcommand.
func (s *Store) List() ([]Snapshot, error) {
	var snaps []Snapshot
	err := s.db.Order("game_version, protocol_number desc").Find(&snaps).Error
	return snaps, err
}

// Diff renders a unified diff of two versions' pretty-printed IR JSON,
// the way providers/base/provider.go uses go-difflib for transform
// before/after diffs.
func (s *Store) Diff(a, b string) (string, error) {
	aBody, err := s.Load(a)
	if err != nil {
		return "", err
	}
	bBody, err := s.Load(b)
	if err != nil {
		return "", err
	}
	return unifiedJSONDiff(a, aBody, b, bBody)
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
