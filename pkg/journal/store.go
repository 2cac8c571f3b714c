package journal

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/unowned-ai/ktl/pkg/db"
	"github.com/unowned-ai/ktl/pkg/records"
	"gopkg.in/yaml.v3"
)

// Store is a loaded journal: a sealed, read-only in-memory database.
type Store struct {
	id     uuid.UUID
	db     *sql.DB
	counts records.Counts
}

type options struct {
	log io.Writer
}

// Option configures Load.
type Option func(*options)

// WithLog makes Load write one progress line per phase to w.
func WithLog(w io.Writer) Option {
	return func(o *options) { o.log = w }
}

func (o *options) logf(format string, args ...any) {
	if o.log != nil {
		fmt.Fprintf(o.log, format+"\n", args...)
	}
}

// Load validates doc and builds a new store from it. Nothing is kept when
// validation or insertion fails.
func Load(ctx context.Context, doc *yaml.Node, opts ...Option) (*Store, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	batch, err := Decode(doc)
	if err != nil {
		return nil, err
	}
	counts := batch.Counts()
	o.logf("Validated journal: %d exercises, %d strength sets, %d endurance sets, %d nutrition rows, %d measurements",
		counts.Exercises, counts.StrengthSets, counts.EnduranceSets, counts.Nutrition, counts.Measurements)

	id := uuid.New()
	conn, err := db.OpenMemoryDB("ktl-" + id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := fill(ctx, conn, batch); err != nil {
		conn.Close()
		return nil, err
	}
	o.logf("Loaded store %s (schema version %d)", id, db.TargetSchemaVersion)

	return &Store{id: id, db: conn, counts: counts}, nil
}

func fill(ctx context.Context, conn *sql.DB, batch records.Batch) error {
	if err := db.InitializeSchema(conn, db.TargetSchemaVersion); err != nil {
		return fmt.Errorf("failed to create store schema: %w", err)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := records.InsertBatch(ctx, tx, batch); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit journal: %w", err)
	}

	return db.SetReadOnly(ctx, conn)
}

// LoadBytes parses data as YAML (JSON included) and loads it.
func LoadBytes(ctx context.Context, data []byte, opts ...Option) (*Store, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Kind: ErrStructural, Msg: "the document is not valid YAML", Err: err}
	}
	return Load(ctx, &doc, opts...)
}

// LoadFile reads and loads the journal at path.
func LoadFile(ctx context.Context, path string, opts ...Option) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	return LoadBytes(ctx, data, opts...)
}

// ID names the in-memory database backing s.
func (s *Store) ID() uuid.UUID { return s.id }

// DB exposes the underlying read-only connection pool.
func (s *Store) DB() *sql.DB { return s.db }

// Stats reports the number of rows loaded into each table.
func (s *Store) Stats() records.Counts { return s.counts }

// Query runs a read-only SQL statement against the store.
func (s *Store) Query(ctx context.Context, query string, args ...any) (*records.Result, error) {
	return records.RunQuery(ctx, s.db, query, args...)
}

// Exercises returns the catalogue as loaded.
func (s *Store) Exercises(ctx context.Context) ([]records.Exercise, error) {
	return records.ListExercises(ctx, s.db)
}

// SchemaVersion returns the user_version recorded in the store.
func (s *Store) SchemaVersion() (int64, error) {
	return db.GetSchemaVersion(s.db)
}

// Close releases the store. The database is gone afterwards.
func (s *Store) Close() error {
	return s.db.Close()
}
