package journal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"

	"github.com/temide/litepool"
	"github.com/temide/litepool/packer"
)

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

var createExecutions = `create table if not exists executions (
		id TEXT not null primary key,
		worker_id TEXT not null,
		status TEXT not null,
		error TEXT not null default '',
		detail BLOB,
		created_at TEXT not null
	) strict;`

// row mirrors the executions table
type row struct {
	Id        string `db:"id"`
	WorkerId  string `db:"worker_id"`
	Status    string `db:"status"`
	Error     string `db:"error"`
	Detail    []byte `db:"detail"`
	CreatedAt string `db:"created_at"`
}

// Entry is one journalled execution, read back from sqlite.
type Entry struct {
	Id        string
	WorkerId  string
	Status    string
	Error     string
	CreatedAt string
	Detail    *packer.Detail
}

// Journal persists every task invocation a pool reports to it. It implements
// litepool.Recorder, so wire it in with litepool.WithRecorder.
type Journal struct {
	logger *slog.Logger
	clock  Clock
	db     *sqlx.DB
}

// New opens (creating if needed) a journal database at dbPath.
func New(dbPath string, logger *slog.Logger) (*Journal, error) {
	db, err := sqlx.Open("sqlite3", fmt.Sprintf("%s?cache=shared&mode=rwc&_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath))
	if err != nil {
		return nil, err
	}

	_, err = db.Exec("PRAGMA journal_size_limit = 67108864;")
	if err != nil {
		return nil, err
	}

	j := &Journal{db: db, logger: logger, clock: NewRealClock()}

	err = j.inTx(context.Background(), func(tx *sqlx.Tx) error {
		_, err := tx.Exec(createExecutions)
		return err
	})
	if err != nil {
		return nil, err
	}

	return j, nil
}

// WithClock replaces the clock used for created_at timestamps. Tests use
// this to make rows deterministic.
func (j *Journal) WithClock(c Clock) *Journal {
	j.clock = c
	return j
}

// Record implements litepool.Recorder. It is called from worker goroutines,
// so write failures are logged rather than returned.
func (j *Journal) Record(e litepool.Execution) {
	if err := j.record(context.Background(), e); err != nil {
		j.logger.Error(fmt.Sprintf("failed to journal execution from %s", e.WorkerId), "err", err.Error())
	}
}

func (j *Journal) record(ctx context.Context, e litepool.Execution) error {
	status := StatusCompleted
	errText := ""
	if e.Err != nil {
		status = StatusFailed
		errText = e.Err.Error()
	}

	detail, err := packer.EncodeDetail(&packer.Detail{
		DurationNs: e.Duration.Nanoseconds(),
		Error:      errText,
		Panicked:   e.Panicked,
	})
	if err != nil {
		return err
	}

	return j.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO executions (id, worker_id, status, error, detail, created_at) values ($1, $2, $3, $4, $5, $6)`,
			ulid.Make().String(), e.WorkerId, status, errText, detail, j.clock.Now().Format(Rfc3339Milli))
		return err
	})
}

// Executions returns every journalled execution, oldest first.
func (j *Journal) Executions(ctx context.Context) ([]Entry, error) {
	return j.query(ctx, `select * from executions order by id`)
}

// Failed returns the executions whose task returned an error or panicked.
func (j *Journal) Failed(ctx context.Context) ([]Entry, error) {
	return j.query(ctx, `select * from executions where status = 'failed' order by id`)
}

func (j *Journal) query(ctx context.Context, q string) ([]Entry, error) {
	rows, err := j.db.QueryxContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		r := row{}
		if err = rows.StructScan(&r); err != nil {
			return nil, err
		}

		detail, err := packer.DecodeDetail(r.Detail)
		if err != nil {
			return nil, err
		}

		entries = append(entries, Entry{
			Id:        r.Id,
			WorkerId:  r.WorkerId,
			Status:    r.Status,
			Error:     r.Error,
			CreatedAt: r.CreatedAt,
			Detail:    detail,
		})
	}

	return entries, rows.Err()
}

func (j *Journal) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := j.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	return tx.Commit()
}

// Close releases the underlying database handle.
func (j *Journal) Close() error {
	return j.db.Close()
}
