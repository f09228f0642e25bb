package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	currency "github.com/malusev998/currency-archive"
)

const (
	MySQLTimeFormat  = "2006-01-02 15:04:05.000000"
	DefaultTableName = "exchange_audit"
)

type mysqlStorage struct {
	ctx       context.Context
	db        *sql.DB
	tableName string
}

func NewMySQLStorage(config MySQLConfig) (currency.Storage, error) {
	db, err := sql.Open("mysql", config.ConnectionString)

	if err != nil {
		return nil, err
	}

	return NewSQLStorage(config.Ctx, db, config.TableName, config.Migrate)
}

func NewSQLStorage(ctx context.Context, db *sql.DB, tableName string, migrate bool) (currency.Storage, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if tableName == "" {
		tableName = DefaultTableName
	}

	st := mysqlStorage{
		ctx:       ctx,
		db:        db,
		tableName: tableName,
	}

	if migrate {
		if err := st.Migrate(); err != nil {
			return nil, err
		}
	}

	return st, nil
}

func (m mysqlStorage) Append(ctx context.Context, entry currency.AuditEntry) (currency.AuditEntryWithID, error) {
	if entry.ReceivedAt.IsZero() {
		entry.ReceivedAt = time.Now()
	}

	id := uuid.New()
	tx, err := m.db.BeginTx(ctx, nil)

	if err != nil {
		return currency.AuditEntryWithID{}, err
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s(id, url, archive_date, payload, received_at) VALUES (?,?,?,?,?);", m.tableName))

	if err != nil {
		_ = tx.Rollback()
		return currency.AuditEntryWithID{}, err
	}

	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, id.String(), entry.URL, entry.Date, string(entry.Payload), entry.ReceivedAt.UTC().Format(MySQLTimeFormat))

	if err != nil {
		_ = tx.Rollback()
		return currency.AuditEntryWithID{}, err
	}

	if err := tx.Commit(); err != nil {
		return currency.AuditEntryWithID{}, err
	}

	return currency.AuditEntryWithID{
		AuditEntry: entry,
		ID:         id,
	}, nil
}

func (m mysqlStorage) GetStorageProviderName() string {
	return "MySQL"
}

func (m mysqlStorage) Migrate() error {
	_, err := m.db.ExecContext(m.ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s(
	id CHAR(36) PRIMARY KEY,
	url VARCHAR(255) NOT NULL,
	archive_date VARCHAR(10) NOT NULL,
	payload MEDIUMTEXT NOT NULL,
	received_at DATETIME(6) NOT NULL,
	INDEX %s_archive_date_idx (archive_date)
);`, m.tableName, m.tableName))

	return err
}

func (m mysqlStorage) Drop() error {
	_, err := m.db.ExecContext(m.ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s;", m.tableName))

	return err
}

func (m mysqlStorage) Close() error {
	return m.db.Close()
}
