package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/prospect-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS enrichment_cache (
	id               TEXT PRIMARY KEY,
	stable_id        TEXT NOT NULL,
	display_name     TEXT NOT NULL,
	domain           TEXT,
	domain_source    TEXT NOT NULL,
	org_id           TEXT,
	contacts         TEXT NOT NULL DEFAULT '[]',
	confidence_score REAL NOT NULL DEFAULT 0,
	enriched_at      DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_enrichment_cache_stable_id ON enrichment_cache(stable_id, enriched_at DESC);

CREATE TABLE IF NOT EXISTS legal_cache (
	siret             TEXT PRIMARY KEY,
	denomination      TEXT NOT NULL DEFAULT '',
	leader_last_name  TEXT NOT NULL DEFAULT '',
	leader_first_name TEXT NOT NULL DEFAULT '',
	code_ape          TEXT NOT NULL DEFAULT '',
	annual_revenue    REAL NOT NULL DEFAULT 0,
	websites          TEXT NOT NULL DEFAULT '',
	phone             TEXT NOT NULL DEFAULT '',
	email             TEXT NOT NULL DEFAULT '',
	linkedin_url      TEXT NOT NULL DEFAULT '',
	category          TEXT NOT NULL DEFAULT '',
	fetched_at        DATETIME NOT NULL
);
`

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const sqliteEnrichmentColumns = `stable_id, display_name, domain, domain_source, org_id, contacts, confidence_score, enriched_at`

func (s *SQLiteStore) GetEnrichment(ctx context.Context, stableID string) (*model.EnrichmentResult, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sqliteEnrichmentColumns+` FROM enrichment_cache
		WHERE stable_id = ? ORDER BY enriched_at DESC, rowid DESC LIMIT 1`,
		stableID,
	)
	r, err := scanEnrichment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get enrichment %s", stableID)
	}
	return r, nil
}

func (s *SQLiteStore) PutEnrichment(ctx context.Context, r *model.EnrichmentResult) error {
	contacts, err := encodeContacts(r.Contacts)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO enrichment_cache (id, `+sqliteEnrichmentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), r.StableID, r.DisplayName, nullIfEmpty(r.Domain), string(r.DomainSource),
		nullIfEmpty(r.OrgID), contacts, r.ConfidenceScore, r.EnrichedAt.UTC(),
	)
	return eris.Wrapf(err, "sqlite: put enrichment %s", r.StableID)
}

func (s *SQLiteStore) ListEnrichments(ctx context.Context, filter EnrichmentFilter) ([]model.EnrichmentResult, error) {
	query := `SELECT ` + sqliteEnrichmentColumns + ` FROM enrichment_cache e
		WHERE e.rowid = (
			SELECT l.rowid FROM enrichment_cache l WHERE l.stable_id = e.stable_id
			ORDER BY l.enriched_at DESC, l.rowid DESC LIMIT 1
		)`
	if filter.WithDomain {
		query += ` AND e.domain IS NOT NULL`
	}
	query += ` ORDER BY e.enriched_at DESC, e.rowid DESC`

	var args []any
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list enrichments")
	}
	defer rows.Close() //nolint:errcheck

	var results []model.EnrichmentResult
	for rows.Next() {
		r, err := scanEnrichment(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan enrichment")
		}
		results = append(results, *r)
	}
	return results, eris.Wrap(rows.Err(), "sqlite: iterate enrichments")
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEnrichment(row scanner) (*model.EnrichmentResult, error) {
	var (
		r        model.EnrichmentResult
		domain   sql.NullString
		orgID    sql.NullString
		source   string
		contacts []byte
	)
	if err := row.Scan(&r.StableID, &r.DisplayName, &domain, &source, &orgID, &contacts, &r.ConfidenceScore, &r.EnrichedAt); err != nil {
		return nil, err
	}
	r.Domain = domain.String
	r.OrgID = orgID.String
	r.DomainSource = model.DomainSource(source)

	decoded, err := decodeContacts(contacts)
	if err != nil {
		return nil, err
	}
	r.Contacts = decoded
	r.EnrichedAt = r.EnrichedAt.UTC()
	return &r, nil
}

const legalColumns = `siret, denomination, leader_last_name, leader_first_name, code_ape, annual_revenue, websites, phone, email, linkedin_url, category`

func (s *SQLiteStore) GetLegalProfile(ctx context.Context, siret string) (*model.LegalProfile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+legalColumns+` FROM legal_cache WHERE siret = ?`, siret)
	p, err := scanLegalProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get legal profile %s", siret)
	}
	return p, nil
}

func (s *SQLiteStore) PutLegalProfile(ctx context.Context, p *model.LegalProfile) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO legal_cache (`+legalColumns+`, fetched_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(siret) DO UPDATE SET
			denomination = excluded.denomination,
			leader_last_name = excluded.leader_last_name,
			leader_first_name = excluded.leader_first_name,
			code_ape = excluded.code_ape,
			annual_revenue = excluded.annual_revenue,
			websites = excluded.websites,
			phone = excluded.phone,
			email = excluded.email,
			linkedin_url = excluded.linkedin_url,
			category = excluded.category,
			fetched_at = excluded.fetched_at`,
		legalArgs(p, time.Now().UTC())...,
	)
	return eris.Wrapf(err, "sqlite: put legal profile %s", p.SIRET)
}

func legalArgs(p *model.LegalProfile, fetchedAt time.Time) []any {
	return []any{
		p.SIRET, p.Denomination, p.LeaderLastName, p.LeaderFirstName, p.CodeAPE, p.AnnualRevenue,
		p.Websites, p.Phone, p.Email, p.LinkedInURL, p.Category, fetchedAt,
	}
}

func scanLegalProfile(row scanner) (*model.LegalProfile, error) {
	var p model.LegalProfile
	err := row.Scan(&p.SIRET, &p.Denomination, &p.LeaderLastName, &p.LeaderFirstName, &p.CodeAPE,
		&p.AnnualRevenue, &p.Websites, &p.Phone, &p.Email, &p.LinkedInURL, &p.Category)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
