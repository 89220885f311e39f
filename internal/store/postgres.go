package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/prospect-cli/internal/db"
	"github.com/sells-group/prospect-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
	now  func() time.Time
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 1
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return newPostgresWithPool(pool), nil
}

func newPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, now: time.Now}
}

// seq breaks enriched_at ties in insertion order.
const postgresMigration = `
CREATE TABLE IF NOT EXISTS enrichment_cache (
	id               TEXT PRIMARY KEY,
	seq              BIGSERIAL NOT NULL,
	stable_id        TEXT NOT NULL,
	display_name     TEXT NOT NULL,
	domain           TEXT,
	domain_source    TEXT NOT NULL,
	org_id           TEXT,
	contacts         JSONB NOT NULL DEFAULT '[]'::jsonb,
	confidence_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	enriched_at      TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_enrichment_cache_latest ON enrichment_cache(stable_id, enriched_at DESC, seq DESC);

CREATE TABLE IF NOT EXISTS legal_cache (
	siret             TEXT PRIMARY KEY,
	denomination      TEXT NOT NULL DEFAULT '',
	leader_last_name  TEXT NOT NULL DEFAULT '',
	leader_first_name TEXT NOT NULL DEFAULT '',
	code_ape          TEXT NOT NULL DEFAULT '',
	annual_revenue    DOUBLE PRECISION NOT NULL DEFAULT 0,
	websites          TEXT NOT NULL DEFAULT '',
	phone             TEXT NOT NULL DEFAULT '',
	email             TEXT NOT NULL DEFAULT '',
	linkedin_url      TEXT NOT NULL DEFAULT '',
	category          TEXT NOT NULL DEFAULT '',
	fetched_at        TIMESTAMPTZ NOT NULL
);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const pgEnrichmentColumns = `stable_id, display_name, domain, domain_source, org_id, contacts, confidence_score, enriched_at`

func (s *PostgresStore) GetEnrichment(ctx context.Context, stableID string) (*model.EnrichmentResult, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+pgEnrichmentColumns+` FROM enrichment_cache
		WHERE stable_id = $1 ORDER BY enriched_at DESC, seq DESC LIMIT 1`,
		stableID,
	)
	r, err := scanPgEnrichment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get enrichment %s", stableID)
	}
	return r, nil
}

func (s *PostgresStore) PutEnrichment(ctx context.Context, r *model.EnrichmentResult) error {
	contacts, err := encodeContacts(r.Contacts)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO enrichment_cache (id, `+pgEnrichmentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9)`,
		uuid.New().String(), r.StableID, r.DisplayName, nullIfEmpty(r.Domain), string(r.DomainSource),
		nullIfEmpty(r.OrgID), contacts, r.ConfidenceScore, r.EnrichedAt.UTC(),
	)
	return eris.Wrapf(err, "postgres: put enrichment %s", r.StableID)
}

func (s *PostgresStore) ListEnrichments(ctx context.Context, filter EnrichmentFilter) ([]model.EnrichmentResult, error) {
	inner := `SELECT DISTINCT ON (stable_id) ` + pgEnrichmentColumns + ` FROM enrichment_cache`
	if filter.WithDomain {
		inner += ` WHERE domain IS NOT NULL`
	}
	inner += ` ORDER BY stable_id, enriched_at DESC, seq DESC`

	query := fmt.Sprintf(`SELECT %s FROM (%s) latest ORDER BY enriched_at DESC`, pgEnrichmentColumns, inner)
	var args []any
	if filter.Limit > 0 {
		query += ` LIMIT $1`
		args = append(args, filter.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list enrichments")
	}
	defer rows.Close()

	var results []model.EnrichmentResult
	for rows.Next() {
		r, err := scanPgEnrichment(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan enrichment")
		}
		results = append(results, *r)
	}
	return results, eris.Wrap(rows.Err(), "postgres: iterate enrichments")
}

func scanPgEnrichment(row pgx.Row) (*model.EnrichmentResult, error) {
	var (
		r        model.EnrichmentResult
		domain   *string
		orgID    *string
		source   string
		contacts []byte
	)
	if err := row.Scan(&r.StableID, &r.DisplayName, &domain, &source, &orgID, &contacts, &r.ConfidenceScore, &r.EnrichedAt); err != nil {
		return nil, err
	}
	r.Domain = derefString(domain)
	r.OrgID = derefString(orgID)
	r.DomainSource = model.DomainSource(source)

	decoded, err := decodeContacts(contacts)
	if err != nil {
		return nil, err
	}
	r.Contacts = decoded
	r.EnrichedAt = r.EnrichedAt.UTC()
	return &r, nil
}

var legalUpsert = db.UpsertConfig{
	Table: "legal_cache",
	Columns: []string{
		"siret", "denomination", "leader_last_name", "leader_first_name", "code_ape", "annual_revenue",
		"websites", "phone", "email", "linkedin_url", "category", "fetched_at",
	},
	ConflictKeys: []string{"siret"},
}

func (s *PostgresStore) GetLegalProfile(ctx context.Context, siret string) (*model.LegalProfile, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+legalColumns+` FROM legal_cache WHERE siret = $1`, siret)
	p, err := scanLegalProfile(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get legal profile %s", siret)
	}
	return p, nil
}

func (s *PostgresStore) PutLegalProfile(ctx context.Context, p *model.LegalProfile) error {
	err := db.Upsert(ctx, s.pool, legalUpsert, legalArgs(p, s.now().UTC()))
	return eris.Wrapf(err, "postgres: put legal profile %s", p.SIRET)
}
