package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCorpus reads postings from a "jobs" table:
//
//	id TEXT, title TEXT, company TEXT, location TEXT, url TEXT,
//	required_skills TEXT[], experience_min INT NULL, experience_max INT NULL,
//	status TEXT
type PostgresCorpus struct {
	pool *pgxpool.Pool
}

type jobRow struct {
	ID             string   `db:"id"`
	Title          string   `db:"title"`
	Company        string   `db:"company"`
	Location       string   `db:"location"`
	URL            string   `db:"url"`
	RequiredSkills []string `db:"required_skills"`
	ExperienceMin  *int     `db:"experience_min"`
	ExperienceMax  *int     `db:"experience_max"`
	Status         string   `db:"status"`
}

// Connect opens a pgx connection pool and performs a Ping to ensure connectivity.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	config.MaxConns = 10
	config.MinConns = 0
	config.MaxConnLifetime = time.Hour
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("open pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

func NewPostgresCorpus(pool *pgxpool.Pool) *PostgresCorpus {
	return &PostgresCorpus{pool: pool}
}

// Search runs the same title and skill-containment filters as KeywordPrefilter in SQL.
func (c *PostgresCorpus) Search(ctx context.Context, q Query) ([]Job, error) {
	sql, args := buildSearchSQL(q)

	rows, err := c.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[jobRow])
	if err != nil {
		return nil, fmt.Errorf("scan jobs: %w", err)
	}

	out := make([]Job, 0, len(records))
	for _, r := range records {
		out = append(out, r.job())
	}
	return out, nil
}

func (r jobRow) job() Job {
	skills := r.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return Job{
		ID:             r.ID,
		Title:          r.Title,
		Company:        r.Company,
		Location:       r.Location,
		URL:            r.URL,
		RequiredSkills: skills,
		Experience:     ExperienceRange{Min: r.ExperienceMin, Max: r.ExperienceMax},
		Status:         r.Status,
	}
}

func buildSearchSQL(q Query) (string, []any) {
	var (
		where []string
		args  []any
	)

	if title := strings.TrimSpace(q.Title); title != "" {
		args = append(args, "%"+escapeLike(strings.ToLower(title))+"%")
		where = append(where, fmt.Sprintf("lower(title) LIKE $%d", len(args)))
	}

	if skills := lowerNonEmpty(q.Skills); len(skills) > 0 {
		args = append(args, skills)
		where = append(where, fmt.Sprintf(`EXISTS (
	SELECT 1 FROM unnest(required_skills) AS req, unnest($%d::text[]) AS kw
	WHERE strpos(lower(req), kw) > 0
)`, len(args)))
	}

	var b strings.Builder
	b.WriteString(`SELECT id, title, coalesce(company, '') AS company, coalesce(location, '') AS location,
	coalesce(url, '') AS url, coalesce(required_skills, '{}') AS required_skills,
	experience_min, experience_max, coalesce(status, '') AS status
FROM jobs`)
	if len(where) > 0 {
		b.WriteString("\nWHERE ")
		b.WriteString(strings.Join(where, "\nAND "))
	}
	b.WriteString("\nORDER BY id")
	if q.Limit > 0 {
		args = append(args, q.Limit)
		fmt.Fprintf(&b, "\nLIMIT $%d", len(args))
	}

	return b.String(), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
