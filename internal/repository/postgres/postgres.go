package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"newsstand/internal/domain"
	"newsstand/internal/repository"
)

// Repository implements persistence interfaces on PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// New constructs a Repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ensure Repository satisfies interfaces.
var (
	_ repository.UserRepository     = (*Repository)(nil)
	_ repository.ArticleRepository  = (*Repository)(nil)
	_ repository.TaxonomyRepository = (*Repository)(nil)
)

// CreateUser inserts a user. A username collision maps to ErrDuplicate.
func (r *Repository) CreateUser(ctx context.Context, user *domain.User) error {
	const query = `INSERT INTO users (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, user.ID, user.Username, user.PasswordHash, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

// GetUserByUsername fetches a user by its lowercased username.
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`
	row := r.pool.QueryRow(ctx, query, username)
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

const articleColumns = `id, title, author, layout, page_count, description, editor, month, year, created_at`

func scanArticle(row pgx.Row, a *domain.Article) error {
	return row.Scan(&a.ID, &a.Title, &a.Author, &a.Layout, &a.PageCount,
		&a.Description, &a.Editor, &a.Month, &a.Year, &a.CreatedAt)
}

func collectArticles(rows pgx.Rows) ([]domain.Article, error) {
	defer rows.Close()
	articles := make([]domain.Article, 0)
	for rows.Next() {
		var a domain.Article
		if err := scanArticle(rows, &a); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// CreateArticle inserts an article. Taxonomy values are stored as submitted;
// they are never checked against the taxonomy collections.
func (r *Repository) CreateArticle(ctx context.Context, article *domain.Article) error {
	const query = `INSERT INTO articles (id, title, author, layout, page_count, description, editor, month, year, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query, article.ID, article.Title, article.Author, article.Layout,
		article.PageCount, article.Description, article.Editor, article.Month, article.Year, article.CreatedAt)
	return err
}

// GetArticleByID fetches a single article.
func (r *Repository) GetArticleByID(ctx context.Context, id string) (*domain.Article, error) {
	const query = `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	var a domain.Article
	if err := scanArticle(r.pool.QueryRow(ctx, query, id), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListArticles returns all articles in insertion order.
func (r *Repository) ListArticles(ctx context.Context) ([]domain.Article, error) {
	const query = `SELECT ` + articleColumns + ` FROM articles ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectArticles(rows)
}

// ListArticlesByTitle returns all articles sorted by title ascending.
func (r *Repository) ListArticlesByTitle(ctx context.Context) ([]domain.Article, error) {
	const query = `SELECT ` + articleColumns + ` FROM articles ORDER BY title ASC, created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectArticles(rows)
}

// UpdateArticle replaces the editable fields of an existing article.
func (r *Repository) UpdateArticle(ctx context.Context, article *domain.Article) error {
	const query = `UPDATE articles
		SET title = $2,
			author = $3,
			layout = $4,
			page_count = $5,
			description = $6,
			editor = $7,
			month = $8,
			year = $9
		WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, article.ID, article.Title, article.Author, article.Layout,
		article.PageCount, article.Description, article.Editor, article.Month, article.Year)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SearchArticles runs a full-text query against the stored search vector,
// ranked best match first. Blank queries are handled by the caller.
func (r *Repository) SearchArticles(ctx context.Context, query string) ([]domain.Article, error) {
	const stmt = `SELECT ` + articleColumns + ` FROM articles
		WHERE search_vector @@ websearch_to_tsquery('english', $1)
		ORDER BY ts_rank(search_vector, websearch_to_tsquery('english', $1)) DESC, created_at`
	rows, err := r.pool.Query(ctx, stmt, query)
	if err != nil {
		return nil, err
	}
	return collectArticles(rows)
}

// ListEntries returns taxonomy entries of a kind sorted by value.
func (r *Repository) ListEntries(ctx context.Context, kind domain.TaxonomyKind) ([]domain.TaxonomyEntry, error) {
	const query = `SELECT id, kind, value, created_at FROM taxonomy_entries
		WHERE kind = $1 ORDER BY value ASC, created_at`
	rows, err := r.pool.Query(ctx, query, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.TaxonomyEntry, 0)
	for rows.Next() {
		var e domain.TaxonomyEntry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Value, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetEntryByID loads a single taxonomy entry of the given kind.
func (r *Repository) GetEntryByID(ctx context.Context, kind domain.TaxonomyKind, id string) (*domain.TaxonomyEntry, error) {
	const query = `SELECT id, kind, value, created_at FROM taxonomy_entries WHERE kind = $1 AND id = $2`
	row := r.pool.QueryRow(ctx, query, string(kind), id)
	var e domain.TaxonomyEntry
	if err := row.Scan(&e.ID, &e.Kind, &e.Value, &e.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// CreateEntry appends a taxonomy entry. Duplicate values within a kind are
// allowed.
func (r *Repository) CreateEntry(ctx context.Context, entry *domain.TaxonomyEntry) error {
	const query = `INSERT INTO taxonomy_entries (id, kind, value, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.pool.Exec(ctx, query, entry.ID, string(entry.Kind), entry.Value, entry.CreatedAt)
	return err
}

// UpdateEntry replaces the value of an existing entry in place.
func (r *Repository) UpdateEntry(ctx context.Context, kind domain.TaxonomyKind, id, value string) error {
	const query = `UPDATE taxonomy_entries SET value = $3 WHERE kind = $1 AND id = $2`
	tag, err := r.pool.Exec(ctx, query, string(kind), id, value)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// DeleteEntry removes an entry. Articles that copied its value keep it.
func (r *Repository) DeleteEntry(ctx context.Context, kind domain.TaxonomyKind, id string) error {
	const query = `DELETE FROM taxonomy_entries WHERE kind = $1 AND id = $2`
	tag, err := r.pool.Exec(ctx, query, string(kind), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
