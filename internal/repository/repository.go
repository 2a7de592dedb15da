package repository

import (
	"context"

	"newsstand/internal/domain"
)

// UserRepository persists editor accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// ArticleRepository persists catalog articles.
type ArticleRepository interface {
	CreateArticle(ctx context.Context, article *domain.Article) error
	GetArticleByID(ctx context.Context, id string) (*domain.Article, error)
	// ListArticles returns every article in natural store order.
	ListArticles(ctx context.Context) ([]domain.Article, error)
	// ListArticlesByTitle returns every article sorted by title ascending.
	ListArticlesByTitle(ctx context.Context) ([]domain.Article, error)
	// UpdateArticle replaces the editable fields of the article wholesale.
	UpdateArticle(ctx context.Context, article *domain.Article) error
	// SearchArticles runs a full-text query over title, author and
	// description, best matches first.
	SearchArticles(ctx context.Context, query string) ([]domain.Article, error)
}

// TaxonomyRepository persists the per-kind reference collections.
type TaxonomyRepository interface {
	// ListEntries returns entries of the kind sorted by value ascending.
	ListEntries(ctx context.Context, kind domain.TaxonomyKind) ([]domain.TaxonomyEntry, error)
	GetEntryByID(ctx context.Context, kind domain.TaxonomyKind, id string) (*domain.TaxonomyEntry, error)
	CreateEntry(ctx context.Context, entry *domain.TaxonomyEntry) error
	UpdateEntry(ctx context.Context, kind domain.TaxonomyKind, id, value string) error
	DeleteEntry(ctx context.Context, kind domain.TaxonomyKind, id string) error
}
