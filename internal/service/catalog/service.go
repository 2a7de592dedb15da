package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"newsstand/internal/domain"
	"newsstand/internal/repository"
)

// ErrInvalidInput marks a rejected article submission. Concrete causes wrap
// it, so handlers match with errors.Is.
var ErrInvalidInput = errors.New("invalid article input")

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// Input carries the submitted article fields as they arrive from the form.
// PageCount and Year stay textual here and are validated into their
// semantic types before any write.
type Input struct {
	Title       string `json:"title"`
	Author      string `json:"author"`
	Layout      string `json:"layout"`
	PageCount   string `json:"page_count"`
	Description string `json:"description"`
	Editor      string `json:"editor"`
	Month       string `json:"month"`
	Year        string `json:"year"`
}

// Service orchestrates the article catalog.
type Service struct {
	articles repository.ArticleRepository
	logger   *slog.Logger
}

// New returns a catalog service.
func New(articles repository.ArticleRepository, logger *slog.Logger) Service {
	return Service{articles: articles, logger: logger}
}

// validate checks the complete editable field set and returns the parsed
// page count. Layout and description are optional; everything else is
// required.
func validate(input Input) (int, error) {
	if strings.TrimSpace(input.Title) == "" {
		return 0, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Author) == "" {
		return 0, fmt.Errorf("%w: author is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Editor) == "" {
		return 0, fmt.Errorf("%w: editor is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Month) == "" {
		return 0, fmt.Errorf("%w: month is required", ErrInvalidInput)
	}
	if !yearPattern.MatchString(strings.TrimSpace(input.Year)) {
		return 0, fmt.Errorf("%w: year must be a four-digit year", ErrInvalidInput)
	}
	pages, err := strconv.Atoi(strings.TrimSpace(input.PageCount))
	if err != nil || pages <= 0 {
		return 0, fmt.Errorf("%w: page count must be a positive integer", ErrInvalidInput)
	}
	return pages, nil
}

func apply(article *domain.Article, input Input, pages int) {
	article.Title = strings.TrimSpace(input.Title)
	article.Author = strings.TrimSpace(input.Author)
	article.Layout = strings.TrimSpace(input.Layout)
	article.PageCount = pages
	article.Description = strings.TrimSpace(input.Description)
	article.Editor = strings.TrimSpace(input.Editor)
	article.Month = strings.TrimSpace(input.Month)
	article.Year = strings.TrimSpace(input.Year)
}

// Create validates the submission and persists a new article. Taxonomy
// values are copied as-is; their entries may be edited or deleted later
// without affecting this record.
func (s Service) Create(ctx context.Context, input Input) (*domain.Article, error) {
	pages, err := validate(input)
	if err != nil {
		return nil, err
	}
	article := &domain.Article{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	apply(article, input, pages)
	if err := s.articles.CreateArticle(ctx, article); err != nil {
		return nil, err
	}
	s.logger.Info("article created", "article_id", article.ID, "title", article.Title)
	return article, nil
}

// Update replaces the editable fields of an existing article wholesale.
// The submission must be a complete document; partial bodies are rejected
// before any write.
func (s Service) Update(ctx context.Context, id string, input Input) (*domain.Article, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, repository.ErrNotFound
	}
	pages, err := validate(input)
	if err != nil {
		return nil, err
	}
	article := &domain.Article{ID: id}
	apply(article, input, pages)
	if err := s.articles.UpdateArticle(ctx, article); err != nil {
		return nil, err
	}
	s.logger.Info("article updated", "article_id", id)
	return article, nil
}

// Get returns a single article by identifier.
func (s Service) Get(ctx context.Context, id string) (*domain.Article, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, repository.ErrNotFound
	}
	return s.articles.GetArticleByID(ctx, id)
}

// List returns all articles in natural store order.
func (s Service) List(ctx context.Context) ([]domain.Article, error) {
	return s.articles.ListArticles(ctx)
}

// ListByTitle returns all articles sorted by title, used by the edit flow.
func (s Service) ListByTitle(ctx context.Context) ([]domain.Article, error) {
	return s.articles.ListArticlesByTitle(ctx)
}

// Search runs a full-text query over the catalog. A blank query returns the
// full listing in natural order rather than an error.
func (s Service) Search(ctx context.Context, query string) ([]domain.Article, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.articles.ListArticles(ctx)
	}
	return s.articles.SearchArticles(ctx, query)
}
