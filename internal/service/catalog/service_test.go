package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"newsstand/internal/domain"
	"newsstand/internal/repository"
)

type articleRepoStub struct {
	articles    map[string]domain.Article
	listed      []domain.Article
	creates     int
	updates     int
	lastQuery   string
	searchCalls int
}

func newArticleRepoStub() *articleRepoStub {
	return &articleRepoStub{articles: make(map[string]domain.Article)}
}

func (s *articleRepoStub) CreateArticle(ctx context.Context, article *domain.Article) error {
	s.articles[article.ID] = *article
	s.creates++
	return nil
}

func (s *articleRepoStub) GetArticleByID(ctx context.Context, id string) (*domain.Article, error) {
	article, ok := s.articles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &article, nil
}

func (s *articleRepoStub) ListArticles(ctx context.Context) ([]domain.Article, error) {
	return append([]domain.Article(nil), s.listed...), nil
}

func (s *articleRepoStub) ListArticlesByTitle(ctx context.Context) ([]domain.Article, error) {
	return append([]domain.Article(nil), s.listed...), nil
}

func (s *articleRepoStub) UpdateArticle(ctx context.Context, article *domain.Article) error {
	if _, ok := s.articles[article.ID]; !ok {
		return repository.ErrNotFound
	}
	existing := s.articles[article.ID]
	article.CreatedAt = existing.CreatedAt
	s.articles[article.ID] = *article
	s.updates++
	return nil
}

func (s *articleRepoStub) SearchArticles(ctx context.Context, query string) ([]domain.Article, error) {
	s.searchCalls++
	s.lastQuery = query
	return nil, nil
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validInput() Input {
	return Input{
		Title:       "Issue 1",
		Author:      "John Smith",
		Layout:      "full-bleed",
		PageCount:   "48",
		Description: "Launch issue",
		Editor:      "Jane Doe",
		Month:       "January",
		Year:        "2024",
	}
}

func TestCreateCopiesSubmittedValues(t *testing.T) {
	repo := newArticleRepoStub()
	svc := New(repo, newLogger())

	article, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if article.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if article.PageCount != 48 {
		t.Fatalf("expected parsed page count 48, got %d", article.PageCount)
	}
	if article.Editor != "Jane Doe" || article.Year != "2024" {
		t.Fatalf("unexpected copied values: %+v", article)
	}
	if repo.creates != 1 {
		t.Fatalf("expected one write, got %d", repo.creates)
	}
}

func TestCreateRejectsInvalidInputBeforeWrite(t *testing.T) {
	cases := map[string]func(*Input){
		"missing title": func(in *Input) { in.Title = " " },
		"missing author": func(in *Input) { in.Author = "" },
		"missing editor": func(in *Input) { in.Editor = "" },
		"missing month": func(in *Input) { in.Month = "" },
		"non-numeric pages": func(in *Input) { in.PageCount = "forty" },
		"zero pages": func(in *Input) { in.PageCount = "0" },
		"negative pages": func(in *Input) { in.PageCount = "-3" },
		"short year": func(in *Input) { in.Year = "999" },
		"long year": func(in *Input) { in.Year = "20240" },
		"non-numeric year": func(in *Input) { in.Year = "20x4" },
		"missing year": func(in *Input) { in.Year = "" },
		"missing page count": func(in *Input) { in.PageCount = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := newArticleRepoStub()
			svc := New(repo, newLogger())
			input := validInput()
			mutate(&input)

			if _, err := svc.Create(context.Background(), input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if repo.creates != 0 {
				t.Fatalf("invalid input reached the store")
			}
		})
	}
}

func TestUpdateReplacesFullDocument(t *testing.T) {
	repo := newArticleRepoStub()
	svc := New(repo, newLogger())

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	input := validInput()
	input.Title = "Issue 1 (revised)"
	input.Description = ""
	updated, err := svc.Update(context.Background(), created.ID, input)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Issue 1 (revised)" {
		t.Fatalf("unexpected title: %q", updated.Title)
	}
	stored := repo.articles[created.ID]
	if stored.Description != "" {
		t.Fatalf("update is not a full replace: %+v", stored)
	}
}

func TestUpdateRejectsPartialDocument(t *testing.T) {
	repo := newArticleRepoStub()
	svc := New(repo, newLogger())

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	input := validInput()
	input.Title = ""
	if _, err := svc.Update(context.Background(), created.ID, input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if repo.updates != 0 {
		t.Fatalf("partial document reached the store")
	}
}

func TestUpdateUnknownArticle(t *testing.T) {
	svc := New(newArticleRepoStub(), newLogger())
	if _, err := svc.Update(context.Background(), "missing", validInput()); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSearchBlankQueryReturnsFullListing(t *testing.T) {
	repo := newArticleRepoStub()
	repo.listed = []domain.Article{{ID: "a"}, {ID: "b"}}
	svc := New(repo, newLogger())

	articles, err := svc.Search(context.Background(), "   ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected full listing, got %d articles", len(articles))
	}
	if repo.searchCalls != 0 {
		t.Fatalf("blank query should not hit the text index")
	}
}

func TestSearchDelegatesTrimmedQuery(t *testing.T) {
	repo := newArticleRepoStub()
	svc := New(repo, newLogger())

	if _, err := svc.Search(context.Background(), "  launch issue "); err != nil {
		t.Fatalf("search: %v", err)
	}
	if repo.lastQuery != "launch issue" {
		t.Fatalf("expected trimmed query, got %q", repo.lastQuery)
	}
}
