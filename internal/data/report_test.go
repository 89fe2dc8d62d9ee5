package data

import (
	"context"
	"errors"
	"testing"

	"moviedex/internal/biz"
)

func TestListMoviesJoinsNamesAndPages(t *testing.T) {
	d := newTestData(t)
	uc, _ := newTestUseCase(d)
	ctx := context.Background()

	submit(t, uc, "Inception", "Sci-Fi", 5)
	submit(t, uc, "Arrival", "Sci-Fi", 4)
	submit(t, uc, "Titanic", "Romance", 3)

	all, err := uc.ListMovies(ctx, &biz.MovieListQuery{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all.Items) != 3 || all.NextCursor != "" {
		t.Fatalf("page = %+v", all)
	}
	want := map[string][2]string{
		"Inception": {"Christopher Nolan", "Sci-Fi"},
		"Arrival":   {"Denis Villeneuve", "Sci-Fi"},
		"Titanic":   {"James Cameron", "Romance"},
	}
	for _, m := range all.Items {
		if w := want[m.Name]; w[0] != m.Director || w[1] != m.Genre {
			t.Errorf("%s: director %q genre %q, want %v", m.Name, m.Director, m.Genre, w)
		}
	}

	first, err := uc.ListMovies(ctx, &biz.MovieListQuery{Limit: 2})
	if err != nil {
		t.Fatalf("first page: %v", err)
	}
	if len(first.Items) != 2 || first.NextCursor == "" {
		t.Fatalf("first page = %+v", first)
	}
	second, err := uc.ListMovies(ctx, &biz.MovieListQuery{Limit: 2, Cursor: first.NextCursor})
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(second.Items) != 1 || second.NextCursor != "" {
		t.Fatalf("second page = %+v", second)
	}
	if second.Items[0].Name != "Titanic" {
		t.Fatalf("second page holds %q, want insertion order", second.Items[0].Name)
	}

	if _, err := uc.ListMovies(ctx, &biz.MovieListQuery{Limit: 2, Cursor: "%%%"}); !biz.IsValidation(err) {
		t.Fatalf("expected validation error for bad cursor, got %v", err)
	}
}

func TestSearchAndUpdateRating(t *testing.T) {
	d := newTestData(t)
	uc, _ := newTestUseCase(d)
	ctx := context.Background()
	submit(t, uc, "Inception", "Sci-Fi", 5)
	submit(t, uc, "Arrival", "Sci-Fi", 4)

	rows, err := uc.SearchByRating(ctx, 3)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rating 3 matched %+v", rows)
	}

	row, err := uc.UpdateRating(ctx, "Arrival", 3)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if row.Rating != 3 || row.Director != "Denis Villeneuve" {
		t.Fatalf("row = %+v", row)
	}

	rows, err = uc.SearchByRating(ctx, 3)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Arrival" {
		t.Fatalf("rating 3 = %+v", rows)
	}

	// same value again still finds the row
	if _, err := uc.UpdateRating(ctx, "Arrival", 3); err != nil {
		t.Fatalf("idempotent update: %v", err)
	}
	if _, err := uc.UpdateRating(ctx, "Missing", 2); !errors.Is(err, biz.ErrMovieNotFound) {
		t.Fatalf("expected ErrMovieNotFound, got %v", err)
	}
}

func TestListDirectorsAndGenres(t *testing.T) {
	d := newTestData(t)
	uc, _ := newTestUseCase(d)
	ctx := context.Background()
	submit(t, uc, "Inception", "Sci-Fi", 5)
	submit(t, uc, "Interstellar", "Sci-Fi", 5)
	submit(t, uc, "Arrival", "Sci-Fi", 4)
	submit(t, uc, "Titanic", "Romance", 3)

	directors, err := uc.ListDirectors(ctx)
	if err != nil {
		t.Fatalf("directors: %v", err)
	}
	if len(directors) != 3 || directors[0].FullName != "Christopher Nolan" {
		t.Fatalf("directors = %+v", directors)
	}

	genres, err := uc.ListGenres(ctx)
	if err != nil {
		t.Fatalf("genres: %v", err)
	}
	got := map[string]int64{}
	for _, g := range genres {
		got[g.Genre] = g.DirectorCount
	}
	if got["Sci-Fi"] != 2 || got["Romance"] != 1 || len(got) != 2 {
		t.Fatalf("genres = %v", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	off, err := decodeCursor(encodeCursor(40))
	if err != nil || off != 40 {
		t.Fatalf("decode = %d, %v", off, err)
	}
	if _, err := decodeCursor(encodeCursor(-1)); err == nil {
		t.Fatalf("negative offset accepted")
	}
	if _, err := decodeCursor("bm90LWEtbnVtYmVy"); err == nil {
		t.Fatalf("non numeric cursor accepted")
	}
}
