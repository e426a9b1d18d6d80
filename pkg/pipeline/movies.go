package pipeline

import (
	"context"
	"os"
	"strings"

	"github.com/tagus/canto-bench/pkg/luatable"
	"github.com/tagus/canto-bench/pkg/mcq"
	"github.com/tagus/canto-bench/pkg/statements"
	"github.com/tagus/canto-bench/pkg/wikidata"
)

// BuildMovies resolves the translation-table films against the knowledge
// base: each English title is searched for its entity, and the release
// year read from the publication date claim (P577). Films that cannot be
// found or lack a release date are skipped and logged.
func (r *Runner) BuildMovies(ctx context.Context) ([]mcq.Movie, error) {
	if r.config.LuaTablePath == "" {
		return nil, nil
	}
	if _, err := os.Stat(r.config.LuaTablePath); err != nil {
		r.logger.Info(ctx, "No translation table present, skipping movies", map[string]interface{}{
			"path": r.config.LuaTablePath,
		})
		return nil, nil
	}

	entries, err := luatable.ParseFile(r.config.LuaTablePath)
	if err != nil {
		return nil, err
	}
	if r.config.MovieLimit > 0 && len(entries) > r.config.MovieLimit {
		entries = entries[:r.config.MovieLimit]
	}

	var movies []mcq.Movie
	var movieIDs []string
	for _, entry := range entries {
		results, err := r.source.SearchEntities(ctx, entry.English)
		if err != nil {
			r.logger.Warn(ctx, "Skipping film, entity search failed", map[string]interface{}{
				"title": entry.English,
				"error": err.Error(),
			})
			continue
		}
		if len(results) == 0 {
			r.logger.Debug(ctx, "Skipping film, no entity found", map[string]interface{}{
				"title": entry.English,
			})
			continue
		}

		movies = append(movies, mcq.Movie{
			ID:        results[0].ID,
			Name:      entry.English,
			Cantonese: entry.Cantonese,
		})
		movieIDs = append(movieIDs, results[0].ID)
	}
	if len(movieIDs) == 0 {
		return nil, nil
	}

	claims, err := r.source.GetClaims(ctx, movieIDs)
	if err != nil {
		return nil, err
	}

	var withYears []mcq.Movie
	for _, movie := range movies {
		released, ok := claims[movie.ID].TimeValue(wikidata.PropPublication)
		if !ok {
			r.logger.Debug(ctx, "Skipping film without release date", map[string]interface{}{
				"movie_id": movie.ID,
				"title":    movie.Name,
			})
			continue
		}
		year, ok := statements.YearOf(strings.TrimPrefix(released, "+"))
		if !ok {
			continue
		}

		movie.ReleaseDate = released
		movie.ReleaseYear = year
		withYears = append(withYears, movie)
	}

	r.logger.Info(ctx, "Movie extraction complete", map[string]interface{}{
		"table_entries": len(entries),
		"with_years":    len(withYears),
	})
	return withYears, nil
}
