package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/lavandel/flower_storefront/internal/domain/models"
	internalErrors "github.com/lavandel/flower_storefront/internal/lib/errors"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

// Admin write path. Cache invalidation lives in the admin service, the
// repository only touches rows.

func (r *Repository) CreateBouquet(ctx context.Context, bouquet *models.Bouquet, translations []models.BouquetTranslation) (bouquetID uuid.UUID, err error) {
	const op = "repository.catalog.CreateBouquet"

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return uuid.Nil, fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				r.log.Error(op, logger.Err(rollBackErr))
				err = errors.Join(err, rollBackErr)
			}
		}
	}()

	const bouquetQuery = `
		INSERT INTO bouquets (slug, price, category_id, featured)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	row := tx.QueryRowContext(ctx, bouquetQuery, bouquet.Slug, bouquet.Price, bouquet.CategoryID, bouquet.Featured)
	if err = row.Scan(&bouquetID); err != nil {
		r.log.Error(op, logger.Err(err))
		return uuid.Nil, fmt.Errorf("%s: scan result: %w", op, err)
	}

	if len(translations) > 0 {
		const translationQuery = `INSERT INTO bouquet_translations (bouquet_id, locale, name, description) VALUES %s`
		var values []interface{}
		var placeholders []string

		for i, tr := range translations {
			values = append(values, bouquetID, tr.Locale, tr.Name, tr.Description)

			argID := i * 4

			placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d)", argID+1, argID+2, argID+3, argID+4))
		}

		fullQuery := fmt.Sprintf(translationQuery, strings.Join(placeholders, ","))

		if _, err = tx.ExecContext(ctx, fullQuery, values...); err != nil {
			r.log.Error(op, logger.Err(err))
			return uuid.Nil, fmt.Errorf("%s: bouquet_translations execute statement: %w", op, err)
		}
	}

	for i, media := range bouquet.Media {
		const mediaQuery = `
			INSERT INTO bouquet_media (bouquet_id, url, position, is_thumbnail)
			VALUES ($1, $2, $3, $4)`

		if _, err = tx.ExecContext(ctx, mediaQuery, bouquetID, media.URL, i, media.IsThumbnail); err != nil {
			r.log.Error(op, logger.Err(err))
			return uuid.Nil, fmt.Errorf("%s: bouquet_media execute statement: %w", op, err)
		}
	}

	if err = tx.Commit(); err != nil {
		r.log.Error(op, logger.Err(err))
		return uuid.Nil, fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return bouquetID, nil
}

func (r *Repository) UpdateBouquet(ctx context.Context, bouquet *models.Bouquet, translations []models.BouquetTranslation) (err error) {
	const op = "repository.catalog.UpdateBouquet"

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				err = errors.Join(err, rollBackErr)
			}
		}
	}()

	const bouquetQuery = `
		UPDATE bouquets
		SET slug = $1, price = $2, category_id = $3, featured = $4
		WHERE id = $5`

	result, err := tx.ExecContext(ctx, bouquetQuery,
		bouquet.Slug, bouquet.Price, bouquet.CategoryID, bouquet.Featured, bouquet.ID)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: execute statement: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return internalErrors.ErrBouquetNotFound
	}

	const translationQuery = `
		INSERT INTO bouquet_translations (bouquet_id, locale, name, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (bouquet_id, locale)
		DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description`

	for _, tr := range translations {
		if _, err = tx.ExecContext(ctx, translationQuery, bouquet.ID, tr.Locale, tr.Name, tr.Description); err != nil {
			r.log.Error(op, logger.Err(err))
			return fmt.Errorf("%s: upsert translation: %w", op, err)
		}
	}

	return tx.Commit()
}

func (r *Repository) DeleteBouquet(ctx context.Context, bouquetID uuid.UUID) error {
	const op = "repository.catalog.DeleteBouquet"

	const query = `DELETE FROM bouquets WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, bouquetID)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: execute statement: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return internalErrors.ErrBouquetNotFound
	}

	return nil
}

func (r *Repository) UpdateFlower(ctx context.Context, flower *models.Flower, translations []models.FlowerTranslation) (err error) {
	const op = "repository.catalog.UpdateFlower"

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				err = errors.Join(err, rollBackErr)
			}
		}
	}()

	const flowerQuery = `UPDATE flowers SET price = $1, colors = $2 WHERE id = $3`

	result, err := tx.ExecContext(ctx, flowerQuery, flower.Price, pq.Array(flower.Colors), flower.ID)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: execute statement: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return internalErrors.ErrFlowerNotFound
	}

	const translationQuery = `
		INSERT INTO flower_translations (flower_id, locale, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (flower_id, locale)
		DO UPDATE SET name = EXCLUDED.name`

	for _, tr := range translations {
		if _, err = tx.ExecContext(ctx, translationQuery, flower.ID, tr.Locale, tr.Name); err != nil {
			r.log.Error(op, logger.Err(err))
			return fmt.Errorf("%s: upsert translation: %w", op, err)
		}
	}

	return tx.Commit()
}

func (r *Repository) UpdateCategory(ctx context.Context, category *models.Category, translations []models.CategoryTranslation) (err error) {
	const op = "repository.catalog.UpdateCategory"

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				err = errors.Join(err, rollBackErr)
			}
		}
	}()

	const categoryQuery = `UPDATE categories SET slug = $1, image_url = $2, position = $3 WHERE id = $4`

	result, err := tx.ExecContext(ctx, categoryQuery, category.Slug, category.ImageURL, category.Position, category.ID)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: execute statement: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		return internalErrors.ErrCategoryNotFound
	}

	const translationQuery = `
		INSERT INTO category_translations (category_id, locale, name, description)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (category_id, locale)
		DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description`

	for _, tr := range translations {
		if _, err = tx.ExecContext(ctx, translationQuery, category.ID, tr.Locale, tr.Name, tr.Description); err != nil {
			r.log.Error(op, logger.Err(err))
			return fmt.Errorf("%s: upsert translation: %w", op, err)
		}
	}

	return tx.Commit()
}

// ReorderMedia rewrites positions to match the given id order.
func (r *Repository) ReorderMedia(ctx context.Context, bouquetID uuid.UUID, mediaIDs []uuid.UUID) (err error) {
	const op = "repository.catalog.ReorderMedia"

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				err = errors.Join(err, rollBackErr)
			}
		}
	}()

	const query = `UPDATE bouquet_media SET position = $1 WHERE id = $2 AND bouquet_id = $3`

	for position, mediaID := range mediaIDs {
		result, execErr := tx.ExecContext(ctx, query, position, mediaID, bouquetID)
		if execErr != nil {
			err = execErr
			r.log.Error(op, logger.Err(err))
			return fmt.Errorf("%s: execute statement: %w", op, err)
		}

		affected, affErr := result.RowsAffected()
		if affErr != nil {
			err = affErr
			return fmt.Errorf("%s: rows affected: %w", op, err)
		}
		if affected == 0 {
			err = internalErrors.ErrMediaNotFound
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) SetThumbnail(ctx context.Context, bouquetID, mediaID uuid.UUID) (err error) {
	const op = "repository.catalog.SetThumbnail"

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}

	defer func() {
		if err != nil {
			if rollBackErr := tx.Rollback(); rollBackErr != nil {
				err = errors.Join(err, rollBackErr)
			}
		}
	}()

	const clearQuery = `UPDATE bouquet_media SET is_thumbnail = FALSE WHERE bouquet_id = $1`

	if _, err = tx.ExecContext(ctx, clearQuery, bouquetID); err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: clear thumbnail: %w", op, err)
	}

	const setQuery = `UPDATE bouquet_media SET is_thumbnail = TRUE WHERE id = $1 AND bouquet_id = $2`

	result, err := tx.ExecContext(ctx, setQuery, mediaID, bouquetID)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return fmt.Errorf("%s: set thumbnail: %w", op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if affected == 0 {
		err = internalErrors.ErrMediaNotFound
		return err
	}

	return tx.Commit()
}
