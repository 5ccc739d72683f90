package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/lavandel/flower_storefront/internal/domain/models"
	internalErrors "github.com/lavandel/flower_storefront/internal/lib/errors"
	"github.com/lavandel/flower_storefront/pkg/logger"
)

// Repository resolves catalog entities with locale-translated fields.
// Missing translations fall back to the default locale.
type Repository struct {
	log           logger.Logger
	db            *sqlx.DB
	defaultLocale models.Locale
}

func NewRepository(log logger.Logger, db *sqlx.DB, defaultLocale models.Locale) *Repository {
	return &Repository{
		log:           log,
		db:            db,
		defaultLocale: defaultLocale,
	}
}

const bouquetListQuery = `
	SELECT b.id, b.slug, b.price, b.category_id, b.featured,
	       COALESCE(bt.name, bdt.name, '') AS name,
	       COALESCE(bt.description, bdt.description, '') AS description,
	       COALESCE((
	           SELECT m.url FROM bouquet_media m
	           WHERE m.bouquet_id = b.id
	           ORDER BY m.is_thumbnail DESC, m.position
	           LIMIT 1
	       ), '') AS thumbnail_url
	FROM bouquets b
	LEFT JOIN bouquet_translations bt ON bt.bouquet_id = b.id AND bt.locale = $1
	LEFT JOIN bouquet_translations bdt ON bdt.bouquet_id = b.id AND bdt.locale = $2
`

func (r *Repository) scanBouquets(rows *sqlx.Rows) ([]models.Bouquet, error) {
	var bouquets []models.Bouquet

	for rows.Next() {
		var b models.Bouquet
		if err := rows.Scan(&b.ID, &b.Slug, &b.Price, &b.CategoryID, &b.Featured,
			&b.Name, &b.Description, &b.ThumbnailURL); err != nil {
			return nil, fmt.Errorf("scan bouquet: %w", err)
		}
		bouquets = append(bouquets, b)
	}

	return bouquets, rows.Err()
}

func (r *Repository) Bouquets(ctx context.Context, locale models.Locale) ([]models.Bouquet, error) {
	const op = "repository.catalog.Bouquets"

	query := bouquetListQuery + ` ORDER BY b.slug`

	rows, err := r.db.QueryxContext(ctx, query, locale, r.defaultLocale)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}
	defer rows.Close()

	bouquets, err := r.scanBouquets(rows)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bouquets, nil
}

func (r *Repository) BouquetsByCategory(ctx context.Context, categoryID uuid.UUID, locale models.Locale) ([]models.Bouquet, error) {
	const op = "repository.catalog.BouquetsByCategory"

	query := bouquetListQuery + ` WHERE b.category_id = $3 ORDER BY b.slug`

	rows, err := r.db.QueryxContext(ctx, query, locale, r.defaultLocale, categoryID)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}
	defer rows.Close()

	bouquets, err := r.scanBouquets(rows)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bouquets, nil
}

func (r *Repository) FeaturedBouquets(ctx context.Context, locale models.Locale) ([]models.Bouquet, error) {
	const op = "repository.catalog.FeaturedBouquets"

	query := bouquetListQuery + ` WHERE b.featured ORDER BY b.slug`

	rows, err := r.db.QueryxContext(ctx, query, locale, r.defaultLocale)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}
	defer rows.Close()

	bouquets, err := r.scanBouquets(rows)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bouquets, nil
}

const relatedLimit = 8

// RelatedBouquets picks bouquets sharing the category or at least one
// tag with the given bouquet. A nil categoryID falls back to the
// bouquet's own category.
func (r *Repository) RelatedBouquets(ctx context.Context, bouquetID uuid.UUID, categoryID uuid.NullUUID, tagIDs []uuid.UUID, locale models.Locale) ([]models.Bouquet, error) {
	const op = "repository.catalog.RelatedBouquets"

	query := bouquetListQuery + `
		WHERE b.id <> $3
		  AND (b.category_id = COALESCE($4, (SELECT category_id FROM bouquets WHERE id = $3))
		       OR EXISTS (
		           SELECT 1 FROM bouquet_tags btag
		           WHERE btag.bouquet_id = b.id AND btag.tag_id = ANY($5)
		       ))
		ORDER BY b.slug
		LIMIT $6`

	rows, err := r.db.QueryxContext(ctx, query,
		locale, r.defaultLocale, bouquetID, categoryID, pq.Array(tagIDs), relatedLimit)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}
	defer rows.Close()

	bouquets, err := r.scanBouquets(rows)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bouquets, nil
}

func (r *Repository) BouquetByID(ctx context.Context, bouquetID uuid.UUID, locale models.Locale) (*models.Bouquet, error) {
	const op = "repository.catalog.BouquetByID"

	query := bouquetListQuery + ` WHERE b.id = $3`

	row := r.db.QueryRowxContext(ctx, query, locale, r.defaultLocale, bouquetID)

	var b models.Bouquet
	if err := row.Scan(&b.ID, &b.Slug, &b.Price, &b.CategoryID, &b.Featured,
		&b.Name, &b.Description, &b.ThumbnailURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrBouquetNotFound
		}
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: scan bouquet: %w", op, err)
	}

	media, err := r.bouquetMedia(ctx, bouquetID)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	b.Media = media

	tags, err := r.bouquetTags(ctx, bouquetID, locale)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	b.Tags = tags

	return &b, nil
}

func (r *Repository) bouquetMedia(ctx context.Context, bouquetID uuid.UUID) ([]models.Media, error) {
	const query = `
		SELECT m.id, m.url, m.position, m.is_thumbnail
		FROM bouquet_media m
		WHERE m.bouquet_id = $1
		ORDER BY m.position`

	rows, err := r.db.QueryxContext(ctx, query, bouquetID)
	if err != nil {
		return nil, fmt.Errorf("query media: %w", err)
	}
	defer rows.Close()

	var media []models.Media
	for rows.Next() {
		var m models.Media
		if err = rows.Scan(&m.ID, &m.URL, &m.Position, &m.IsThumbnail); err != nil {
			return nil, fmt.Errorf("scan media: %w", err)
		}
		media = append(media, m)
	}

	return media, rows.Err()
}

func (r *Repository) bouquetTags(ctx context.Context, bouquetID uuid.UUID, locale models.Locale) ([]models.Tag, error) {
	const query = `
		SELECT t.id, COALESCE(tt.name, tdt.name, '') AS name
		FROM tags t
		JOIN bouquet_tags btag ON btag.tag_id = t.id
		LEFT JOIN tag_translations tt ON tt.tag_id = t.id AND tt.locale = $2
		LEFT JOIN tag_translations tdt ON tdt.tag_id = t.id AND tdt.locale = $3
		WHERE btag.bouquet_id = $1`

	rows, err := r.db.QueryxContext(ctx, query, bouquetID, locale, r.defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err = rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}

	return tags, rows.Err()
}

func (r *Repository) Categories(ctx context.Context, locale models.Locale) ([]models.Category, error) {
	const op = "repository.catalog.Categories"

	const query = `
		SELECT c.id, c.slug, c.image_url, c.position,
		       COALESCE(ct.name, cdt.name, '') AS name,
		       COALESCE(ct.description, cdt.description, '') AS description
		FROM categories c
		LEFT JOIN category_translations ct ON ct.category_id = c.id AND ct.locale = $1
		LEFT JOIN category_translations cdt ON cdt.category_id = c.id AND cdt.locale = $2
		ORDER BY c.position`

	rows, err := r.db.QueryxContext(ctx, query, locale, r.defaultLocale)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err = rows.Scan(&c.ID, &c.Slug, &c.ImageURL, &c.Position, &c.Name, &c.Description); err != nil {
			r.log.Error(op, logger.Err(err))
			return nil, fmt.Errorf("%s: scan category: %w", op, err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *Repository) CategoryByID(ctx context.Context, categoryID uuid.UUID, locale models.Locale) (*models.Category, error) {
	const op = "repository.catalog.CategoryByID"

	const query = `
		SELECT c.id, c.slug, c.image_url, c.position,
		       COALESCE(ct.name, cdt.name, '') AS name,
		       COALESCE(ct.description, cdt.description, '') AS description
		FROM categories c
		LEFT JOIN category_translations ct ON ct.category_id = c.id AND ct.locale = $2
		LEFT JOIN category_translations cdt ON cdt.category_id = c.id AND cdt.locale = $3
		WHERE c.id = $1`

	row := r.db.QueryRowxContext(ctx, query, categoryID, locale, r.defaultLocale)

	var c models.Category
	if err := row.Scan(&c.ID, &c.Slug, &c.ImageURL, &c.Position, &c.Name, &c.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrCategoryNotFound
		}
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: scan category: %w", op, err)
	}

	return &c, nil
}

func (r *Repository) Flowers(ctx context.Context, locale models.Locale) ([]models.Flower, error) {
	const op = "repository.catalog.Flowers"

	const query = `
		SELECT f.id, f.price, f.colors,
		       COALESCE(ft.name, fdt.name, '') AS name
		FROM flowers f
		LEFT JOIN flower_translations ft ON ft.flower_id = f.id AND ft.locale = $1
		LEFT JOIN flower_translations fdt ON fdt.flower_id = f.id AND fdt.locale = $2
		ORDER BY name`

	rows, err := r.db.QueryxContext(ctx, query, locale, r.defaultLocale)
	if err != nil {
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: execute statement: %w", op, err)
	}
	defer rows.Close()

	var flowers []models.Flower
	for rows.Next() {
		var f models.Flower
		if err = rows.Scan(&f.ID, &f.Price, pq.Array(&f.Colors), &f.Name); err != nil {
			r.log.Error(op, logger.Err(err))
			return nil, fmt.Errorf("%s: scan flower: %w", op, err)
		}
		flowers = append(flowers, f)
	}

	return flowers, rows.Err()
}

func (r *Repository) FlowerByID(ctx context.Context, flowerID uuid.UUID, locale models.Locale) (*models.Flower, error) {
	const op = "repository.catalog.FlowerByID"

	const query = `
		SELECT f.id, f.price, f.colors,
		       COALESCE(ft.name, fdt.name, '') AS name
		FROM flowers f
		LEFT JOIN flower_translations ft ON ft.flower_id = f.id AND ft.locale = $2
		LEFT JOIN flower_translations fdt ON fdt.flower_id = f.id AND fdt.locale = $3
		WHERE f.id = $1`

	row := r.db.QueryRowxContext(ctx, query, flowerID, locale, r.defaultLocale)

	var f models.Flower
	if err := row.Scan(&f.ID, &f.Price, pq.Array(&f.Colors), &f.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internalErrors.ErrFlowerNotFound
		}
		r.log.Error(op, logger.Err(err))
		return nil, fmt.Errorf("%s: scan flower: %w", op, err)
	}

	return &f, nil
}
