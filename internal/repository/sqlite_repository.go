package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"

	"github.com/gradeshop/catalog-service/internal/domain"
)

// SQLiteCatalogRepository serves the catalog tables the admin subsystem
// writes: products, variants, grades and size charts.
type SQLiteCatalogRepository struct {
	db *sql.DB
}

func NewSQLiteCatalogRepository(dbPath string) (*SQLiteCatalogRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer; a second pooled connection would also see a
	// separate database when dbPath is :memory:.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteCatalogRepository{db: db}, nil
}

func (r *SQLiteCatalogRepository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *SQLiteCatalogRepository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.brand_id, b.name, p.created_at
		FROM products p
		JOIN brands b ON b.id = p.brand_id
		WHERE p.id = $1
	`

	p := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.BrandID,
		&p.BrandName,
		&p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	categories, err := r.getCategories(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Categories = categories

	return p, nil
}

func (r *SQLiteCatalogRepository) getCategories(ctx context.Context, productID int64) ([]domain.Category, error) {
	query := `
		SELECT c.id, c.name
		FROM categories c
		JOIN product_categories pc ON pc.category_id = c.id
		WHERE pc.product_id = $1
		ORDER BY c.id
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return categories, nil
}

func (r *SQLiteCatalogRepository) GetVariants(ctx context.Context, productID int64) ([]domain.Variant, error) {
	query := `
		SELECT v.id, v.product_id, v.size, v.grade_id, g.name, v.stock, v.price
		FROM variants v
		JOIN grades g ON g.id = v.grade_id
		WHERE v.product_id = $1
		ORDER BY v.id
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query variants: %w", err)
	}
	defer rows.Close()

	var variants []domain.Variant
	for rows.Next() {
		var v domain.Variant
		err := rows.Scan(
			&v.ID,
			&v.ProductID,
			&v.Size,
			&v.GradeID,
			&v.GradeName,
			&v.Stock,
			&v.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan variant: %w", err)
		}
		variants = append(variants, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return variants, nil
}

func (r *SQLiteCatalogRepository) GetGrades(ctx context.Context) ([]domain.Grade, error) {
	query := `
		SELECT id, name
		FROM grades
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query grades: %w", err)
	}
	defer rows.Close()

	var grades []domain.Grade
	for rows.Next() {
		var g domain.Grade
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("failed to scan grade: %w", err)
		}
		grades = append(grades, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return grades, nil
}

func (r *SQLiteCatalogRepository) GetSizeChart(ctx context.Context, brandID int64, categoryName string) (*domain.SizeChart, error) {
	query := `
		SELECT brand_id, category_name, image_url
		FROM size_charts
		WHERE brand_id = $1 AND category_name = $2
	`

	chart := &domain.SizeChart{}
	err := r.db.QueryRowContext(ctx, query, brandID, categoryName).Scan(
		&chart.BrandID,
		&chart.CategoryName,
		&chart.ImageURL,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrChartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query size chart: %w", err)
	}

	return chart, nil
}

func (r *SQLiteCatalogRepository) Close() error {
	return r.db.Close()
}
