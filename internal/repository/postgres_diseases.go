package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KerryNK/Smart-Farm/internal/domain"
)

// PostgresDiseasesRepository crop_diseases reference table access.
type PostgresDiseasesRepository struct {
	db *sql.DB
}

func NewPostgresDiseasesRepository(db *sql.DB) *PostgresDiseasesRepository {
	return &PostgresDiseasesRepository{db: db}
}

var _ DiseasesRepository = (*PostgresDiseasesRepository)(nil)

const diseaseColumns = `id, disease_name, crop_type, severity_level, symptoms, causes, prevention, treatment, favorable_conditions`

func (r *PostgresDiseasesRepository) ListDiseases(ctx context.Context, cropType string) ([]domain.CropDisease, error) {
	var rows *sql.Rows
	var err error

	if cropType != "" {
		query := `
			SELECT ` + diseaseColumns + `
			FROM crop_diseases
			WHERE crop_type = $1 OR crop_type = $2
			ORDER BY severity_level DESC, disease_name ASC
		`
		rows, err = r.db.QueryContext(ctx, query, cropType, domain.CropTypeVarious)
	} else {
		query := `
			SELECT ` + diseaseColumns + `
			FROM crop_diseases
			ORDER BY severity_level DESC, disease_name ASC
		`
		rows, err = r.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query diseases: %w", err)
	}
	defer rows.Close()

	var diseases []domain.CropDisease
	for rows.Next() {
		var d domain.CropDisease
		if err := rows.Scan(
			&d.ID, &d.Name, &d.CropType, &d.SeverityLevel,
			&d.Symptoms, &d.Causes, &d.Prevention, &d.Treatment, &d.FavorableConditions,
		); err != nil {
			return nil, fmt.Errorf("failed to scan disease: %w", err)
		}
		diseases = append(diseases, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate diseases: %w", err)
	}
	return diseases, nil
}

func (r *PostgresDiseasesRepository) GetDisease(ctx context.Context, id int64) (*domain.CropDisease, error) {
	query := `SELECT ` + diseaseColumns + ` FROM crop_diseases WHERE id = $1`
	return r.scanDisease(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresDiseasesRepository) GetDiseaseByName(ctx context.Context, name string) (*domain.CropDisease, error) {
	query := `SELECT ` + diseaseColumns + ` FROM crop_diseases WHERE disease_name = $1`
	return r.scanDisease(r.db.QueryRowContext(ctx, query, name))
}

func (r *PostgresDiseasesRepository) scanDisease(row *sql.Row) (*domain.CropDisease, error) {
	var d domain.CropDisease
	err := row.Scan(
		&d.ID, &d.Name, &d.CropType, &d.SeverityLevel,
		&d.Symptoms, &d.Causes, &d.Prevention, &d.Treatment, &d.FavorableConditions,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound("disease")
		}
		return nil, fmt.Errorf("failed to scan disease: %w", err)
	}
	return &d, nil
}
