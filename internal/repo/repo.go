package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)

	SaveCalculation(ctx context.Context, c Calculation) error
	ListCalculations(ctx context.Context, userID, limit int) ([]Calculation, error)
}

// Calculation is one history row: the inputs a user submitted and the headline
// outlet numbers. Presentation only — nothing reads it back into a workflow.
type Calculation struct {
	ID                uuid.UUID `json:"id"`
	UserID            int       `json:"-"`
	Fluid             string    `json:"fluid"`
	InletTempK        float64   `json:"inlet_temp_k"`
	InletPressureBar  float64   `json:"inlet_pressure_bar"`
	OutletPressureBar float64   `json:"outlet_pressure_bar"`
	OutletTempK       float64   `json:"outlet_temp_k"`
	OutletPhase       string    `json:"outlet_phase"`
	CreatedAt         time.Time `json:"created_at"`
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) SaveCalculation(ctx context.Context, c Calculation) error {
	query := `INSERT INTO calculations
		(id, user_id, fluid, inlet_temp_k, inlet_pressure_bar, outlet_pressure_bar, outlet_temp_k, outlet_phase, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.UserID, c.Fluid, c.InletTempK, c.InletPressureBar,
		c.OutletPressureBar, c.OutletTempK, c.OutletPhase, c.CreatedAt)
	return err
}

func (r *PostgresRepository) ListCalculations(ctx context.Context, userID, limit int) ([]Calculation, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query := `SELECT id, user_id, fluid, inlet_temp_k, inlet_pressure_bar, outlet_pressure_bar, outlet_temp_k, outlet_phase, created_at
		FROM calculations WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Calculation
	for rows.Next() {
		var c Calculation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Fluid, &c.InletTempK, &c.InletPressureBar,
			&c.OutletPressureBar, &c.OutletTempK, &c.OutletPhase, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
