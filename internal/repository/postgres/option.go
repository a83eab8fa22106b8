package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/clinicdesk/clinic-api/internal/model"
)

func (r *optionRepository) ActiveValues(ctx context.Context, name string) ([]string, error) {
	query := `
		SELECT value FROM system_options
		WHERE is_active = true AND name = $1
		ORDER BY value ASC
	`
	var values []string
	err := r.db.SelectContext(ctx, &values, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list option values for %s: %w", name, err)
	}
	return values, nil
}

func (r *optionRepository) ModuleValues(ctx context.Context, module string) (map[string]string, error) {
	query := `
		SELECT name, value FROM system_options
		WHERE is_active = true AND module = $1
	`
	rows, err := r.db.QueryxContext(ctx, query, module)
	if err != nil {
		return nil, fmt.Errorf("failed to list options for module %s: %w", module, err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan option row: %w", err)
		}
		values[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options for module %s: %w", module, err)
	}
	return values, nil
}

// UpsertTx updates the option row for (module, name) or inserts it when
// missing, inside the caller's transaction.
func (r *optionRepository) UpsertTx(ctx context.Context, tx *sqlx.Tx, opt *model.SystemOption) error {
	update := `
		UPDATE system_options
		SET value = $1, type = $2, description = $3, is_active = true,
			updated_by = $4, updated_on = $5
		WHERE module = $6 AND name = $7
	`
	now := time.Now()
	result, err := tx.ExecContext(ctx, update,
		opt.Value,
		opt.Type,
		opt.Description,
		opt.UpdatedBy,
		now,
		opt.Module,
		opt.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to update option %s/%s: %w", opt.Module, opt.Name, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	insert := `
		INSERT INTO system_options (module, name, type, description, value, is_active, created_by, created_on)
		VALUES ($1, $2, $3, $4, $5, true, $6, $7)
	`
	_, err = tx.ExecContext(ctx, insert,
		opt.Module,
		opt.Name,
		opt.Type,
		opt.Description,
		opt.Value,
		opt.CreatedBy,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert option %s/%s: %w", opt.Module, opt.Name, err)
	}
	return nil
}
