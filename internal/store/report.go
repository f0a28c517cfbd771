package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/vokabel/internal/report"
)

const reportRowID = 1

// reportRepo keeps the report as a single JSON row.
type reportRepo struct {
	drv *entsql.Driver
}

func (r *reportRepo) Load(ctx context.Context) (*report.Report, error) {
	query, args := builder().
		Select("data").
		From(entsql.Table(reportTable)).
		Where(entsql.EQ("id", reportRowID)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("read report: %w", err)
		}
		return nil, nil
	}
	var data string
	if err := rows.Scan(&data); err != nil {
		return nil, fmt.Errorf("scan report: %w", err)
	}

	var rep report.Report
	if err := json.Unmarshal([]byte(data), &rep); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &rep, nil
}

func (r *reportRepo) Save(ctx context.Context, rep *report.Report) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	query, args := builder().
		Insert(reportTable).
		Columns("id", "data", "updated_at").
		Values(reportRowID, string(data), time.Now().Unix()).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}
