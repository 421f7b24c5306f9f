package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fpl-advisor/internal/domain/recommendation"
	qb "github.com/riskibarqy/fpl-advisor/internal/platform/querybuilder"
)

type RecommendationRepository struct {
	db *sqlx.DB
}

func NewRecommendationRepository(db *sqlx.DB) *RecommendationRepository {
	return &RecommendationRepository{db: db}
}

func (r *RecommendationRepository) Save(ctx context.Context, item recommendation.Recommendation) error {
	model, err := recommendationToInsert(item)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel(recommendationTable, model, "ON CONFLICT (public_id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert recommendation query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUndefinedTable(err) {
			return fmt.Errorf("insert recommendation: table %s is missing, run migrations: %w", recommendationTable, err)
		}
		return fmt.Errorf("insert recommendation: %w", err)
	}
	return nil
}

func (r *RecommendationRepository) GetLatest(ctx context.Context, accountID int64, gameweek int) (recommendation.Recommendation, bool, error) {
	query, args, err := latestRecommendationQuery(accountID, gameweek)
	if err != nil {
		return recommendation.Recommendation{}, false, fmt.Errorf("build latest recommendation query: %w", err)
	}

	var row recommendationTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return recommendation.Recommendation{}, false, nil
		}
		return recommendation.Recommendation{}, false, fmt.Errorf("get latest recommendation: %w", err)
	}

	item, err := recommendationFromRow(row)
	if err != nil {
		return recommendation.Recommendation{}, false, err
	}
	return item, true, nil
}

func latestRecommendationQuery(accountID int64, gameweek int) (string, []any, error) {
	cols, err := qb.Columns(recommendationTableModel{})
	if err != nil {
		return "", nil, err
	}
	return qb.Select(cols...).
		From(recommendationTable).
		Where(
			qb.Eq("account_id", accountID),
			qb.Eq("gameweek", gameweek),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSQL()
}
