package postgres

import (
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fpl-advisor/internal/domain/recommendation"
)

const recommendationTable = "recommendations"

type recommendationTableModel struct {
	ID                int64      `db:"id"`
	PublicID          string     `db:"public_id"`
	AccountID         int64      `db:"account_id"`
	Gameweek          int        `db:"gameweek"`
	Persona           string     `db:"persona"`
	OutAssetID        int64      `db:"out_asset_id"`
	InAssetID         int64      `db:"in_asset_id"`
	CaptainAssetID    int64      `db:"captain_asset_id"`
	ViceCaptainID     int64      `db:"vice_captain_asset_id"`
	NarrativeFallback bool       `db:"narrative_fallback"`
	Payload           []byte     `db:"payload"`
	CreatedAt         time.Time  `db:"created_at"`
	DeletedAt         *time.Time `db:"deleted_at"`
}

type recommendationInsertModel struct {
	PublicID          string    `db:"public_id"`
	AccountID         int64     `db:"account_id"`
	Gameweek          int       `db:"gameweek"`
	Persona           string    `db:"persona"`
	OutAssetID        int64     `db:"out_asset_id"`
	InAssetID         int64     `db:"in_asset_id"`
	CaptainAssetID    int64     `db:"captain_asset_id"`
	ViceCaptainID     int64     `db:"vice_captain_asset_id"`
	NarrativeFallback bool      `db:"narrative_fallback"`
	Payload           string    `db:"payload"`
	CreatedAt         time.Time `db:"created_at"`
}

func recommendationToInsert(item recommendation.Recommendation) (recommendationInsertModel, error) {
	payload, err := sonic.Marshal(item)
	if err != nil {
		return recommendationInsertModel{}, fmt.Errorf("encode recommendation payload: %w", err)
	}
	return recommendationInsertModel{
		PublicID:          item.ID,
		AccountID:         item.AccountID,
		Gameweek:          item.Gameweek,
		Persona:           string(item.Persona),
		OutAssetID:        item.Transfer.Out.ID,
		InAssetID:         item.Transfer.In.ID,
		CaptainAssetID:    item.Captain.ID,
		ViceCaptainID:     item.ViceCaptain.ID,
		NarrativeFallback: item.NarrativeFallback,
		Payload:           string(payload),
		CreatedAt:         item.CreatedAt.UTC(),
	}, nil
}

func recommendationFromRow(row recommendationTableModel) (recommendation.Recommendation, error) {
	var item recommendation.Recommendation
	if err := sonic.Unmarshal(row.Payload, &item); err != nil {
		return recommendation.Recommendation{}, fmt.Errorf("decode recommendation payload %s: %w", row.PublicID, err)
	}
	// columns win over the payload
	item.ID = row.PublicID
	item.AccountID = row.AccountID
	item.Gameweek = row.Gameweek
	item.Persona = recommendation.Persona(row.Persona)
	item.NarrativeFallback = row.NarrativeFallback
	item.CreatedAt = row.CreatedAt
	return item, nil
}
