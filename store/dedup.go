package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// DedupRepo tracks processed inbound messages by provider message id so a
// redelivered webhook is answered with the original reply instead of being
// handled twice.
type DedupRepo struct {
	db *bun.DB
}

func NewDedupRepo(db *bun.DB) *DedupRepo {
	return &DedupRepo{db: db}
}

// Claim reserves a message id before the agent runs. The insert is the
// arbiter: exactly one delivery of a given id wins the conflict, so
// concurrent redeliveries cannot both reach the agent. When the claim is
// lost, the stored reply of the winning delivery is returned; it is empty
// while that delivery is still being handled.
func (r *DedupRepo) Claim(ctx context.Context, messageSID, userID string) (bool, string, error) {
	row := &ProcessedMessageRow{
		MessageSID:  messageSID,
		UserID:      userID,
		ProcessedAt: time.Now().UTC(),
	}
	res, err := r.db.NewInsert().Model(row).On("CONFLICT (message_sid) DO NOTHING").Exec(ctx)
	if err != nil {
		return false, "", err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, "", err
	}
	if affected > 0 {
		return true, "", nil
	}

	existing := new(ProcessedMessageRow)
	err = r.db.NewSelect().Model(existing).Where("message_sid = ?", messageSID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		// Claimed and deleted between our insert and select; treat as lost.
		return false, "", nil
	}
	if err != nil {
		return false, "", err
	}
	return false, existing.Reply, nil
}

// SetReply stores the reply for a claimed message id so later redeliveries
// replay it.
func (r *DedupRepo) SetReply(ctx context.Context, messageSID, reply string) error {
	_, err := r.db.NewUpdate().
		Model((*ProcessedMessageRow)(nil)).
		Set("reply = ?", reply).
		Set("processed_at = ?", time.Now().UTC()).
		Where("message_sid = ?", messageSID).
		Exec(ctx)
	return err
}
