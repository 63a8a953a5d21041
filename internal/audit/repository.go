// Package audit records typed-data verifications in MySQL.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ahwlsqja/typed-data-verifier/pkg/db"
)

// Record is one verification attempt that reached recovery.
type Record struct {
	ID                string
	Claimed           common.Address
	Recovered         common.Address
	Digest            common.Hash
	PrimaryType       string
	ChainID           *int64
	VerifyingContract *common.Address
	Valid             bool
	CreatedAt         time.Time
}

// Repository persists verification records.
type Repository interface {
	Save(ctx context.Context, rec *Record) error
	ListBySigner(ctx context.Context, signer common.Address, limit int) ([]Record, error)
}

const (
	insertVerification = `INSERT INTO typed_data_verifications
	(id, claimed_address, recovered_address, digest, primary_type, chain_id, verifying_contract, valid, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	upsertSigner = `INSERT INTO typed_data_signers (address, verified_count, last_digest, last_verified_at)
	VALUES (?, 1, ?, ?)
	ON DUPLICATE KEY UPDATE
		verified_count = verified_count + 1,
		last_digest = VALUES(last_digest),
		last_verified_at = VALUES(last_verified_at)`

	listBySigner = `SELECT id, claimed_address, recovered_address, digest, primary_type, chain_id, verifying_contract, valid, created_at
	FROM typed_data_verifications
	WHERE claimed_address = ?
	ORDER BY created_at DESC
	LIMIT ?`
)

// MySQLRepository implements Repository on the typed_data_verifications and
// typed_data_signers tables.
type MySQLRepository struct {
	runner *db.TxRunner
	logger *zap.Logger
	now    func() time.Time
}

var _ Repository = (*MySQLRepository)(nil)

func NewMySQLRepository(runner *db.TxRunner, logger *zap.Logger) *MySQLRepository {
	return &MySQLRepository{
		runner: runner,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Save inserts rec and, for valid signatures, bumps the signer summary in
// the same transaction. ID and CreatedAt are filled in when empty.
func (r *MySQLRepository) Save(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.now()
	}

	var chainID sql.NullInt64
	if rec.ChainID != nil {
		chainID = sql.NullInt64{Int64: *rec.ChainID, Valid: true}
	}
	var contract sql.NullString
	if rec.VerifyingContract != nil {
		contract = sql.NullString{String: rec.VerifyingContract.Hex(), Valid: true}
	}

	err := r.runner.WithTx(ctx, func(tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, insertVerification,
			rec.ID,
			rec.Claimed.Hex(),
			rec.Recovered.Hex(),
			rec.Digest.Hex(),
			rec.PrimaryType,
			chainID,
			contract,
			rec.Valid,
			rec.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert verification: %w", err)
		}
		if !rec.Valid {
			return nil
		}
		if _, err := tx.ExecContext(ctx, upsertSigner, rec.Claimed.Hex(), rec.Digest.Hex(), rec.CreatedAt); err != nil {
			return fmt.Errorf("upsert signer: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("failed to save verification",
			zap.String("id", rec.ID),
			zap.String("claimed", rec.Claimed.Hex()),
			zap.Error(err),
		)
		return err
	}

	r.logger.Debug("verification saved",
		zap.String("id", rec.ID),
		zap.Bool("valid", rec.Valid),
	)
	return nil
}

// ListBySigner returns the most recent records claimed for signer.
func (r *MySQLRepository) ListBySigner(ctx context.Context, signer common.Address, limit int) ([]Record, error) {
	rows, err := r.runner.DB().QueryContext(ctx, listBySigner, signer.Hex(), limit)
	if err != nil {
		return nil, fmt.Errorf("list verifications: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0, limit)
	for rows.Next() {
		var (
			rec                      Record
			claimed, recovered, dgst string
			chainID                  sql.NullInt64
			contract                 sql.NullString
		)
		if err := rows.Scan(&rec.ID, &claimed, &recovered, &dgst, &rec.PrimaryType, &chainID, &contract, &rec.Valid, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan verification: %w", err)
		}
		rec.Claimed = common.HexToAddress(claimed)
		rec.Recovered = common.HexToAddress(recovered)
		rec.Digest = common.HexToHash(dgst)
		if chainID.Valid {
			id := chainID.Int64
			rec.ChainID = &id
		}
		if contract.Valid {
			addr := common.HexToAddress(contract.String)
			rec.VerifyingContract = &addr
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verifications: %w", err)
	}
	return records, nil
}
