package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvloznov/netflix-refiner/internal/config"
	"github.com/dvloznov/netflix-refiner/internal/identity"
	"github.com/dvloznov/netflix-refiner/internal/logger"
	"github.com/dvloznov/netflix-refiner/internal/schema"
)

const csvExtension = ".csv"

// Output is the result of one complete refinement run.
type Output struct {
	Schema        *schema.Descriptor `json:"schema"`
	RefinementURL string             `json:"refinement_url"`
}

// Refiner drives one run end to end: classify and normalize every CSV in the
// input directory, persist the records, then package, encrypt and distribute
// the refined dataset.
type Refiner struct {
	cfg       *config.Config
	store     Store
	encryptor Encryptor
	pinner    Pinner
}

// NewRefiner wires a refiner with its collaborators.
func NewRefiner(cfg *config.Config, store Store, encryptor Encryptor, pinner Pinner) *Refiner {
	return &Refiner{
		cfg:       cfg,
		store:     store,
		encryptor: encryptor,
		pinner:    pinner,
	}
}

// Refine runs the whole pipeline. Unrecognized file shapes are skipped with
// a warning; a file that fails to parse aborts the run. Records accumulate
// in memory and are persisted only after every file has been processed, so
// an aborted run leaves the datastore untouched. Refine closes the store
// before encryption so the database file is complete on disk.
func (r *Refiner) Refine(ctx context.Context) (*Output, error) {
	log := logger.FromContext(ctx).With().Str("run_id", uuid.NewString()).Logger()
	log.Info().Msg("starting Netflix CSV data transformation")

	// One account id per run, shared by every record.
	accountID, usedFallback := identity.FromWallet(r.cfg.WalletAddress)
	if usedFallback {
		log.Warn().Msg("no WALLET_ADDRESS provided, using fallback")
	}
	log.Info().
		Str("account_id", accountID).
		Str("wallet_prefix", walletPrefix(r.cfg.WalletAddress)).
		Msg("derived account id")

	viewing, billing, err := r.processInputDir(ctx, accountID, log)
	if err != nil {
		return nil, err
	}

	if err := r.store.AppendViewingActivity(ctx, viewing); err != nil {
		return nil, fmt.Errorf("Refine: persisting viewing activity: %w", err)
	}
	if err := r.store.AppendBillingHistory(ctx, billing); err != nil {
		return nil, fmt.Errorf("Refine: persisting billing history: %w", err)
	}
	if err := r.store.Close(); err != nil {
		return nil, fmt.Errorf("Refine: closing datastore: %w", err)
	}
	log.Info().
		Int("viewing_rows", len(viewing)).
		Int("billing_rows", len(billing)).
		Msg("persisted normalized records")

	desc, err := schema.Load(r.cfg.SchemaPath(), schema.Metadata{
		Name:        r.cfg.SchemaName,
		Version:     r.cfg.SchemaVersion,
		Description: r.cfg.SchemaDescription,
		Dialect:     r.cfg.SchemaDialect,
	})
	if err != nil {
		return nil, fmt.Errorf("Refine: %w", err)
	}

	schemaCID, err := r.pinner.PinJSON(ctx, desc)
	if err != nil {
		return nil, fmt.Errorf("Refine: uploading schema: %w", err)
	}
	log.Info().Str("cid", schemaCID).Msg("schema uploaded")

	encryptedPath, err := r.encryptor.EncryptFile(r.cfg.RefinementEncryptionKey, r.cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("Refine: encrypting database: %w", err)
	}

	cid, err := r.pinner.PinFile(ctx, encryptedPath)
	if err != nil {
		return nil, fmt.Errorf("Refine: uploading encrypted database: %w", err)
	}

	log.Info().Str("cid", cid).Msg("Netflix CSV data transformation completed")
	return &Output{
		Schema:        desc,
		RefinementURL: r.cfg.IPFSGatewayURL + "/" + cid,
	}, nil
}

// processInputDir walks the input directory in enumeration order and
// accumulates normalized records per shape. Only files with a
// case-insensitive .csv extension are considered; everything else is skipped
// silently.
func (r *Refiner) processInputDir(ctx context.Context, accountID string, log zerolog.Logger) ([]ViewingActivityRecord, []BillingHistoryRecord, error) {
	entries, err := os.ReadDir(r.cfg.InputDir)
	if err != nil {
		return nil, nil, fmt.Errorf("Refine: reading input dir %q: %w", r.cfg.InputDir, err)
	}

	var viewing []ViewingActivityRecord
	var billing []BillingHistoryRecord

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, nil, fmt.Errorf("Refine: %w", err)
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), csvExtension) {
			continue
		}

		log.Info().Str("file", entry.Name()).Msg("processing")

		table, err := ParseCSVFile(filepath.Join(r.cfg.InputDir, entry.Name()))
		if err != nil {
			return nil, nil, fmt.Errorf("Refine: %w", err)
		}

		switch Classify(table.Columns) {
		case ShapeViewingActivity:
			records := transformViewingActivity(table, accountID)
			viewing = append(viewing, records...)
			log.Info().Str("file", entry.Name()).Int("rows", len(records)).Msg("added viewing activity records")
		case ShapeBillingHistory:
			records := transformBillingHistory(table, accountID)
			billing = append(billing, records...)
			log.Info().Str("file", entry.Name()).Int("rows", len(records)).Msg("added billing history records")
		default:
			log.Warn().Str("file", entry.Name()).Msg("unknown file shape, skipping")
		}
	}
	return viewing, billing, nil
}

// walletPrefix truncates a wallet address for logging so the secret never
// lands in logs whole.
func walletPrefix(wallet string) string {
	if len(wallet) <= 10 {
		return wallet
	}
	return wallet[:10] + "..."
}
