package arns

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/arlink/cli/pkg/arweave"
)

// Step is a phase of one migration invocation. Each invocation moves
// linearly through Validating, Submitting, Resolving and terminates in
// Done or Failed; no step is retried and no state survives the
// invocation.
type Step string

const (
	StepValidating Step = "validating"
	StepSubmitting Step = "submitting"
	StepResolving  Step = "resolving"
	StepDone       Step = "done"
	StepFailed     Step = "failed"
)

// PendingInteractionID marks a successful submission for which the
// sequencer has not reported an id yet.
const PendingInteractionID = "pending"

// DefaultRecordTTL is the validity window written with every record
// update, in seconds.
const DefaultRecordTTL int64 = 3600

// RecordSetter is the write capability of one ANT contract. Satisfied
// by *ANT.
type RecordSetter interface {
	SetRecord(ctx context.Context, undername, txID string, ttlSeconds int64, tags []Tag) (string, error)
}

// ContractFactory yields a write handle for a contract id.
type ContractFactory func(contractID string) RecordSetter

// MigrateInput selects the name to repoint and the content to point it
// at. Undername defaults to the root record.
type MigrateInput struct {
	ContractID string
	Undername  string
	SourceURL  string
}

// Result is produced once per successful migration.
type Result struct {
	ResolvedURL   string `json:"resolvedUrl"`
	InteractionID string `json:"updateTransactionId"`
}

// Migrator runs the migration flow: extract the transaction id from the
// source URL, submit the record update, re-resolve the canonical name,
// and format the resulting site URL.
type Migrator struct {
	Registry  Registry
	Contracts ContractFactory
	Wallet    arweave.Provider
	TTL       int64
	Version   string
	Log       zerolog.Logger
	// OnStep, when set, observes each phase transition. The command
	// layer uses it to drive spinners.
	OnStep func(Step)
}

func (m *Migrator) step(s Step) {
	if m.OnStep != nil {
		m.OnStep(s)
	}
}

func (m *Migrator) fail(err error) (*Result, error) {
	m.step(StepFailed)
	return nil, err
}

// Run executes one migration invocation. Every failure is terminal for
// the invocation; a retry is a fresh Run with no memory of this one.
func (m *Migrator) Run(ctx context.Context, in MigrateInput) (*Result, error) {
	m.step(StepValidating)
	// The command layer already matched the full permaweb URL pattern;
	// extraction re-validates so the executor stands on its own.
	txID, ok := arweave.ExtractTxID(in.SourceURL)
	if !ok {
		return m.fail(fmt.Errorf("%w: no transaction id in %q", ErrInvalidURL, in.SourceURL))
	}

	m.step(StepSubmitting)
	if m.Wallet == nil {
		return m.fail(arweave.ErrWalletUnavailable)
	}
	undername := in.Undername
	if undername == "" {
		undername = RootUndername
	}
	ttl := m.TTL
	if ttl <= 0 {
		ttl = DefaultRecordTTL
	}
	interactionID, err := m.Contracts(in.ContractID).SetRecord(ctx, undername, txID, ttl, m.provenanceTags(in.SourceURL))
	if err != nil {
		return m.fail(fmt.Errorf("%w: %v", ErrSubmissionFailed, err))
	}
	m.Log.Debug().Str("contract", in.ContractID).Str("txId", txID).Str("interaction", interactionID).
		Msg("record update submitted")

	m.step(StepResolving)
	records, err := m.Registry.AllRecords(ctx)
	if err != nil {
		return m.fail(fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err))
	}
	name := ""
	for n, rec := range records {
		if rec.ContractTxID == in.ContractID {
			name = n
			break
		}
	}
	if name == "" {
		return m.fail(fmt.Errorf("%w: contract %s has no registry entry", ErrNameNotFound, in.ContractID))
	}

	m.step(StepDone)
	if interactionID == "" {
		interactionID = PendingInteractionID
	}
	return &Result{
		ResolvedURL:   SiteURL(name, undername),
		InteractionID: interactionID,
	}, nil
}

// provenanceTags records which tool performed the update, from which
// source URL, and when.
func (m *Migrator) provenanceTags(sourceURL string) []Tag {
	return []Tag{
		{Name: "App-Name", Value: "arlink"},
		{Name: "App-Version", Value: m.Version},
		{Name: "Migrated-From", Value: sourceURL},
		{Name: "Unix-Time", Value: strconv.FormatInt(time.Now().Unix(), 10)},
	}
}

// SiteURL formats the human-facing URL for a name. The root undername
// resolves at the apex; any other undername is a prefix joined with an
// underscore.
func SiteURL(name, undername string) string {
	if undername == "" || undername == RootUndername {
		return "https://" + name + ".ar.io"
	}
	return "https://" + undername + "_" + name + ".ar.io"
}
