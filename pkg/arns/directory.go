package arns

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Registry exposes the full registry record set. Satisfied by *Gateway.
type Registry interface {
	AllRecords(ctx context.Context) (map[string]RegistryRecord, error)
}

// ContractReader reads the declared owner of a contract. Satisfied by
// *Gateway.
type ContractReader interface {
	ContractOwner(ctx context.Context, contractID string) (string, error)
}

// Directory resolves which registry entries a wallet owns.
type Directory struct {
	registry    Registry
	contracts   ContractReader
	concurrency int
	log         zerolog.Logger
}

// NewDirectory builds a Directory. concurrency bounds the contract
// reads in flight during a scan; values below 1 mean sequential.
func NewDirectory(registry Registry, contracts ContractReader, concurrency int, log zerolog.Logger) *Directory {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Directory{
		registry:    registry,
		contracts:   contracts,
		concurrency: concurrency,
		log:         log,
	}
}

// OwnedNames returns every registry entry whose contract reports owner
// as its owner. The comparison is exact string equality; addresses are
// case-significant and never normalized.
//
// Per-entry contract reads are independent: a read that fails is logged
// and the entry skipped, without aborting the rest of the scan. Only a
// failed registry fetch is an error. The result carries no ordering
// guarantee. An empty result is not an error; the caller decides how to
// surface it.
func (d *Directory) OwnedNames(ctx context.Context, owner string) ([]NameRecord, error) {
	records, err := d.registry.AllRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
	}

	var (
		mu    sync.Mutex
		owned []NameRecord
	)
	var g errgroup.Group
	g.SetLimit(d.concurrency)

	for name, rec := range records {
		g.Go(func() error {
			contractOwner, err := d.contracts.ContractOwner(ctx, rec.ContractTxID)
			if err != nil {
				d.log.Debug().Err(err).Str("name", name).Str("contract", rec.ContractTxID).
					Msg("skipping entry: owner check failed")
				return nil
			}
			if contractOwner != owner {
				return nil
			}
			undername := rec.Undername
			if undername == "" {
				undername = RootUndername
			}
			mu.Lock()
			owned = append(owned, NameRecord{Name: name, ContractID: rec.ContractTxID, Undername: undername})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return owned, nil
}
