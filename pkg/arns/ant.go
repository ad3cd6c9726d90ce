package arns

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/arlink/cli/pkg/arweave"
)

// RootUndername addresses the apex record of a name.
const RootUndername = "@"

// setRecordInput is the contract call payload for a record update.
type setRecordInput struct {
	Function      string `json:"function"`
	SubDomain     string `json:"subDomain"`
	TransactionID string `json:"transactionId"`
	TTLSeconds    int64  `json:"ttlSeconds"`
}

// Interaction is the signed write envelope registered with the
// sequencer.
type Interaction struct {
	ContractID string          `json:"contractId"`
	Input      json.RawMessage `json:"input"`
	Owner      string          `json:"owner"`
	Address    string          `json:"address"`
	Tags       []Tag           `json:"tags"`
	UnixTime   int64           `json:"unixTime"`
	Signature  string          `json:"signature"`
}

// signaturePayload is the deterministic byte sequence the wallet signs:
// everything in the envelope except the signature itself.
func (in *Interaction) signaturePayload() ([]byte, error) {
	return json.Marshal(struct {
		ContractID string          `json:"contractId"`
		Input      json.RawMessage `json:"input"`
		Owner      string          `json:"owner"`
		Address    string          `json:"address"`
		Tags       []Tag           `json:"tags"`
		UnixTime   int64           `json:"unixTime"`
	}{in.ContractID, in.Input, in.Owner, in.Address, in.Tags, in.UnixTime})
}

// Sequencer accepts signed interactions. Satisfied by *Gateway.
type Sequencer interface {
	SubmitInteraction(ctx context.Context, in *Interaction) (string, error)
}

// ANT is a write handle on one ANT contract, bound to a signing wallet.
type ANT struct {
	sequencer  Sequencer
	wallet     arweave.Provider
	contractID string
	now        func() time.Time
}

// NewANT binds a wallet to a contract.
func NewANT(sequencer Sequencer, wallet arweave.Provider, contractID string) *ANT {
	return &ANT{
		sequencer:  sequencer,
		wallet:     wallet,
		contractID: contractID,
		now:        time.Now,
	}
}

// SetRecord points undername at txID with the given TTL, signs the
// interaction with the bound wallet, and registers it. Returns the
// interaction transaction id as reported by the sequencer.
func (a *ANT) SetRecord(ctx context.Context, undername, txID string, ttlSeconds int64, tags []Tag) (string, error) {
	if a.wallet == nil {
		return "", arweave.ErrWalletUnavailable
	}
	if undername == "" {
		undername = RootUndername
	}

	input, err := json.Marshal(setRecordInput{
		Function:      "setRecord",
		SubDomain:     undername,
		TransactionID: txID,
		TTLSeconds:    ttlSeconds,
	})
	if err != nil {
		return "", err
	}

	address, err := a.wallet.ActiveAddress(ctx)
	if err != nil {
		return "", err
	}

	interaction := &Interaction{
		ContractID: a.contractID,
		Input:      input,
		Owner:      a.wallet.Owner(),
		Address:    address,
		Tags:       tags,
		UnixTime:   a.now().Unix(),
	}

	payload, err := interaction.signaturePayload()
	if err != nil {
		return "", err
	}
	sig, err := a.wallet.Sign(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("signing interaction: %w", err)
	}
	interaction.Signature = base64.RawURLEncoding.EncodeToString(sig)

	return a.sequencer.SubmitInteraction(ctx, interaction)
}
