package arns

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Config holds the gateway wiring. All fields come from the environment
// with the ARLINK_ prefix; a .env file is honored by the command layer.
type Config struct {
	GatewayURL       string        `envconfig:"GATEWAY_URL" default:"https://api.arns.app"`
	SequencerURL     string        `envconfig:"SEQUENCER_URL" default:"https://gw.warp.cc"`
	RegistryID       string        `envconfig:"REGISTRY_ID" default:"bLAgYxAdX2Ry-nt6aH2ixgvJXbpsEYm28NgJgyqfs-U"`
	RecordTTL        int64         `envconfig:"RECORD_TTL" default:"3600"`
	OwnerConcurrency int           `envconfig:"OWNER_CONCURRENCY" default:"8"`
	HTTPTimeout      time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`
}

// LoadConfig reads the ARLINK_* environment variables.
func LoadConfig() (Config, error) {
	var c Config
	if err := envconfig.Process("arlink", &c); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}
	return c, nil
}

// Gateway talks to an ar.io-compatible gateway for contract-state reads
// and to a Warp-style sequencer for write interactions.
type Gateway struct {
	http       *resty.Client
	sequencer  *resty.Client
	registryID string
	log        zerolog.Logger
}

// NewGateway builds a Gateway from config.
func NewGateway(cfg Config, log zerolog.Logger) *Gateway {
	newClient := func(base string) *resty.Client {
		return resty.New().
			SetBaseURL(base).
			SetTimeout(cfg.HTTPTimeout).
			SetHeader("Accept", "application/json")
	}
	return &Gateway{
		http:       newClient(cfg.GatewayURL),
		sequencer:  newClient(cfg.SequencerURL),
		registryID: cfg.RegistryID,
		log:        log,
	}
}

// contractEnvelope is the gateway response for a state read: the state
// itself is nested under "state".
type contractEnvelope struct {
	ContractTxID string          `json:"contractTxId"`
	State        json.RawMessage `json:"state"`
}

// ContractState fetches the evaluated state of a contract and decodes
// it into out.
func (g *Gateway) ContractState(ctx context.Context, contractID string, out any) error {
	var envelope contractEnvelope
	resp, err := g.http.R().
		SetContext(ctx).
		SetResult(&envelope).
		Get("/v1/contract/" + contractID)
	if err != nil {
		return fmt.Errorf("fetching contract %s: %w", contractID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("fetching contract %s: %s", contractID, resp.Status())
	}
	if err := json.Unmarshal(envelope.State, out); err != nil {
		return fmt.Errorf("decoding contract %s state: %w", contractID, err)
	}
	return nil
}

// registryState is the subset of the registry contract state we read.
type registryState struct {
	Records map[string]RegistryRecord `json:"records"`
}

// AllRecords returns the full registry record set, keyed by name.
func (g *Gateway) AllRecords(ctx context.Context) (map[string]RegistryRecord, error) {
	var state registryState
	if err := g.ContractState(ctx, g.registryID, &state); err != nil {
		return nil, err
	}
	return state.Records, nil
}

// ANT returns the evaluated state of an ANT contract.
func (g *Gateway) ANT(ctx context.Context, contractID string) (*ANTState, error) {
	var state ANTState
	if err := g.ContractState(ctx, contractID, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// ContractOwner reads the declared owner of an ANT contract.
func (g *Gateway) ContractOwner(ctx context.Context, contractID string) (string, error) {
	state, err := g.ANT(ctx, contractID)
	if err != nil {
		return "", err
	}
	return state.Owner, nil
}

// submitResponse is the sequencer's answer to a registered interaction.
type submitResponse struct {
	ID string `json:"id"`
}

// SubmitInteraction registers a signed interaction with the sequencer
// and returns the interaction transaction id. An empty id means the
// sequencer accepted the write but has not assigned an id yet; the
// caller decides how to surface that.
func (g *Gateway) SubmitInteraction(ctx context.Context, in *Interaction) (string, error) {
	var result submitResponse
	resp, err := g.sequencer.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&result).
		Post("/gateway/sequencer/register")
	if err != nil {
		return "", fmt.Errorf("submitting interaction: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("submitting interaction: %s", resp.Status())
	}
	g.log.Debug().Str("contract", in.ContractID).Str("id", result.ID).Msg("interaction registered")
	return result.ID, nil
}

// GatewayInfo is the health payload of the gateway's /info endpoint.
type GatewayInfo struct {
	Network string `json:"network"`
	Version int64  `json:"version"`
	Release int64  `json:"release"`
	Height  int64  `json:"height"`
	Peers   int64  `json:"peers"`
}

// Info checks gateway reachability.
func (g *Gateway) Info(ctx context.Context) (*GatewayInfo, error) {
	var info GatewayInfo
	resp, err := g.http.R().
		SetContext(ctx).
		SetResult(&info).
		Get("/info")
	if err != nil {
		return nil, fmt.Errorf("fetching gateway info: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetching gateway info: %s", resp.Status())
	}
	return &info, nil
}
