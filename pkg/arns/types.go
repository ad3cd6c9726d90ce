package arns

// RegistryRecord is one entry of the ArNS registry contract state: the
// registered name maps to the ANT contract that controls its records.
type RegistryRecord struct {
	ContractTxID string `json:"contractTxId"`
	Undername    string `json:"undername,omitempty"`
}

// ANTRecord is a single record inside an ANT contract, pointing an
// undername at a transaction id.
type ANTRecord struct {
	TransactionID string `json:"transactionId"`
	TTLSeconds    int64  `json:"ttlSeconds"`
}

// ANTState is the evaluated state of an ANT contract.
type ANTState struct {
	Name        string               `json:"name"`
	Ticker      string               `json:"ticker"`
	Owner       string               `json:"owner"`
	Controllers []string             `json:"controllers"`
	Records     map[string]ANTRecord `json:"records"`
}

// NameRecord is a registry entry materialized for a lookup. Instances
// are transient and rebuilt on every scan.
type NameRecord struct {
	Name       string `json:"name"`
	ContractID string `json:"contractId"`
	Undername  string `json:"undername"`
}

// Tag is a name/value pair attached to a submitted interaction.
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
