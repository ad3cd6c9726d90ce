package arweave

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
)

// Permissions a caller can request from a wallet provider. These mirror
// the permission names used by browser wallet extensions so session
// metadata stays interoperable.
const (
	PermAccessAddress   = "ACCESS_ADDRESS"
	PermSignTransaction = "SIGN_TRANSACTION"
)

var (
	// ErrWalletUnavailable means no wallet is present: missing or
	// unreadable keyfile, or no active session.
	ErrWalletUnavailable = errors.New("wallet unavailable")
	// ErrPermissionDenied means the user (or the OS credential store on
	// their behalf) declined the connection.
	ErrPermissionDenied = errors.New("wallet permission denied")
)

// Provider is the wallet capability handed to the migration flow. It is
// an explicit interface rather than a runtime-detected global so callers
// can inject fakes.
type Provider interface {
	Connect(ctx context.Context, permissions []string) error
	ActiveAddress(ctx context.Context) (string, error)
	Sign(ctx context.Context, data []byte) ([]byte, error)
	// Owner returns the base64url-encoded public modulus, as carried in
	// the owner field of signed interactions.
	Owner() string
}

// jwk is the subset of an Arweave RSA keyfile we need. Arweave keyfiles
// are RFC 7517 JWKs with kty RSA.
type jwk struct {
	Kty string `json:"kty"`
	N   string `json:"n"`
	E   string `json:"e"`
	D   string `json:"d"`
	P   string `json:"p"`
	Q   string `json:"q"`
}

// KeyfileWallet is the production Provider: an RSA key loaded from an
// Arweave JWK keyfile.
type KeyfileWallet struct {
	key     *rsa.PrivateKey
	owner   string
	address string
}

// LoadKeyfile reads and parses an Arweave JWK keyfile.
func LoadKeyfile(path string) (*KeyfileWallet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWalletUnavailable, err)
	}
	return ParseJWK(data)
}

// ParseJWK parses keyfile bytes into a wallet.
func ParseJWK(data []byte) (*KeyfileWallet, error) {
	var k jwk
	if err := json.Unmarshal(data, &k); err != nil {
		return nil, fmt.Errorf("%w: parsing keyfile: %v", ErrWalletUnavailable, err)
	}
	if k.Kty != "RSA" {
		return nil, fmt.Errorf("%w: invalid key type: expected RSA, got %s", ErrWalletUnavailable, k.Kty)
	}

	n, err := decodeField(k.N, "n")
	if err != nil {
		return nil, err
	}
	e, err := decodeField(k.E, "e")
	if err != nil {
		return nil, err
	}
	d, err := decodeField(k.D, "d")
	if err != nil {
		return nil, err
	}
	p, err := decodeField(k.P, "p")
	if err != nil {
		return nil, err
	}
	q, err := decodeField(k.Q, "q")
	if err != nil {
		return nil, err
	}

	key := &rsa.PrivateKey{
		PublicKey: rsa.PublicKey{
			N: new(big.Int).SetBytes(n),
			E: int(new(big.Int).SetBytes(e).Int64()),
		},
		D:      new(big.Int).SetBytes(d),
		Primes: []*big.Int{new(big.Int).SetBytes(p), new(big.Int).SetBytes(q)},
	}
	if err := key.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid RSA key: %v", ErrWalletUnavailable, err)
	}
	key.Precompute()

	return &KeyfileWallet{
		key:     key,
		owner:   k.N,
		address: OwnerToAddress(n),
	}, nil
}

func decodeField(v, name string) ([]byte, error) {
	if v == "" {
		return nil, fmt.Errorf("%w: keyfile missing field %q", ErrWalletUnavailable, name)
	}
	b, err := base64.RawURLEncoding.DecodeString(v)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding keyfile field %q: %v", ErrWalletUnavailable, name, err)
	}
	return b, nil
}

// OwnerToAddress derives a wallet address from the raw public modulus:
// base64url(SHA-256(modulus)).
func OwnerToAddress(modulus []byte) string {
	h := sha256.Sum256(modulus)
	return base64.RawURLEncoding.EncodeToString(h[:])
}

// Connect validates that the key can satisfy the requested permissions.
// A keyfile wallet inherently grants both address access and signing, so
// this only checks the key is usable.
func (w *KeyfileWallet) Connect(ctx context.Context, permissions []string) error {
	if w.key == nil {
		return ErrWalletUnavailable
	}
	return nil
}

// ActiveAddress returns the address derived from the loaded key.
func (w *KeyfileWallet) ActiveAddress(ctx context.Context) (string, error) {
	if w.key == nil {
		return "", ErrWalletUnavailable
	}
	return w.address, nil
}

// Sign produces an RSA-PSS signature over SHA-256(data) with the
// Arweave salt length of 32.
func (w *KeyfileWallet) Sign(ctx context.Context, data []byte) ([]byte, error) {
	if w.key == nil {
		return nil, ErrWalletUnavailable
	}
	digest := sha256.Sum256(data)
	return rsa.SignPSS(rand.Reader, w.key, crypto.SHA256, digest[:], &rsa.PSSOptions{
		SaltLength: 32,
		Hash:       crypto.SHA256,
	})
}

func (w *KeyfileWallet) Owner() string { return w.owner }

// Address is a convenience accessor for callers outside the Provider
// contract.
func (w *KeyfileWallet) Address() string { return w.address }
