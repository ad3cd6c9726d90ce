package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arlink/cli/pkg/arns"
)

type FakeDirectoryService struct {
	OwnedNamesFunc func(ctx context.Context, owner string) ([]arns.NameRecord, error)
}

func (f *FakeDirectoryService) OwnedNames(ctx context.Context, owner string) ([]arns.NameRecord, error) {
	if f.OwnedNamesFunc != nil {
		return f.OwnedNamesFunc(ctx, owner)
	}
	return nil, nil
}

func connectedAddress(addr string) func() (string, bool) {
	return func() (string, bool) { return addr, true }
}

func noAddress() (string, bool) { return "", false }

func TestNamesListPrintsOwnedNames(t *testing.T) {
	setupStdoutCapture(t)

	fake := &FakeDirectoryService{
		OwnedNamesFunc: func(ctx context.Context, owner string) ([]arns.NameRecord, error) {
			assert.Equal(t, "X", owner)
			return []arns.NameRecord{
				{Name: "zeta", ContractID: "C2", Undername: "@"},
				{Name: "alpha", ContractID: "C1", Undername: "www"},
			}, nil
		},
	}
	c := NamesCmd{directory: fake, address: connectedAddress("X")}

	err := c.List(context.Background(), NamesListInput{})
	require.NoError(t, err)

	out := outBuf.String()
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "C1")
	assert.Contains(t, out, "zeta")
	assert.Contains(t, out, "www")
}

func TestNamesListNoWallet(t *testing.T) {
	setupStdoutCapture(t)

	c := NamesCmd{directory: &FakeDirectoryService{}, address: noAddress}

	err := c.List(context.Background(), NamesListInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wallet")
}

func TestNamesListEmpty(t *testing.T) {
	setupStdoutCapture(t)

	c := NamesCmd{directory: &FakeDirectoryService{}, address: connectedAddress("X")}

	err := c.List(context.Background(), NamesListInput{})
	require.NoError(t, err)
	assert.Contains(t, outBuf.String(), "No names found")
}

func TestNamesListDirectoryUnavailable(t *testing.T) {
	setupStdoutCapture(t)

	fake := &FakeDirectoryService{
		OwnedNamesFunc: func(ctx context.Context, owner string) ([]arns.NameRecord, error) {
			return nil, arns.ErrDirectoryUnavailable
		},
	}
	c := NamesCmd{directory: fake, address: connectedAddress("X")}

	err := c.List(context.Background(), NamesListInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry")
}
