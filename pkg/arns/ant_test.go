package arns

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type FakeSequencer struct {
	SubmitFunc func(ctx context.Context, in *Interaction) (string, error)
	got        *Interaction
}

func (f *FakeSequencer) SubmitInteraction(ctx context.Context, in *Interaction) (string, error) {
	f.got = in
	if f.SubmitFunc != nil {
		return f.SubmitFunc(ctx, in)
	}
	return "T1", nil
}

func TestANTSetRecordBuildsSignedInteraction(t *testing.T) {
	sequencer := &FakeSequencer{}
	ant := NewANT(sequencer, fakeProvider{}, "C1")
	ant.now = func() time.Time { return time.Unix(1700000000, 0) }

	tags := []Tag{{Name: "App-Name", Value: "arlink"}}
	id, err := ant.SetRecord(context.Background(), "www", migrateTxID, 3600, tags)
	require.NoError(t, err)
	assert.Equal(t, "T1", id)

	in := sequencer.got
	require.NotNil(t, in)
	assert.Equal(t, "C1", in.ContractID)
	assert.Equal(t, "owner", in.Owner)
	assert.Equal(t, "addr", in.Address)
	assert.Equal(t, tags, in.Tags)
	assert.Equal(t, int64(1700000000), in.UnixTime)
	assert.Equal(t, base64.RawURLEncoding.EncodeToString([]byte("sig")), in.Signature)

	var input setRecordInput
	require.NoError(t, json.Unmarshal(in.Input, &input))
	assert.Equal(t, "setRecord", input.Function)
	assert.Equal(t, "www", input.SubDomain)
	assert.Equal(t, migrateTxID, input.TransactionID)
	assert.Equal(t, int64(3600), input.TTLSeconds)
}

func TestANTSetRecordDefaultsToRootUndername(t *testing.T) {
	sequencer := &FakeSequencer{}
	ant := NewANT(sequencer, fakeProvider{}, "C1")

	_, err := ant.SetRecord(context.Background(), "", migrateTxID, 3600, nil)
	require.NoError(t, err)

	var input setRecordInput
	require.NoError(t, json.Unmarshal(sequencer.got.Input, &input))
	assert.Equal(t, RootUndername, input.SubDomain)
}

func TestANTSetRecordPropagatesSequencerError(t *testing.T) {
	sequencer := &FakeSequencer{
		SubmitFunc: func(ctx context.Context, in *Interaction) (string, error) {
			return "", errors.New("rejected")
		},
	}
	ant := NewANT(sequencer, fakeProvider{}, "C1")

	_, err := ant.SetRecord(context.Background(), "@", migrateTxID, 3600, nil)
	assert.Error(t, err)
}
