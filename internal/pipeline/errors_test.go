package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolutionError_Fields(t *testing.T) {
	inner := eris.New("ResourceNotFoundException")
	err := &ResolutionError{ContactID: "c-1", Err: inner}

	assert.Contains(t, err.Error(), "c-1")
	assert.True(t, errors.Is(err, inner))
}

func TestEnumerationError_Fields(t *testing.T) {
	err := &EnumerationError{
		ContactID: "c-1",
		Bucket:    "bucket",
		Prefix:    "Analysis/Chat/Redacted/2025/08/12/c-1",
		Err:       eris.New("throttled"),
	}
	assert.Contains(t, err.Error(), "s3://bucket/Analysis/Chat/Redacted/2025/08/12/c-1")
}

func TestErrorKinds_AssertableThroughWrapping(t *testing.T) {
	inner := &HumanizationError{Bucket: "b", Key: "k.json", Err: eris.New("timeout")}
	wrapped := fmt.Errorf("while processing: %w", inner)

	var herr *HumanizationError
	require.True(t, errors.As(wrapped, &herr))
	assert.Equal(t, "k.json", herr.Key)

	var serr *SignError
	assert.False(t, errors.As(wrapped, &serr))
}

func TestInputAndOutputErrors_CarryLocation(t *testing.T) {
	in := &InputError{Bucket: "src", Key: "in.csv", Err: eris.New("no such key")}
	out := &OutputError{Bucket: "dst", Key: "PDR/out.csv", Err: eris.New("access denied")}

	assert.Contains(t, in.Error(), "s3://src/in.csv")
	assert.Contains(t, out.Error(), "s3://dst/PDR/out.csv")
}
