package vfserrors_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/vfs/vfserrors"
)

func TestNewAssignsDefaultClassification(t *testing.T) {
	err := vfserrors.New(vfserrors.CodeNotFound, "file not found")

	assert.Equal(t, vfserrors.CodeNotFound, err.Code())
	assert.Equal(t, vfserrors.ClassificationPermanent, err.Classification())
	assert.Equal(t, "file not found", err.Message())
	assert.Equal(t, "[NOT_FOUND] file not found", err.Error())
}

func TestNewfFormatsMessage(t *testing.T) {
	err := vfserrors.Newf(vfserrors.CodePathInvalid, "path must be absolute: %q", "relative/path")
	assert.Equal(t, `path must be absolute: "relative/path"`, err.Message())
}

func TestNetworkAndTimeoutAreRetryable(t *testing.T) {
	for _, code := range []vfserrors.ErrorCode{vfserrors.CodeNetwork, vfserrors.CodeTimeout} {
		err := vfserrors.New(code, "transient failure")
		assert.True(t, err.Classification().IsRetryable(), "code %s should be retryable", code)
	}
}

func TestPathAndExistenceCodesArePermanent(t *testing.T) {
	codes := []vfserrors.ErrorCode{
		vfserrors.CodePathEmpty,
		vfserrors.CodePathInvalid,
		vfserrors.CodePathInvalidChars,
		vfserrors.CodePathDottedSegments,
		vfserrors.CodeNotFound,
		vfserrors.CodeAlreadyExists,
		vfserrors.CodeReadOnly,
		vfserrors.CodeForbidden,
		vfserrors.CodeNotSupported,
	}
	for _, code := range codes {
		err := vfserrors.New(code, "failure")
		assert.False(t, err.Classification().IsRetryable(), "code %s should not be retryable", code)
	}
}

func TestWrapPreservesCauseAndClassification(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := vfserrors.Wrap(cause, vfserrors.CodeNetwork, "failed to read object")

	assert.Equal(t, vfserrors.CodeNetwork, wrapped.Code())
	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, wrapped.Error(), "connection reset")
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, vfserrors.Wrap(nil, vfserrors.CodeNetwork, "unused"))
}

func TestWrapPreservesInnerPlatformErrorClassification(t *testing.T) {
	inner := vfserrors.New(vfserrors.CodeTimeout, "deadline exceeded")
	outer := vfserrors.Wrap(inner, vfserrors.CodeInternal, "retry loop aborted")

	// CodeInternal defaults to permanent, but the inner error was retryable.
	assert.True(t, outer.Classification().IsRetryable())
}

func TestWithContextMergesFields(t *testing.T) {
	err := vfserrors.New(vfserrors.CodeForbidden, "path escapes backend root")
	err = vfserrors.WithContext(err, "path", "/etc/passwd")
	err = vfserrors.WithContext(err, "root", "/srv/data")

	ctx := err.Context()
	require.Len(t, ctx, 2)
	assert.Equal(t, "/etc/passwd", ctx["path"])
	assert.Equal(t, "/srv/data", ctx["root"])
}

func TestWithContextMapOverridesExistingKeys(t *testing.T) {
	err := vfserrors.New(vfserrors.CodeNotFound, "object not found")
	err = vfserrors.WithContextMap(err, map[string]interface{}{"bucket": "a", "key": "x"})
	err = vfserrors.WithContextMap(err, map[string]interface{}{"key": "y"})

	ctx := err.Context()
	assert.Equal(t, "a", ctx["bucket"])
	assert.Equal(t, "y", ctx["key"])
}

func TestWithClassificationOverridesDefault(t *testing.T) {
	err := vfserrors.New(vfserrors.CodeTimeout, "upload timed out")
	require.True(t, err.Classification().IsRetryable())

	err = vfserrors.WithClassification(err, vfserrors.ClassificationPermanent)
	assert.False(t, err.Classification().IsRetryable())
}

func TestGetCodeAndGetClassificationFallBackOnPlainErrors(t *testing.T) {
	plain := errors.New("boom")
	assert.Equal(t, vfserrors.CodeUnknown, vfserrors.GetCode(plain))
	assert.Equal(t, vfserrors.ClassificationPermanent, vfserrors.GetClassification(plain))
	assert.False(t, vfserrors.IsRetryable(plain))
}

func TestIsRetryableReflectsWrappedCode(t *testing.T) {
	err := vfserrors.New(vfserrors.CodeNetwork, "dial tcp: timeout")
	assert.True(t, vfserrors.IsRetryable(err))
}

func TestToJSONOmitsEmptyContext(t *testing.T) {
	err := vfserrors.New(vfserrors.CodeNotFound, "file not found")
	resp := vfserrors.ToJSON(err)

	require.NotNil(t, resp)
	assert.Equal(t, "NOT_FOUND", resp.Code)
	assert.Equal(t, "file not found", resp.Message)
	assert.Equal(t, "PERMANENT", resp.Classification)
	assert.Nil(t, resp.Context)
}

func TestToJSONIncludesContext(t *testing.T) {
	err := vfserrors.New(vfserrors.CodeForbidden, "path escapes backend root")
	err = vfserrors.WithContext(err, "path", "/etc/passwd")

	resp := vfserrors.ToJSON(err)
	require.NotNil(t, resp)
	assert.Equal(t, "/etc/passwd", resp.Context["path"])
}

func TestToJSONNilForNilError(t *testing.T) {
	assert.Nil(t, vfserrors.ToJSON(nil))
}

func TestMarshalJSONRoundTrips(t *testing.T) {
	err := vfserrors.New(vfserrors.CodeNotFound, "file not found")

	data, marshalErr := json.Marshal(err)
	require.NoError(t, marshalErr)
	assert.Contains(t, string(data), `"code":"NOT_FOUND"`)
	assert.Contains(t, string(data), `"message":"file not found"`)
}
