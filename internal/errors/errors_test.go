package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSentinel = stderrors.New("sentinel")

func TestWrap_PreservesCauseAndCode(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing"))

	wrapped := Wrap(errSentinel, "loading table")
	assert.True(t, stderrors.Is(wrapped, errSentinel))
	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "loading table: sentinel", wrapped.Error())

	rewrapped := Wrapf(InvalidInput("bad mode"), "convert %s", "x.csv")
	assert.Equal(t, CodeInvalidInput, GetCode(rewrapped))
	assert.Equal(t, "convert x.csv: bad mode", rewrapped.Error())
}

func TestIOError(t *testing.T) {
	err := IOError("a.dat", errSentinel)
	assert.Equal(t, CodeIOError, GetCode(err))
	assert.ErrorIs(t, err, errSentinel)
	assert.Contains(t, err.Error(), "a.dat")

	coded := WithCode(CodeInvalidInput, errSentinel)
	assert.Equal(t, CodeInvalidInput, GetCode(coded))
	assert.Equal(t, "UNKNOWN", GetCode(errSentinel))
}
