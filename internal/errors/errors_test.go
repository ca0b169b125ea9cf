package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_KeepsCodeOfAppErrorCause(t *testing.T) {
	base := ParseError("read workbook", stderrors.New("zip: not a valid zip file"))
	wrapped := Wrap(fmt.Errorf("load: %w", base), "run pipeline")

	assert.Equal(t, CodeParseError, GetCode(wrapped))
	assert.Equal(t, "run pipeline: load: read workbook: zip: not a valid zip file", wrapped.Error())
}

func TestWrap_DefaultsToInternal(t *testing.T) {
	wrapped := Wrapf(stderrors.New("boom"), "stage %d", 3)

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "stage 3: boom", wrapped.Error())
	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestWithCodeAndUnwrap(t *testing.T) {
	sentinel := stderrors.New("missing column")
	err := WithCode(CodeInvalidInput, sentinel, "analyze")

	assert.True(t, IsAppError(err))
	assert.True(t, stderrors.Is(err, sentinel))
	assert.Equal(t, CodeInvalidInput, GetCode(err))
}

func TestGetCode_PlainError(t *testing.T) {
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
	assert.False(t, IsAppError(stderrors.New("plain")))
	assert.Equal(t, CodeConfigInvalid, GetCode(ConfigInvalid("bad")))
}

func TestNewf(t *testing.T) {
	err := Newf(CodeInvalidInput, "no scenario sheets found in %s", "eval.xlsx")

	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Equal(t, "no scenario sheets found in eval.xlsx", err.Error())
	assert.Nil(t, err.Unwrap())
}
