package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, EINTERNAL, Code(errors.New("plain")))
	err := Error(EINVALID, "<cmd> at %s has no name", "/TeXML/cmd[1]")
	assert.Equal(t, EINVALID, Code(err))
	assert.True(t, HasCode(err, EINVALID))
	assert.False(t, HasCode(err, EPARSE))
	assert.Equal(t, "<cmd> at /TeXML/cmd[1] has no name", UserMessage(err))
}

func TestWrappedErrorKeepsCode(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := WrapError(cause, EPARSE, "cannot read TeXML input")
	outer := fmt.Errorf("converting file: %w", err)
	assert.Equal(t, EPARSE, Code(outer))
	assert.True(t, errors.Is(outer, cause))
	assert.Equal(t, "cannot read TeXML input", UserMessage(outer))
	assert.Contains(t, err.Error(), "[127]")
}

func TestErrorWithCodeWrapsNil(t *testing.T) {
	err := ErrorWithCode(nil, EARGUMENT)
	assert.Error(t, err)
	assert.Equal(t, EARGUMENT, Code(err))
	assert.Equal(t, "invalid argument", UserMessage(err))
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "internal error", UserMessage(errors.New("x")))
}
