package errors

import (
	stderr "errors"
	"fmt"
	"testing"

	"github.com/lopatinaanna/binarytree/logs"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorDescription(t *testing.T) {
	err := New(CodeInvalidArgument, "bad value")
	assert.Equal(t, "bad value", err.Error())
	assert.Equal(t, CodeInvalidArgument, err.ErrorCode)
}

func TestErrorLog(t *testing.T) {
	fields := logs.MapFields{}
	New(CodeEmptyContainer, "empty").Log(fields)

	assert.Equal(t, CodeEmptyContainer, fields["error_code"])
	assert.Equal(t, "empty", fields["description"])
}

func TestCodeWrapped(t *testing.T) {
	err := New(CodeConfiguration, "no ordering")
	wrapped := pkgerrors.Wrap(err, "failed to create tree")

	assert.Equal(t, CodeConfiguration, Code(err))
	assert.Equal(t, CodeConfiguration, Code(wrapped))
	assert.True(t, stderr.Is(wrapped, err))
}

func TestCodeJoined(t *testing.T) {
	err := New(CodeEmptyContainer, "empty tree")

	wrapped := fmt.Errorf("min: %w", err)
	assert.Equal(t, CodeEmptyContainer, Code(wrapped))

	joined := stderr.Join(stderr.New("plain"), pkgerrors.WithMessage(wrapped, "query"))
	assert.Equal(t, CodeEmptyContainer, Code(joined))
}

func TestCodeUnknown(t *testing.T) {
	assert.Equal(t, -1, Code(nil))
	assert.Equal(t, -1, Code(stderr.New("plain")))
}
