package spinneret_test

import (
	"testing"

	"github.com/fwojciec/spinneret"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := spinneret.Errorf(spinneret.ENOTFOUND, "document %q not found", "test")

	assert.Equal(t, spinneret.ENOTFOUND, spinneret.ErrorCode(err))
	assert.Equal(t, "document \"test\" not found", spinneret.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, spinneret.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, spinneret.EINTERNAL, spinneret.ErrorCode(assert.AnError))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, spinneret.ErrorMessage(nil))
}

func TestDocument_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()

		doc := &spinneret.Document{SourceURL: "http://example.com/"}
		assert.NoError(t, doc.Validate())
	})

	t.Run("missing source URL", func(t *testing.T) {
		t.Parallel()

		doc := &spinneret.Document{Title: "Untitled"}
		err := doc.Validate()
		assert.Equal(t, spinneret.EINVALID, spinneret.ErrorCode(err))
	})
}
