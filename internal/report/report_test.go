package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/notion2hugo/internal/apperr"
)

func TestReport_CleanRun(t *testing.T) {
	var r Report
	r.Warn(nil, "just a warning")

	assert.False(t, r.Failed())
	assert.Equal(t, 1, r.Warnings())
	assert.NoError(t, r.Err())
}

func TestReport_FailuresJoined(t *testing.T) {
	var r Report
	first := errors.New("missing target")
	second := errors.New("missing index")
	r.Fail(nil, first)
	r.Fail(nil, second)

	require.True(t, r.Failed())
	assert.Len(t, r.Failures(), 2)

	err := r.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrCompletedWithErrors)
	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
	assert.Contains(t, err.Error(), "2 failure(s)")
}
