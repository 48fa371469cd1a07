package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusRoundTrip(t *testing.T) {
	for _, s := range []Status{StatusQueued, StatusProcessing, StatusCompleted, StatusFailed} {
		parsed, err := ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseStatus("archived")
	assert.Error(t, err)
}

func TestJobStatusMarshalsAsString(t *testing.T) {
	data, err := json.Marshal(Job{Status: StatusCompleted})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"completed"`)
}

func TestNewCandidateRecordMarshalsEmptyLists(t *testing.T) {
	data, err := json.Marshal(NewCandidateRecord())
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"name":"","email":"","skills":[],"education":[],"experience":[],"summary":[]}`,
		string(data),
	)
}

func TestSetField(t *testing.T) {
	r := NewCandidateRecord()

	r.SetField("skills", []string{"Go"})
	r.SetField("education", nil)
	r.SetField("languages", []string{"English"})

	assert.Equal(t, []string{"Go"}, r.Skills)
	assert.NotNil(t, r.Education)
	assert.Empty(t, r.Education)
	assert.Equal(t, []string{"English"}, r.Field("languages"))
}
