package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionStartsUnclassified(t *testing.T) {
	session := NewSession("s-1")

	assert.Equal(t, "s-1", session.ID)
	assert.Equal(t, 0, session.MessageCount)
	assert.False(t, session.ScamDetected())
	assert.Equal(t, 0.0, session.Confidence())
	assert.Equal(t, ScamCategory(""), session.Category())
	require.NotNil(t, session.Evidence)
	assert.True(t, session.Evidence.IsEmpty())
}

func TestClassifyFirstCallWins(t *testing.T) {
	session := NewSession("s-1")

	session.Classify(0.65, CategoryThreatBasedScam)
	require.True(t, session.ScamDetected())
	assert.Equal(t, 0.65, session.Confidence())
	assert.Equal(t, CategoryThreatBasedScam, session.Category())

	// A later, stronger verdict must not overwrite the frozen one
	session.Classify(0.95, CategoryPrizeScam)
	assert.Equal(t, 0.65, session.Confidence())
	assert.Equal(t, CategoryThreatBasedScam, session.Category())
}

func TestSessionJSONUsesReportKeys(t *testing.T) {
	session := NewSession("s-json")
	session.MessageCount = 4

	data, err := json.Marshal(session)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"sessionId":"s-json"`)
	assert.Contains(t, string(data), `"messageCount":4`)
	assert.Contains(t, string(data), `"intelligence"`)
	// Unclassified sessions omit the classification block entirely
	assert.NotContains(t, string(data), `"classification"`)
}

func TestSessionJSONRoundTripKeepsClassification(t *testing.T) {
	session := NewSession("s-rt")
	session.MessageCount = 7
	session.Classify(0.8, CategoryCredentialTheft)
	session.Evidence = session.Evidence.Merge(&Evidence{UPIIDs: []string{"x@paytm"}})

	data, err := json.Marshal(session)
	require.NoError(t, err)

	var decoded Session
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, session.ID, decoded.ID)
	assert.Equal(t, 7, decoded.MessageCount)
	assert.True(t, decoded.ScamDetected())
	assert.Equal(t, CategoryCredentialTheft, decoded.Category())
	assert.Equal(t, []string{"x@paytm"}, decoded.Evidence.UPIIDs)
}
