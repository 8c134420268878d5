package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeetingStatus_IsValid(t *testing.T) {
	for _, status := range MeetingStatuses() {
		assert.True(t, status.IsValid(), "status %q should be valid", status)
	}
	assert.False(t, MeetingStatus("archived").IsValid())
	assert.False(t, MeetingStatus("").IsValid())
}

func TestMeeting_Duration(t *testing.T) {
	started := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	ended := started.Add(95 * time.Minute)

	meeting := &Meeting{StartedAt: &started, EndedAt: &ended}
	duration := meeting.Duration()
	require.NotNil(t, duration)
	assert.Equal(t, 5700.0, *duration)
}

func TestMeeting_Duration_MissingTimestamps(t *testing.T) {
	now := time.Now()

	assert.Nil(t, (&Meeting{}).Duration())
	assert.Nil(t, (&Meeting{StartedAt: &now}).Duration())
	assert.Nil(t, (&Meeting{EndedAt: &now}).Duration())
}
