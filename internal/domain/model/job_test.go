package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPostedAgo(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		age  time.Duration
		want string
	}{
		{0, "now"},
		{45 * time.Second, "now"},
		{time.Minute, "1m"},
		{5 * time.Minute, "5m"},
		{59 * time.Minute, "59m"},
		{time.Hour, "1h"},
		{2*time.Hour + 30*time.Minute, "2h"},
		{23 * time.Hour, "23h"},
		{24 * time.Hour, "1d"},
		{72 * time.Hour, "3d"},
	}

	for _, tc := range tests {
		got := FormatPostedAgo(now.Add(-tc.age), now)
		assert.Equal(t, tc.want, got, "age %v", tc.age)
	}
}

func TestJobUrgency_Rank(t *testing.T) {
	assert.Greater(t, JobUrgencyEmergency.Rank(), JobUrgencyHigh.Rank())
	assert.Greater(t, JobUrgencyHigh.Rank(), JobUrgencyMedium.Rank())
	assert.Greater(t, JobUrgencyMedium.Rank(), JobUrgencyLow.Rank())
	assert.Greater(t, JobUrgencyLow.Rank(), JobUrgency("bogus").Rank())
}

func TestSearchSession_Expiry(t *testing.T) {
	created := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	sess := SearchSession{Phone: "+17135550100", CreatedAt: created}

	assert.False(t, sess.Expired(created.Add(9*time.Minute)))
	assert.False(t, sess.Expired(created.Add(SessionTTL)))
	assert.True(t, sess.Expired(created.Add(11*time.Minute)))
}

func TestSearchSession_JobAt(t *testing.T) {
	sess := SearchSession{Jobs: []JobSearchResult{{ID: "a"}, {ID: "b"}}}

	job, ok := sess.JobAt(1)
	assert.True(t, ok)
	assert.Equal(t, "a", job.ID)

	job, ok = sess.JobAt(2)
	assert.True(t, ok)
	assert.Equal(t, "b", job.ID)

	_, ok = sess.JobAt(0)
	assert.False(t, ok)
	_, ok = sess.JobAt(3)
	assert.False(t, ok)
}
