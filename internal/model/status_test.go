package model

import "testing"

func TestRunStatus_IsActive(t *testing.T) {
	tests := []struct {
		status   RunStatus
		expected bool
	}{
		{RunStatusIdle, false},
		{RunStatusPreparing, true},
		{RunStatusDownloading, true},
		{RunStatusCompleted, false},
		{RunStatusCancelled, false},
		{RunStatusError, false},
	}

	for _, test := range tests {
		if result := test.status.IsActive(); result != test.expected {
			t.Errorf("%s.IsActive() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestRunStatus_IsFinished(t *testing.T) {
	tests := []struct {
		status   RunStatus
		expected bool
	}{
		{RunStatusIdle, false},
		{RunStatusPreparing, false},
		{RunStatusDownloading, false},
		{RunStatusCompleted, true},
		{RunStatusCancelled, true},
		{RunStatusError, true},
	}

	for _, test := range tests {
		if result := test.status.IsFinished(); result != test.expected {
			t.Errorf("%s.IsFinished() = %v, expected %v", test.status, result, test.expected)
		}
	}
}
