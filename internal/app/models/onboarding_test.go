package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOnboardingDirectActivationPath(t *testing.T) {
	state := InitialOnboardingState

	state, ok := NextOnboardingState(state, EventVerifyIdentity)
	require.True(t, ok)
	assert.Equal(t, OnboardingState{OnboardingVerified, StepRoleSelection}, state)

	state, ok = NextOnboardingState(state, EventSelectRole)
	require.True(t, ok)
	assert.Equal(t, OnboardingState{OnboardingVerified, StepProfileSetup}, state)

	state, ok = NextOnboardingState(state, EventCompleteProfile)
	require.True(t, ok)
	assert.Equal(t, OnboardingState{OnboardingActive, StepCompleted}, state)
	assert.True(t, state.Terminal())
}

func TestOnboardingDocumentReviewPath(t *testing.T) {
	state := OnboardingState{OnboardingVerified, StepProfileSetup}

	state, ok := NextOnboardingState(state, EventSubmitDocuments)
	require.True(t, ok)
	assert.Equal(t, OnboardingState{OnboardingAuditPending, StepReviewWait}, state)
	assert.False(t, state.Terminal())

	approved, ok := NextOnboardingState(state, EventApprove)
	require.True(t, ok)
	assert.Equal(t, OnboardingState{OnboardingActive, StepCompleted}, approved)

	rejected, ok := NextOnboardingState(state, EventReject)
	require.True(t, ok)
	assert.Equal(t, OnboardingState{OnboardingRejected, StepRejected}, rejected)
	assert.True(t, rejected.Terminal())
}

func TestOnboardingRejectsOutOfOrderEvents(t *testing.T) {
	cases := []struct {
		name  string
		state OnboardingState
		event OnboardingEvent
	}{
		{"role selection before verification", InitialOnboardingState, EventSelectRole},
		{"profile before role selection", OnboardingState{OnboardingVerified, StepRoleSelection}, EventCompleteProfile},
		{"double verification", OnboardingState{OnboardingVerified, StepRoleSelection}, EventVerifyIdentity},
		{"approve without review", OnboardingState{OnboardingVerified, StepProfileSetup}, EventApprove},
		{"event on active account", OnboardingState{OnboardingActive, StepCompleted}, EventVerifyIdentity},
		{"event on rejected account", OnboardingState{OnboardingRejected, StepRejected}, EventVerifyIdentity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := NextOnboardingState(tc.state, tc.event)
			assert.False(t, ok)
		})
	}
}
