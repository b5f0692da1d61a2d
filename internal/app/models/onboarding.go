package models

// OnboardingStatus is the coarse lifecycle stage of a user account.
type OnboardingStatus string

const (
	OnboardingPending      OnboardingStatus = "pending"
	OnboardingVerified     OnboardingStatus = "verified"
	OnboardingAuditPending OnboardingStatus = "audit_pending"
	OnboardingActive       OnboardingStatus = "active"
	OnboardingRejected     OnboardingStatus = "rejected"
	OnboardingInactive     OnboardingStatus = "inactive"
)

// OnboardingStep is the fine-grained routing hint paired with the status.
type OnboardingStep string

const (
	StepIdentityVerification OnboardingStep = "identity_verification"
	StepRoleSelection        OnboardingStep = "role_selection"
	StepProfileSetup         OnboardingStep = "profile_setup"
	StepReviewWait           OnboardingStep = "review_wait"
	StepCompleted            OnboardingStep = "completed"
	StepRejected             OnboardingStep = "rejected"
)

// OnboardingState is the (status, step) pair the onboarding flow moves through.
// Status and step are always updated together through the transition table, so
// the two fields cannot drift apart.
type OnboardingState struct {
	Status OnboardingStatus
	Step   OnboardingStep
}

// OnboardingEvent names an action that advances the onboarding flow.
type OnboardingEvent string

const (
	EventVerifyIdentity  OnboardingEvent = "verify_identity"
	EventSelectRole      OnboardingEvent = "select_role"
	EventCompleteProfile OnboardingEvent = "complete_profile"
	EventSubmitDocuments OnboardingEvent = "submit_documents"
	EventApprove         OnboardingEvent = "approve"
	EventReject          OnboardingEvent = "reject"
)

// InitialOnboardingState is assigned on account creation.
var InitialOnboardingState = OnboardingState{
	Status: OnboardingPending,
	Step:   StepIdentityVerification,
}

type transitionKey struct {
	state OnboardingState
	event OnboardingEvent
}

// onboardingTransitions is the full transition table. Any (state, event)
// pair not listed here is an invalid transition.
var onboardingTransitions = map[transitionKey]OnboardingState{
	// Normal path: verify identity, pick a role, fill the profile.
	{OnboardingState{OnboardingPending, StepIdentityVerification}, EventVerifyIdentity}: {OnboardingVerified, StepRoleSelection},
	{OnboardingState{OnboardingVerified, StepRoleSelection}, EventSelectRole}:           {OnboardingVerified, StepProfileSetup},
	{OnboardingState{OnboardingVerified, StepProfileSetup}, EventCompleteProfile}:       {OnboardingActive, StepCompleted},

	// Document review branch: partners and counselors upload supporting
	// documents after profile setup and wait for an admin decision.
	{OnboardingState{OnboardingVerified, StepProfileSetup}, EventSubmitDocuments}:   {OnboardingAuditPending, StepReviewWait},
	{OnboardingState{OnboardingAuditPending, StepReviewWait}, EventApprove}:         {OnboardingActive, StepCompleted},
	{OnboardingState{OnboardingAuditPending, StepReviewWait}, EventReject}:          {OnboardingRejected, StepRejected},
}

// NextOnboardingState applies an event to a state. The second return value is
// false when the transition is not allowed.
func NextOnboardingState(state OnboardingState, event OnboardingEvent) (OnboardingState, bool) {
	next, ok := onboardingTransitions[transitionKey{state, event}]
	return next, ok
}

// Terminal reports whether the state admits no further transitions.
func (s OnboardingState) Terminal() bool {
	for key := range onboardingTransitions {
		if key.state == s {
			return false
		}
	}
	return true
}
