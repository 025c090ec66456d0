package shared

// Asynq task type names. Shared between the API (enqueue side) and the
// worker (handler side) to avoid import cycles with the email packages.
const (
	TypeSendContributorInvite = "email:contributor_invite"
)

// ContributorInvitePayload is the task payload for an invitation email.
type ContributorInvitePayload struct {
	Email       string `json:"email"`
	InviterName string `json:"inviterName"`
	ProfileName string `json:"profileName"`
	ProfileSlug string `json:"profileSlug"`
	Role        string `json:"role"`
}
