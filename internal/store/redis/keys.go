package redis

const (
	// KeyToken mirrors the bearer token of the active session.
	KeyToken = "snooze:creds:token"
	// KeyUsername mirrors the username of the active session.
	KeyUsername = "snooze:creds:username"
	// KeyRecoveryUsername holds the username between the two steps of
	// the password recovery flow.
	KeyRecoveryUsername = "snooze:creds:recovery-username"
)
