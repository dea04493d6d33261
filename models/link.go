// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LinkOutcome is the result of following an emailed activation or
// password reset confirmation link.
type LinkOutcome int

const (
	// LinkInvalid means the link did not verify. No state was changed.
	LinkInvalid LinkOutcome = iota
	// LinkConfirmed means the link verified and the account is now active.
	LinkConfirmed
	// LinkExpired means the link did not verify and the pending inactive
	// account it referred to has been removed.
	LinkExpired
)
