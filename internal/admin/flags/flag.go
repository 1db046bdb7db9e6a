// Copyright (c) 2026 Bayani Project. All rights reserved.
// Author: engineering@bayani.ph

/*
Package flags implements community moderation of catalogue content.

Members can flag a profile as inaccurate or inappropriate; moderators review
the queue and either resolve or dismiss each flag. Flags reference profiles
by slug because catalogue entries live in the CMS, not in our database.
*/
package flags

import "time"

// FlagStatus is the moderation lifecycle state of a flag.
type FlagStatus string

const (
	StatusOpen      FlagStatus = "open"
	StatusResolved  FlagStatus = "resolved"
	StatusDismissed FlagStatus = "dismissed"
)

// IsTerminal reports whether the status closes the flag.
func (s FlagStatus) IsTerminal() bool {
	return s == StatusResolved || s == StatusDismissed
}

// Reasons a member can pick when flagging a profile.
const (
	ReasonInaccurate    = "inaccurate"
	ReasonInappropriate = "inappropriate"
	ReasonSpam          = "spam"
	ReasonOther         = "other"
)

// Flag is one moderation report against a profile.
type Flag struct {
	ID         string     `json:"id"`
	PersonSlug string     `json:"person_slug"`
	Reason     string     `json:"reason"`
	Details    string     `json:"details,omitempty"`
	Status     FlagStatus `json:"status"`
	ReporterID string     `json:"reporter_id"`
	ResolvedBy string     `json:"resolved_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

const (
	FieldPersonSlug = "person_slug"
	FieldReason     = "reason"
	FieldDetails    = "details"
	FieldStatus     = "status"
)
