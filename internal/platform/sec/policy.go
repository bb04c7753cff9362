// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package sec

// # Authorization Policy
//
// All role checks for owned content (reviews, comments) funnel through
// [Authorize] so the rules live in one unit-testable place instead of being
// scattered across handlers.

// Operation classifies what a requester is trying to do to a resource.
type Operation string

const (
	OpRead   Operation = "read"
	OpWrite  Operation = "write"
	OpDelete Operation = "delete"
)

// Authorize decides whether a requester may perform op on a resource owned
// by ownerID.
//
// # Rules
//
//   - Read operations are allowed for everyone, including anonymous requests.
//   - Write and delete are allowed for the resource's author, and for
//     moderators and admins regardless of ownership.
//
// Catalog and user-management resources are admin-only and are gated at the
// routing layer via RequireRole; they never reach this predicate.
func Authorize(role UserRole, op Operation, ownerID, requesterID int64) bool {
	if op == OpRead {
		return true
	}

	if ownerID == requesterID {
		return true
	}

	return role.AtLeast(RoleModerator)
}
