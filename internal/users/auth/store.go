// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// StaffRepository defines persistence for staff accounts.
type StaffRepository interface {
	FindByEmail(context context.Context, email string) (*Staff, error)
	FindByID(context context.Context, id string) (*Staff, error)
	Create(context context.Context, staff *Staff) error
}

/*
AttemptLimiter counts failed logins per email.

Failures returns the count inside the current window. Fail records one more
failure and starts the window on the first one. Reset clears the count after a
successful login.
*/
type AttemptLimiter interface {
	Failures(context context.Context, email string) (int, error)
	Fail(context context.Context, email string, window time.Duration) (int, error)
	Reset(context context.Context, email string) error
}
