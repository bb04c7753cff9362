// Copyright (c) 2026 Critica. All rights reserved.
// Author: a.volkov.dev@gmail.com

package auth

// # Confirmation Mail

const (
	// confirmationSubject is the subject line of the confirmation code email.
	confirmationSubject = "Your Critica confirmation code"

	// confirmationBody is the plain-text template for the confirmation email.
	// The single %s placeholder receives the code.
	confirmationBody = "Hello!\n\nYour confirmation code is: %s\n\n" +
		"Exchange it for an access token at /api/v1/auth/token.\n" +
		"If you did not request this, ignore this message.\n"

	// MaxUsernameLength bounds the username column; the username syntax rule
	// is stricter but this is the hard storage cap.
	MaxUsernameLength = 150

	// MaxEmailLength bounds the email column.
	MaxEmailLength = 254
)
