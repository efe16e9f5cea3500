package main

import "github.com/cryptopro-lab/cryptopro-client/internal/dashboard"

// loginResultMsg carries the outcome of a login attempt.
type loginResultMsg struct {
	Err error
}

// controllerEventMsg carries a completed controller command result back into
// the update loop.
type controllerEventMsg struct {
	Event dashboard.Event
}
