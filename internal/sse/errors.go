package sse

import "errors"

// ErrNoClients is returned by OpenNote when no editor is subscribed.
var ErrNoClients = errors.New("sse: no connected clients")
