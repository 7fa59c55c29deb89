package web

type contextKey string

// SessionIDKey is the context key under which the browsing-session
// identifier of the current request is stored.
const SessionIDKey = contextKey("sessionID")

const requestIDKey = contextKey("requestID")
