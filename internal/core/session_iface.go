package core

// SessionID is the client token that identifies one application session.
type SessionID string

// ConnID identifies one signal connection within a session. A session may
// render its store on several connections at once (one per browser tab).
type ConnID string
