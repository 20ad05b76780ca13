package common

// AuthorizationHeaderName is the gRPC metadata key carrying the admin bearer
// token on AuthAdmin calls.
const AuthorizationHeaderName = "authorization"

// BearerPrefix precedes the token in the authorization header value.
const BearerPrefix = "Bearer "

// SessionTokenBytes is the amount of randomness in a session token.
const SessionTokenBytes = 32
