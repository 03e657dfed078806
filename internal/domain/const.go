package domain

type ctxKey string

// RequesterIDCtxKey holds the authenticated user id in a request context.
const RequesterIDCtxKey ctxKey = "appeals-requesterId"
