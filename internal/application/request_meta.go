package application

import "context"

// RequestMeta carries the caller's network identity from the HTTP layer to
// the audit service without the services importing net/http.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
}

type requestMetaKey struct{}

func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// RequestMetaFromContext returns the stored metadata. The zero value is
// returned for contexts that never passed through the HTTP middleware
// (workers, tests).
func RequestMetaFromContext(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	return meta
}
