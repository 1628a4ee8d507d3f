package auth

import "context"

type ctxKey string

const (
	ctxKeySub     ctxKey = "sub"
	ctxKeyPremium ctxKey = "premium"
)

func WithSubject(ctx context.Context, sub string) context.Context {
	return context.WithValue(ctx, ctxKeySub, sub)
}

func SubjectFromContext(ctx context.Context) string {
	if v := ctx.Value(ctxKeySub); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func WithPremium(ctx context.Context, premium bool) context.Context {
	return context.WithValue(ctx, ctxKeyPremium, premium)
}

func PremiumFromContext(ctx context.Context) bool {
	if v := ctx.Value(ctxKeyPremium); v != nil {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}
