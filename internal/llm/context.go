package llm

import "context"

type contextKey struct{}

// WithPurpose labels requests made with ctx, e.g. "pathway-briefing".
// The label is stored with each llm_requests row.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, contextKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unspecified".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(contextKey{}).(string); ok && v != "" {
		return v
	}
	return "unspecified"
}
