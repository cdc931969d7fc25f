// Package nlsql turns natural-language cricket questions into candidate SQL
// via an external generative model. Output is untrusted: callers must run it
// through sqlguard before execution.
package nlsql

import "context"

// Client generates a single SELECT statement answering a question about the
// dataset. The returned SQL has markdown fences stripped but is otherwise
// exactly what the model produced.
type Client interface {
	GenerateSQL(ctx context.Context, question string) (string, error)
}
