package nlsql

import "context"

// Mock returns canned SQL (or a canned error) for tests.
type Mock struct {
	SQL string
	Err error
	// Questions records every question asked, in order.
	Questions []string
}

func (m *Mock) GenerateSQL(_ context.Context, question string) (string, error) {
	m.Questions = append(m.Questions, question)
	if m.Err != nil {
		return "", m.Err
	}
	return m.SQL, nil
}
