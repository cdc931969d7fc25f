// Package sqlguard validates SQL produced by the natural-language layer
// before it is allowed anywhere near the store. Generated SQL is untrusted
// input: it must be a single read-only statement touching only allow-listed
// tables and columns, or it is rejected outright.
package sqlguard

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsafeSQL is wrapped by every rejection so callers can classify the
// failure without parsing messages.
var ErrUnsafeSQL = errors.New("unsafe sql")

// Keywords that make a statement something other than a plain read.
var forbiddenKeywords = map[string]bool{
	"INSERT": true, "UPDATE": true, "DELETE": true, "DROP": true,
	"ALTER": true, "CREATE": true, "REPLACE": true, "TRUNCATE": true,
	"ATTACH": true, "DETACH": true, "PRAGMA": true, "VACUUM": true,
	"GRANT": true, "REVOKE": true, "REINDEX": true, "EXEC": true,
}

// SQL vocabulary that may legitimately appear in a SELECT. Anything outside
// this set, the schema, and locally declared aliases is rejected.
var allowedKeywords = map[string]bool{
	"SELECT": true, "FROM": true, "WHERE": true, "AND": true, "OR": true,
	"NOT": true, "IN": true, "IS": true, "NULL": true, "AS": true,
	"GROUP": true, "BY": true, "HAVING": true, "ORDER": true, "ASC": true,
	"DESC": true, "LIMIT": true, "OFFSET": true, "JOIN": true, "LEFT": true,
	"RIGHT": true, "INNER": true, "OUTER": true, "CROSS": true, "ON": true,
	"CASE": true, "WHEN": true, "THEN": true, "ELSE": true, "END": true,
	"DISTINCT": true, "BETWEEN": true, "LIKE": true, "UNION": true,
	"ALL": true, "WITH": true, "CAST": true, "INTEGER": true, "REAL": true,
	"TEXT": true, "FLOAT": true, "EXISTS": true,
}

var allowedFunctions = map[string]bool{
	"COUNT": true, "SUM": true, "AVG": true, "MIN": true, "MAX": true,
	"ROUND": true, "ABS": true, "COALESCE": true, "NULLIF": true,
	"LOWER": true, "UPPER": true, "LENGTH": true, "SUBSTR": true, "TRIM": true,
}

// Validator holds the table/column allow-list for one schema.
type Validator struct {
	tables  map[string]bool
	columns map[string]bool
}

// New builds a validator from a schema map of table name to column names.
func New(schema map[string][]string) *Validator {
	v := &Validator{
		tables:  make(map[string]bool, len(schema)),
		columns: make(map[string]bool),
	}
	for table, cols := range schema {
		v.tables[strings.ToLower(table)] = true
		for _, c := range cols {
			v.columns[strings.ToLower(c)] = true
		}
	}
	return v
}

// Validate returns nil only for a single read-only SELECT (or WITH...SELECT)
// statement whose every table and column reference is allow-listed.
//
// Names the statement declares itself are held apart: a CTE name may stand
// where a table can, but an output or table alias may not. An alias can
// therefore never smuggle in a table the allow-list does not carry.
func (v *Validator) Validate(query string) error {
	q := strings.TrimSpace(query)
	if q == "" {
		return fmt.Errorf("%w: empty statement", ErrUnsafeSQL)
	}
	if strings.Contains(q, "--") || strings.Contains(q, "/*") {
		return fmt.Errorf("%w: comments are not allowed", ErrUnsafeSQL)
	}
	if i := strings.Index(q, ";"); i >= 0 && strings.TrimSpace(q[i+1:]) != "" {
		return fmt.Errorf("%w: multiple statements", ErrUnsafeSQL)
	}
	q = strings.TrimSuffix(strings.TrimSpace(q), ";")

	toks, err := tokenize(q)
	if err != nil {
		return err
	}
	if len(toks) == 0 {
		return fmt.Errorf("%w: empty statement", ErrUnsafeSQL)
	}
	if first := strings.ToUpper(toks[0]); first != "SELECT" && first != "WITH" {
		return fmt.Errorf("%w: statement must start with SELECT or WITH", ErrUnsafeSQL)
	}

	if err := v.checkClauses(toks); err != nil {
		return err
	}

	ctes := v.collectCTEs(toks)
	aliases := v.collectAliases(toks, ctes)

	for i, tok := range toks {
		if isPunct(tok) {
			continue
		}
		upper := strings.ToUpper(tok)
		if forbiddenKeywords[upper] {
			return fmt.Errorf("%w: forbidden keyword %s", ErrUnsafeSQL, upper)
		}
		if allowedKeywords[upper] || allowedFunctions[upper] {
			continue
		}
		lower := strings.ToLower(tok)
		if v.tables[lower] || v.columns[lower] || ctes[lower] || aliases[lower] {
			continue
		}
		// An identifier directly after AS declares an output column name.
		if i > 0 && strings.ToUpper(toks[i-1]) == "AS" {
			continue
		}
		return fmt.Errorf("%w: unknown identifier %q", ErrUnsafeSQL, tok)
	}

	// Every table referenced after FROM or JOIN must be allow-listed or a
	// CTE declared in this statement. Aliases deliberately do not qualify.
	for i, tok := range toks {
		upper := strings.ToUpper(tok)
		if upper != "FROM" && upper != "JOIN" {
			continue
		}
		if i+1 >= len(toks) {
			return fmt.Errorf("%w: dangling %s", ErrUnsafeSQL, upper)
		}
		next := toks[i+1]
		if next == "(" { // FROM ( subquery )
			continue
		}
		if lower := strings.ToLower(next); v.tables[lower] || ctes[lower] {
			continue
		}
		return fmt.Errorf("%w: table %q is not allowed", ErrUnsafeSQL, next)
	}

	return nil
}

// checkClauses walks the paren structure once: parens must balance, and a
// comma may not appear directly inside a FROM clause. Comma joins would let
// a second table ride in behind the FROM/JOIN table check, so they are
// rejected outright; generated SQL has JOIN for that.
func (v *Validator) checkClauses(toks []string) error {
	inFrom := []bool{false}
	for _, tok := range toks {
		switch tok {
		case "(":
			inFrom = append(inFrom, false)
		case ")":
			if len(inFrom) == 1 {
				return fmt.Errorf("%w: unbalanced parentheses", ErrUnsafeSQL)
			}
			inFrom = inFrom[:len(inFrom)-1]
		case ",":
			if inFrom[len(inFrom)-1] {
				return fmt.Errorf("%w: comma join is not allowed", ErrUnsafeSQL)
			}
		default:
			switch strings.ToUpper(tok) {
			case "FROM":
				inFrom[len(inFrom)-1] = true
			case "SELECT", "WHERE", "GROUP", "HAVING", "ORDER", "LIMIT", "UNION":
				inFrom[len(inFrom)-1] = false
			}
		}
	}
	if len(inFrom) != 1 {
		return fmt.Errorf("%w: unbalanced parentheses", ErrUnsafeSQL)
	}
	return nil
}

// collectCTEs gathers the names declared as common table expressions:
// "WITH totals AS (SELECT ...)". Only the <name> AS ( pattern counts; a
// table reference ("FROM x AS y") puts the unknown name after AS, never
// before it, so it cannot declare a CTE.
func (v *Validator) collectCTEs(toks []string) map[string]bool {
	ctes := map[string]bool{}
	for i, tok := range toks {
		if strings.ToUpper(tok) != "AS" || i == 0 || i+1 >= len(toks) {
			continue
		}
		if toks[i+1] != "(" {
			continue
		}
		prev := toks[i-1]
		if isPlainIdentifier(prev) && !allowedKeywords[strings.ToUpper(prev)] &&
			!v.tables[strings.ToLower(prev)] && !v.columns[strings.ToLower(prev)] {
			ctes[strings.ToLower(prev)] = true
		}
	}
	return ctes
}

// collectAliases gathers the remaining declared names: table aliases, which
// only an allow-listed table or CTE may introduce (FROM matches m / FROM
// matches AS m), and output column names (SUM(runs) AS total), referencable
// from HAVING and ORDER BY.
func (v *Validator) collectAliases(toks []string, ctes map[string]bool) map[string]bool {
	aliases := map[string]bool{}
	for i, tok := range toks {
		lower := strings.ToLower(tok)
		if v.tables[lower] || ctes[lower] {
			if j := i + 1; j < len(toks) {
				next := toks[j]
				if strings.ToUpper(next) == "AS" && j+1 < len(toks) {
					next = toks[j+1]
				}
				if isPlainIdentifier(next) && !allowedKeywords[strings.ToUpper(next)] {
					aliases[strings.ToLower(next)] = true
				}
			}
		}
		if strings.ToUpper(tok) == "AS" && i+1 < len(toks) {
			next := toks[i+1]
			if isPlainIdentifier(next) && !allowedKeywords[strings.ToUpper(next)] {
				aliases[strings.ToLower(next)] = true
			}
		}
	}
	return aliases
}

func isPunct(s string) bool {
	return s == "(" || s == ")" || s == ","
}

func isPlainIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// tokenize splits the statement into identifier/keyword tokens plus the
// structural punctuation ("(", ")", ",") the clause checks need, skipping
// string literals and numbers. Quoted identifiers are rejected: the
// allow-list is plain lowercase names and anything quoted is suspicious.
func tokenize(q string) ([]string, error) {
	var toks []string
	i := 0
	for i < len(q) {
		c := q[i]
		switch {
		case c == '\'':
			// Skip the string literal, honouring '' escapes.
			i++
			for i < len(q) {
				if q[i] == '\'' {
					if i+1 < len(q) && q[i+1] == '\'' {
						i += 2
						continue
					}
					break
				}
				i++
			}
			if i >= len(q) {
				return nil, fmt.Errorf("%w: unterminated string literal", ErrUnsafeSQL)
			}
			i++
		case c == '"' || c == '`' || c == '[':
			return nil, fmt.Errorf("%w: quoted identifiers are not allowed", ErrUnsafeSQL)
		case c == '(' || c == ')' || c == ',':
			toks = append(toks, string(c))
			i++
		case isIdentStart(c):
			j := i + 1
			for j < len(q) && isIdentPart(q[j]) {
				j++
			}
			toks = append(toks, q[i:j])
			i = j
			// Skip a qualified column's table part cheaply: "m.season" emits
			// two tokens, both validated against the allow-list.
			if i < len(q) && q[i] == '.' {
				i++
			}
		default:
			i++
		}
	}
	return toks, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
