package query

import (
	"fmt"
	"strings"
	"time"
)

// Render returns the statement as InfluxQL together with its bind parameters.
// Identifiers are quoted and tag values are always passed as parameters.
func (s Statement) Render() (string, map[string]any) {
	var b strings.Builder
	params := make(map[string]any, len(s.Filters))

	b.WriteString("SELECT ")
	if s.Field.Aggregate != AggregateNone {
		fmt.Fprintf(&b, "%s(%s)", s.Field.Aggregate, QuoteIdent(s.Field.Name))
	} else {
		b.WriteString(QuoteIdent(s.Field.Name))
	}
	b.WriteString(" FROM ")
	b.WriteString(QuoteIdent(s.Measurement))

	var conds []string
	for _, f := range s.Filters {
		name := paramName(f.Key, params)
		params[name] = f.Value
		conds = append(conds, fmt.Sprintf("%s = $%s", QuoteIdent(f.Key), name))
	}
	if s.Since > 0 {
		conds = append(conds, "time > now() - "+DurationLiteral(s.Since))
	}
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}

	var groups []string
	if s.GroupByTime > 0 {
		groups = append(groups, "time("+DurationLiteral(s.GroupByTime)+")")
	}
	for _, tag := range s.GroupByTags {
		groups = append(groups, QuoteIdent(tag))
	}
	if len(groups) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(groups, ", "))
	}

	if s.Descending {
		b.WriteString(" ORDER BY time DESC")
	}
	if s.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", s.Limit)
	}

	return b.String(), params
}

// String renders the statement with its parameters for logging.
func (s Statement) String() string {
	cmd, params := s.Render()
	if len(params) == 0 {
		return cmd
	}
	return fmt.Sprintf("%s %v", cmd, params)
}

// QuoteIdent double-quotes an identifier, escaping backslashes and quotes.
func QuoteIdent(name string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(name) + `"`
}

// DurationLiteral formats d as an InfluxQL duration literal.
func DurationLiteral(d time.Duration) string {
	switch {
	case d%time.Hour == 0:
		return fmt.Sprintf("%dh", d/time.Hour)
	case d%time.Minute == 0:
		return fmt.Sprintf("%dm", d/time.Minute)
	case d%time.Second == 0:
		return fmt.Sprintf("%ds", d/time.Second)
	case d%time.Millisecond == 0:
		return fmt.Sprintf("%dms", d/time.Millisecond)
	default:
		return fmt.Sprintf("%du", d/time.Microsecond)
	}
}

// paramName derives a bind parameter name from a tag key, made unique
// within params.
func paramName(key string, params map[string]any) string {
	base := strings.Map(func(r rune) rune {
		if r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') {
			return r
		}
		return '_'
	}, key)
	if base == "" || ('0' <= base[0] && base[0] <= '9') {
		base = "p_" + base
	}
	name := base
	for i := 1; ; i++ {
		if _, taken := params[name]; !taken {
			return name
		}
		name = fmt.Sprintf("%s_%d", base, i)
	}
}
