package query

import (
	"fmt"
	"strconv"
	"strings"
)

const selectTasks = `SELECT tasks.id, tasks.title, tasks.description, tasks.status, tasks.priority,
       tasks.created_at, tasks.due_date, tasks.project_id, tasks.assigned_user_id,
       projects.name AS project_name, users.name AS assigned_user_name
FROM tasks
LEFT JOIN projects ON projects.id = tasks.project_id
LEFT JOIN users ON users.id = tasks.assigned_user_id`

const joinComments = `LEFT JOIN comments ON comments.task_id = tasks.id`

// placeholder marks where a bound argument goes in a predicate. It is
// replaced by $1, $2... when the statement is rendered.
const placeholder = "?"

// Statement is a rendered, parameterized SQL statement.
type Statement struct {
	SQL  string
	Args []any
}

// predicate pairs one SQL condition with the values it binds, in order.
type predicate struct {
	cond string
	args []any
}

// builder accumulates predicates for a task search.
type builder struct {
	joins      []string
	predicates []predicate
	limit      *int
	offset     *int
}

// Build validates f and renders the search statement. Predicates appear in
// a fixed order: project, assignee, status, priority, due window, comment
// keyword. Results are ordered newest first, with pagination last.
func Build(f Filter) (Statement, error) {
	if err := f.Validate(); err != nil {
		return Statement{}, err
	}

	b := &builder{}

	if f.ProjectID != nil {
		b.where("tasks.project_id = ?", *f.ProjectID)
	}
	if f.AssignedUserID != nil {
		b.where("tasks.assigned_user_id = ?", *f.AssignedUserID)
	}
	if f.Status != nil {
		b.where("tasks.status = ?", string(*f.Status))
	}
	if f.Priority != nil {
		b.where("tasks.priority = ?", string(*f.Priority))
	}
	if f.DueInDays != nil {
		// Validated non-negative above; rendered from an int, never from request text.
		b.where("tasks.due_date <= CURRENT_DATE + INTERVAL '" + strconv.Itoa(*f.DueInDays) + " days'")
	}
	if f.CommentKeyword != nil {
		b.joins = append(b.joins, joinComments)
		b.where(`comments.content ILIKE ? ESCAPE '\'`, "%"+EscapeLike(*f.CommentKeyword)+"%")
	}

	b.limit = f.Limit
	b.offset = f.Offset

	return b.render(), nil
}

func (b *builder) where(cond string, args ...any) {
	b.predicates = append(b.predicates, predicate{cond: cond, args: args})
}

func (b *builder) render() Statement {
	var (
		sb   strings.Builder
		args []any
	)

	bind := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	sb.WriteString(selectTasks)
	for _, j := range b.joins {
		sb.WriteString("\n")
		sb.WriteString(j)
	}

	for i, p := range b.predicates {
		if i == 0 {
			sb.WriteString("\nWHERE ")
		} else {
			sb.WriteString("\n  AND ")
		}
		cond := p.cond
		for _, a := range p.args {
			cond = strings.Replace(cond, placeholder, bind(a), 1)
		}
		sb.WriteString(cond)
	}

	sb.WriteString("\nORDER BY tasks.created_at DESC")

	if b.limit != nil {
		sb.WriteString("\nLIMIT " + bind(*b.limit))
	}
	if b.offset != nil {
		sb.WriteString("\nOFFSET " + bind(*b.offset))
	}

	return Statement{SQL: sb.String(), Args: args}
}

// EscapeLike escapes the LIKE metacharacters in s so it matches literally
// under ESCAPE '\'.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
