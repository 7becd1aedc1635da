package query

import "fmt"

// Condition is one WHERE fragment. Implementations use Spanner named
// parameters (@p0, @p1, ...) and report every parameter they bind so the
// builder can keep the indexes unique.
type Condition interface {
	SQL(paramIndex int) (string, map[string]interface{})
}

type compareCondition struct {
	field string
	op    string
	value interface{}
}

func (c *compareCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s %s @%s", c.field, c.op, paramName), map[string]interface{}{
		paramName: c.value,
	}
}

// Eq matches field = value.
// Example: Eq("status", "pending") generates "status = @p0".
func Eq(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "=", value: value}
}

// Lt matches field < value.
func Lt(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: "<", value: value}
}

// Gte matches field >= value.
func Gte(field string, value interface{}) Condition {
	return &compareCondition{field: field, op: ">=", value: value}
}

// inCondition binds the whole slice as one array parameter.
type inCondition struct {
	field  string
	values []string
}

// In matches field against any of values using UNNEST over an array parameter.
// An empty list matches nothing.
func In(field string, values ...string) Condition {
	return &inCondition{field: field, values: values}
}

func (c *inCondition) SQL(paramIndex int) (string, map[string]interface{}) {
	if len(c.values) == 0 {
		return "FALSE", map[string]interface{}{}
	}
	paramName := fmt.Sprintf("p%d", paramIndex)
	return fmt.Sprintf("%s IN UNNEST(@%s)", c.field, paramName), map[string]interface{}{
		paramName: c.values,
	}
}

// IsNull matches rows where field is NULL.
func IsNull(field string) Condition {
	return &nullCondition{field: field}
}

// IsNotNull matches rows where field is set.
func IsNotNull(field string) Condition {
	return &nullCondition{field: field, not: true}
}

type nullCondition struct {
	field string
	not   bool
}

func (c *nullCondition) SQL(int) (string, map[string]interface{}) {
	if c.not {
		return fmt.Sprintf("%s IS NOT NULL", c.field), map[string]interface{}{}
	}
	return fmt.Sprintf("%s IS NULL", c.field), map[string]interface{}{}
}
