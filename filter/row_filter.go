// Package filter evaluates user-supplied expressions against output rows to
// select which municipalities are written to the dataset.
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/karasuda/resasdl/dataset"
)

// RowFilter represents a compiled row filter expression
type RowFilter struct {
	program *vm.Program
	expr    string
}

// Compile compiles a filter expression over city rows.
func Compile(expression string) (*RowFilter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty filter expression"}
	}

	program, err := expr.Compile(expression,
		expr.Env(rowEnv(dataset.CityRow{})),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, &CompilationError{Expression: expression, Reason: err.Error(), Err: err}
	}

	return &RowFilter{
		program: program,
		expr:    expression,
	}, nil
}

// Evaluate reports whether the row passes the filter.
func (f *RowFilter) Evaluate(row dataset.CityRow) (bool, error) {
	result, err := expr.Run(f.program, rowEnv(row))
	if err != nil {
		return false, &EvaluationError{Expression: f.expr, CityName: row.CityName, Reason: err.Error(), Err: err}
	}

	keep, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expr,
			CityName:   row.CityName,
			Reason:     fmt.Sprintf("expression returned %T, expected bool", result),
		}
	}

	return keep, nil
}

// String returns the original expression
func (f *RowFilter) String() string {
	return f.expr
}

// rowEnv builds the evaluation environment for one row.
func rowEnv(row dataset.CityRow) map[string]interface{} {
	return map[string]interface{}{
		"Row": row,

		// Direct row properties for convenience
		"PrefectureCode": row.PrefectureCode,
		"PrefectureName": row.PrefectureName,
		"CityCode":       row.CityCode,
		"CityName":       row.CityName,
		"BigCityFlag":    row.BigCityFlagArray,

		// Case-insensitive string helpers. expr reserves contains,
		// startsWith and endsWith as infix operators, so the function
		// forms carry an i prefix.
		"icontains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"istartsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"iendsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}
