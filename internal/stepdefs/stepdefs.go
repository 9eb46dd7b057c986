// Package stepdefs is the built-in step library used by the behave CLI.
// It covers an application lifecycle, a stack calculator, named variables,
// user tables, login and doc string payloads.
package stepdefs

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/eykd/behave-go/internal/steps"
)

// State keys used by the library.
const (
	keyRunning = "app.running"
	keyStack   = "calc.stack"
	keyResult  = "calc.result"
	keyUsers   = "users"
	keySession = "session.user"
	keyBody    = "response.body"
	varPrefix  = "var."
)

// maxWaitTime caps the "I wait <n>ms" step.
const maxWaitTime = 10 * time.Second

var errAppNotRunning = errors.New("the app is not running")

// Register adds the built-in step definitions to reg.
func Register(reg *steps.Registry) {
	reg.Given("the app is running", appRunning)

	reg.Given(regexp.MustCompile(`^I have entered (-?\d+) into the calculator$`), enterNumber)
	reg.When(regexp.MustCompile(`^I press (add|subtract|multiply|divide)$`), pressOperator)
	reg.Then(regexp.MustCompile(`^the result should be (-?\d+) on the screen$`), resultShouldBe)

	reg.Given(regexp.MustCompile(`^I set "([^"]*)" to "([^"]*)"$`), setVariable)
	reg.Then(regexp.MustCompile(`^"([^"]*)" should equal "([^"]*)"$`), variableShouldEqual)

	reg.Given("the following users exist:", usersExist)
	reg.When(regexp.MustCompile(`^I log in as "([^"]*)"$`), logIn)
	reg.Then(regexp.MustCompile(`^I should be logged in as "([^"]*)"$`), loggedInAs)
	reg.Then(regexp.MustCompile(`^user "([^"]*)" should have role "([^"]*)"$`), userHasRole)

	reg.Given("the response body is:", responseBody)
	reg.Then(regexp.MustCompile(`^the response body should contain "([^"]*)"$`), bodyContains)

	reg.When(regexp.MustCompile(`^I wait (\d+)ms$`), wait)
}

func appRunning(_ context.Context, st *steps.State, _ steps.Args) (any, error) {
	st.Set(keyRunning, true)
	return nil, nil
}

func requireRunning(st *steps.State) error {
	if running, _ := st.Get(keyRunning); running != true {
		return errAppNotRunning
	}
	return nil
}

func stack(st *steps.State) []int {
	v, _ := st.Get(keyStack)
	s, _ := v.([]int)
	return s
}

func enterNumber(_ context.Context, st *steps.State, a steps.Args) (any, error) {
	n, err := strconv.Atoi(a.Params[0])
	if err != nil {
		return nil, fmt.Errorf("parsing operand: %w", err)
	}
	st.Set(keyStack, append(stack(st), n))
	return n, nil
}

func pressOperator(_ context.Context, st *steps.State, a steps.Args) (any, error) {
	operands := stack(st)
	if len(operands) < 2 {
		return nil, fmt.Errorf("%s needs two operands, have %d", a.Params[0], len(operands))
	}
	x, y := operands[len(operands)-2], operands[len(operands)-1]

	var result int
	switch a.Params[0] {
	case "add":
		result = x + y
	case "subtract":
		result = x - y
	case "multiply":
		result = x * y
	case "divide":
		if y == 0 {
			return nil, errors.New("division by zero")
		}
		result = x / y
	}
	st.Set(keyStack, append(operands[:len(operands)-2:len(operands)-2], result))
	st.Set(keyResult, result)
	return result, nil
}

func resultShouldBe(_ context.Context, st *steps.State, a steps.Args) (any, error) {
	want, err := strconv.Atoi(a.Params[0])
	if err != nil {
		return nil, fmt.Errorf("parsing expected result: %w", err)
	}
	got, ok := st.GetInt(keyResult)
	if !ok {
		return nil, errors.New("no result has been computed")
	}
	if got != want {
		return nil, fmt.Errorf("expected result %d, got %d", want, got)
	}
	return got, nil
}

func setVariable(_ context.Context, st *steps.State, a steps.Args) (any, error) {
	st.Set(varPrefix+a.Params[0], a.Params[1])
	return a.Params[1], nil
}

func variableShouldEqual(_ context.Context, st *steps.State, a steps.Args) (any, error) {
	got, ok := st.GetString(varPrefix + a.Params[0])
	if !ok {
		return nil, fmt.Errorf("variable %q is not set", a.Params[0])
	}
	if got != a.Params[1] {
		return nil, fmt.Errorf("variable %q: expected %q, got %q", a.Params[0], a.Params[1], got)
	}
	return got, nil
}

// usersExist loads a name/role table. The first row is the header.
func usersExist(_ context.Context, st *steps.State, a steps.Args) (any, error) {
	if len(a.DataTable) < 1 {
		return nil, errors.New("expected a data table with a header row")
	}
	nameCol, roleCol := -1, -1
	for i, h := range a.DataTable[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name":
			nameCol = i
		case "role":
			roleCol = i
		}
	}
	if nameCol < 0 {
		return nil, errors.New(`users table needs a "name" column`)
	}

	users := make(map[string]string)
	for _, row := range a.DataTable[1:] {
		if nameCol >= len(row) {
			return nil, fmt.Errorf("row %v has no name cell", row)
		}
		role := ""
		if roleCol >= 0 && roleCol < len(row) {
			role = row[roleCol]
		}
		users[row[nameCol]] = role
	}
	st.Set(keyUsers, users)
	return len(users), nil
}

func logIn(_ context.Context, st *steps.State, a steps.Args) (any, error) {
	if err := requireRunning(st); err != nil {
		return nil, err
	}
	if v, ok := st.Get(keyUsers); ok {
		if _, known := v.(map[string]string)[a.Params[0]]; !known {
			return nil, fmt.Errorf("unknown user %q", a.Params[0])
		}
	}
	st.Set(keySession, a.Params[0])
	return a.Params[0], nil
}

func loggedInAs(_ context.Context, st *steps.State, a steps.Args) (any, error) {
	got, ok := st.GetString(keySession)
	if !ok {
		return nil, errors.New("nobody is logged in")
	}
	if got != a.Params[0] {
		return nil, fmt.Errorf("expected to be logged in as %q, got %q", a.Params[0], got)
	}
	return got, nil
}

func userHasRole(_ context.Context, st *steps.State, a steps.Args) (any, error) {
	v, ok := st.Get(keyUsers)
	if !ok {
		return nil, errors.New("no users have been defined")
	}
	role, known := v.(map[string]string)[a.Params[0]]
	if !known {
		return nil, fmt.Errorf("unknown user %q", a.Params[0])
	}
	if role != a.Params[1] {
		return nil, fmt.Errorf("user %q: expected role %q, got %q", a.Params[0], a.Params[1], role)
	}
	return role, nil
}

func responseBody(_ context.Context, st *steps.State, a steps.Args) (any, error) {
	if a.DocString == nil {
		return nil, errors.New("expected a doc string")
	}
	st.Set(keyBody, *a.DocString)
	return len(*a.DocString), nil
}

func bodyContains(_ context.Context, st *steps.State, a steps.Args) (any, error) {
	body, ok := st.GetString(keyBody)
	if !ok {
		return nil, errors.New("no response body has been set")
	}
	if !strings.Contains(body, a.Params[0]) {
		return nil, fmt.Errorf("response body does not contain %q", a.Params[0])
	}
	return nil, nil
}

func wait(ctx context.Context, _ *steps.State, a steps.Args) (any, error) {
	ms, err := strconv.Atoi(a.Params[0])
	if err != nil {
		return nil, fmt.Errorf("parsing duration: %w", err)
	}
	d := time.Duration(ms) * time.Millisecond
	if d > maxWaitTime {
		return nil, fmt.Errorf("wait of %s exceeds the %s limit", d, maxWaitTime)
	}
	select {
	case <-time.After(d):
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
