package stepdefs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eykd/behave-go/acceptance"
	"github.com/eykd/behave-go/internal/runner"
	"github.com/eykd/behave-go/internal/steps"
)

func run(t *testing.T, sc acceptance.Scenario, opts ...runner.Option) runner.ScenarioResult {
	t.Helper()
	reg := steps.NewRegistry()
	Register(reg)
	f := &acceptance.Feature{
		Name:       "builtin",
		Background: &acceptance.Background{Steps: []acceptance.Step{acceptance.NewStep(acceptance.Given, "the app is running")}},
		Scenarios:  []acceptance.Scenario{sc},
	}
	res := runner.New(reg, opts...).RunFeature(context.Background(), f)
	require.Len(t, res.Scenarios, 1)
	return res.Scenarios[0]
}

func given(text string) acceptance.Step { return acceptance.NewStep(acceptance.Given, text) }

func TestRegister_NoAmbiguousDefinitions(t *testing.T) {
	reg := steps.NewRegistry()
	Register(reg)

	samples := []string{
		"the app is running",
		"I have entered 4 into the calculator",
		"I press divide",
		"the result should be -2 on the screen",
		`I set "x" to "y"`,
		`"x" should equal "y"`,
		"the following users exist:",
		`I log in as "alice"`,
		`I should be logged in as "alice"`,
		`user "alice" should have role "admin"`,
		"the response body is:",
		`the response body should contain "ok"`,
		"I wait 5ms",
	}
	for _, text := range samples {
		_, err := reg.Resolve(given(text))
		assert.NoError(t, err, text)
	}
}

func TestCalculator(t *testing.T) {
	tests := []struct {
		op     string
		a, b   string
		result string
		pass   bool
	}{
		{"add", "2", "3", "5", true},
		{"subtract", "2", "3", "-1", true},
		{"multiply", "4", "3", "12", true},
		{"divide", "9", "2", "4", true},
		{"add", "2", "2", "5", false},
		{"divide", "1", "0", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.op+" "+tt.a+" "+tt.b, func(t *testing.T) {
			sc := run(t, acceptance.Scenario{Name: "calc", Steps: []acceptance.Step{
				given("I have entered " + tt.a + " into the calculator"),
				given("I have entered " + tt.b + " into the calculator"),
				given("I press " + tt.op),
				given("the result should be " + tt.result + " on the screen"),
			}})
			assert.Equal(t, tt.pass, sc.Passed, sc.Error)
		})
	}
}

func TestCalculator_NeedsTwoOperands(t *testing.T) {
	sc := run(t, acceptance.Scenario{Name: "calc", Steps: []acceptance.Step{
		given("I have entered 1 into the calculator"),
		given("I press add"),
	}})
	assert.False(t, sc.Passed)
	assert.Equal(t, "add needs two operands, have 1", sc.Error)
}

func TestVariables(t *testing.T) {
	sc := run(t, acceptance.Scenario{Name: "vars", Steps: []acceptance.Step{
		given(`I set "greeting" to "hello"`),
		given(`"greeting" should equal "hello"`),
		given(`"greeting" should equal "bye"`),
	}})
	assert.False(t, sc.Passed)
	assert.Len(t, sc.StepResults, 4)
	assert.Contains(t, sc.Error, `expected "bye", got "hello"`)
}

func TestUsersAndLogin(t *testing.T) {
	users := given("the following users exist:").WithDataTable(
		[]string{"name", "role"},
		[]string{"alice", "admin"},
		[]string{"bob", "viewer"},
	)
	sc := run(t, acceptance.Scenario{Name: "login", Steps: []acceptance.Step{
		users,
		given(`user "bob" should have role "viewer"`),
		given(`I log in as "alice"`),
		given(`I should be logged in as "alice"`),
	}})
	require.True(t, sc.Passed, sc.Error)
	assert.Equal(t, 2, sc.StepResults[1].Value)

	sc = run(t, acceptance.Scenario{Name: "unknown", Steps: []acceptance.Step{users, given(`I log in as "mallory"`)}})
	assert.False(t, sc.Passed)
	assert.Equal(t, `unknown user "mallory"`, sc.Error)
}

func TestLoginRequiresRunningApp(t *testing.T) {
	reg := steps.NewRegistry()
	Register(reg)
	f := &acceptance.Feature{Name: "f", Scenarios: []acceptance.Scenario{{
		Name: "no app", Steps: []acceptance.Step{given(`I log in as "alice"`)},
	}}}
	res := runner.New(reg).RunFeature(context.Background(), f)
	assert.Equal(t, errAppNotRunning.Error(), res.Scenarios[0].Error)
}

func TestResponseBody(t *testing.T) {
	sc := run(t, acceptance.Scenario{Name: "body", Steps: []acceptance.Step{
		given("the response body is:").WithDocString("{\n  \"status\": \"ok\"\n}"),
		given(`the response body should contain "ok"`),
	}})
	assert.True(t, sc.Passed, sc.Error)

	sc = run(t, acceptance.Scenario{Name: "no doc", Steps: []acceptance.Step{given("the response body is:")}})
	assert.Equal(t, "expected a doc string", sc.Error)
}

func TestWait_RespectsStepTimeout(t *testing.T) {
	sc := run(t, acceptance.Scenario{Name: "slow", Steps: []acceptance.Step{given("I wait 2000ms")}},
		runner.WithStepTimeout(20*time.Millisecond))
	assert.False(t, sc.Passed)
	assert.Equal(t, context.DeadlineExceeded.Error(), sc.Error)
}

func TestWait_RejectsWaitsOverLimit(t *testing.T) {
	sc := run(t, acceptance.Scenario{Name: "too long", Steps: []acceptance.Step{given("I wait 60000ms")}})
	assert.False(t, sc.Passed)
	assert.Equal(t, "wait of 1m0s exceeds the 10s limit", sc.Error)
}
