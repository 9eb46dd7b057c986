package steps

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eykd/behave-go/acceptance"
)

func noop(context.Context, *State, Args) (any, error) { return nil, nil }

func TestRegistry_FindMatch_FirstWins(t *testing.T) {
	reg := NewRegistry()
	reg.Given(regexp.MustCompile(`^I add (\d+) and (\d+)$`), noop)
	reg.When(regexp.MustCompile(`add`), noop)

	m, ok := reg.FindMatch(acceptance.NewStep(acceptance.Then, "I add 2 and 3"))
	require.True(t, ok)
	assert.Equal(t, 0, m.Index)
	assert.Equal(t, []string{"2", "3"}, m.Params)

	m, ok = reg.FindMatch(acceptance.NewStep(acceptance.Given, "please add"))
	require.True(t, ok)
	assert.Equal(t, 1, m.Index)
	assert.Empty(t, m.Params)
}

func TestRegistry_LiteralIsExactMatch(t *testing.T) {
	reg := NewRegistry()
	reg.Given("the app is running", noop)

	_, ok := reg.FindMatch(acceptance.NewStep(acceptance.Given, "the app is running"))
	assert.True(t, ok)
	_, ok = reg.FindMatch(acceptance.NewStep(acceptance.Given, "the app is running fast"))
	assert.False(t, ok)
	_, ok = reg.FindMatch(acceptance.NewStep(acceptance.Given, "the app is"))
	assert.False(t, ok)
}

func TestRegistry_KeywordIgnored(t *testing.T) {
	reg := NewRegistry()
	reg.Given("the result is shown", noop)

	for _, kw := range []acceptance.Keyword{acceptance.Given, acceptance.When, acceptance.Then, acceptance.And, acceptance.But} {
		_, err := reg.Resolve(acceptance.NewStep(kw, "the result is shown"))
		assert.NoError(t, err, "keyword %s", kw)
	}
}

func TestRegistry_FindAllMatches(t *testing.T) {
	reg := NewRegistry()
	reg.Given(regexp.MustCompile(`^I have (\d+) apples$`), noop)
	reg.Given("I have 3 apples", noop)
	reg.Given("unrelated", noop)

	matches := reg.FindAllMatches(acceptance.NewStep(acceptance.Given, "I have 3 apples"))
	require.Len(t, matches, 2)
	assert.Equal(t, 0, matches[0].Index)
	assert.Equal(t, 1, matches[1].Index)
	assert.Equal(t, []string{"3"}, matches[0].Params)
}

func TestRegistry_Resolve(t *testing.T) {
	reg := NewRegistry()
	reg.Given(regexp.MustCompile(`^I have (\d+) apples$`), noop)
	reg.Given("I have 3 apples", noop)
	reg.Given("I eat an apple", noop)

	m, err := reg.Resolve(acceptance.NewStep(acceptance.When, "I eat an apple"))
	require.NoError(t, err)
	assert.Equal(t, 2, m.Index)

	_, err = reg.Resolve(acceptance.NewStep(acceptance.When, "I eat a pear"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUndefined))
	var undef *UndefinedStepError
	require.ErrorAs(t, err, &undef)
	assert.Equal(t, "I eat a pear", undef.Text)

	_, err = reg.Resolve(acceptance.NewStep(acceptance.Given, "I have 3 apples"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAmbiguous))
	var amb *AmbiguousMatchError
	require.ErrorAs(t, err, &amb)
	assert.Equal(t, []string{`/^I have (\d+) apples$/`, `"I have 3 apples"`}, amb.Patterns)
	assert.Contains(t, err.Error(), "matches 2 definitions")
}

func TestRegistry_NoUniquenessCheck(t *testing.T) {
	reg := NewRegistry()
	reg.Given("same", noop)
	reg.Then("same", noop)
	assert.Equal(t, 2, reg.Len())
	assert.Len(t, reg.Definitions(), 2)
}

func TestRegistry_CustomPattern(t *testing.T) {
	reg := NewRegistry()
	reg.Step(MustRegexp(`^count (\d+)$`), noop)
	m, ok := reg.FindMatch(acceptance.NewStep(acceptance.Given, "count 7"))
	require.True(t, ok)
	assert.Equal(t, []string{"7"}, m.Params)
}

func TestRegistry_UnsupportedPatternPanics(t *testing.T) {
	reg := NewRegistry()
	assert.Panics(t, func() { reg.Given(42, noop) })
}

func TestRegistry_DefinitionsIsCopy(t *testing.T) {
	reg := NewRegistry()
	reg.Given("a", noop)
	defs := reg.Definitions()
	defs[0].Pattern = Literal("b")

	_, ok := reg.FindMatch(acceptance.NewStep(acceptance.Given, "a"))
	assert.True(t, ok)
}

func TestState(t *testing.T) {
	st := NewState()
	st.Set("b", 2)
	st.Set("a", "x")

	v, ok := st.GetString("a")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	n, ok := st.GetInt("b")
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = st.GetInt("a")
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b"}, st.Keys())
	st.Delete("a")
	assert.Equal(t, 1, st.Len())
	_, ok = st.Get("a")
	assert.False(t, ok)
}

func TestState_ConcurrentAccess(t *testing.T) {
	st := NewState()
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				st.Set(strconv.Itoa(w), i)
				st.Get(strconv.Itoa(w))
				st.Keys()
			}
		}(w)
	}
	wg.Wait()
	assert.Equal(t, 4, st.Len())
}
