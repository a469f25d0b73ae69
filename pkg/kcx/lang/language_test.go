package lang

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyByHint(t *testing.T) {
	tests := []struct {
		hint string
		want Language
		ok   bool
	}{
		{"Tutorial on C++ basics", Cpp, true},
		{"CPP pointers explained", Cpp, true},
		{"Intro to Java", Java, true},
		{"JavaScript in 10 minutes", Java, true},
		{"Python for beginners", Python, true},
		{"learn c ", C, true},
		{"Learn C in one video", C, true},
		{"random title", Unknown, false},
		{"", Unknown, false},
		{"abc", Unknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			got, ok := ClassifyByHint(tt.hint)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyByHintOrder(t *testing.T) {
	// "cpp" contains "c" and must win over the C rule.
	got, ok := ClassifyByHint("c cpp python java")
	require.True(t, ok)
	assert.Equal(t, Cpp, got)

	got, ok = ClassifyByHint("c and java")
	require.True(t, ok)
	assert.Equal(t, Java, got)
}

func TestLanguageFromLabel(t *testing.T) {
	cases := map[string]Language{
		"c_cpp":    Cpp,
		"java":     Java,
		"python":   Python,
		"python\n": Python,
	}
	for label, want := range cases {
		got, ok := LanguageFromLabel(label)
		assert.True(t, ok, label)
		assert.Equal(t, want, got, label)
	}

	for _, label := range []string{"", "c", "rust", "JAVA", "c_cpp_java"} {
		_, ok := LanguageFromLabel(label)
		assert.False(t, ok, label)
	}
}

func TestLanguageTagAndParse(t *testing.T) {
	assert.Equal(t, "cpp", Cpp.Tag())
	assert.Equal(t, "python", Python.Tag())
	assert.Equal(t, "", Unknown.Tag())
	assert.Equal(t, "Unknown", Language(42).String())

	for _, l := range []Language{C, Cpp, Java, Python} {
		got, ok := Parse(l.Tag())
		require.True(t, ok)
		assert.Equal(t, l, got)
	}
	_, ok := Parse("go")
	assert.False(t, ok)
}

type fakeModel struct {
	label string
	err   error
	calls int
}

func (m *fakeModel) Label(_ context.Context, _ string) (string, error) {
	m.calls++
	return m.label, m.err
}

func TestClassifyByModel(t *testing.T) {
	model := &fakeModel{label: "java"}
	c := NewClassifier(model, 0, nil)

	got, ok := c.ClassifyByModel(context.Background(), "public class Foo {}")
	require.True(t, ok)
	assert.Equal(t, Java, got)
	assert.Equal(t, 1, model.calls)
}

func TestClassifyByModelCachesAnswers(t *testing.T) {
	model := &fakeModel{label: "something-else"}
	c := NewClassifier(model, 4, nil)

	for i := 0; i < 3; i++ {
		_, ok := c.ClassifyByModel(context.Background(), "print(x)")
		assert.False(t, ok)
	}
	assert.Equal(t, 1, model.calls, "unknown labels are memoized")
}

func TestClassifyByModelErrorIsUnresolved(t *testing.T) {
	model := &fakeModel{err: errors.New("boom")}
	c := NewClassifier(model, 4, nil)

	got, ok := c.ClassifyByModel(context.Background(), "int main")
	assert.False(t, ok)
	assert.Equal(t, Unknown, got)

	// errors are not memoized
	c.ClassifyByModel(context.Background(), "int main")
	assert.Equal(t, 2, model.calls)
}

func TestClassifyByModelWithoutModel(t *testing.T) {
	c := NewClassifier(nil, 0, nil)
	got, ok := c.ClassifyByModel(context.Background(), "int main")
	assert.False(t, ok)
	assert.Equal(t, Unknown, got)
}

func TestProcessModelRequiresPath(t *testing.T) {
	_, err := ProcessModel{}.Label(context.Background(), "x")
	assert.Error(t, err)
}
