package taxonomy

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderWrapsOutward(t *testing.T) {
	chain := Leaf("Int").Wrap("IntegerNumber").Wrap("ArithmeticDataType").Wrap("DataType").Wrap(Declaration).Chain()

	assert.Equal(t, Chain{"Declaration", "DataType", "ArithmeticDataType", "IntegerNumber", "Int"}, chain)
	assert.Equal(t, Declaration, chain.Root())
	assert.Equal(t, "Int", chain.Leaf())
	assert.True(t, chain.Contains("DataType"))
	assert.False(t, chain.Contains("Statement"))
}

func TestChainJSONNested(t *testing.T) {
	chain := Chain{"Statement", "Jump", "Return"}

	data, err := json.Marshal(chain)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Statement","child":{"name":"Jump","child":{"name":"Return","child":null}}}`, string(data))

	var back Chain
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, chain, back)

	empty, err := json.Marshal(Chain(nil))
	require.NoError(t, err)
	assert.Equal(t, "null", string(empty))
}

func TestRegistryFirstSeenWins(t *testing.T) {
	r := NewRegistry()

	assert.True(t, r.Insert(Component{Token: "For", TimeStamp: "u&t=1"}))
	assert.True(t, r.Insert(Component{Token: "If", TimeStamp: "u&t=2"}))
	assert.False(t, r.Insert(Component{Token: "For", TimeStamp: "u&t=9"}))

	require.Equal(t, 2, r.Len())
	got, ok := r.Get("For")
	require.True(t, ok)
	assert.Equal(t, "u&t=1", got.TimeStamp)

	comps := r.Components()
	assert.Equal(t, "For", comps[0].Token)
	assert.Equal(t, "If", comps[1].Token)
}

func TestRegistryCloneIsIndependent(t *testing.T) {
	r := NewRegistry()
	r.Insert(Component{Token: "For", Classification: Chain{"Statement", "Iteration", "For"}})

	clone := r.Clone()
	clone.Insert(Component{Token: "While"})
	clone.items[0].Classification[0] = "Changed"

	assert.Equal(t, 1, r.Len())
	assert.False(t, r.Has("While"))
	got, _ := r.Get("For")
	assert.Equal(t, "Statement", got.Classification.Root())
}

func TestRegistryFrom(t *testing.T) {
	r := RegistryFrom([]Component{{Token: "A", Value: "1"}, {Token: "B"}, {Token: "A", Value: "2"}})
	assert.Equal(t, 2, r.Len())
	got, _ := r.Get("A")
	assert.Equal(t, "1", got.Value)
}
