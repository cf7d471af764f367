package jmespath_test

import (
	"testing"

	"github.com/Jeffail/gabs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jmespath "github.com/sanity-io/go-jmespath"
)

func TestFromGabsContainer(t *testing.T) {
	c, err := gabs.ParseJSON([]byte(`{"a": {"b": [1, 2, {"c": true}]}, "s": "x", "n": null}`))
	require.NoError(t, err)

	v := jmespath.FromGabsContainer(c)
	require.True(t, v.IsObject())

	got, err := jmespath.Search(v, "a.b[2].c")
	require.NoError(t, err)
	assert.True(t, jmespath.Bool(true).Equal(got))

	got, err = jmespath.Search(v, "s")
	require.NoError(t, err)
	assert.True(t, jmespath.String("x").Equal(got))

	n, ok := v.Get("n")
	require.True(t, ok)
	assert.True(t, n.IsNull())
}

func TestFromGabsContainer_nil(t *testing.T) {
	assert.True(t, jmespath.FromGabsContainer(nil).IsNull())
}
