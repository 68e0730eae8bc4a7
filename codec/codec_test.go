package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name   string            `json:"name"`
	Count  uint64            `json:"count"`
	Extent [4]int32          `json:"extent"`
	Labels map[string]string `json:"labels,omitempty"`
}

func TestCodecs(t *testing.T) {
	in := record{
		Name:   "farm",
		Count:  42,
		Extent: [4]int32{-8, -8, 64, 32},
		Labels: map[string]string{"season": "spring"},
	}

	for _, c := range []Codec{JSON{}, Segment{}} {
		t.Run(c.Name(), func(t *testing.T) {
			data, err := c.Marshal(in)
			require.NoError(t, err)

			var out record
			require.NoError(t, c.Unmarshal(data, &out))
			assert.Equal(t, in, out)

			byName, ok := ByName(c.Name())
			require.True(t, ok)
			assert.Equal(t, c, byName)
		})
	}
}

func TestCodecs_Interchangeable(t *testing.T) {
	in := record{Name: "base", Count: 7}

	var out record
	require.NoError(t, JSON{}.Unmarshal(MustMarshal(Segment{}, in), &out))
	assert.Equal(t, in, out)

	out = record{}
	require.NoError(t, Segment{}.Unmarshal(MustMarshal(JSON{}, in), &out))
	assert.Equal(t, in, out)
}

func TestByName_Unknown(t *testing.T) {
	_, ok := ByName("gob")
	assert.False(t, ok)
}

func TestMustMarshal(t *testing.T) {
	assert.Equal(t, `{"name":"x","count":1,"extent":[0,0,0,0]}`, string(MustMarshal(nil, record{Name: "x", Count: 1})))
	assert.Panics(t, func() { MustMarshal(JSON{}, func() {}) })
}

func TestSegment_Append(t *testing.T) {
	out, err := Segment{}.Append([]byte("v="), map[string]int{"b": 2, "a": 1})
	require.NoError(t, err)
	assert.Equal(t, `v={"a":1,"b":2}`, string(out))
}
