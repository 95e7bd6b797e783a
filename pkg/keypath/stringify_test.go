package keypath

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type celsius float64

type named struct{ s string }

func (n named) String() string { return "named:" + n.s }

func TestStringify(t *testing.T) {
	five := 5
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "Ann", "Ann"},
		{"bytes", []byte("raw"), "raw"},
		{"int", 5, "5"},
		{"int64", int64(-3), "-3"},
		{"uint8", uint8(200), "200"},
		{"float whole", float64(5), "5"},
		{"float frac", 2.5, "2.5"},
		{"float32", float32(0.25), "0.25"},
		{"named float", celsius(21.5), "21.5"},
		{"inf", math.Inf(1), "Infinity"},
		{"nan", math.NaN(), "NaN"},
		{"bool", true, "true"},
		{"pointer", &five, "5"},
		{"nil pointer", (*int)(nil), ""},
		{"stringer", named{"x"}, "named:x"},
		{"error", errors.New("boom"), "boom"},
		{"map", map[string]any{"a": 1}, `{"a":1}`},
		{"slice", []int{1, 2}, "[1,2]"},
		{"struct", address{City: "Oslo"}, `{"city":"Oslo","postal_code":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Stringify(tt.in))
		})
	}
}

func TestStringifyNull(t *testing.T) {
	var data map[string]any
	assert.NoError(t, json.Unmarshal([]byte(`{"note": null}`), &data))

	present, err := Resolve(data, "note")
	assert.NoError(t, err)
	missing, err := Resolver{Missing: MissingZero}.Resolve(data, "other")
	assert.NoError(t, err)

	assert.Nil(t, present)
	assert.Nil(t, missing)
	assert.Equal(t, "", Stringify(present), "null renders empty, not \"null\"")
	assert.Equal(t, Stringify(missing), Stringify(present))
}
