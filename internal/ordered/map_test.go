package ordered

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSetKeepsFirstPosition(t *testing.T) {
	m := New("--a", "1", "--b", "2")
	m.Set("--a", "3")
	m.Set("--c", "4")

	assert.Equal(t, []string{"--a", "--b", "--c"}, m.Keys())
	v, ok := m.Get("--a")
	require.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestNilMapIsEmpty(t *testing.T) {
	var m *Map
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	_, ok := m.Get("--x")
	assert.False(t, ok)
	for range m.All() {
		t.Fatal("nil map yielded an entry")
	}
}

func TestUnmarshalJSONPreservesOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKeys []string
		wantVals []string
		wantErr  bool
	}{
		{
			name:     "strings in declaration order",
			input:    `{"--zeta": "red", "--alpha": "blue", "--mid": "#fff"}`,
			wantKeys: []string{"--zeta", "--alpha", "--mid"},
			wantVals: []string{"red", "blue", "#fff"},
		},
		{
			name:     "numbers keep literal text",
			input:    `{"half": 0.5, "double": 2, "tiny": 1e-2}`,
			wantKeys: []string{"half", "double", "tiny"},
			wantVals: []string{"0.5", "2", "1e-2"},
		},
		{
			name:     "null is empty",
			input:    `null`,
			wantKeys: nil,
			wantVals: nil,
		},
		{
			name:    "nested object rejected",
			input:   `{"a": {"b": 1}}`,
			wantErr: true,
		},
		{
			name:    "array rejected",
			input:   `["a"]`,
			wantErr: true,
		},
		{
			name:    "bool rejected",
			input:   `{"a": true}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Map
			err := json.Unmarshal([]byte(tt.input), &m)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKeys, m.Keys())

			var vals []string
			for _, v := range m.All() {
				vals = append(vals, v)
			}
			assert.Equal(t, tt.wantVals, vals)
		})
	}
}

func TestEachMember(t *testing.T) {
	var keys []string
	err := EachMember([]byte(`{"margin": {"prefix": "m"}, "padding": {"prefix": "p"}}`), func(key string, _ json.RawMessage) error {
		keys = append(keys, key)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"margin", "padding"}, keys)
}

func TestScalar(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: `"0.5rem"`, want: "0.5rem"},
		{raw: ` 2.0 `, want: "2.0"},
		{raw: `-1e3`, want: "-1e3"},
		{raw: `true`, wantErr: true},
		{raw: `{}`, wantErr: true},
		{raw: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Scalar(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
