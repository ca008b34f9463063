package decimal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestUnmarshalYAMLScalarForms(t *testing.T) {
	var doc struct {
		Bare     Money `yaml:"bare"`
		Quoted   Money `yaml:"quoted"`
		Negative Money `yaml:"negative"`
		Integer  Money `yaml:"integer"`
	}
	input := `
bare: 1234.56
quoted: "0.025"
negative: -42.5
integer: 250000
`
	require.NoError(t, yaml.Unmarshal([]byte(input), &doc))

	assert.Equal(t, "1234.56", doc.Bare.Decimal.String())
	assert.Equal(t, "0.025", doc.Quoted.Decimal.String())
	assert.Equal(t, "-42.5", doc.Negative.Decimal.String())
	assert.Equal(t, "250000", doc.Integer.Decimal.String())
}

func TestUnmarshalYAMLRejectsNonNumbers(t *testing.T) {
	var doc struct {
		Amount Money `yaml:"amount"`
	}
	err := yaml.Unmarshal([]byte("amount: lots"), &doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid decimal amount")

	err = yaml.Unmarshal([]byte("amount: [1, 2]"), &doc)
	require.Error(t, err)
}

func TestMarshalYAMLRoundTrip(t *testing.T) {
	amount, err := NewFromString("99.90")
	require.NoError(t, err)

	encoded, err := yaml.Marshal(map[string]Money{"amount": amount})
	require.NoError(t, err)
	assert.Equal(t, "amount: \"99.9\"\n", string(encoded))

	var decoded map[string]Money
	require.NoError(t, yaml.Unmarshal(encoded, &decoded))
	assert.True(t, decoded["amount"].Decimal.Equal(amount.Decimal))
}

func TestString(t *testing.T) {
	amount, err := NewFromString("7.5")
	require.NoError(t, err)
	assert.Equal(t, "7.50", amount.String())
	assert.Equal(t, "0.00", Zero().String())
}
