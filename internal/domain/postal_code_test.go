package domain_test

import (
	"testing"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePostalCode(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "86047622", want: "86047622"},
		{input: "86047-622", want: "86047622"},
		{input: " 01310100 ", want: "01310100"},
		{input: "123", wantErr: true},
		{input: "8604762a", wantErr: true},
		{input: "860476221", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := domain.NormalizePostalCode(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidPostalCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidCPF(t *testing.T) {
	assert.True(t, domain.ValidCPF("529.982.247-25"))
	assert.True(t, domain.ValidCPF("52998224725"))
	assert.False(t, domain.ValidCPF("529.982.247-26"))
	assert.False(t, domain.ValidCPF("111.111.111-11"))
	assert.False(t, domain.ValidCPF("5299822472"))
	assert.False(t, domain.ValidCPF("52998224725x"))

	cpf := "52998224725"
	assert.True(t, domain.User{TaxID: &cpf}.HasVerifiedTaxID())
	assert.False(t, domain.User{}.HasVerifiedTaxID())
}
