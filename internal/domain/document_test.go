package domain_test

import (
	"testing"

	"github.com/DanielPopoola/walletgate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCPF_Valid(t *testing.T) {
	tests := []struct {
		input      string
		normalized string
	}{
		{"529.982.247-25", "52998224725"},
		{"11144477735", "11144477735"},
		{"191", "00000000191"},
	}

	for _, tt := range tests {
		doc, err := domain.NewCPF(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, domain.DocumentCPF, doc.Kind())
		assert.Equal(t, tt.normalized, doc.String())
	}
}

func TestNewCPF_Invalid(t *testing.T) {
	for _, input := range []string{
		"11111111111",
		"52998224726",
		"11144477734",
		"529982247251",
	} {
		_, err := domain.NewCPF(input)
		require.Error(t, err, "input %q", input)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidDocument))
	}
}

func TestNewCNPJ_Valid(t *testing.T) {
	doc, err := domain.NewCNPJ("11.222.333/0001-81")
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentCNPJ, doc.Kind())
	assert.Equal(t, "11222333000181", doc.String())
}

func TestNewCNPJ_Invalid(t *testing.T) {
	for _, input := range []string{
		"11111111111111",
		"11222333000182",
		"11.222.333/0001-80",
	} {
		_, err := domain.NewCNPJ(input)
		require.Error(t, err, "input %q", input)
		assert.True(t, domain.IsErrorCode(err, domain.ErrCodeInvalidDocument))
	}
}

func TestParseDocument_AutoDetect(t *testing.T) {
	cpf, err := domain.ParseDocument("529.982.247-25")
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentCPF, cpf.Kind())

	cnpj, err := domain.ParseDocument("11.222.333/0001-81")
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentCNPJ, cnpj.Kind())
}

func TestGenerateCPF(t *testing.T) {
	for i := 0; i < 100; i++ {
		doc := domain.GenerateCPF()
		require.Len(t, doc.String(), 11)

		revalidated, err := domain.NewCPF(doc.String())
		require.NoError(t, err, "generated %q", doc.String())
		assert.Equal(t, doc.String(), revalidated.String())
	}
}

func TestGenerateCNPJ(t *testing.T) {
	for i := 0; i < 100; i++ {
		doc := domain.GenerateCNPJ()
		require.Len(t, doc.String(), 14)
		assert.Equal(t, "0001", doc.String()[8:12])

		_, err := domain.NewCNPJ(doc.String())
		require.NoError(t, err, "generated %q", doc.String())
	}
}
