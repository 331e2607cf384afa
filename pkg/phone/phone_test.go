package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "coldcheck/pkg/domain-errors"
)

func TestNew(t *testing.T) {
	f, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultRegion, f.Region())

	f, err = New(" sg ")
	require.NoError(t, err)
	assert.Equal(t, "SG", f.Region())

	_, err = New("ZZ")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestNormalize(t *testing.T) {
	f, err := New("MY")
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{in: "+6013-7703295", want: "+60137703295"},
		{in: "013-770 3295", want: "+60137703295"},
		{in: "+613-7703295", want: "+60137703295"},
		{in: "137703295", want: "+60137703295"},
		{in: "(03) 1234.5678", want: "+60312345678"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Normalize(tt.in))
		})
	}
}

func TestE164(t *testing.T) {
	f, err := New("MY")
	require.NoError(t, err)

	got, err := f.E164("013-770 3295")
	require.NoError(t, err)
	assert.Equal(t, "+60137703295", got)

	_, err = f.E164("")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = f.E164("12")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestLinks(t *testing.T) {
	f, err := New("MY")
	require.NoError(t, err)

	t.Run("valid number", func(t *testing.T) {
		links := f.Links(" 013-770 3295 ")
		assert.Equal(t, "tel:013-770 3295", links.Tel)
		assert.Equal(t, "https://wa.me/60137703295", links.WhatsApp)
		assert.Equal(t, "+60137703295", links.E164)
		assert.True(t, links.Valid)
	})

	t.Run("invalid number still links", func(t *testing.T) {
		links := f.Links("12")
		assert.Equal(t, "tel:12", links.Tel)
		assert.Equal(t, "https://wa.me/6012", links.WhatsApp)
		assert.Empty(t, links.E164)
		assert.False(t, links.Valid)
	})
}
