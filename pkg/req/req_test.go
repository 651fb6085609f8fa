package req

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Text string `json:"text"`
}

func TestDecode(t *testing.T) {
	p, err := Decode[payload](strings.NewReader(`{"text":"12"}`))
	require.NoError(t, err)
	assert.Equal(t, "12", p.Text)

	_, err = Decode[payload](strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyBody)

	_, err = Decode[payload](strings.NewReader(`{"text":`))
	assert.Error(t, err)

	_, err = Decode[payload](nil)
	assert.ErrorIs(t, err, ErrEmptyBody)
}
