package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErr(t *testing.T) {
	b, err := json.Marshal(Err("Missing or empty fields"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":false,"error":"Missing or empty fields"}`, string(b))
}

func TestErrMessage(t *testing.T) {
	b, err := json.Marshal(ErrMessage("No events found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":false,"message":"No events found"}`, string(b))
}

func TestOK(t *testing.T) {
	b, err := json.Marshal(OK("Account deleted successfully"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":true,"message":"Account deleted successfully"}`, string(b))
}
