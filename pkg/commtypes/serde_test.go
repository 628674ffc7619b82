package commtypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexmark-gen/pkg/common_errors"
)

func TestStringToSerdeFormat(t *testing.T) {
	f, err := StringToSerdeFormat("MSGP")
	require.NoError(t, err)
	assert.Equal(t, MSGP, f)
	assert.Equal(t, "msgp", f.String())

	f, err = StringToSerdeFormat("json")
	require.NoError(t, err)
	assert.Equal(t, JSON, f)

	_, err = StringToSerdeFormat("avro")
	assert.ErrorIs(t, err, common_errors.ErrUnrecognizedSerdeFormat)
}
