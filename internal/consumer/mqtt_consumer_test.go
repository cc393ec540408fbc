package consumer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserIDFromTopic(t *testing.T) {
	id, err := userIDFromTopic("farm/42/readings")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestUserIDFromTopic_Invalid(t *testing.T) {
	cases := []string{
		"farm/42",
		"farm/42/readings/extra",
		"barn/42/readings",
		"farm/abc/readings",
		"farm/0/readings",
		"farm/-1/readings",
	}
	for _, topic := range cases {
		_, err := userIDFromTopic(topic)
		assert.Error(t, err, "topic %q should be rejected", topic)
	}
}
