package utils

import (
	"testing"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/stretchr/testify/require"
)

func TestOrderedMapToString(t *testing.T) {
	data := orderedmap.NewOrderedMap[string, any]()
	require.Equal(t, "[]", OrderedMapToString(data))

	data.Set("slot", 3)
	data.Set("frac", 0.5)
	data.Set("stuck", false)
	require.Equal(t, "[slot=3 frac=0.5 stuck=false]", OrderedMapToString(data))
}
