package smsaero

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexInt_AcceptsNumberAndString(t *testing.T) {
	var v struct {
		A FlexInt `json:"a"`
		B FlexInt `json:"b"`
		C FlexInt `json:"c"`
	}
	err := json.Unmarshal([]byte(`{"a": 12345, "b": "138", "c": null}`), &v)
	require.NoError(t, err)
	assert.Equal(t, FlexInt(12345), v.A)
	assert.Equal(t, FlexInt(138), v.B)
	assert.Equal(t, FlexInt(0), v.C)

	err = json.Unmarshal([]byte(`{"a": "not a number"}`), &v)
	assert.Error(t, err)
}

func TestCost_AcceptsNumberAndString(t *testing.T) {
	var v struct {
		A Cost `json:"a"`
		B Cost `json:"b"`
	}
	err := json.Unmarshal([]byte(`{"a": 5.49, "b": "4.79"}`), &v)
	require.NoError(t, err)
	assert.InDelta(t, 5.49, float64(v.A), 0.001)
	assert.InDelta(t, 4.79, float64(v.B), 0.001)
}

func TestDecodePage_OrdersItemsByIndex(t *testing.T) {
	data := []byte(`{
		"2": {"id": 3, "name": "c"},
		"0": {"id": 1, "name": "a"},
		"1": {"id": 2, "name": "b"},
		"links": {"self": "/v2/group/list?page=1", "last": "/v2/group/list?page=1"},
		"totalCount": "3"
	}`)

	page, err := decodePage[Group](data)
	require.NoError(t, err)

	require.Len(t, page.Items, 3)
	assert.Equal(t, "a", page.Items[0].Name)
	assert.Equal(t, "b", page.Items[1].Name)
	assert.Equal(t, "c", page.Items[2].Name)
	assert.Equal(t, int64(3), page.TotalCount)
	assert.Equal(t, "/v2/group/list?page=1", page.Links["self"])
}

func TestDecodePage_EmptyAndNull(t *testing.T) {
	page, err := decodePage[Message](nil)
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	page, err = decodePage[Message]([]byte("null"))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestSplitNums(t *testing.T) {
	n, ns := splitNums([]int64{79031234567})
	assert.Equal(t, int64(79031234567), n)
	assert.Nil(t, ns)

	n, ns = splitNums([]int64{79031234567, 79876543210})
	assert.Zero(t, n)
	assert.Len(t, ns, 2)
}
