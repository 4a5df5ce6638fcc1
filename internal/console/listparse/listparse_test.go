package listparse

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestParse_KnownShapes(t *testing.T) {
	want := []item{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	list := `[{"id":1,"name":"a"},{"id":2,"name":"b"}]`

	for _, mode := range []Mode{Strict, Lenient} {
		for _, body := range []string{
			list,
			`{"count":2,"next":null,"previous":null,"results":` + list + `}`,
			`{"data":` + list + `}`,
		} {
			res, err := Parse[item](context.Background(), []byte(body), mode)
			require.NoError(t, err, body)
			assert.Equal(t, want, res.Items, body)
		}
	}
}

func TestParse_Idempotent(t *testing.T) {
	res, err := Parse[item](context.Background(), []byte(`{"results":[{"id":3,"name":"c"}]}`), Strict)
	require.NoError(t, err)

	again, err := json.Marshal(res.Items)
	require.NoError(t, err)
	res2, err := Parse[item](context.Background(), again, Strict)
	require.NoError(t, err)
	assert.Equal(t, res.Items, res2.Items)
}

func TestParse_EmptyListIsNotNil(t *testing.T) {
	res, err := Parse[item](context.Background(), []byte(`[]`), Strict)
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}

func TestParse_NextLink(t *testing.T) {
	body := `{"count":3,"next":"http://localhost/api/team?page=2&page_size=2","previous":null,"results":[{"id":1},{"id":2}]}`
	res, err := Parse[item](context.Background(), []byte(body), Strict)
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, "http://localhost/api/team?page=2&page_size=2", res.Next)
}

func TestParse_UnknownShapes(t *testing.T) {
	for _, body := range []string{
		`{"items":[{"id":1}]}`,
		`{"results":"nope"}`,
		`"hello"`,
		`null`,
		``,
		`[{"id":"not a number"}]`,
	} {
		_, err := Parse[item](context.Background(), []byte(body), Strict)
		assert.ErrorIs(t, err, ErrUnrecognizedShape, body)

		res, err := Parse[item](context.Background(), []byte(body), Lenient)
		require.NoError(t, err, body)
		assert.NotNil(t, res.Items)
		assert.Empty(t, res.Items, body)
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "strict", Strict.String())
	assert.Equal(t, "lenient", Lenient.String())
}
