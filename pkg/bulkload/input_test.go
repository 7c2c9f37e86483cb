package bulkload_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablekit/bulkload/pkg/bulkload"
)

type userResultSet struct{ rows []user }

func (r userResultSet) Rows() []user { return r.rows }

type userCollection struct{ items []user }

func (c userCollection) Items() []user { return c.items }

type userSliceable struct{ users []user }

func (s userSliceable) ToSlice() []user { return s.users }

// ambiguousInput satisfies both ResultSet and Collection; ResultSet wins.
type ambiguousInput struct {
	rows  []user
	items []user
}

func (a ambiguousInput) Rows() []user  { return a.rows }
func (a ambiguousInput) Items() []user { return a.items }

func TestNew_AcceptsAllInputShapes(t *testing.T) {
	users := makeUsers(4)

	tests := []struct {
		name  string
		input any
	}{
		{"slice", users},
		{"result set", userResultSet{rows: users}},
		{"collection", userCollection{items: users}},
		{"sliceable", userSliceable{users: users}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, err := bulkload.New(tt.input, userProcessor())
			require.NoError(t, err)
			assert.Equal(t, 4, loader.DataCount())
			assert.Equal(t, "u0@example.com", loader.Data()[0]["email"])
		})
	}
}

func TestNew_InputShapePrecedence(t *testing.T) {
	input := ambiguousInput{
		rows:  makeUsers(2),
		items: makeUsers(5),
	}

	loader, err := bulkload.New(input, userProcessor())
	require.NoError(t, err)

	// The result-set shape outranks the collection shape.
	assert.Equal(t, 2, loader.DataCount())
}

func TestNew_EmptyResultSet(t *testing.T) {
	loader, err := bulkload.New(userResultSet{}, userProcessor())
	assert.Nil(t, loader)
	assert.True(t, errors.Is(err, bulkload.ErrEmptyInput))
}

func TestNew_NilInput(t *testing.T) {
	loader, err := bulkload.New(nil, userProcessor())
	assert.Nil(t, loader)
	assert.True(t, errors.Is(err, bulkload.ErrInvalidInput))
}

func TestNew_SliceOfWrongElementType(t *testing.T) {
	loader, err := bulkload.New([]int{1, 2, 3}, userProcessor())
	assert.Nil(t, loader)
	assert.True(t, errors.Is(err, bulkload.ErrInvalidInput))
}
