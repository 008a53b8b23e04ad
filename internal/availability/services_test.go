package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, UniqueIDs([]int64{3, 1, 3, 2, 1}))
	assert.Equal(t, []int64{}, UniqueIDs(nil))
}

func TestOrderServices(t *testing.T) {
	found := []*domain.Service{{ID: 1, Name: "Wash"}, {ID: 2, Name: "Haircut"}}

	ordered, err := OrderServices([]int64{2, 1, 2}, found)
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, int64(2), ordered[0].ID)
	assert.Equal(t, int64(1), ordered[1].ID)

	_, err = OrderServices([]int64{1, 9}, found)
	assert.ErrorIs(t, err, ErrUnknownService)
	assert.Contains(t, err.Error(), "id=9")
}
