package profile

import (
	"testing"

	"bizhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchFixture() []domain.Profile {
	return []domain.Profile{
		{Person: domain.Person{Name: "Alice", Telephone: "+254700000001", Email: "Alice@Example.com"}},
		{Person: domain.Person{Name: "Bob", Telephone: "+254700000009"}},
	}
}

func TestFilter_ByTelephone(t *testing.T) {
	got := Filter(searchFixture(), "700000001")
	require.Len(t, got, 1)
	assert.Equal(t, "Alice", got[0].Person.Name)
}

func TestFilter_ByNameCaseInsensitive(t *testing.T) {
	got := Filter(searchFixture(), "ALICE")
	require.Len(t, got, 1)
	assert.Equal(t, "Alice", got[0].Person.Name)
}

func TestFilter_ByEmailCaseInsensitive(t *testing.T) {
	got := Filter(searchFixture(), "alice@example")
	require.Len(t, got, 1)
	assert.Equal(t, "Alice", got[0].Person.Name)
}

func TestFilter_EmptyQueryMatchesAll(t *testing.T) {
	assert.Len(t, Filter(searchFixture(), ""), 2)
}

func TestFilter_NoMatch(t *testing.T) {
	assert.Empty(t, Filter(searchFixture(), "charlie"))
}

func TestMatches_TelephoneIsRawSubstring(t *testing.T) {
	p := domain.Profile{Person: domain.Person{Name: "x", Telephone: "+254 700"}}
	assert.True(t, Matches(p, "254 7"))
	assert.False(t, Matches(p, "2547"))
}
