package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShowcase(t *testing.T) {
	products := fixture()

	assert.Equal(t, []string{"1", "2", "4", "7"}, ids(Showcase(products, TabTrending, 0)))
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "7"}, ids(Showcase(products, TabOffers, 0)))
	assert.Equal(t, []string{"7", "6", "2"}, ids(Showcase(products, TabLatest, 3)))

	// latest no reordena la fuente
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8"}, ids(products))
}

func TestParseShowcaseTab(t *testing.T) {
	tab, ok := ParseShowcaseTab("")
	assert.True(t, ok)
	assert.Equal(t, TabTrending, tab)

	tab, ok = ParseShowcaseTab("Offers")
	assert.True(t, ok)
	assert.Equal(t, TabOffers, tab)

	_, ok = ParseShowcaseTab("bestsellers")
	assert.False(t, ok)
}

func TestCategories(t *testing.T) {
	cats := Categories(fixture())

	assert.Len(t, cats, 6)
	assert.Equal(t, "fashion", cats[0].Slug)
	assert.Equal(t, 2, cats[0].ProductCount)
	assert.Equal(t, "Electronics", cats[1].Name)
	assert.Equal(t, 4, cats[1].ProductCount)
	assert.Equal(t, "/category-banner-default.jpg", cats[5].Banner)
	assert.Equal(t, 0, cats[5].ProductCount)
}

func TestCategoryBySlug(t *testing.T) {
	c, ok := CategoryBySlug("stationery")
	assert.True(t, ok)
	assert.Equal(t, "Stationery", c.Name)
	assert.Contains(t, c.Description, "stationery supplies")

	_, ok = CategoryBySlug("toys")
	assert.False(t, ok)
}
