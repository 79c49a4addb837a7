package storefront

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSections() []FilterSection {
	return []FilterSection{
		{Key: "collection", Title: "КОЛЛЕКЦИЯ", Options: []FilterOption{
			{Label: "Sports", Value: "SPORTS", Count: 24},
			{Label: "Classic", Value: "CLASSIC", Count: 18},
		}},
		{Key: "movement", Title: "МЕХАНИЗМ", Options: []FilterOption{
			{Label: "Автоматический", Value: "automatic", Count: 42},
		}},
	}
}

func TestFilterPanel_ToggleSections(t *testing.T) {
	p := NewFilterPanel(sampleSections())
	for _, s := range p.Sections() {
		assert.True(t, s.Open, "初始全部展开")
	}

	p.Toggle("movement")
	p.Toggle("unknown")
	secs := p.Sections()
	assert.True(t, secs[0].Open)
	assert.False(t, secs[1].Open)

	p.Toggle("movement")
	assert.True(t, p.Sections()[1].Open)
}

func TestFilterPanel_QueryAndReset(t *testing.T) {
	p := NewFilterPanel(sampleSections())
	p.Check("collection", "SPORTS", true)
	p.Check("collection", "CLASSIC", true)
	p.Check("movement", "automatic", true)
	p.Check("movement", "automatic", false)
	p.Check("nope", "x", true)

	min, max := int64(50000), int64(30000)
	p.SetPriceRange(&min, &max)

	q := p.Query()
	assert.Equal(t, []string{"CLASSIC", "SPORTS"}, q.Values["collection"])
	assert.NotContains(t, q.Values, "movement")
	require.NotNil(t, q.MinPrice)
	require.NotNil(t, q.MaxPrice)
	assert.Equal(t, int64(30000), *q.MinPrice, "min > max 时交换")
	assert.Equal(t, int64(50000), *q.MaxPrice)

	p.Toggle("collection")
	p.Reset()
	q = p.Query()
	assert.Empty(t, q.Values)
	assert.Nil(t, q.MinPrice)
	assert.False(t, p.Sections()[0].Open, "重置不影响展开状态")
}

func TestFilterPanel_SectionsAreCopies(t *testing.T) {
	src := sampleSections()
	p := NewFilterPanel(src)

	secs := p.Sections()
	secs[0].Options[0].Checked = true
	assert.Empty(t, p.Query().Values)
	assert.False(t, src[0].Open)
}
