package country

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/gometeo/weatherform/internal/model"
)

func TestDefault_DisplayName(t *testing.T) {
	table := Default()

	assert.Equal(t, "France", table.DisplayName("FR"))
	assert.Equal(t, "France", table.DisplayName("fr"))
	assert.Equal(t, "Brazil", table.DisplayName(" br "))
	assert.Equal(t, "United States", table.DisplayName("US"))
}

func TestDisplayName_UnknownEchoesCode(t *testing.T) {
	assert.Equal(t, "ZZ", Default().DisplayName("ZZ"))
	assert.Equal(t, "zz", Default().DisplayName("zz"))
	assert.Equal(t, "", Default().DisplayName(""))
}

func TestDisplayName_FallsBackToCLDR(t *testing.T) {
	table := Default()

	assert.Equal(t, "Kosovo", table.DisplayName("XK"))
	assert.Equal(t, "Kosovo", table.DisplayName(" xk "))
	assert.Equal(t, "Ascension Island", table.DisplayName("AC"))

	// user-assigned and malformed codes are not countries
	assert.Equal(t, "QM", table.DisplayName("QM"))
	assert.Equal(t, "FRA", table.DisplayName("FRA"))
	assert.Equal(t, "1", table.DisplayName("1"))
}

func TestDisplayName_TableWinsOverCLDR(t *testing.T) {
	table := Default()

	assert.Equal(t, "Korea, Republic of", table.DisplayName("KR"))
	assert.Equal(t, "Russian Federation", table.DisplayName("RU"))
	assert.Equal(t, "Eswatini", table.DisplayName("SZ"))
}

func TestDefault_CodesAreCLDRCountries(t *testing.T) {
	for _, c := range iso3166 {
		region, err := language.ParseRegion(c.Code)
		require.NoError(t, err, c.Code)
		assert.True(t, region.IsCountry(), c.Code)
		assert.Equal(t, c.Code, region.String())
	}
}

func TestDefault_SortedByName(t *testing.T) {
	list := Default().Sorted()

	require.Len(t, list, 249)
	assert.True(t, sort.SliceIsSorted(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	}))
	assert.Equal(t, "Afghanistan", list[0].Name)
}

func TestSorted_ReturnsCopy(t *testing.T) {
	table := NewTable([]model.Country{{Code: "FR", Name: "France"}})

	list := table.Sorted()
	list[0].Name = "changed"

	assert.Equal(t, "France", table.DisplayName("FR"))
	assert.Equal(t, "France", table.Sorted()[0].Name)
}

func TestNewTable_SkipsInvalidAndDeduplicates(t *testing.T) {
	table := NewTable([]model.Country{
		{Code: "fr", Name: "France"},
		{Code: "", Name: "Nowhere"},
		{Code: "XX", Name: "  "},
		{Code: "FR", Name: "French Republic"},
	})

	assert.Equal(t, 1, table.Len())
	assert.Equal(t, "French Republic", table.DisplayName("FR"))
}

func TestWith_OverridesAndExtends(t *testing.T) {
	base := NewTable([]model.Country{
		{Code: "FR", Name: "France"},
		{Code: "DE", Name: "Germany"},
	})

	merged := base.With([]model.Country{
		{Code: "DE", Name: "Deutschland"},
		{Code: "XK", Name: "Kosovo"},
	})

	assert.Equal(t, 3, merged.Len())
	assert.Equal(t, "Deutschland", merged.DisplayName("DE"))
	assert.Equal(t, "Kosovo", merged.DisplayName("XK"))
	assert.Equal(t, "Germany", base.DisplayName("DE"))
	assert.Equal(t, []model.Country{
		{Code: "DE", Name: "Deutschland"},
		{Code: "FR", Name: "France"},
		{Code: "XK", Name: "Kosovo"},
	}, merged.Sorted())
}
