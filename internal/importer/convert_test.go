package importer

import (
	"bytes"
	"testing"
	"time"

	"github.com/alexanderramin/scalehouse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var convertNow = time.Date(2026, 1, 5, 8, 30, 0, 0, time.UTC)

func day(s string) time.Time {
	t, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestConvert_ProductsAndCards(t *testing.T) {
	conv, err := Convert(validSchedule(), convertNow, "ops")
	require.NoError(t, err)

	require.Len(t, conv.Products, 2)
	wood := conv.Products[0]
	assert.NotEmpty(t, wood.ID)
	assert.Equal(t, "WOOD-A", wood.Code)
	assert.Equal(t, "Rubber wood A", wood.Name)
	assert.Equal(t, convertNow, wood.CreatedAt)

	euc := conv.Products[1]
	assert.Equal(t, "EUC01", euc.Code)
	assert.Equal(t, "EUC01", euc.Name, "name defaults to code")

	cards := conv.CardsByCode["WOOD-A"]
	require.Len(t, cards, 2)
	assert.Equal(t, wood.ID, cards[0].ProductID)
	assert.Equal(t, day("2026-01-01"), cards[0].StartDate)
	assert.Equal(t, day("2026-01-15"), cards[0].EndDate)
	assert.Equal(t, 12.5, cards[0].UnitPrice)
	assert.Equal(t, "ops", cards[0].CreatedBy)
	assert.NotEqual(t, cards[0].ID, cards[1].ID)
}

func TestConvert_EndDefaultsToStart(t *testing.T) {
	conv, err := Convert(validSchedule(), convertNow, "ops")
	require.NoError(t, err)

	c := conv.CardsByCode["EUC01"][0]
	assert.Equal(t, day("2026-01-10"), c.StartDate)
	assert.Equal(t, c.StartDate, c.EndDate)
	assert.Equal(t, 0.0, c.UnitPrice)
}

func TestConvert_FileChangedByWins(t *testing.T) {
	s := validSchedule()
	s.ChangedBy = "pricing-desk"
	conv, err := Convert(s, convertNow, "ops")
	require.NoError(t, err)
	assert.Equal(t, "pricing-desk", conv.CardsByCode["WOOD-A"][0].CreatedBy)
}

func TestFromDomain_SortsAndOmitsSingleDayEnd(t *testing.T) {
	p := &domain.Product{ID: "p1", Code: "WOOD-A", Name: "Rubber wood A"}
	empty := &domain.Product{ID: "p2", Code: "EUC01", Name: "Eucalyptus"}
	cards := []*domain.PriceCard{
		{ID: "c2", ProductID: "p1", StartDate: day("2026-02-01"), EndDate: day("2026-02-01"), UnitPrice: 9},
		{ID: "c1", ProductID: "p1", StartDate: day("2026-01-01"), EndDate: day("2026-01-31"), UnitPrice: 8.25},
	}

	s := FromDomain([]*domain.Product{p, empty}, cards)
	require.Len(t, s.Products, 2)
	assert.Equal(t, SchemaVersion, s.Version)

	prices := s.Products[0].Prices
	require.Len(t, prices, 2)
	assert.Equal(t, "2026-01-01", prices[0].Start)
	require.NotNil(t, prices[0].End)
	assert.Equal(t, "2026-01-31", *prices[0].End)
	assert.Equal(t, 8.25, *prices[0].UnitPrice)
	assert.Nil(t, prices[1].End)

	assert.Empty(t, s.Products[1].Prices)
}

func TestExportThenImportPreservesSchedule(t *testing.T) {
	p := &domain.Product{ID: "p1", Code: "WOOD-A", Name: "Rubber wood A"}
	cards := []*domain.PriceCard{
		{ID: "c1", ProductID: "p1", StartDate: day("2026-01-01"), EndDate: day("2026-01-31"), UnitPrice: 8.25},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSchedule(&buf, FromDomain([]*domain.Product{p}, cards)))

	parsed, err := ParseSchedule(buf.Bytes())
	require.NoError(t, err)
	assert.Empty(t, ValidateSchedule(parsed))

	conv, err := Convert(parsed, convertNow, "ops")
	require.NoError(t, err)
	got := conv.CardsByCode["WOOD-A"]
	require.Len(t, got, 1)
	assert.Equal(t, day("2026-01-01"), got[0].StartDate)
	assert.Equal(t, day("2026-01-31"), got[0].EndDate)
	assert.Equal(t, 8.25, got[0].UnitPrice)
}
