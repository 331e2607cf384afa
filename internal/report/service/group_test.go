package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coldcheck/internal/models"
	id "coldcheck/pkg/domain"
)

func TestGroupByTimeSlot(t *testing.T) {
	d := day("2024-01-01")
	a := reportOn(d, models.Slot0400)
	b := reportOn(d, models.Slot0000)
	c := reportOn(d, models.Slot0400)

	groups := GroupByTimeSlot([]*models.Report{a, b, c})
	assert.Len(t, groups, 2)
	assert.Equal(t, []*models.Report{a, c}, groups[models.Slot0400])
	assert.Equal(t, []*models.Report{b}, groups[models.Slot0000])
	_, ok := groups[models.Slot0200]
	assert.False(t, ok, "empty slots are absent")

	assert.Empty(t, GroupByTimeSlot(nil))
}

func TestOrderedSlotGroups(t *testing.T) {
	d := day("2024-01-01")
	six := reportOn(d, models.Slot0600)
	midnight := reportOn(d, models.Slot0000)
	two := reportOn(d, models.Slot0200)

	groups := OrderedSlotGroups([]*models.Report{six, midnight, two})
	require.Len(t, groups, 3)
	assert.Equal(t, models.Slot0000, groups[0].Slot)
	assert.Equal(t, models.Slot0200, groups[1].Slot)
	assert.Equal(t, models.Slot0600, groups[2].Slot)
	assert.Equal(t, []*models.Report{six}, groups[2].Reports)
}

func TestGroupEntriesBySection(t *testing.T) {
	kitchen := &models.Section{ID: id.NewSectionID(), Name: "Kitchen"}
	bar := &models.Section{ID: id.NewSectionID(), Name: "Bar"}
	entry := func(section *models.Section, compliant bool) *models.Entry {
		e := &models.Entry{ID: id.NewEntryID(), UnitID: id.NewUnitID(), Compliant: compliant}
		if section != nil {
			e.Section = section
			e.Unit = &models.Unit{ID: e.UnitID, SectionID: section.ID, Name: "Unit"}
		}
		return e
	}

	e1, e2, e3, e4 := entry(bar, true), entry(nil, false), entry(kitchen, true), entry(bar, false)
	report := &models.Report{Entries: []*models.Entry{e1, e2, e3, e4}}

	groups := GroupEntriesBySection(report)
	require.Len(t, groups, 3)
	assert.Equal(t, "Bar", groups[0].SectionName)
	assert.Equal(t, []*models.Entry{e1, e4}, groups[0].Entries)
	assert.True(t, groups[1].SectionID.IsNil())
	assert.Equal(t, models.UnknownName, groups[1].SectionName)
	assert.Equal(t, "Kitchen", groups[2].SectionName)

	assert.Equal(t, Stats{Total: 4, InRange: 2, Attention: 2}, StatsOf(report))
}
