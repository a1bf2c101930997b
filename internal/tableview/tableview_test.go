package tableview

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projecthub/internal/models"
)

type row struct {
	ID     uint64
	Name   string
	Status string
}

func testView() *View[row] {
	return &View[row]{
		SearchText: func(r row) string { return r.Name },
		Columns: map[string]Column[row]{
			"name": {
				Value: func(r row) string { return r.Name },
				Less:  func(a, b row) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) },
			},
			"status": {
				Value: func(r row) string { return r.Status },
			},
		},
	}
}

func testRows() []row {
	return []row{
		{ID: 1, Name: "Design homepage", Status: "todo"},
		{ID: 2, Name: "Fix bug", Status: "done"},
		{ID: 3, Name: "Write design doc", Status: "todo"},
		{ID: 4, Name: "Ship release", Status: "in-progress"},
	}
}

func TestEmptySearchReturnsAllRowsUnchanged(t *testing.T) {
	v := testView()
	rows := testRows()

	result := v.Apply(rows, Query{PageSize: 50})

	assert.Equal(t, rows, result.Rows)
	assert.Equal(t, int64(4), result.TotalCount)
}

func TestFuzzySearchIsCaseInsensitiveSubstring(t *testing.T) {
	v := testView()

	result := v.Apply(testRows(), Query{Search: "design", PageSize: 50})

	require.Len(t, result.Rows, 2)
	assert.Equal(t, uint64(1), result.Rows[0].ID)
	assert.Equal(t, uint64(3), result.Rows[1].ID)
}

func TestFilterSentinelValuesMeanNoConstraint(t *testing.T) {
	v := testView()
	rows := testRows()

	for _, sentinel := range []string{"", FilterAll} {
		result := v.Apply(rows, Query{Filters: map[string]string{"status": sentinel}, PageSize: 50})
		assert.Equal(t, rows, result.Rows, "sentinel %q must behave as filter absence", sentinel)
	}
}

func TestColumnFilterIsStrictEquality(t *testing.T) {
	v := testView()

	result := v.Apply(testRows(), Query{Filters: map[string]string{"status": "todo"}, PageSize: 50})

	require.Len(t, result.Rows, 2)
	for _, r := range result.Rows {
		assert.Equal(t, "todo", r.Status)
	}

	// "to" is a substring of "todo" but equality must not match it.
	result = v.Apply(testRows(), Query{Filters: map[string]string{"status": "to"}, PageSize: 50})
	assert.Empty(t, result.Rows)
}

func TestSortAscendingIsIdempotent(t *testing.T) {
	v := testView()

	first := v.Apply(testRows(), Query{SortBy: "name", PageSize: 50})
	second := v.Apply(first.Rows, Query{SortBy: "name", PageSize: 50})

	assert.Equal(t, first.Rows, second.Rows)
}

func TestSortToggleReversesDistinctKeys(t *testing.T) {
	v := testView()

	asc := v.Apply(testRows(), Query{SortBy: "name", PageSize: 50})
	desc := v.Apply(testRows(), Query{SortBy: "name", SortDesc: true, PageSize: 50})

	require.Len(t, desc.Rows, len(asc.Rows))
	for i := range asc.Rows {
		assert.Equal(t, asc.Rows[i].ID, desc.Rows[len(desc.Rows)-1-i].ID)
	}
}

func TestSortIsStableOnEqualKeys(t *testing.T) {
	v := testView()
	rows := []row{
		{ID: 1, Name: "same"},
		{ID: 2, Name: "same"},
		{ID: 3, Name: "same"},
	}

	result := v.Apply(rows, Query{SortBy: "name", PageSize: 50})

	assert.Equal(t, rows, result.Rows)
}

func TestSortOperatesOnFilteredSet(t *testing.T) {
	v := testView()

	result := v.Apply(testRows(), Query{
		Filters:  map[string]string{"status": "todo"},
		SortBy:   "name",
		SortDesc: true,
		PageSize: 50,
	})

	require.Len(t, result.Rows, 2)
	assert.Equal(t, "Write design doc", result.Rows[0].Name)
	assert.Equal(t, "Design homepage", result.Rows[1].Name)
}

func TestPaginationCoversFilteredSetExactlyOnce(t *testing.T) {
	v := testView()
	var rows []row
	for i := 1; i <= 23; i++ {
		rows = append(rows, row{ID: uint64(i), Name: "row " + strconv.Itoa(i)})
	}

	var collected []row
	page := 1
	for {
		result := v.Apply(rows, Query{Page: page, PageSize: 5})
		if len(result.Rows) == 0 {
			break
		}
		collected = append(collected, result.Rows...)
		page++
	}

	assert.Equal(t, rows, collected)
}

func TestPaginationCounts(t *testing.T) {
	v := testView()
	var rows []row
	for i := 1; i <= 23; i++ {
		rows = append(rows, row{ID: uint64(i), Name: "row " + strconv.Itoa(i)})
	}

	result := v.Apply(rows, Query{Page: 2, PageSize: 10})

	assert.Equal(t, int64(23), result.TotalCount)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 11, result.From)
	assert.Equal(t, 20, result.To)

	last := v.Apply(rows, Query{Page: 3, PageSize: 10})
	assert.Equal(t, 21, last.From)
	assert.Equal(t, 23, last.To)
	assert.Len(t, last.Rows, 3)
}

func TestOutOfRangePageYieldsEmptyPageWithTotals(t *testing.T) {
	v := testView()

	// Page index is not auto-reset when the filtered set shrinks; a
	// stale page is answered with an empty page and correct totals.
	result := v.Apply(testRows(), Query{Page: 9, PageSize: 10})

	assert.Empty(t, result.Rows)
	assert.Equal(t, int64(4), result.TotalCount)
	assert.Equal(t, 1, result.TotalPages)
	assert.Zero(t, result.From)
	assert.Zero(t, result.To)
}

func TestEmptyInputIsAValidState(t *testing.T) {
	v := testView()

	result := v.Apply(nil, Query{Search: "anything", PageSize: 10})

	assert.Empty(t, result.Rows)
	assert.Equal(t, int64(0), result.TotalCount)
	assert.Equal(t, 0, result.TotalPages)
}

func TestTaskViewSearchesResolvedRelationNames(t *testing.T) {
	v := Tasks()
	assignee := models.User{ID: 7, Name: "Alice Chen"}
	tasks := []models.Task{
		{ID: 1, Title: "Fix bug", Project: &models.Project{ID: 3, Name: "Website Redesign"}},
		{ID: 2, Title: "Ship release", Assignee: &assignee},
		{ID: 3, Title: "Dangling ref", ProjectID: 99},
	}

	byProject := v.Apply(tasks, Query{Search: "redesign", PageSize: 50})
	require.Len(t, byProject.Rows, 1)
	assert.Equal(t, uint64(1), byProject.Rows[0].ID)

	byAssignee := v.Apply(tasks, Query{Search: "alice", PageSize: 50})
	require.Len(t, byAssignee.Rows, 1)
	assert.Equal(t, uint64(2), byAssignee.Rows[0].ID)

	// A dangling project reference must not panic or match.
	none := v.Apply(tasks, Query{Search: "ghost", PageSize: 50})
	assert.Empty(t, none.Rows)
}

func TestTaskViewDueDateSortPutsNilLast(t *testing.T) {
	v := Tasks()
	early := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tasks := []models.Task{
		{ID: 1},
		{ID: 2, DueDate: &late},
		{ID: 3, DueDate: &early},
	}

	result := v.Apply(tasks, Query{SortBy: ColDueDate, PageSize: 50})

	require.Len(t, result.Rows, 3)
	assert.Equal(t, uint64(3), result.Rows[0].ID)
	assert.Equal(t, uint64(2), result.Rows[1].ID)
	assert.Equal(t, uint64(1), result.Rows[2].ID)
}

func TestTaskViewPrioritySortRanksLowToUrgent(t *testing.T) {
	v := Tasks()
	tasks := []models.Task{
		{ID: 1, Priority: models.TaskPriorityMedium},
		{ID: 2, Priority: models.TaskPriorityUrgent},
		{ID: 3, Priority: models.TaskPriorityHigh},
		{ID: 4, Priority: models.TaskPriorityLow},
	}

	result := v.Apply(tasks, Query{SortBy: ColPriority, PageSize: 50})

	require.Len(t, result.Rows, 4)
	// Alphabetical order would put high before medium.
	assert.Equal(t, models.TaskPriorityLow, result.Rows[0].Priority)
	assert.Equal(t, models.TaskPriorityMedium, result.Rows[1].Priority)
	assert.Equal(t, models.TaskPriorityHigh, result.Rows[2].Priority)
	assert.Equal(t, models.TaskPriorityUrgent, result.Rows[3].Priority)
}

func TestUserViewFiltersByRole(t *testing.T) {
	v := Users()
	users := []models.User{
		{ID: 1, Name: "Ann", Email: "ann@example.com", Role: models.RoleAdmin},
		{ID: 2, Name: "Bob", Email: "bob@example.com", Role: models.RoleUser},
	}

	result := v.Apply(users, Query{Filters: map[string]string{ColRole: "admin"}, PageSize: 50})

	require.Len(t, result.Rows, 1)
	assert.Equal(t, uint64(1), result.Rows[0].ID)
}
