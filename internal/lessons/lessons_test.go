package lessons

import (
	"testing"

	"github.com/newcourse/newcourse/backend/course-service/internal/course"
	"github.com/stretchr/testify/require"
)

func sample() *course.Course {
	return &course.Course{
		ID: "c1",
		ContentList: []course.LessonContent{
			{ID: "a", Title: "A", Order: 1},
			{ID: "b", Title: "B", Order: 2},
			{ID: "c", Title: "C", Order: 3},
		},
	}
}

func ids(c *course.Course) []string {
	out := make([]string, 0, len(c.ContentList))
	for _, it := range c.ContentList {
		out = append(out, it.ID)
	}
	return out
}

func TestAppendAssignsFreshIDAtTail(t *testing.T) {
	c := sample()
	got := Append(c, course.LessonContent{ID: "a", Title: "D", Order: 99})

	require.Len(t, c.ContentList, 4)
	require.Equal(t, got, c.ContentList[3])
	require.NotEqual(t, "a", got.ID)
	require.NotContains(t, []string{"a", "b", "c"}, got.ID)
	require.Equal(t, 99, got.Order)
	require.Equal(t, []string{"a", "b", "c"}, ids(c)[:3])
}

func TestAppendCreatesMissingList(t *testing.T) {
	c := &course.Course{ID: "c1"}
	Append(c, course.LessonContent{Title: "first"})
	require.Len(t, c.ContentList, 1)
}

func TestAppendBatchPreservesPrefixAndOrder(t *testing.T) {
	c := sample()
	added := AppendBatch(c, []course.LessonContent{{Title: "x"}, {Title: "y"}})

	require.Len(t, c.ContentList, 5)
	require.Equal(t, []string{"a", "b", "c"}, ids(c)[:3])
	require.Equal(t, "x", c.ContentList[3].Title)
	require.Equal(t, "y", c.ContentList[4].Title)
	require.Len(t, added, 2)
	require.Equal(t, added[0].ID, c.ContentList[3].ID)
	require.NotEqual(t, added[0].ID, added[1].ID)
}

func TestReplaceKeepsPositionAndID(t *testing.T) {
	c := sample()
	got, err := Replace(c, "b", course.LessonContent{ID: "other", Title: "B2"})
	require.NoError(t, err)
	require.Equal(t, "b", got.ID)
	require.Len(t, c.ContentList, 3)
	require.Equal(t, []string{"a", "b", "c"}, ids(c))
	require.Equal(t, "B2", c.ContentList[1].Title)
}

func TestReplaceMissingLeavesListUntouched(t *testing.T) {
	c := sample()
	before := append([]course.LessonContent(nil), c.ContentList...)
	_, err := Replace(c, "zzz", course.LessonContent{Title: "nope"})
	require.ErrorIs(t, err, course.ErrNotFound)
	require.Equal(t, before, c.ContentList)
}

func TestRemove(t *testing.T) {
	c := sample()
	require.NoError(t, Remove(c, "a"))
	require.Equal(t, []string{"b", "c"}, ids(c))

	err := Remove(c, "a")
	require.ErrorIs(t, err, course.ErrNotFound)
	require.Equal(t, []string{"b", "c"}, ids(c))
}

func TestRemoveFirstMatchOnly(t *testing.T) {
	c := &course.Course{ContentList: []course.LessonContent{{ID: "d", Title: "1"}, {ID: "d", Title: "2"}}}
	require.NoError(t, Remove(c, "d"))
	require.Len(t, c.ContentList, 1)
	require.Equal(t, "2", c.ContentList[0].Title)
}

func TestRemoveOnNilList(t *testing.T) {
	c := &course.Course{ID: "c1"}
	require.ErrorIs(t, Remove(c, "a"), course.ErrNotFound)
}

func TestFindReturnsPointerIntoList(t *testing.T) {
	c := sample()
	it, err := Find(c, "c")
	require.NoError(t, err)
	it.VideoURL = "/uploads/videos/x.mp4"
	require.Equal(t, "/uploads/videos/x.mp4", c.ContentList[2].VideoURL)

	_, err = Find(c, "missing")
	require.ErrorIs(t, err, course.ErrNotFound)
}
