package generator

import (
	"strings"
	"testing"

	"github.com/newcourse/newcourse/backend/course-service/internal/course"
	"github.com/stretchr/testify/require"
)

func titles(items []course.LessonContent) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestGenerateJavaBeginner(t *testing.T) {
	items, err := Generate("Spring Boot", "java", "Beginner")
	require.NoError(t, err)
	require.Len(t, items, 4)
	require.Equal(t, []string{"Introduction to Spring Boot", "Course Overview", "Key Concepts in Spring Boot", "Practice Exercises"}, titles(items))
	for i, it := range items {
		require.Equal(t, i+1, it.Order)
		require.Equal(t, course.ContentTypeText, it.ContentType)
		require.NotEmpty(t, it.ID)
	}
	require.Contains(t, items[1].Content, "Java")
	require.Contains(t, items[2].Content, "Java")
	require.Contains(t, items[3].Content, "beginner level exercises")
	require.Contains(t, items[0].Content, "Beginner level students interested in java")
}

func TestGenerateIsDeterministicApartFromIDs(t *testing.T) {
	a, err := Generate("Go", "Python", "Advanced")
	require.NoError(t, err)
	b, err := Generate("Go", "Python", "Advanced")
	require.NoError(t, err)
	seen := map[string]bool{}
	for i := range a {
		require.Equal(t, a[i].Title, b[i].Title)
		require.Equal(t, a[i].Content, b[i].Content)
		require.NotEqual(t, a[i].ID, b[i].ID)
		seen[a[i].ID] = true
	}
	require.Len(t, seen, 4)
}

func TestGenerateCategoryBranches(t *testing.T) {
	cases := []struct {
		category string
		overview string
		concepts string
	}{
		{"PYTHON programming", "Python syntax", "Python Data Structures"},
		{"Web Development", "Frontend development principles", "HTML/CSS Fundamentals"},
		{"javascript", "Java programming fundamentals", "Java Collections Framework"},
		{"Cooking", "Core principles of Go", "Fundamental Principles"},
		{"", "Core principles of Go", "Fundamental Principles"},
	}
	for _, tc := range cases {
		items, err := Generate("Go", tc.category, "Intermediate")
		require.NoError(t, err, tc.category)
		require.Contains(t, items[1].Content, tc.overview, tc.category)
		require.Contains(t, items[2].Content, tc.concepts, tc.category)
	}
}

func TestGenerateRequiresLevel(t *testing.T) {
	for _, lvl := range []string{"", "   "} {
		items, err := Generate("Go", "web", lvl)
		require.ErrorIs(t, err, course.ErrValidation)
		require.Nil(t, items)
	}
}

func TestGenerateEscapesInterpolatedText(t *testing.T) {
	items, err := Generate("<b>Go</b>", "", "Beginner")
	require.NoError(t, err)
	require.Equal(t, "Introduction to <b>Go</b>", items[0].Title)
	for _, it := range items {
		require.False(t, strings.Contains(it.Content, "<b>Go</b>"), it.Title)
	}
	require.Contains(t, items[0].Content, "&lt;b&gt;Go&lt;/b&gt;")
	require.Contains(t, items[0].Content, "interested in this subject")
}
