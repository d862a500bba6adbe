// Package generator produces placeholder lessons from a course's title,
// category and level. Output is deterministic apart from lesson IDs.
package generator

import (
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"
	"github.com/newcourse/newcourse/backend/course-service/internal/course"
)

type track int

const (
	trackGeneric track = iota
	trackJava
	trackPython
	trackWeb
)

// matchTrack picks the category vocabulary by case-insensitive substring.
// Checks run in order, so "JavaScript" matches "java" first.
func matchTrack(category string) track {
	c := strings.ToLower(category)
	switch {
	case c == "":
		return trackGeneric
	case strings.Contains(c, "java"):
		return trackJava
	case strings.Contains(c, "python"):
		return trackPython
	case strings.Contains(c, "web"), strings.Contains(c, "javascript"):
		return trackWeb
	}
	return trackGeneric
}

// Generate returns the four starter lessons (introduction, overview, key
// concepts, practice) with orders 1..4. An empty level is rejected before
// anything is built.
func Generate(title, category, level string) ([]course.LessonContent, error) {
	if strings.TrimSpace(level) == "" {
		return nil, fmt.Errorf("%w: course level is required to generate content", course.ErrValidation)
	}
	t := html.EscapeString(title)
	cat := html.EscapeString(category)
	if cat == "" {
		cat = "this subject"
	}
	lvl := html.EscapeString(level)
	tr := matchTrack(category)

	items := []course.LessonContent{
		{Title: "Introduction to " + title, Content: introduction(t, cat, lvl)},
		{Title: "Course Overview", Content: overview(t, lvl, tr)},
		{Title: "Key Concepts in " + title, Content: keyConcepts(t, tr)},
		{Title: "Practice Exercises", Content: practice(t, strings.ToLower(lvl))},
	}
	for i := range items {
		items[i].ID = uuid.NewString()
		items[i].ContentType = course.ContentTypeText
		items[i].Order = i + 1
	}
	return items, nil
}

func introduction(title, category, level string) string {
	return "<h3>Welcome to " + title + "</h3><p>This course is designed for " +
		level + " level students interested in " + category + ".</p>" +
		"<p>We'll cover the fundamentals and help you build strong skills in this area.</p>"
}

func overview(title, level string, tr track) string {
	var b strings.Builder
	b.WriteString("<h3>What You'll Learn</h3><ul>")
	var points []string
	switch tr {
	case trackJava:
		points = []string{
			"Java programming fundamentals and object-oriented design",
			"Building robust applications with Java",
			"Java libraries and frameworks",
		}
	case trackPython:
		points = []string{
			"Python syntax and programming concepts",
			"Data analysis and visualization with Python",
			"Building applications with Python frameworks",
		}
	case trackWeb:
		points = []string{
			"Frontend development principles",
			"Interactive web applications with JavaScript",
			"Modern web frameworks and libraries",
		}
	default:
		points = []string{
			"Core principles of " + title,
			"Practical applications in real-world scenarios",
			"Industry best practices",
		}
	}
	for _, p := range points {
		b.WriteString("<li>" + p + "</li>")
	}
	b.WriteString("</ul>")
	b.WriteString("<p>This " + level + " level course will take you through all the essential concepts needed to become proficient in " + title + ".</p>")
	return b.String()
}

func keyConcepts(title string, tr track) string {
	var b strings.Builder
	b.WriteString("<h3>Essential Concepts in " + title + "</h3>")
	b.WriteString("<p>Understanding these core concepts will help you master " + title + ":</p><ol>")
	var concepts [][2]string
	switch tr {
	case trackJava:
		concepts = [][2]string{
			{"Object-Oriented Programming", "Understanding classes, objects, inheritance, and polymorphism"},
			{"Java Collections Framework", "Working with Lists, Maps, Sets and their implementations"},
			{"Exception Handling", "Managing errors effectively in Java applications"},
		}
	case trackPython:
		concepts = [][2]string{
			{"Python Data Structures", "Lists, dictionaries, sets, and tuples"},
			{"Functional Programming", "Using map, filter, reduce, and list comprehensions"},
			{"Package Management", "Working with pip and virtual environments"},
		}
	case trackWeb:
		concepts = [][2]string{
			{"HTML/CSS Fundamentals", "Building the structure and style of web pages"},
			{"JavaScript Essentials", "Making web pages interactive"},
			{"Responsive Design", "Ensuring websites work on all devices"},
		}
	default:
		concepts = [][2]string{
			{"Fundamental Principles", "Core concepts that drive " + title},
			{"Practical Applications", "Real-world examples and case studies"},
			{"Advanced Techniques", "Taking your skills to the next level"},
		}
	}
	for _, c := range concepts {
		b.WriteString("<li><strong>" + c[0] + "</strong>: " + c[1] + "</li>")
	}
	b.WriteString("</ol>")
	return b.String()
}

func practice(title, level string) string {
	return "<h3>Practice Exercises</h3>" +
		"<p>Apply your knowledge with these " + level + " level exercises:</p><ol>" +
		"<li>Create a simple project that demonstrates key concepts in " + title + "</li>" +
		"<li>Implement a solution to a common problem in the field</li>" +
		"<li>Build a portfolio piece that showcases your skills</li>" +
		"</ol><p>Complete these exercises to reinforce your learning.</p>"
}
