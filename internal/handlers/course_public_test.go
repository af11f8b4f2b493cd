package handlers

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"backend/internal/models"
)

func TestPublicCourseProjectionExcludesClassLink(t *testing.T) {
	projection := publicCourseProjection()
	if v, ok := projection["classLink"]; !ok || v != 0 {
		t.Fatalf("expected classLink excluded in projection, got %v", projection)
	}
}

// A projected document decodes with an empty ClassLink; omitempty must then
// keep the key out of the response body entirely.
func TestCourseJSONOmitsClassLinkWhenRedacted(t *testing.T) {
	course := models.Course{
		Title:         "Intro to Data Analytics",
		Price:         49.99,
		DurationWeeks: 6,
		Status:        "active",
		CreatedAt:     time.Now(),
	}

	body, err := json.Marshal(course)
	if err != nil {
		t.Fatalf("json marshal failed: %v", err)
	}

	if strings.Contains(string(body), "classLink") {
		t.Fatalf("expected no classLink key in public json, got %s", body)
	}
}

func TestCourseJSONIncludesClassLinkForAdminReads(t *testing.T) {
	course := models.Course{
		Title:     "Intro to Data Analytics",
		ClassLink: "https://classroom.example.com/abc",
	}

	body, err := json.Marshal(course)
	if err != nil {
		t.Fatalf("json marshal failed: %v", err)
	}

	if !strings.Contains(string(body), `"classLink":"https://classroom.example.com/abc"`) {
		t.Fatalf("expected classLink in admin json, got %s", body)
	}
}

func TestSumCourseDurations(t *testing.T) {
	courses := []models.Course{
		{DurationWeeks: 4},
		{DurationWeeks: 6},
		{DurationWeeks: 0},
	}
	if got := sumCourseDurations(courses); got != 10 {
		t.Errorf("expected total 10, got %d", got)
	}
	if got := sumCourseDurations(nil); got != 0 {
		t.Errorf("expected 0 for no courses, got %d", got)
	}
}
