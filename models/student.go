package models

import "time"

// Student is an enrolled student record
type Student struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Education     string    `json:"education,omitempty"`
	DesiredCourse string    `json:"desiredCourse,omitempty"`
	Batch         string    `json:"batch,omitempty"`
	Status        string    `json:"status,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DashboardStats summarises the student body for the admin dashboard
type DashboardStats struct {
	TotalStudents int     `json:"totalStudents"`
	ActiveCourses int     `json:"activeCourses"`
	AvgCompletion int     `json:"avgCompletion"`
	CourseRating  float64 `json:"courseRating"`
	ReviewCount   int     `json:"reviewCount"`
	TrendPercent  int     `json:"trendPercent"`
}
