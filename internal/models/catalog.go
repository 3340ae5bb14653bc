package models

import "time"

// GradePending is the grade a registration starts with until a teacher
// confirms it.
const GradePending = "PEND"

// Department groups users and lessons.
type Department struct {
	ID   int64  `bson:"departmentID" json:"departmentID"`
	Name string `bson:"departmentName" json:"departmentName"`
}

// Lesson belongs to a department and a semester. DepartmentName is resolved
// at read time, not stored.
type Lesson struct {
	ID             int64  `bson:"lessonID" json:"lessonID"`
	Name           string `bson:"lessonName" json:"lessonName"`
	TeacherID      int64  `bson:"lessonTeacherID,omitempty" json:"lessonTeacherID,omitempty"`
	DepartmentID   int64  `bson:"departmentID,omitempty" json:"departmentID,omitempty"`
	SemesterNo     int    `bson:"semesterNo,omitempty" json:"semesterNo,omitempty"`
	DepartmentName string `bson:"-" json:"departmentName,omitempty"`
}

// LessonGroup is a scheduled section of a lesson.
type LessonGroup struct {
	ID         int64  `bson:"lessonGroupID" json:"lessonGroupID"`
	Name       string `bson:"lessonGroupName" json:"lessonGroupName"`
	LessonID   int64  `bson:"lessonID" json:"lessonID"`
	MaxNumber  int    `bson:"maxNumber,omitempty" json:"maxNumber,omitempty"`
	LessonDesc string `bson:"lessonDesc,omitempty" json:"lessonDesc,omitempty"`
	Hour       string `bson:"hour,omitempty" json:"hour,omitempty"`
	Day        string `bson:"day,omitempty" json:"day,omitempty"`
}

// GroupRegistration records a user's membership request in a group.
type GroupRegistration struct {
	ID        int64     `bson:"registrationID" json:"registrationID"`
	GroupID   int64     `bson:"lessonGroupID" json:"lessonGroupID"`
	UserID    int64     `bson:"userID" json:"userID"`
	Grade     string    `bson:"grade" json:"grade"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
