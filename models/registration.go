package models

// Registration represents one submitted signup. The backing sheet stores
// it as the columns Name, Email, Phone, School, Group in that order; the
// service never updates or deletes a row once appended.
type Registration struct {
	ID     uint   `json:"-" gorm:"primaryKey;autoIncrement"`
	Name   string `json:"name" gorm:"size:255;not null"`
	Email  string `json:"email" gorm:"size:255;not null"`
	Phone  string `json:"phone" gorm:"size:32;not null"`
	School string `json:"school" gorm:"size:255"`
	// "group" is a reserved word in Postgres, hence the column rename.
	Group string `json:"group" gorm:"size:100;not null;column:group_name"`
}

func (Registration) TableName() string {
	return "registrations"
}

// GroupStatus is the occupancy projection returned by /api/groups.
// Groups are not stored anywhere; the status is derived per request by
// grouping registrations by group name.
type GroupStatus struct {
	Name        string `json:"name"`
	Count       int    `json:"count"`
	IsFull      bool   `json:"isFull"`
	MaxStudents int    `json:"maxStudents"`
}
