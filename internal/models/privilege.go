package models

// AdminPrivilege supersedes every other privilege check.
const AdminPrivilege = "Admin"

// Privilege is a named capability a user may hold.
type Privilege struct {
	ID   int64  `bson:"privilegeID" json:"privilegeID"`
	Name string `bson:"privilegeName" json:"privilegeName"`
}

// PrivilegeAssignment relates a user to a privilege by ID.
type PrivilegeAssignment struct {
	UserID int64 `bson:"userID" json:"userID"`
	PrivID int64 `bson:"privID" json:"privID"`
}
