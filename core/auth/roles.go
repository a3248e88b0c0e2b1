package auth

// Role determines the operation capability set of a Principal.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

var (
	AllRoles = []Role{RoleAdmin, RoleTeacher, RoleStudent}

	rolePriorities = map[Role]int{
		RoleAdmin:   3,
		RoleTeacher: 2,
		RoleStudent: 1,
	}
)

func (r Role) Valid() bool {
	_, ok := rolePriorities[r]
	return ok
}

func RolePriority(role Role) int {
	return rolePriorities[role]
}
