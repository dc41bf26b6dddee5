package storage

// PermissionMatrix maps role -> permission flag -> allowed
type PermissionMatrix map[string]map[string]bool

type permissionDoc struct {
	Roles PermissionMatrix `json:"roles"`
}

// PermissionStore persists the front-end permission gating matrix in
// permissions.json, seeding the default admin/faculty split on first use.
type PermissionStore struct {
	c *collection[permissionDoc]
}

func NewPermissionStore(dir string) *PermissionStore {
	return &PermissionStore{c: newCollection(dir, "permissions.json", func() permissionDoc {
		return permissionDoc{Roles: DefaultPermissions()}
	})}
}

func (s *PermissionStore) Matrix() (PermissionMatrix, error) {
	var out PermissionMatrix
	err := s.c.View(func(doc permissionDoc) error {
		out = doc.Roles
		return nil
	})
	return out, err
}

func (s *PermissionStore) Replace(matrix PermissionMatrix) error {
	return s.c.Update(func(doc *permissionDoc) error {
		doc.Roles = matrix
		return nil
	})
}

// Check reports whether role has permission. Unknown roles and unknown
// permissions are denied.
func (s *PermissionStore) Check(role, permission string) (bool, error) {
	matrix, err := s.Matrix()
	if err != nil {
		return false, err
	}
	return matrix[role][permission], nil
}

// DefaultPermissions is the matrix used until an admin saves one
func DefaultPermissions() PermissionMatrix {
	return PermissionMatrix{
		"admin": {
			"viewStudents":        true,
			"addStudents":         true,
			"editStudents":        true,
			"deleteStudents":      false,
			"exportStudents":      true,
			"viewTrainers":        true,
			"addTrainers":         false,
			"editTrainers":        false,
			"deleteTrainers":      false,
			"viewCourses":         true,
			"createCourses":       false,
			"editCourses":         true,
			"deleteCourses":       false,
			"viewAnalytics":       true,
			"exportReports":       true,
			"manageNotifications": true,
			"manageBookings":      true,
			"systemConfiguration": false,
		},
		"faculty": {
			"viewStudents":        true,
			"addStudents":         false,
			"editStudents":        false,
			"deleteStudents":      false,
			"exportStudents":      false,
			"viewTrainers":        false,
			"addTrainers":         false,
			"editTrainers":        false,
			"deleteTrainers":      false,
			"viewCourses":         true,
			"createCourses":       false,
			"editCourses":         true,
			"deleteCourses":       false,
			"viewAnalytics":       false,
			"exportReports":       false,
			"manageNotifications": false,
			"manageBookings":      false,
			"systemConfiguration": false,
		},
	}
}
