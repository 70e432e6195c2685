package scoring

import (
	"strings"

	"github.com/campusforge/appraisal/internal/appraisal"
)

// ScoreInstituteRoles awards flat marks by role tier: 2 for HOD/Dean/Chief
// Warden, 1 for Warden/Associate Dean, 0.5 for committee chairs, nothing
// otherwise. Roles count while their tenure overlaps the appraisal year.
// Cap 10.
func ScoreInstituteRoles(roles []appraisal.InstituteRole, year, currentYear int) Category {
	c := newCategory(CatInstituteRoles, capInstituteRoles)
	for i, r := range roles {
		if !InYearRange(r.StartYear, r.EndYear, year, currentYear) {
			continue
		}
		c.add(i, r.Role, instituteRoleMarks(r.Role))
	}
	return c
}

func instituteRoleMarks(role string) float64 {
	r := strings.ToLower(role)
	// longer names first: "chief warden" must not match the warden tier,
	// "associate dean" must not match the dean tier
	switch {
	case strings.Contains(r, "chief warden"):
		return 2
	case strings.Contains(r, "associate dean"):
		return 1
	case strings.Contains(r, "hod"), strings.Contains(r, "head of"), strings.Contains(r, "dean"):
		return 2
	case strings.Contains(r, "warden"):
		return 1
	case strings.Contains(r, "chair"):
		return 0.5
	}
	return 0
}

// ScoreDepartmentRoles awards 0.5 marks per department-level role held
// during the appraisal year. Cap 5.
func ScoreDepartmentRoles(roles []appraisal.DepartmentRole, year, currentYear int) Category {
	c := newCategory(CatDepartmentRoles, capDepartmentRoles)
	for i, r := range roles {
		if !InYearRange(r.StartYear, r.EndYear, year, currentYear) {
			continue
		}
		c.add(i, r.Role, 0.5)
	}
	return c
}
