package scoring

import (
	"strings"

	"github.com/campusforge/appraisal/internal/appraisal"
)

// ScoreTeachingLoad awards 1 mark per lecture/tutorial hour and 0.5 per
// practical hour, capped at 14.
func ScoreTeachingLoad(courses []appraisal.TeachingCourse) Category {
	c := newCategory(CatTeachingLoad, capTeachingLoad)
	for i, course := range courses {
		marks := course.LectureHours + course.TutorialHours + 0.5*course.PracticalHours
		c.add(i, course.Code+" "+course.Title, marks)
	}
	return c
}

// ScoreInnovations awards 1 mark per teaching innovation, capped at 2.
func ScoreInnovations(items []appraisal.Innovation) Category {
	c := newCategory(CatInnovations, capInnovations)
	for i, it := range items {
		c.add(i, it.Description, 1)
	}
	return c
}

// ScoreNewLabs awards 2 marks per new laboratory developed, capped at 5.
func ScoreNewLabs(items []appraisal.NewLab) Category {
	c := newCategory(CatNewLabs, capNewLabs)
	for i, it := range items {
		c.add(i, it.Name, 2)
	}
	return c
}

// ScoreOtherTasks awards 1 mark per other instructional task, capped at 2.
func ScoreOtherTasks(items []appraisal.OtherTask) Category {
	c := newCategory(CatOtherTasks, capOtherTasks)
	for i, it := range items {
		c.add(i, it.Description, 1)
	}
	return c
}

// ScoreProjectSupervision awards 2 marks per supervised B.Tech group and 3
// per M.Tech group, combined cap 10.
func ScoreProjectSupervision(groups []appraisal.ProjectGroup) Category {
	c := newCategory(CatProjectSupervision, capProjectSupervision)
	for i, g := range groups {
		var marks float64
		switch strings.ToLower(g.Level) {
		case "btech", "b.tech":
			marks = 2
		case "mtech", "m.tech":
			marks = 3
		}
		c.add(i, g.Title, marks)
	}
	return c
}
