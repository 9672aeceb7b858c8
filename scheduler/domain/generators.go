package domain

import (
	"fmt"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

// GopterGenTask generates a single task whose times are multiples of unit.
func GopterGenTask(unit time.Duration) gopter.Gen {
	return gopter.CombineGens(
		gen.Identifier(),
		gen.IntRange(1, 3),
		gen.IntRange(1, 25),
		gen.IntRange(0, 10),
	).Map(func(values []interface{}) *Task {
		return NewTask(
			TaskID(values[0].(string)),
			"cpu",
			values[1].(int),
			time.Duration(values[2].(int))*unit,
			time.Duration(values[3].(int))*unit,
		)
	})
}

// GopterGenTasks generates a non-empty list of tasks with unique ids.
func GopterGenTasks(unit time.Duration) gopter.Gen {
	return gen.SliceOf(GopterGenTask(unit)).
		SuchThat(func(tasks []*Task) bool { return len(tasks) > 0 }).
		Map(func(tasks []*Task) []*Task {
			for i, t := range tasks {
				t.ID = TaskID(fmt.Sprintf("%s-%d", t.ID, i))
			}
			return tasks
		})
}
