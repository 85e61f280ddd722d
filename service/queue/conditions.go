package queue

import "github.com/viant/opqueue/model/task"

// Dependencies returns tasks injected by the operation's conditions
func Dependencies(op task.Operation) []task.Task {
	var ret []task.Task
	for _, condition := range op.Conditions() {
		if dep := condition.Dependency(op); dep != nil {
			ret = append(ret, dep)
		}
	}
	return ret
}

// Categories returns distinct exclusive category names of the operation's conditions
func Categories(op task.Operation) []string {
	var ret []string
	seen := map[string]bool{}
	for _, condition := range op.Conditions() {
		if !condition.MutuallyExclusive() {
			continue
		}
		name := condition.Name()
		if seen[name] {
			continue
		}
		seen[name] = true
		ret = append(ret, name)
	}
	return ret
}
