package task

import "context"

// Wait blocks until every task finished or ctx is done.
func Wait(ctx context.Context, tasks ...Task) error {
	for _, t := range tasks {
		if t == nil {
			continue
		}
		select {
		case <-t.Done():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// IDs returns identities of the supplied tasks
func IDs(tasks []Task) []string {
	ret := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ret = append(ret, t.ID())
	}
	return ret
}
