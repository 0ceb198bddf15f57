package executors

// inlineExecutor runs every task immediately on the submitting goroutine.
type inlineExecutor struct{}

func (inlineExecutor) Execute(task TaskNode) {
	task.Run()
}

var inlineInstance inlineExecutor

// Inline returns the process-wide inline executor: Execute runs the task
// synchronously on the caller.
func Inline() Executor {
	return inlineInstance
}
