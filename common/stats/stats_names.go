package stats

/*
This file defines all the metrics being collected.   As new metrics are added please follow this pattern.
*/

const (
	/************************* Scheduler metrics **************************/
	/*
		number of task slices admitted to a server
	*/
	SchedDispatchedSlicesCounter = "dispatchedSlicesCounter"

	/*
		number of admission attempts a server rejected after the advisory status said it had room
	*/
	SchedAdmissionRejectedCounter = "admissionRejectedCounter"

	/*
		number of round robin slices that finished with time remaining and were put back in the ready queue
	*/
	SchedRequeuedTasksCounter = "requeuedTasksCounter"

	/*
		number of tasks whose remaining time reached zero
	*/
	SchedCompletedTasksCounter = "completedTasksCounter"

	/*
		completion records for task ids the scheduler does not know about
	*/
	SchedUnknownCompletionCounter = "unknownCompletionCounter"

	/*
		tasks that arrived and are waiting for admission
	*/
	SchedReadyQueueGauge = "readyQueueGauge"

	/*
		tasks whose arrival time has not elapsed yet
	*/
	SchedPendingQueueGauge = "pendingQueueGauge"

	/*
		tasks currently admitted to some server
	*/
	SchedInProgressGauge = "inProgressGauge"

	/*
		amount of time it takes the scheduler to complete a dispatch pass
	*/
	SchedStepLatency_ms = "stepLatency_ms"

	/*
		final per-task response time recorded in the completion map
	*/
	SchedTaskResponseLatency_ms = "taskResponseLatency_ms"

	/*
		final per-task wait time from arrival to first admission
	*/
	SchedTaskWaitLatency_ms = "taskWaitLatency_ms"

	/************************* Server metrics **************************/
	/*
		slots reserved on the server: admitted but not yet completed slices
	*/
	ServerLoadGauge = "loadGauge"

	/*
		slices waiting in the server's local queue for a worker
	*/
	ServerLocalQueueGauge = "localQueueGauge"

	/*
		number of workers the server launched
	*/
	ServerWorkersLaunchedCounter = "workersLaunchedCounter"

	/*
		number of completion records forwarded to the scheduler
	*/
	ServerCompletionsForwardedCounter = "completionsForwardedCounter"

	/*
		assign requests refused because the server was full or the slice had no task id
	*/
	ServerAssignRejectedCounter = "assignRejectedCounter"

	/*
		time from slice admission to completion as seen by the server
	*/
	ServerSliceResponseLatency_ms = "sliceResponseLatency_ms"

	/************************* Run metrics **************************/
	/*
		average process cpu utilization over the run, in percent
	*/
	RunCPUUtilizationGaugeFloat = "cpuUtilizationPercent"
)
