package job

import (
	"runtime/debug"
	"time"

	"github.com/gobuffalo/buffalo/worker"

	"github.com/claimwell/claims-api/domain"
	"github.com/claimwell/claims-api/log"
)

const (
	handlerKey = "job_handler"
	argJobType = "job_type"

	// ArgClaimID identifies the claim a job operates on
	ArgClaimID = "claim_id"
)

const (
	ClaimFilesMigrate       = "claim_files_migrate"
	ClaimCreatedNotify      = "claim_created_notify"
	ClaimTransitionedNotify = "claim_transitioned_notify"
	PendingFilesPurge       = "pending_files_purge"
)

var w *worker.Worker

var handlers = map[string]func(worker.Args) error{
	ClaimFilesMigrate:       claimFilesMigrateHandler,
	ClaimCreatedNotify:      claimCreatedNotifyHandler,
	ClaimTransitionedNotify: claimTransitionedNotifyHandler,
	PendingFilesPurge:       pendingFilesPurgeHandler,
}

func Init(appWorker *worker.Worker) {
	w = appWorker
	if err := (*w).Register(handlerKey, mainHandler); err != nil {
		log.Errorf("error registering '%s' handler, %s", handlerKey, err)
	}

	delay := time.Second * 10

	// Kick off the first purge of abandoned staged uploads between 1h11 and
	// 3h27 from now, so multiple instances don't all run it at once
	if domain.Env.GoEnv != domain.EnvDevelopment {
		randMins := time.Duration(domain.RandomInsecureIntInRange(71, 387))
		delay = randMins * time.Minute
	}

	if err := SubmitDelayed(PendingFilesPurge, delay, map[string]any{}); err != nil {
		log.Errorf("error initializing %s job, %s", PendingFilesPurge, err)
	}
}

func mainHandler(args worker.Args) error {
	jobType := args[argJobType].(string)

	log.Infof("starting %s job", jobType)
	start := time.Now().UTC()

	defer func() {
		if err := recover(); err != nil {
			log.Errorf("panic in job handler %s: %s\n%s", jobType, err, debug.Stack())
		}
	}()

	if err := handlers[jobType](args); err != nil {
		log.Errorf("job %s failed: %s", jobType, err)
	}

	log.Infof("completed %s job in %v seconds", jobType, time.Since(start).Seconds())
	return nil
}

// Submit enqueues a new Worker job for the given job type. Arguments can be provided in `args`.
func Submit(jobType string, args map[string]any) error {
	if domain.Env.GoEnv == domain.EnvTest {
		return nil
	}
	job := worker.Job{
		Queue:   "default",
		Args:    args,
		Handler: handlerKey,
	}
	job.Args[argJobType] = jobType
	return (*w).Perform(job)
}

// SubmitDelayed enqueues a delayed Worker job for the given job type. Arguments can be provided in `args`.
func SubmitDelayed(jobType string, delay time.Duration, args map[string]any) error {
	if domain.Env.GoEnv == domain.EnvTest {
		return nil
	}
	job := worker.Job{
		Queue:   "default",
		Args:    args,
		Handler: handlerKey,
	}
	job.Args[argJobType] = jobType
	return (*w).PerformIn(job, delay)
}
