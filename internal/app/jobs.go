package app

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/smartagro/smartagro/internal/catalog"
	"github.com/smartagro/smartagro/internal/views"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// AuditReport is the outcome of one data store audit
type AuditReport struct {
	Products     int      `json:"products"`
	Users        int      `json:"users"`
	Messages     int      `json:"messages"`
	Tasks        int      `json:"tasks"`
	OverdueTasks []int64  `json:"overdue_tasks"`
	Problems     []string `json:"problems"`
}

func (a *Application) initJob(loc *time.Location) error {
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	spec := a.appConfig.Jobs.AuditSpec
	if spec == "" {
		return nil
	}
	_, err := a.sched.AddFunc(spec, a.SchedAuditTask)
	if err != nil {
		return errors.Wrapf(err, "invalid audit schedule %q", spec)
	}
	return nil
}

// StartBackgroundJobs starts the scheduler and stops it when ctx is done
func (a *Application) StartBackgroundJobs(ctx context.Context) {
	a.sched.Start()
	go func() {
		<-ctx.Done()
		<-a.sched.Stop().Done()
	}()
}

// SchedAuditTask re-validates the data store and reports overdue tasks
func (a *Application) SchedAuditTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	report, err := a.RunAudit(ctx)
	if err != nil {
		zap.L().Error("catalog audit failed", zap.Error(err))
		return
	}
	if len(report.Problems) > 0 {
		zap.L().Warn("catalog audit found problems", zap.Strings("problems", report.Problems))
	}
	zap.L().Info("catalog audit finished",
		zap.Int("products", report.Products),
		zap.Int("users", report.Users),
		zap.Int("messages", report.Messages),
		zap.Int("tasks", report.Tasks),
		zap.Int64s("overdue_tasks", report.OverdueTasks))
}

// RunAudit reads the whole data store, validates it and lists overdue tasks
func (a *Application) RunAudit(ctx context.Context) (AuditReport, error) {
	var report AuditReport
	d, err := catalog.LoadDataset(ctx, a.reader)
	if err != nil {
		return report, err
	}
	report.Products = len(d.Products) + len(d.ProcessedProducts)
	report.Users = len(d.Users)
	report.Messages = len(d.Messages)
	report.Tasks = len(d.Tasks)

	for _, verr := range multierr.Errors(catalog.Validate(d)) {
		report.Problems = append(report.Problems, verr.Error())
	}

	now := a.localNow()
	for _, t := range d.Tasks {
		if views.IsOverdue(t, now) {
			report.OverdueTasks = append(report.OverdueTasks, t.ID)
		}
	}
	return report, nil
}
