package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

const (
	// DefaultSchedule каждый день в 09:00 UTC
	DefaultSchedule = "0 9 * * *"

	// DefaultLeadDays напоминание за день до записи
	DefaultLeadDays = 1

	runTimeout = 5 * time.Minute
)

// Config настройки воркера напоминаний
type Config struct {
	Schedule string // cron-выражение из пяти полей
	LeadDays int    // за сколько дней до записи напоминать
}

// Result итог одного прогона
type Result struct {
	Sent    int
	Skipped int
	Failed  int
}

// Worker по расписанию отправляет клиентам напоминания о завтрашних записях.
// "Завтра" считается в часовом поясе магазина.
type Worker struct {
	cfg             Config
	appointmentRepo AppointmentRepository
	storeRepo       StoreRepository
	notifier        Notifier
	timeProvider    TimeProvider
	logger          Logger
	cron            *cron.Cron
}

// NewWorker создает воркер напоминаний
func NewWorker(
	cfg Config,
	appointmentRepo AppointmentRepository,
	storeRepo StoreRepository,
	notifier Notifier,
	logger Logger,
) *Worker {
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultSchedule
	}
	if cfg.LeadDays <= 0 {
		cfg.LeadDays = DefaultLeadDays
	}

	return &Worker{
		cfg:             cfg,
		appointmentRepo: appointmentRepo,
		storeRepo:       storeRepo,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider подменяет источник времени
func (w *Worker) WithTimeProvider(tp TimeProvider) *Worker {
	w.timeProvider = tp
	return w
}

// Start регистрирует задачу и запускает планировщик.
// Прогон пропускается, если предыдущий еще не завершился.
func (w *Worker) Start() error {
	logger := cronLogger{log: w.logger}
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	if _, err := c.AddFunc(w.cfg.Schedule, w.run); err != nil {
		return fmt.Errorf("reminders: invalid schedule %q: %w", w.cfg.Schedule, err)
	}

	w.cron = c
	c.Start()
	w.logger.Info("Reminder worker started, schedule=%q, leadDays=%d", w.cfg.Schedule, w.cfg.LeadDays)
	return nil
}

// Stop останавливает планировщик и ждет завершения текущего прогона
func (w *Worker) Stop(ctx context.Context) error {
	if w.cron == nil {
		return nil
	}

	select {
	case <-w.cron.Stop().Done():
		w.logger.Info("Reminder worker stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	res := w.RunOnce(ctx)
	w.logger.Info("Reminder run finished: sent=%d, skipped=%d, failed=%d", res.Sent, res.Skipped, res.Failed)
}

// RunOnce отправляет напоминания по всем записям, которые в часовом поясе
// своего магазина приходятся на сегодня + LeadDays.
func (w *Worker) RunOnce(ctx context.Context) Result {
	now := w.timeProvider.Now()
	stores := make(map[int64]*domain.Store)
	var res Result

	// Локальная дата магазина отличается от UTC не больше чем на день
	base := domain.DateOnly(now.UTC()).AddDate(0, 0, w.cfg.LeadDays)
	for _, date := range []time.Time{base.AddDate(0, 0, -1), base, base.AddDate(0, 0, 1)} {
		if ctx.Err() != nil {
			return res
		}

		list, err := w.appointmentRepo.ListForReminder(ctx, date)
		if err != nil {
			w.logger.Error("RunOnce: failed to list appointments for %s: %v", date.Format(domain.DateFormat), err)
			res.Failed++
			continue
		}

		for _, a := range list {
			store, err := w.store(ctx, stores, a.StoreID)
			if err != nil {
				w.logger.Error("RunOnce: failed to get store id=%d: %v", a.StoreID, err)
				res.Failed++
				continue
			}

			target := domain.DateOnly(now.In(store.Location())).AddDate(0, 0, w.cfg.LeadDays)
			if !domain.SameDate(a.Date, target) {
				res.Skipped++
				continue
			}

			if err := w.notifier.SendReminder(ctx, store, a); err != nil {
				w.logger.Warn("RunOnce: reminder for appointment id=%d failed: %v", a.ID, err)
				res.Failed++
				continue
			}

			if err := w.appointmentRepo.MarkReminderSent(ctx, a.ID, now); err != nil {
				w.logger.Error("RunOnce: failed to mark reminder sent for appointment id=%d: %v", a.ID, err)
			}
			res.Sent++
		}
	}

	return res
}

func (w *Worker) store(ctx context.Context, cache map[int64]*domain.Store, id int64) (*domain.Store, error) {
	if s, ok := cache[id]; ok {
		return s, nil
	}
	s, err := w.storeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cache[id] = s
	return s, nil
}

// cronLogger адаптер логгера сервиса под cron.Logger
type cronLogger struct {
	log Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	// cron пишет в Info каждый тик, оставляем только пропуски
	if msg == "skip" {
		l.log.Warn("cron: previous reminder run still in progress, skipping %v", keysAndValues)
	}
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: %s: %v %v", msg, err, keysAndValues)
}
