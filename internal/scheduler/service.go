package scheduler

import (
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/citelens/citations-bot/internal/config"
	"github.com/citelens/citations-bot/internal/monitoring"
)

// Service handles scheduling of monitoring tasks
type Service struct {
	config            *config.Config
	monitoringService *monitoring.Service
	cron              *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, monitoringService *monitoring.Service) *Service {
	return &Service{
		config:            cfg,
		monitoringService: monitoringService,
		cron:              cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled monitoring
func (s *Service) Start() error {
	var cronExpression string

	switch s.config.ReportSchedule {
	case "daily":
		// Run daily at 9 AM UTC
		cronExpression = "0 0 9 * * *"
	case "weekly":
		// Run weekly on Monday at 9 AM UTC
		cronExpression = "0 0 9 * * MON"
	default:
		cronExpression = "0 0 9 * * MON"
	}

	_, err := s.cron.AddFunc(cronExpression, func() {
		logrus.Info("Starting scheduled citation monitoring run")
		if err := s.monitoringService.RunMonitoring(); err != nil {
			logrus.Errorf("Scheduled monitoring run failed: %v", err)
		}
	})

	if err != nil {
		return err
	}

	// Sweep stored citations for negative sentiment every 4 hours
	_, err = s.cron.AddFunc("0 0 */4 * * *", func() {
		logrus.Info("Starting citation sentiment check (4-hour frequency)")
		if err := s.monitoringService.RunCitationCheck(); err != nil {
			logrus.Errorf("Citation sentiment check failed: %v", err)
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %s schedule (plus sentiment checks every 4 hours)", s.config.ReportSchedule)
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
