package snapshot

import (
	"context"
	"errors"
	"sync"

	"github.com/evanchen13/wb-sustainability/internal/providers"
	"github.com/evanchen13/wb-sustainability/internal/services"
	"github.com/evanchen13/wb-sustainability/internal/snapshot/interfaces"
	"github.com/evanchen13/wb-sustainability/internal/structures"
	"github.com/roylee0704/gron"
)

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	service     services.DashboardServiceInterface
	fileManager *FileManager
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()

	s.cron.AddFunc(gron.Every(s.config.Persistence.SaveInterval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()
		s.save()
	})

	if s.config.Refresh.Interval > 0 {
		s.cron.AddFunc(gron.Every(s.config.Refresh.Interval), s.refresh)
	}

	s.cron.Start()
}

func (s *Scheduler) refresh() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 2*s.config.WorldBank.Timeout)
	defer cancel()

	s.logger.Infof(providers.TypeApp, "Refreshing dataset...")
	if _, err := s.service.Refresh(ctx); err != nil {
		s.logger.Errorf(providers.TypeApp, "Scheduled refresh failed: %s", err)
		return
	}
	s.save()
}

func (s *Scheduler) save() {
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	if errors.Is(err, ErrNothingToSave) {
		s.logger.Debugf(providers.TypeApp, "Nothing to persist yet")
		return
	}
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return
	}
	s.logger.Infof(providers.TypeApp, "Persisted data to file %s", s.config.Persistence.FilePath)
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	return s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.logger.Infof(providers.TypeApp, "Persisting dataset to file...")
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	if errors.Is(err, ErrNothingToSave) {
		return nil
	}
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting data: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, service services.DashboardServiceInterface, fileManager *FileManager) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		service:     service,
		fileManager: fileManager,
	}
}
