package snapshot

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/evanchen13/wb-sustainability/internal/models"
	"github.com/evanchen13/wb-sustainability/internal/providers"
	"github.com/evanchen13/wb-sustainability/internal/services"
	"github.com/evanchen13/wb-sustainability/internal/snapshot/interfaces"
	json "github.com/goccy/go-json"
)

// ErrNothingToSave is returned when no dataset has been loaded yet.
var ErrNothingToSave = errors.New("no dataset to save")

type FileManager struct {
	service    services.DashboardServiceInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewFileManager(
	compressor interfaces.CompressorInterface,
	service services.DashboardServiceInterface,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
) *FileManager {
	return &FileManager{
		compressor: compressor,
		service:    service,
		logger:     logger,
		metrics:    metrics,
	}
}

// SaveToFile writes the current dataset as compressed JSON, replacing the
// file atomically.
func (f *FileManager) SaveToFile(fileName string) error {
	start := time.Now()
	d := f.service.Current()
	if d == nil {
		return ErrNothingToSave
	}

	jsonData, err := json.Marshal(models.Snapshot{Version: models.SnapshotVersion, Dataset: d})
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	if err = os.Rename(tmpFile, fileName); err != nil {
		return err
	}
	f.metrics.ObserveSnapshotDuration(time.Since(start))
	return nil
}

// LoadFromFile restores the dataset of a snapshot. A missing file is not an error.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snap models.Snapshot
	if err := json.Unmarshal(decompressedData, &snap); err != nil {
		return err
	}
	if snap.Version != models.SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	if snap.Dataset.Empty() {
		f.logger.Warnf(providers.TypeApp, "Snapshot %s holds no observations", fileName)
		return nil
	}

	f.service.Restore(snap.Dataset)
	f.logger.Infof(providers.TypeApp, "Restored dataset fetched at %s", snap.Dataset.FetchedAt.Format(time.RFC3339))
	return nil
}
