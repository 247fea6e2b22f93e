package di

import (
	"github.com/evanchen13/wb-sustainability/internal/providers"
	"github.com/evanchen13/wb-sustainability/internal/services"
	"github.com/evanchen13/wb-sustainability/internal/snapshot"
	"github.com/evanchen13/wb-sustainability/internal/snapshot/interfaces"
	"github.com/evanchen13/wb-sustainability/internal/store"
	"github.com/evanchen13/wb-sustainability/internal/structures"
	"github.com/evanchen13/wb-sustainability/internal/worldbank"
)

func provideLogger(conf *structures.Config) (providers.Logger, func(), error) {
	logger, err := providers.NewLogProvider(conf)
	if err != nil {
		return nil, nil, err
	}
	return logger, logger.Close, nil
}

func provideArchive(conf *structures.Config, logger providers.Logger) (store.ArchiveInterface, func(), error) {
	archive, err := store.NewArchive(conf, logger)
	if err != nil {
		return nil, nil, err
	}
	return archive, func() {
		if err := archive.Close(); err != nil {
			logger.Errorf(providers.TypeApp, "Close archive: %s", err)
		}
	}, nil
}

func provideArchiver(archive store.ArchiveInterface) services.ArchiverInterface {
	return archive
}

func provideFetcher(client *worldbank.Client) worldbank.FetcherInterface {
	return client
}

func provideCompressor(conf *structures.Config) (interfaces.CompressorInterface, func(), error) {
	compressor, err := snapshot.NewZstdCompressor(conf)
	if err != nil {
		return nil, nil, err
	}
	return compressor, compressor.Close, nil
}
