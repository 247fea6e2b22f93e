package providers

import (
	"net"
	"net/http"
	"time"

	"github.com/evanchen13/wb-sustainability/internal/structures"
)

func NewHttpClientProvider(conf *structures.Config) *http.Client {
	return &http.Client{
		Timeout: conf.WorldBank.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}
}
