package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/abgdnv/productcatalog/pkg/config"
	"github.com/stretchr/testify/assert"
)

func Test_NewHTTPServer(t *testing.T) {
	// given
	var cfg config.HTTPConfig
	cfg.Port = 8081
	cfg.MaxHeaderBytes = 2048
	cfg.Timeout.Read = time.Second
	cfg.Timeout.Write = 2 * time.Second
	cfg.Timeout.Idle = 3 * time.Second
	cfg.Timeout.ReadHeader = 4 * time.Second
	handler := http.NewServeMux()

	// when
	plain := NewHTTPServer(cfg, handler)
	traced := NewHTTPServer(cfg, handler, WithTracing("catalog-http"))

	// then
	assert.Equal(t, ":8081", plain.Addr)
	assert.Equal(t, 2048, plain.MaxHeaderBytes)
	assert.Equal(t, 4*time.Second, plain.ReadHeaderTimeout)
	assert.Same(t, handler, plain.Handler)
	_, unwrapped := traced.Handler.(*http.ServeMux)
	assert.False(t, unwrapped, "tracing wraps the handler")
}
