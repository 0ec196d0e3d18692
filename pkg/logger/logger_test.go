package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercadodovale/estoque-api/pkg/logger"
)

func TestNew_JSONConServicioYComponente(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Service: "estoque-api", Output: &buf})

	inv := l.Component("inventory")
	inv.Info().Str("product_id", "p1").Msg("ajuste")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "estoque-api", line["service"])
	assert.Equal(t, "inventory", line["component"])
	assert.Equal(t, "p1", line["product_id"])
	assert.Equal(t, "info", line["level"])
}

func TestNew_NivelFiltra(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "WARN", Output: &buf})

	l.Info().Msg("no sale")
	assert.Zero(t, buf.Len())
	l.Warn().Msg("sale")
	assert.Contains(t, buf.String(), "sale")
}

func TestNew_NivelDesconocidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "verbose", Output: &buf})

	l.Debug().Msg("debug")
	assert.Zero(t, buf.Len())
	l.Info().Msg("info")
	assert.NotZero(t, buf.Len())
}
