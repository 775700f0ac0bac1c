package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"secretGateway/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordCmd(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"hash-password", "s3cret"})

	require.NoError(t, cmd.Execute())

	hash := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
}

func TestHashPasswordCmd_RequiresArgument(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"hash-password"})

	assert.Error(t, cmd.Execute())
}

func TestServeCmd_InvalidConfig(t *testing.T) {
	t.Setenv("SECRET_STORE_BACKEND", "consul")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"serve"})

	err := cmd.Execute()
	assert.ErrorContains(t, err, `unknown store backend "consul"`)
}

func TestNewStore_UnknownBackend(t *testing.T) {
	var cfg config.Config
	cfg.Store.Backend = "etcd"

	_, err := newStore(context.Background(), cfg)
	assert.ErrorContains(t, err, "unknown store backend")
}
