package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/obtainium-emulation-pack/oep/internal/errors"
	"github.com/obtainium-emulation-pack/oep/internal/testutil"
)

func TestNewConfigCmd(t *testing.T) {
	c := NewConfigCmd(nil)

	assert.Equal(t, "config", c.Use)
	var names []string
	for _, sub := range c.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"init", "vet"}, names)
	assert.NotNil(t, NewConfigInitCmd(nil).Flags().Lookup("force"))
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := run(t, dir, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "config file created: .oep.yaml")

	content := testutil.ReadFile(t, dir, ".oep.yaml")
	assert.True(t, strings.HasPrefix(content, configHeader))
	assert.Contains(t, content, "source: src/applications.json")

	_, _, err = run(t, dir, "config", "init")
	assert.Equal(t, oerrors.ExitGeneralError, exitCode(err))

	_, _, err = run(t, dir, "config", "init", "--force")
	assert.NoError(t, err)

	stdout, _, err = run(t, dir, "config", "vet")
	require.NoError(t, err)
	assert.Contains(t, stdout, "config file is valid")
}

func TestConfigInit_CustomPath(t *testing.T) {
	dir := t.TempDir()

	_, _, err := run(t, dir, "config", "init", "--config", "conf/oep.yaml")
	require.NoError(t, err)
	assert.Contains(t, testutil.ReadFile(t, dir, "conf/oep.yaml"), "redirectURL:")
}

func TestConfigVet_Missing(t *testing.T) {
	_, _, err := run(t, t.TempDir(), "config", "vet")
	assert.Equal(t, oerrors.ExitNotFound, exitCode(err))
}

func TestConfigVet_Invalid(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, ".oep.yaml", "sorce: apps.json\ntest:\n  maxReleases: 500\n")

	_, stderr, err := run(t, dir, "config", "vet")
	assert.Equal(t, oerrors.ExitValidationError, exitCode(err))
	assert.Contains(t, stderr, "sorce")
	assert.Contains(t, stderr, "test.maxReleases")
}

func TestConfigVet_Unparseable(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, ".oep.yaml", "source: [unclosed\n")

	_, _, err := run(t, dir, "config", "vet")
	assert.Equal(t, oerrors.ExitValidationError, exitCode(err))
}
