package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gitref/catalog"
	"gitref/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSV = `comando,descrição,ordem_importância,como_pode_ser_usado
git status,Mostra o estado da árvore de trabalho,1,"git status, git status -s"
git commit,Grava alterações no repositório,2,git commit -m <mensagem>
git rebase,Reaplica commits sobre outra base,31,git rebase -i HEAD~<n>
git bisect,Busca binária pelo commit que introduziu um bug,101,git bisect start
`

// isolate keeps commands away from the user's config and log directories.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("GITREF_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("GITREF_LOG_DIR", filepath.Join(dir, "logs"))
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeCSV(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "comandos.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o644))
	return path
}

func TestListCmd(t *testing.T) {
	dir := isolate(t)
	csvPath := writeCSV(t, dir)

	t.Run("tier", func(t *testing.T) {
		out, err := execute(t, "list", "--data", csvPath, "--tier", "essential")
		require.NoError(t, err)
		assert.Contains(t, out, "#001")
		assert.Contains(t, out, "git status")
		assert.Contains(t, out, "$ git status -s")
		assert.NotContains(t, out, "git bisect")
		assert.Contains(t, out, "2 of 4 commands")
	})

	t.Run("search", func(t *testing.T) {
		out, err := execute(t, "list", "--data", csvPath, "--search", "REBASE")
		require.NoError(t, err)
		assert.Contains(t, out, "#031")
		assert.NotContains(t, out, "git status")
		assert.Contains(t, out, "1 of 4 commands")
	})

	t.Run("defaults to every tier", func(t *testing.T) {
		out, err := execute(t, "list", "--data", csvPath)
		require.NoError(t, err)
		assert.Contains(t, out, "4 of 4 commands")
	})

	t.Run("bundled catalog", func(t *testing.T) {
		out, err := execute(t, "list", "--search", "git status")
		require.NoError(t, err)
		assert.Contains(t, out, "git status")
	})
}

func TestListCmd_JSON(t *testing.T) {
	dir := isolate(t)
	csvPath := writeCSV(t, dir)

	out, err := execute(t, "list", "--data", csvPath, "--search", "bisect", "--json")
	require.NoError(t, err)

	var view model.FilteredView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Len(t, view.Records, 1)
	assert.Equal(t, "git bisect", view.Records[0].Name)
	assert.Equal(t, 101, view.Records[0].Rank)
	assert.Equal(t, 4, view.Total)
	assert.Equal(t, 1, view.Counts[model.TierSpecific])
	assert.Equal(t, 0, view.Counts[model.TierEssential])
}

func TestListCmd_DataFormatError(t *testing.T) {
	dir := isolate(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "list", "--data", filepath.Join(dir, "nope.csv"))
		require.Error(t, err)

		var dfe *catalog.DataFormatError
		require.True(t, errors.As(err, &dfe))
		assert.True(t, errors.Is(err, catalog.ErrDataFormat))
	})

	t.Run("bad rank", func(t *testing.T) {
		path := filepath.Join(dir, "bad.csv")
		data := "comando,descrição,ordem_importância,como_pode_ser_usado\ngit status,x,um,git status\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		_, err := execute(t, "list", "--data", path)
		var dfe *catalog.DataFormatError
		require.True(t, errors.As(err, &dfe))
		assert.Equal(t, 2, dfe.Line)
		assert.Equal(t, "ordem_importância", dfe.Field)
	})
}

func TestImportCmd(t *testing.T) {
	dir := isolate(t)
	csvPath := writeCSV(t, dir)
	dbPath := filepath.Join(dir, "comandos.db")

	out, err := execute(t, "import", csvPath, dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 4 commands into "+dbPath)

	out, err = execute(t, "list", "--data", dbPath, "--tier", "advanced")
	require.NoError(t, err)
	assert.Contains(t, out, "git rebase")
	assert.Contains(t, out, "1 of 4 commands")
}

func TestImportCmd_RejectsInvalidCSV(t *testing.T) {
	dir := isolate(t)
	csvPath := filepath.Join(dir, "dup.csv")
	data := "comando,descrição,ordem_importância,como_pode_ser_usado\ngit a,,1,\ngit b,,1,\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(data), 0o644))
	dbPath := filepath.Join(dir, "comandos.db")

	_, err := execute(t, "import", csvPath, dbPath)
	require.ErrorIs(t, err, catalog.ErrDataFormat)
	assert.NoFileExists(t, dbPath)
}

func TestImportCmd_Args(t *testing.T) {
	isolate(t)
	_, err := execute(t, "import", "only-one.csv")
	assert.Error(t, err)
}
