package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/hostelhub/roster-import/internal/application/roster"
	"github.com/hostelhub/roster-import/internal/config"
	"github.com/hostelhub/roster-import/internal/infrastructure/repository/memory"
)

const header = "roll_no,full_name,department,batch,room_number,hostel_block,fees_paid,emergency_contact,email,in_status,unit_no,Floor_no,Degree,gender"

func writeRoster(t *testing.T, content string) *config.Config {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "roster.csv"), []byte(content), 0o600))

	cfg := &config.Config{}
	cfg.Ingest.ImportBaseDir = dir
	return cfg
}

func TestRunIngestPrintsSummary(t *testing.T) {
	t.Parallel()

	cfg := writeRoster(t, header+"\n"+
		"R001,Jane Doe,CSE,2023,A-101,CVR,true,999,jane@example.com,true,1,1,BTech,F\n"+
		"R002,John,CSE,abc,A-102,CVR,true,999,john@example.com,true,1,1,BTech,M\n")
	store := memory.NewRosterStore()
	var out bytes.Buffer

	err := runIngest(context.Background(), &out, cfg, ingestOptions{file: "roster.csv", dryRun: true}, store)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "(dry-run): Processed 1 of 2 students with 1 issue(s)")
	assert.Contains(t, out.String(), "saved: 1, failed: 1")
	assert.Contains(t, out.String(), "Row 3 (R002): invalid number for batch")
	assert.Len(t, store.Students(), 1)
}

func TestRunIngestStrictFailsOnRowErrors(t *testing.T) {
	t.Parallel()

	cfg := writeRoster(t, header+"\nR001,,CSE,2023,,,true,,,true,,,,\n")

	err := runIngest(context.Background(), &bytes.Buffer{}, cfg, ingestOptions{file: "roster.csv", strict: true}, memory.NewRosterStore())
	assert.ErrorIs(t, err, errRowsFailed)
}

func TestRunIngestSchemaMismatchIsFatal(t *testing.T) {
	t.Parallel()

	cfg := writeRoster(t, "roll_no,full_name\nR001,Jane\n")
	store := memory.NewRosterStore()

	err := runIngest(context.Background(), &bytes.Buffer{}, cfg, ingestOptions{file: "roster.csv"}, store)
	assert.ErrorIs(t, err, app.ErrRosterSchemaMismatch)
	assert.Empty(t, store.Students())
}

func TestIngestCommandDryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+"\nR001,Jane Doe,CSE,2023,,,true,,,true,,,,\n"), 0o600))
	t.Setenv("DATABASE_URL", "")
	chdir(t, dir)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"ingest", "--file", path, "--dry-run", "--config", filepath.Join(dir, "missing.yaml")})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Processed 1 of 1 students")
}

func TestIngestCommandRequiresFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"ingest", "--dry-run"})

	assert.Error(t, cmd.Execute())
}
