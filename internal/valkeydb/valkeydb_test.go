package valkeydb_test

import (
	"context"
	"os"
	"testing"

	"resume-extractor/internal/valkeydb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setUpTestDB(t *testing.T) *valkeydb.ValkeyClient {

	t.Helper()

	url := os.Getenv("VALKEY_TEST_URL")
	if url == "" {
		t.Skip("VALKEY_TEST_URL not set, skipping integration test")
	}

	valkeypass := os.Getenv("VALKEY_TEST_PASSWORD")
	ctx := context.Background()

	db, err := valkeydb.New(ctx, url, valkeypass)

	if err != nil {

		t.Fatalf("failed to connect to test database: %v", err)
	}

	t.Cleanup(func() {
		db.Client.Do(ctx, db.Client.B().Del().Key("queue:pending", "queue:processing").Build())
		db.Close()
	})

	return db
}

func TestInsertConsumeAck(t *testing.T) {
	valkeyDB := setUpTestDB(t)
	ctx := context.Background()

	require.NoError(t, valkeyDB.InsertJob(ctx, "job-1"))
	require.NoError(t, valkeyDB.InsertJob(ctx, "job-2"))

	first, err := valkeyDB.ConsumeJob(ctx)
	require.NoError(t, err)
	assert.Equal(t, "job-1", first)

	processing, err := valkeyDB.Client.Do(ctx, valkeyDB.Client.B().Lrange().Key("queue:processing").Start(0).Stop(-1).Build()).AsStrSlice()
	require.NoError(t, err)
	assert.Equal(t, []string{"job-1"}, processing)

	require.NoError(t, valkeyDB.AckJob(ctx, first))

	n, err := valkeyDB.Client.Do(ctx, valkeyDB.Client.B().Llen().Key("queue:processing").Build()).AsInt64()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRequeueRestoresUnackedJobs(t *testing.T) {
	valkeyDB := setUpTestDB(t)
	ctx := context.Background()

	require.NoError(t, valkeyDB.InsertJob(ctx, "job-crashed"))
	_, err := valkeyDB.ConsumeJob(ctx)
	require.NoError(t, err)

	moved, err := valkeyDB.Requeue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	again, err := valkeyDB.ConsumeJob(ctx)
	require.NoError(t, err)
	assert.Equal(t, "job-crashed", again)
}
