package cache_test

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textsentry/textsentry/pkg/analysis"
	"github.com/textsentry/textsentry/pkg/infra/cache"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func resultKey(text string, threshold float64) string {
	return fmt.Sprintf("detect:%x:%s", sha256.Sum256([]byte(text)),
		strconv.FormatFloat(threshold, 'g', -1, 64))
}

func sampleResult() analysis.FusedResult {
	return analysis.FusedResult{
		IsToxic:     true,
		Confidence:  0.82,
		ToxicLabels: []string{"OFFENSIVE"},
		Scores: map[string]float64{
			"contextual_toxicity": 0.8,
			"final_combined":      0.82,
		},
		Enhanced:        true,
		NormalizedText:  "you are stupid",
		AnalysisSummary: "Toxic (82% confidence, high risk): OFFENSIVE",
	}
}

func TestSaveAndGetResult(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.FromRedis(db, time.Minute, testLogger())

	result := sampleResult()
	payload, err := json.Marshal(result)
	require.NoError(t, err)

	key := resultKey("you are stupid", 0.7)
	mock.ExpectSet(key, string(payload), time.Minute).SetVal("OK")
	mock.ExpectGet(key).SetVal(string(payload))

	require.NoError(t, c.SaveResult(context.Background(), "you are stupid", 0.7, result))

	got, err := c.GetResult(context.Background(), "you are stupid", 0.7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, result, *got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetResultMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.FromRedis(db, time.Minute, testLogger())

	mock.ExpectGet(resultKey("unseen text", 0.7)).RedisNil()

	got, err := c.GetResult(context.Background(), "unseen text", 0.7)
	assert.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetResultError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.FromRedis(db, time.Minute, testLogger())

	mock.ExpectGet(resultKey("text", 0.7)).SetErr(errors.New("connection reset"))

	_, err := c.GetResult(context.Background(), "text", 0.7)
	assert.Error(t, err)
}

func TestKeyIncludesThreshold(t *testing.T) {
	// The same text scored under a different sensitivity is a different
	// cache entry, even when the thresholds differ beyond two decimals.
	db, mock := redismock.NewClientMock()
	c := cache.FromRedis(db, time.Minute, testLogger())

	keyA := resultKey("same text", 0.7)
	keyB := resultKey("same text", 0.701)
	assert.NotEqual(t, resultKey("same text", 0.5), keyA)
	assert.NotEqual(t, keyA, keyB)

	mock.ExpectGet(keyB).RedisNil()
	got, err := c.GetResult(context.Background(), "same text", 0.701)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDefaultTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.FromRedis(db, 0, testLogger())

	result := sampleResult()
	payload, err := json.Marshal(result)
	require.NoError(t, err)

	mock.ExpectSet(resultKey("text", 0.7), string(payload), 5*time.Minute).SetVal("OK")

	require.NoError(t, c.SaveResult(context.Background(), "text", 0.7, result))
	assert.NoError(t, mock.ExpectationsWereMet())
}
