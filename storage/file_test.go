package storage_test

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bxcodec/faker/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	currency "github.com/malusev998/currency-archive"
	"github.com/malusev998/currency-archive/storage"
)

func readLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	lines := make([]map[string]interface{}, 0)
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := make(map[string]interface{})
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}

	require.NoError(t, scanner.Err())

	return lines
}

func TestFileStorage_Append(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "exchange_audit.log")

	st, err := storage.NewFileStorage(storage.FileConfig{Path: path})
	asserts.Nil(err)

	receivedAt := time.Date(2014, time.December, 1, 10, 0, 0, 0, time.UTC)
	saved, err := st.Append(ctx, currency.AuditEntry{
		URL:        faker.URL(),
		Date:       "01.12.2014",
		Payload:    []byte(`{"date":"01.12.2014","exchangeRate":[]}`),
		ReceivedAt: receivedAt,
	})

	asserts.Nil(err)
	asserts.IsType(uuid.UUID{}, saved.ID)
	asserts.Equal("01.12.2014", saved.Date)

	_, err = st.Append(ctx, currency.AuditEntry{URL: faker.URL(), Payload: []byte("not json")})
	asserts.Nil(err)
	asserts.Nil(st.Close())

	lines := readLines(t, path)

	asserts.Len(lines, 2)
	asserts.Equal("01.12.2014", lines[0]["date"])
	asserts.Equal(receivedAt.Format(time.RFC3339Nano), lines[0]["receivedAt"])
	asserts.Equal("01.12.2014", lines[0]["payload"].(map[string]interface{})["date"])
	asserts.Equal("not json", lines[1]["payload"])
	asserts.NotEmpty(lines[1]["receivedAt"])
}

func TestFileStorage_ConcurrentAppend(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	path := filepath.Join(t.TempDir(), "exchange_audit.log")

	st, err := storage.NewFileStorage(storage.FileConfig{Path: path})
	asserts.Nil(err)

	var wg sync.WaitGroup
	errorChannel := make(chan error, 20)

	for i := 0; i < 20; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()
			_, err := st.Append(context.Background(), currency.AuditEntry{
				URL:     faker.URL(),
				Date:    faker.Date(),
				Payload: []byte(`{"currency":"` + faker.Currency() + `"}`),
			})
			errorChannel <- err
		}()
	}

	wg.Wait()
	close(errorChannel)

	for err := range errorChannel {
		asserts.Nil(err)
	}

	asserts.Nil(st.Close())
	asserts.Len(readLines(t, path), 20)
}

func TestFileStorage_AppendAfterClose(t *testing.T) {
	t.Parallel()
	asserts := require.New(t)
	path := filepath.Join(t.TempDir(), "exchange_audit.log")

	st, err := storage.NewFileStorage(storage.FileConfig{Path: path})
	asserts.Nil(err)
	asserts.Nil(st.Close())
	asserts.Nil(st.Close())

	_, err = st.Append(context.Background(), currency.AuditEntry{Payload: []byte("{}")})
	asserts.ErrorIs(err, os.ErrClosed)

	asserts.Nil(st.Drop())
	_, err = os.Stat(path)
	asserts.True(os.IsNotExist(err))
}
