package fetchers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArchiveFetcher_Client(t *testing.T) {
	asserts := require.New(t)

	t.Run("OwnConnectionPoolPerTask", func(t *testing.T) {
		first, owned := ArchiveFetcher{}.client()
		asserts.True(owned)

		second, _ := ArchiveFetcher{}.client()

		asserts.NotNil(first.Transport)
		asserts.NotSame(http.DefaultTransport, first.Transport)
		asserts.NotSame(first.Transport, second.Transport)
	})

	t.Run("SharedClient", func(t *testing.T) {
		shared := &http.Client{}

		client, owned := ArchiveFetcher{Client: shared}.client()

		asserts.False(owned)
		asserts.Same(shared, client)
	})
}
