package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantNil  bool
		wantAddr string
	}{
		{name: "unset means no redis", url: "", wantNil: true},
		{name: "full url", url: "redis://some-host:6379", wantAddr: "some-host:6379"},
		{name: "bare addr fallback", url: "some-host:6380", wantAddr: "some-host:6380"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newRedisClient(tt.url)
			if tt.wantNil {
				assert.Nil(t, client)
				return
			}
			require.NotNil(t, client)
			assert.Equal(t, tt.wantAddr, client.Options().Addr)
		})
	}
}
